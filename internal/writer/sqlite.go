package writer

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/internal/sqlite"
)

const filesSchema = `
CREATE TABLE IF NOT EXISTS files (
	key        TEXT PRIMARY KEY,
	content    BLOB NOT NULL,
	hash       TEXT NOT NULL,
	run_id     TEXT NOT NULL,
	written_at TEXT NOT NULL
)`

// SQLite stores each output path as a row keyed by path. Rows carry a
// BLAKE3 content hash and the identifier of the run that wrote them,
// so repeated conversions of the same corpus can be compared without
// re-reading content.
type SQLite struct {
	db    *sql.DB
	runID string
}

// NewSQLite opens (or creates) the database at path and prepares the
// files table.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open database", path, err)
	}
	if _, err := db.Exec(filesSchema); err != nil {
		db.Close()
		return nil, errors.NewIO("initialize database", path, err)
	}
	return &SQLite{
		db:    db,
		runID: uuid.NewString(),
	}, nil
}

// RunID returns the identifier assigned to this writer's run.
func (w *SQLite) RunID() string {
	return w.runID
}

// Open implements Writer. The returned stream buffers in memory and
// commits the row when closed.
func (w *SQLite) Open(path string) (io.WriteCloser, error) {
	return &sqliteFile{key: path, w: w}, nil
}

// Close implements Writer.
func (w *SQLite) Close() error {
	return w.db.Close()
}

func (w *SQLite) put(key string, content []byte) error {
	sum := blake3.Sum256(content)
	_, err := w.db.Exec(
		`INSERT OR REPLACE INTO files (key, content, hash, run_id, written_at) VALUES (?, ?, ?, ?, ?)`,
		key, content, hex.EncodeToString(sum[:]), w.runID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.NewIO("write row", key, err)
	}
	return nil
}

type sqliteFile struct {
	key string
	w   *SQLite
	buf bytes.Buffer
}

func (f *sqliteFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *sqliteFile) Close() error {
	return f.w.put(f.key, f.buf.Bytes())
}
