package formats

import (
	"testing"

	"github.com/spyysalo/pubtator/core/pubtator"
)

type fakeRenderer struct {
	name string
}

func (f fakeRenderer) Name() string   { return f.name }
func (fakeRenderer) Suffix() string   { return ".fake" }
func (fakeRenderer) Render(*pubtator.Document) ([]byte, error) {
	return []byte("fake"), nil
}

func TestRegisterAndGet(t *testing.T) {
	Register(fakeRenderer{name: "fake-a"})
	Register(fakeRenderer{name: "fake-b"})

	r, err := Get("fake-a")
	if err != nil {
		t.Fatalf("Get(fake-a) failed: %v", err)
	}
	if r.Name() != "fake-a" {
		t.Errorf("Get(fake-a).Name() = %q", r.Name())
	}

	if _, err := Get("no-such-format"); err == nil {
		t.Error("Get(no-such-format) succeeded, want error")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register(fakeRenderer{name: "fake-dup"})
	Register(fakeRenderer{name: "fake-dup"})
}

func TestNamesSorted(t *testing.T) {
	Register(fakeRenderer{name: "fake-z"})
	Register(fakeRenderer{name: "fake-c"})

	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestMarshalPretty(t *testing.T) {
	got, err := MarshalPretty(map[string]any{
		"b":   1,
		"a":   "x<y>&z",
		"arr": []string{"p", "q"},
	})
	if err != nil {
		t.Fatalf("MarshalPretty failed: %v", err)
	}

	want := `{
  "a": "x<y>&z",
  "arr": [
    "p",
    "q"
  ],
  "b": 1
}`
	if string(got) != want {
		t.Errorf("MarshalPretty =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshalPrettyDeterministic(t *testing.T) {
	v := map[string]any{"k1": "v1", "k2": []int{1, 2, 3}, "k3": map[string]int{"a": 1}}
	first, err := MarshalPretty(v)
	if err != nil {
		t.Fatalf("MarshalPretty failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := MarshalPretty(v)
		if err != nil {
			t.Fatalf("MarshalPretty failed: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("output differs between runs:\n%s\nvs\n%s", first, again)
		}
	}
}
