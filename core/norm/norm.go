// Package norm implements PubTator normalization identifier handling:
// splitting multi-valued normalization fields, inferring identifier
// namespaces from annotation types, and stripping taxonomy suffixes.
package norm

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/spyysalo/pubtator/core/errors"
)

// mutationTypes are annotation types whose normalizations carry the
// type itself as namespace and which are displayed as "Mutation".
// See https://github.com/spyysalo/pubtator/issues/4
var mutationTypes = map[string]bool{
	"DNAMutation":     true,
	"ProteinMutation": true,
	"SNP":             true,
}

// taxGrammar is the participle grammar for species normalizations that
// carry a parenthesized taxonomy suffix, e.g. "10090(Tax:10090)".
//
//nolint:govet // participle grammar tags are not standard struct tags
type taxGrammar struct {
	ID  string `@Int`
	Tax string `"(" "Tax" ":" @Int ")"`
}

// taxLexer defines the lexer for taxonomy-suffixed identifiers.
var taxLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[():]`},
})

// taxParser is the participle parser for taxonomy-suffixed identifiers.
var taxParser = participle.MustBuild[taxGrammar](
	participle.Lexer(taxLexer),
)

// HasTaxonomySuffix reports whether the identifier contains a
// parenthesized taxonomy component.
func HasTaxonomySuffix(ident string) bool {
	return strings.Contains(ident, "(Tax:")
}

// StripTaxonomySuffix returns the identifier without its taxonomy
// suffix, keeping only the leading digits.
// See https://github.com/spyysalo/pubtator/issues/2
func StripTaxonomySuffix(ident string) (string, error) {
	parsed, err := taxParser.ParseString("", ident)
	if err != nil {
		return "", errors.Wrapf(err, "failed to strip taxonomy ID from %q", ident)
	}
	return parsed.ID, nil
}

// Namespace returns the identifier namespace inferred from an
// annotation type.
//
// Prefixes from https://github.com/prefixcommons/biocontext/blob/master/registry/uber_context.jsonld
// Note: this checks for containment instead of equality to allow for
// "modified" types like "Species-Nomical".
func Namespace(annType string) string {
	switch {
	case strings.Contains(annType, "Species"):
		return "NCBITaxon"
	case strings.Contains(annType, "Gene"):
		return "NCBIGENE" // Entrez gene ID
	case strings.Contains(annType, "Chemical"):
		return "MESH"
	}
	for t := range mutationTypes {
		if strings.Contains(annType, t) {
			return annType
		}
	}
	return "unknown"
}

// Split returns the individual identifiers contained in a PubTator
// normalization value.
//
// PubTator data can contain several IDs in its normalization field in
// forms such as the following:
//
//	27086975        1178    1188    SOD1 and 2      Gene    6647;6648
//	129280  825     847     5-iodo-2'-deoxyuridine  Chemical        MESH:C029954|MESH:D007065
//
// However, the value cannot be split on all '|' characters due to e.g.
//
//	7564788192200677C-->TDNAMutationc|SUB|C|677|T
//
// It appears that '|' is only used as a separator for Chemicals
// (as of Aug 2017).
func Split(value, annType string) []string {
	switch {
	case strings.Contains(value, ";"):
		return strings.Split(value, ";")
	case strings.Contains(value, "|") && annType == "Chemical":
		return strings.Split(value, "|")
	default:
		return []string{value}
	}
}

// OutputType maps a PubTator annotation type to its converted display
// type. The three mutation types collapse to "Mutation"; everything
// else passes through unchanged.
func OutputType(annType string) string {
	if mutationTypes[annType] {
		return "Mutation"
	}
	return annType
}
