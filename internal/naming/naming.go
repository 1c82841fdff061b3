// Package naming sanitizes Action-IR identifiers (container member and
// method names) into Go-safe exported identifiers for render/golang, and
// singular/plural table-name forms for schemaexport.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// GoIdent turns name into an exported Go identifier: non-alphanumeric
// runs become word boundaries, each word is title-cased, and a leading
// digit gets an underscore prefix (Go identifiers may not start with a
// digit).
func GoIdent(name string) string {
	words := splitWords(name)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	out := sb.String()
	if out == "" {
		return "Field"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "_" + out
	}
	return out
}

func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TableName returns the pluralized, snake_case table name schemaexport
// should render for a base relation named by the given Ref name.
func TableName(refName string) string {
	return inflect.Pluralize(toSnake(refName))
}

func toSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
