package normalize

import (
	"strings"
	"unicode"

	"github.com/mxbind/mxbind/internal/sets"
)

// goKeywords are the identifiers a generated parameter can never use.
var goKeywords = sets.MakeWith(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var")

// reservedRenames gives readable replacements for native argument names that
// collide with a Go keyword. Anything not listed falls back to appending
// "Arg". The rename is presentation only: the native name is preserved on the
// descriptor, and the generated call site always passes the attribute under
// the native name.
var reservedRenames = map[string]string{
	"type":  "dataType",
	"func":  "function",
	"map":   "mapping",
	"range": "valueRange",
	"var":   "variable",
}

// ParamName returns the Go parameter identifier for a native argument name:
// lowerCamel, remapped when the native name is a Go keyword.
func ParamName(nativeName string) string {
	if renamed, found := reservedRenames[nativeName]; found {
		return renamed
	}
	name := lowerCamel(nativeName)
	if goKeywords.Has(name) {
		return name + "Arg"
	}
	return name
}

// FieldName returns the exported Go struct-field identifier for a native
// argument name.
func FieldName(nativeName string) string {
	if renamed, found := reservedRenames[nativeName]; found {
		return upperFirst(renamed)
	}
	return upperCamel(nativeName)
}

// GoName returns the exported Go identifier for a native operator name.
// Internal markers are dropped: "_contrib_arange_like" becomes
// "ContribArangeLike", "add_n" becomes "AddN".
func GoName(operatorName string) string {
	return upperCamel(strings.TrimLeft(operatorName, "_"))
}

func upperCamel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(upperFirst(part))
	}
	return b.String()
}

func lowerCamel(name string) string {
	camel := upperCamel(name)
	if camel == "" {
		return camel
	}
	runes := []rune(camel)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
