package dialect

import (
	"strings"
)

// quoteWith wraps name in open/close, doubling any embedded close rune.
func quoteWith(name, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

// DefaultNormalizeType is a default implementation for type normalization
// (lowercase, single spaces).
func DefaultNormalizeType(sqlType string) string {
	return strings.Join(strings.Fields(strings.ToLower(sqlType)), " ")
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}
