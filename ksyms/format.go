package ksyms

import (
	"fmt"
	"strings"
)

// formatHexList renders an array Value's elements as "0x.., 0x.." with a
// hex width appropriate to the array's element type (2 hex digits for
// U8Array, 4 for U16Array), shared by both backends.
func formatHexList(v Value) (string, error) {
	var hexWidth int
	switch v.Type {
	case U8Array:
		hexWidth = 2
	case U16Array:
		hexWidth = 4
	default:
		return "", errWrongShape("formatHexList", v.Type)
	}
	parts := make([]string, len(v.Arr))
	for i, e := range v.Arr {
		parts[i] = fmt.Sprintf("0x%0*x", hexWidth, e)
	}
	return strings.Join(parts, ", "), nil
}

// formatHexScalar renders a scalar Value as a "0x.." literal, with a
// zero-value special case ("0", not "0x0") preserved for parity with the
// assembler backend's base-address expression.
func formatHexScalar(v Value) string {
	if v.U == 0 {
		return "0"
	}
	return fmt.Sprintf("0x%x", v.U)
}

// formatASCIIStringChars renders an ASCIIString value as a comma-separated
// list of single-quoted chars plus a trailing '\0' (the structured-data
// backend's TOKEN_TABLE element representation).
func formatASCIIStringChars(s string) string {
	parts := make([]string, 0, len(s)+1)
	for _, c := range s {
		parts = append(parts, fmt.Sprintf("'%c'", c))
	}
	parts = append(parts, `'\0'`)
	return strings.Join(parts, ", ")
}
