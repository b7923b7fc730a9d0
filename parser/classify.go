package parser

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
)

// Dialect identifies which OpenAPI family a document belongs to.
type Dialect int

const (
	// DialectUnrecognized is any document that is neither OAS2 nor OAS3.
	DialectUnrecognized Dialect = iota
	// DialectOAS2 is a Swagger 2.0 document.
	DialectOAS2
	// DialectOAS3 is an OpenAPI 3.x document other than 3.1.
	DialectOAS3
	// DialectOAS31 is an OpenAPI 3.1 document.
	DialectOAS31
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectOAS2:
		return "oas2"
	case DialectOAS3:
		return "oas3"
	case DialectOAS31:
		return "oas3_1"
	default:
		return "unrecognized"
	}
}

// IsOAS3 reports whether d is in the 3.x family.
func (d Dialect) IsOAS3() bool {
	return d == DialectOAS3 || d == DialectOAS31
}

// Classify decides the dialect of a decoded document root.
//
// The version fields are read with leading-number semantics, so "3.1.0"
// reads as 3.1 and "2.0" as 2. A 3.1 openapi field wins over every other
// check; any other openapi value of at least 3 is OAS3; a swagger field
// whose integer prefix is 2 is OAS2. Anything else, including non-mapping
// roots, is unrecognized.
func Classify(root *yaml.Node) Dialect {
	if !nodeutil.IsMap(root) {
		return DialectUnrecognized
	}

	if v, ok := nodeutil.Scalar(nodeutil.Lookup(root, "openapi")); ok {
		if f, ok := leadingFloat(v); ok {
			if f == 3.1 {
				return DialectOAS31
			}
			if f >= 3 {
				return DialectOAS3
			}
		}
	}

	if v, ok := nodeutil.Scalar(nodeutil.Lookup(root, "swagger")); ok {
		if i, ok := leadingInt(v); ok && i == 2 {
			return DialectOAS2
		}
	}

	return DialectUnrecognized
}

// leadingFloat parses the longest decimal prefix of s, ignoring leading
// whitespace. "3.1.0" yields 3.1; "abc" yields false.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		fracEnd := end + 1
		for fracEnd < len(s) && isDigit(s[fracEnd]) {
			fracEnd++
			digits++
		}
		if fracEnd > end+1 || digits > 0 {
			end = fracEnd
		}
	}
	if digits == 0 {
		return 0, false
	}
	// Optional exponent, only when followed by at least one digit.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		start := expEnd
		for expEnd < len(s) && isDigit(s[expEnd]) {
			expEnd++
		}
		if expEnd > start {
			end = expEnd
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// leadingInt parses the longest integer prefix of s, ignoring leading
// whitespace. "2.0" yields 2.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return 0, false
	}
	i, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
