// Package scalar implements TOON's scalar representation: the safe-unquoted
// predicate, the quoted-string escape/unescape rules, and number
// canonicalization (Section 4.1 of the format specification).
package scalar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ondatra-labs/toon/internal/value"
)

// ErrUnterminatedString and ErrInvalidEscape let callers classify a quoted-
// string parse failure by its kind (Section 7) without parsing message
// text; wrap them with fmt.Errorf("...: %w", ...) when adding detail.
var (
	ErrUnterminatedString = errors.New("toon: unterminated string")
	ErrInvalidEscape      = errors.New("toon: invalid escape sequence")
)

// reserved lists the tokens that must always be quoted when they occur as a
// string scalar, since unquoted they'd be read back as a different kind.
var reserved = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// Format renders v's text form for emission. delimiter is the encoder's
// active delimiter, used only to decide whether a string needs quoting.
func Format(v value.Value, delimiter byte) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "null", nil
	case value.KindBool:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case value.KindInt:
		return strconv.FormatInt(v.Int(), 10), nil
	case value.KindFloat:
		return formatFloat(v.Float()), nil
	case value.KindString:
		return formatString(v.Str(), delimiter), nil
	default:
		return "", fmt.Errorf("toon: %s is not a scalar", v.Kind())
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatString(s string, delimiter byte) string {
	if IsSafeUnquoted(s, delimiter) {
		return s
	}
	return Quote(s)
}

// IsSafeUnquoted implements the safe-unquoted predicate of Section 4.1 for a
// string scalar *value* (not a key; see the keypath package for key safety).
func IsSafeUnquoted(s string, delimiter byte) bool {
	if s == "" {
		return false
	}
	if reserved[s] {
		return false
	}
	if looksNumeric(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', ':', '[', ']', '{', '}', '#', '\n', '\t', '\r':
			return false
		default:
			if c == delimiter {
				return false
			}
		}
	}
	if s[0] == ' ' || s[0] == '\t' {
		return false
	}
	if s[0] == '-' && len(s) > 1 {
		switch s[1] {
		case '[', ']', '{', '}', ' ':
			return false
		}
	}
	return true
}

// Quote wraps s in double quotes, escaping characters per Section 4.1.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote reverses Quote. token must start and end with an unescaped double
// quote. It returns an error for an unterminated string or an unknown escape.
func Unquote(token string) (string, error) {
	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return "", fmt.Errorf("%w", ErrUnterminatedString)
	}
	inner := token[1 : len(token)-1]

	var b strings.Builder
	i := 0
	for i < len(inner) {
		c := inner[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(inner) {
			return "", fmt.Errorf("%w: unterminated escape sequence", ErrUnterminatedString)
		}
		switch inner[i+1] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+6 > len(inner) {
				return "", fmt.Errorf("%w: truncated \\u escape", ErrInvalidEscape)
			}
			code, err := strconv.ParseUint(inner[i+2:i+6], 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: invalid \\u escape: %v", ErrInvalidEscape, err)
			}
			b.WriteRune(rune(code))
			i += 4
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, inner[i+1])
		}
		i += 2
	}
	return b.String(), nil
}

// ScanQuotedSpan returns the index just past the closing quote of the quoted
// string starting at s[start] (which must be '"'). It honors backslash
// escapes but does not validate them. An unterminated string is an error.
func ScanQuotedSpan(s string, start int) (int, error) {
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1, nil
		}
		i++
	}
	return 0, fmt.Errorf("%w", ErrUnterminatedString)
}

// ParseToken converts a single already-trimmed token into its Value,
// following the scalar grammar of Section 4.1. An empty token decodes to an
// empty string, matching a bare trailing delimiter in a row.
func ParseToken(token string) (value.Value, error) {
	if token == "" {
		return value.String(""), nil
	}
	if token[0] == '"' {
		s, err := Unquote(token)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	}
	switch token {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if isInteger(token) {
		i, err := strconv.ParseInt(token, 10, 64)
		if err == nil {
			return value.Int(i), nil
		}
	}
	if isFloat(token) {
		f, err := strconv.ParseFloat(token, 64)
		if err == nil {
			return value.Float(f), nil
		}
	}
	return value.String(token), nil
}

// isInteger matches -?[0-9]+ while rejecting forbidden leading zeros (e.g.
// "007"), which are treated as opaque strings rather than numbers.
func isInteger(s string) bool {
	i := 0
	if s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	digits := s[i:]
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return false
		}
	}
	return !hasForbiddenLeadingZero(digits)
}

// isFloat matches -?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?, requiring a decimal
// point or exponent to be present (otherwise it's an integer) and rejecting
// a forbidden leading zero in the integer part (e.g. "01.5").
func isFloat(s string) bool {
	i := 0
	if s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	intDigits := s[start:i]
	hasFraction := false
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == fracStart {
			return false
		}
		hasFraction = true
	}
	hasExponent := false
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == expStart {
			return false
		}
		hasExponent = true
	}
	if i != len(s) {
		return false
	}
	if !hasFraction && !hasExponent {
		return false
	}
	return !hasForbiddenLeadingZero(intDigits)
}

func hasForbiddenLeadingZero(digits string) bool {
	return len(digits) > 1 && digits[0] == '0'
}

// looksNumeric reports whether s would parse as an integer or float under
// the scalar grammar, used by the safe-unquoted predicate so that
// numeric-looking strings are always quoted.
func looksNumeric(s string) bool {
	return isInteger(s) || isFloat(s)
}
