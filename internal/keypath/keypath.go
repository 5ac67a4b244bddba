// Package keypath implements the key-safe predicate and the dotted-path
// split/join helpers used by the encoder's key folding and the decoder's
// path expansion.
//
// Folding (encoder) collapses a chain of single-key objects into a dotted
// key: {"a": {"b": {"c": 1}}} becomes "a.b.c: 1". Expansion (decoder) is the
// inverse. The encoder folds only when every segment passes SegmentSafe, so
// a folded key splits back into the same segments; the decoder splits every
// unquoted dotted key on '.' without applying SegmentSafe.
package keypath

import "strings"

// SegmentSafe reports whether s may appear unquoted as one dotted-path
// segment: it must itself be a valid bare key with no embedded dot, colon,
// bracket, brace or the active delimiter.
func SegmentSafe(s string, delimiter byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.', ':', '[', ']', '{', '}', '"', '#', '\n', '\t', '\r':
			return false
		default:
			if c == delimiter {
				return false
			}
		}
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return false
	}
	return true
}

// Split divides a dotted key into its segments, honoring no quoting: TOON
// keys that need quoting are never folded, so a plain split on '.' is
// sufficient once the caller has confirmed every segment is SegmentSafe.
func Split(key string) []string {
	return strings.Split(key, ".")
}

// Join reassembles path segments into a single dotted key.
func Join(segments []string) string {
	return strings.Join(segments, ".")
}
