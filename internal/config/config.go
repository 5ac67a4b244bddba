// Package config holds the small, immutable configuration records shared by
// the encoder and decoder, plus the delimiter vocabulary used by both.
package config

import "fmt"

// Delimiter identifies the character that separates values inside an array
// scope: inline primitive rows, tabular rows, and array headers.
type Delimiter byte

const (
	// Comma is the default delimiter; it is never written into an array
	// header, since its presence there is implied.
	Comma Delimiter = ','
	// Tab uses the horizontal tab character.
	Tab Delimiter = '\t'
	// Pipe uses the '|' character.
	Pipe Delimiter = '|'
)

// Byte returns the delimiter's single-byte representation.
func (d Delimiter) Byte() byte { return byte(d) }

// String renders the delimiter for diagnostics.
func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	default:
		return fmt.Sprintf("delimiter(%q)", byte(d))
	}
}

// KeyFolding controls whether the encoder collapses chains of single-key
// objects into dotted paths.
type KeyFolding int

const (
	// KeyFoldingNone never folds nested single-key objects.
	KeyFoldingNone KeyFolding = iota
	// KeyFoldingSafe folds chains of single-key objects whose segments are
	// all key-safe.
	KeyFoldingSafe
)

// PathExpansion controls whether the decoder expands dotted keys back into
// nested objects.
type PathExpansion int

const (
	// PathExpansionNone keeps dotted keys as a single literal key.
	PathExpansionNone PathExpansion = iota
	// PathExpansionSafe splits unquoted dotted keys into nested objects.
	PathExpansionSafe
)

// Encoder holds the encoder's configuration. The zero value is invalid;
// use DefaultEncoder to obtain sensible defaults.
type Encoder struct {
	IndentSize int
	Delimiter  Delimiter
	KeyFolding KeyFolding
}

// DefaultEncoder returns the Core Profile defaults: two-space indentation,
// comma delimiter, no key folding.
func DefaultEncoder() Encoder {
	return Encoder{IndentSize: 2, Delimiter: Comma, KeyFolding: KeyFoldingNone}
}

// Decoder holds the decoder's configuration. Unlike Encoder, it carries no
// delimiter: each array header declares its own delimiter inline.
type Decoder struct {
	Strict      bool
	ExpandPaths PathExpansion
}

// DefaultDecoder returns the Core Profile defaults: strict mode on, no path
// expansion.
func DefaultDecoder() Decoder {
	return Decoder{Strict: true, ExpandPaths: PathExpansionNone}
}
