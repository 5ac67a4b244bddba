package toon

import "github.com/ondatra-labs/toon/internal/config"

// Delimiter identifies the character that separates values inside an array
// scope: inline primitive rows, tabular rows, and array headers.
type Delimiter = config.Delimiter

// The Delimiter constants, re-exported from internal/config.
const (
	Comma = config.Comma
	Tab   = config.Tab
	Pipe  = config.Pipe
)

// KeyFolding controls whether the encoder collapses chains of single-key
// objects into dotted paths.
type KeyFolding = config.KeyFolding

// The KeyFolding constants, re-exported from internal/config.
const (
	KeyFoldingNone = config.KeyFoldingNone
	KeyFoldingSafe = config.KeyFoldingSafe
)

// PathExpansion controls whether the decoder expands dotted keys back into
// nested objects.
type PathExpansion = config.PathExpansion

// The PathExpansion constants, re-exported from internal/config.
const (
	PathExpansionNone = config.PathExpansionNone
	PathExpansionSafe = config.PathExpansionSafe
)

// EncoderConfig holds the encoder's configuration. The zero value is
// invalid; use DefaultEncoderConfig to obtain sensible defaults.
type EncoderConfig = config.Encoder

// DefaultEncoderConfig returns the Core Profile defaults: two-space
// indentation, comma delimiter, no key folding.
func DefaultEncoderConfig() EncoderConfig { return config.DefaultEncoder() }

// DecoderConfig holds the decoder's configuration.
type DecoderConfig = config.Decoder

// DefaultDecoderConfig returns the Core Profile defaults: strict mode on,
// no path expansion.
func DefaultDecoderConfig() DecoderConfig { return config.DefaultDecoder() }
