// Package toon implements a bidirectional codec between an in-memory Value
// tree and TOON (Token-Oriented Object Notation), a compact,
// indentation-structured text format designed to reduce token counts when
// passing structured data to language models while remaining a strict,
// losslessly round-trippable encoding of JSON-shaped data.
//
// Encode renders a Value as TOON text; Decode parses TOON text back into a
// Value. Both operations are pure: neither touches a filesystem, a network,
// or process state. The internal/value, internal/config, internal/encode,
// internal/decode, internal/scalar, internal/keypath and internal/errs
// packages hold the implementation; this package re-exports the types and
// functions an external caller needs under one import path, following the
// same flat-root-plus-internal-subpackages layout as the teacher this
// module started from.
package toon
