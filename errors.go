package toon

import "github.com/ondatra-labs/toon/internal/errs"

// ErrorKind identifies which grammar or structural rule a decode error
// violates; see the Kind constants below for the closed set.
type ErrorKind = errs.Kind

// The ErrorKind constants, re-exported from internal/errs.
const (
	IndentError        = errs.IndentError
	HeaderError        = errs.HeaderError
	CountMismatch      = errs.CountMismatch
	FieldCountMismatch = errs.FieldCountMismatch
	UnterminatedString = errs.UnterminatedString
	InvalidEscape      = errs.InvalidEscape
	DuplicateKey       = errs.DuplicateKey
	PathConflict       = errs.PathConflict
	UnexpectedToken    = errs.UnexpectedToken
)

// DecodeError represents an error encountered while parsing a TOON
// document. It carries the violated rule's Kind, a human-readable Message,
// and the 1-based Line where the violation was detected. Use errors.As to
// recover one from an error returned by Decode.
type DecodeError = errs.DecodeError
