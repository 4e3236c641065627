package media

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the pipeline can produce. The set is closed;
// the service boundary switches over it exhaustively.
type Kind int

const (
	// KindValidation covers malformed input: bad secret, unknown category,
	// non-https URL. Raised before any network call, never retried.
	KindValidation Kind = iota

	// KindNetwork covers a fetch that did not succeed within the attempt
	// budget, or a response exceeding the size cap.
	KindNetwork

	// KindDecryption covers an undersized payload, a MAC mismatch, and
	// padding or block-alignment failures. Deterministic, never retried.
	KindDecryption

	// KindInternal covers everything else. The cause stays available via
	// Unwrap; the caller-facing message is generic.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindDecryption:
		return "decryption"
	default:
		return "internal"
	}
}

// Error is the failure type returned by the pipeline. The message is safe to
// show to callers; the wrapped cause is not and is only for logs.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Message returns the caller-safe part of the error, without the cause.
func (e *Error) Message() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Unwrap() error { return e.cause }

// KindOf classifies an arbitrary error. Anything that is not a pipeline
// Error counts as internal.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for any error produced by the
// pipeline. Non-pipeline errors collapse to a generic message so internal
// details never leak outward.
func MessageOf(err error) string {
	var me *Error
	if errors.As(err, &me) && me.kind != KindInternal {
		return me.msg
	}
	return "internal error"
}

func validationErrorf(format string, args ...any) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

func networkError(msg string, cause error) *Error {
	return &Error{kind: KindNetwork, msg: msg, cause: cause}
}

func decryptionError(msg string) *Error {
	return &Error{kind: KindDecryption, msg: msg}
}

func internalError(cause error) *Error {
	return &Error{kind: KindInternal, msg: "internal error", cause: cause}
}
