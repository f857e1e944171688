// Package errors provides structured, code-carrying errors for the dialogue runtime.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dispatch errors
	CodeInvalidParticipant Code = "INVALID_PARTICIPANT"
	CodeEmptyCustomEvent   Code = "EMPTY_CUSTOM_EVENT"
	CodeCustomEventFailed  Code = "CUSTOM_EVENT_FAILED"

	// Reflection accessor errors
	CodeFieldNotFound     Code = "FIELD_NOT_FOUND"
	CodeFieldTypeMismatch Code = "FIELD_TYPE_MISMATCH"
	CodeFieldNotSettable  Code = "FIELD_NOT_SETTABLE"
	CodeValueOutOfRange   Code = "VALUE_OUT_OF_RANGE"

	// Record decoding errors
	CodeUnknownEventType       Code = "UNKNOWN_EVENT_TYPE"
	CodeUnknownCustomEventType Code = "UNKNOWN_CUSTOM_EVENT_TYPE"
	CodeMalformedRecord        Code = "MALFORMED_RECORD"
	CodeUnsupportedFormat      Code = "UNSUPPORTED_FORMAT_VERSION"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Corruption reports whether the code signals persisted data that cannot be
// trusted, as opposed to a runtime condition of the caller.
func (c Code) Corruption() bool {
	switch c {
	case CodeUnknownEventType,
		CodeUnknownCustomEventType,
		CodeMalformedRecord,
		CodeUnsupportedFormat:
		return true
	default:
		return false
	}
}

// CodeOf extracts the code carried by err, or CodeUnknown when err is not a
// domain error.
func CodeOf(err error) Code {
	var domainErr *Error
	if As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}
