package mail

import (
	"errors"
	"fmt"
)

// Kind classifies a failure in the send pipeline. The kind doubles as a
// low-cardinality label value for metrics.
type Kind string

// Failure kinds, in pipeline order.
const (
	KindValidation         Kind = "validation"
	KindMissingSender      Kind = "missing_sender"
	KindAttachmentNotFound Kind = "attachment_not_found"
	KindAttachmentRead     Kind = "attachment_read"
	KindProvider           Kind = "provider"
	KindUnknownTool        Kind = "unknown_tool"
)

var errInvalidArguments = errors.New("Invalid arguments for send_email tool.")

// Error is a classified pipeline failure. All tool-call failures funnel
// through this type so the single result-mapping boundary can convert them
// uniformly into in-band error results.
type Error struct {
	// Kind is the failure classification.
	Kind Kind

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified pipeline error.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the failure kind of err, or KindProvider when err carries no
// classification. Provider is the fallback because unclassified errors only
// arise past the local pipeline stages.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindProvider
}
