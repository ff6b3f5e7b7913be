package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so HTTP handlers can map it to a status code
// and decide whether the message is safe to show to the user.
type Kind int

const (
	// KindInfrastructure is the zero value: anything we did not classify
	// is treated as an internal failure and never shown verbatim.
	KindInfrastructure Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientStock
	KindInvalidState
)

// Error carries a user-facing message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports invalid input (empty cart, bad price, missing fields).
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing order, product, customer or user.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStock reports that the requested quantity exceeds what is on
// hand. The message always names the product and both quantities.
func InsufficientStock(productName string, available, requested int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d", productName, available, requested),
	}
}

// InvalidState reports an operation not permitted in the entity's current status.
func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Infrastructure wraps a storage or system failure. The message shown to the
// caller stays generic; the cause is kept for logging.
func Infrastructure(msg string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msg, Err: cause}
}

// KindOf extracts the classification from err, defaulting to infrastructure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

// UserMessage returns the message that is safe to surface. Infrastructure
// failures collapse to a generic message so internals never leak.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInfrastructure {
		return e.Message
	}
	return "operation failed"
}
