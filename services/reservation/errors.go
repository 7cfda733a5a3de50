package reservation

import (
	"errors"
	"fmt"
)

// Flow error codes. The first two are resolved locally and never reach the
// reservation store; the last two are terminal for the current attempt.
const (
	CodeInvalidWindow    = "invalidWindow"    // bad shape or out of operating range
	CodeConflict         = "conflict"         // local pre-flight found an occupied hour
	CodeServerConflict   = "serverConflict"   // authoritative store rejected the window
	CodeTransportFailure = "transportFailure" // store unreachable; fail closed
)

// FlowError is a booking-flow error with a stable code for callers to map to
// user-facing behavior ("pick another time" vs "request invalid" vs "retry
// later").
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewFlowError builds a FlowError with the given code.
func NewFlowError(code, message string) error {
	return &FlowError{Code: code, Message: message}
}

// HasCode reports whether err is a FlowError carrying the given code.
func HasCode(err error, code string) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Code == code
}
