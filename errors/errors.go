package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrEmptyWords     = fmt.Errorf("no words have been found")
	ErrInvalidPayload = fmt.Errorf("invalid event payload")

	ErrUnknownColor   = fmt.Errorf("unknown signal color")
	ErrNotController  = fmt.Errorf("session is not the controller")
	ErrUnknownSession = fmt.Errorf("unknown session")
)
