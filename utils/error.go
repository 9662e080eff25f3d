package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// RequestError is a failure caused by the request itself: bad input or a
// business-rule violation. The transport layer surfaces its message with a
// 400; any other error is treated as an infrastructure fault and stays
// behind a generic 500.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func BadRequest(message string) error {
	return &RequestError{Message: message}
}
