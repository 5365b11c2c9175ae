// pkg/pumpportal/errors.go
package pumpportal

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("empty response body")
	ErrKeyMismatch   = errors.New("private key does not match wallet public key")
)

// StatusError is returned when PumpPortal answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Status)
}
