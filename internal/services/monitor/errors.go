package monitor

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
)

// The probe errors below are outcomes, not failures of the monitor: their
// Error() text is stored verbatim as the history details.

type TransportError struct {
	Method check.Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Method == check.MethodHEAD {
		return fmt.Sprintf("Malformed request: HEAD '%s', error '%v'", e.URL, e.Err)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

type StatusCodeError struct {
	Code   int
	Status string
}

func (e *StatusCodeError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("Endpoint returned error status code: '%s'", status)
}

type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Malformed request: GET '%s', error '%v'", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MismatchError holds compact JSON of both sides.
type MismatchError struct {
	Got      string
	Expected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("Endpoint returned unexpected body: %s != %s", e.Got, e.Expected)
}

// StoreError aborts processing of one check (or the whole cycle for Op "list").
type StoreError struct {
	Op      string
	CheckID uuid.UUID
	Err     error
}

func (e *StoreError) Error() string {
	if e.CheckID == uuid.Nil {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s check %s: %v", e.Op, e.CheckID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
