package check

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation")

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

var ErrExpectedBodyWithHEAD = &ValidationError{Msg: "Expected body parameter is only allowed with GET requests."}

// Frequency is the minimum re-probe interval class of a check.
type Frequency string

const (
	Hourly Frequency = "Hourly"
	Daily  Frequency = "Daily"
	Weekly Frequency = "Weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Hourly, Daily, Weekly:
		return true
	}
	return false
}

func (f *Frequency) UnmarshalText(b []byte) error {
	v := Frequency(b)
	if !v.Valid() {
		return invalid("unknown frequency %q", string(b))
	}
	*f = v
	return nil
}

// Method is the closed set of HTTP methods a check may probe with.
type Method string

const (
	MethodGET  Method = "GET"
	MethodHEAD Method = "HEAD"
)

func (m Method) Valid() bool {
	switch m {
	case MethodGET, MethodHEAD:
		return true
	}
	return false
}

func (m *Method) UnmarshalText(b []byte) error {
	v := Method(b)
	if !v.Valid() {
		return invalid("unknown method %q", string(b))
	}
	*m = v
	return nil
}

type Check struct {
	ID           uuid.UUID       `json:"id"`
	Frequency    Frequency       `json:"frequency"`
	URL          string          `json:"url"`
	Method       Method          `json:"method"`
	ExpectedBody json.RawMessage `json:"expected_body"`
	Hook         *string         `json:"hook"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// HasExpectedBody treats an explicit JSON null the same as no body.
func (c *Check) HasExpectedBody() bool {
	b := bytes.TrimSpace(c.ExpectedBody)
	return len(b) > 0 && !bytes.Equal(b, []byte("null"))
}

func (c *Check) HasHook() bool {
	return c.Hook != nil && *c.Hook != ""
}

func (c *Check) Validate() error {
	if !c.Frequency.Valid() {
		return invalid("unknown frequency %q", c.Frequency)
	}
	if !c.Method.Valid() {
		return invalid("unknown method %q", c.Method)
	}
	if err := validateURL(c.URL); err != nil {
		return invalid("invalid url: %v", err)
	}
	if c.Hook != nil {
		if err := validateURL(*c.Hook); err != nil {
			return invalid("invalid hook: %v", err)
		}
	}
	if c.HasExpectedBody() {
		if c.Method != MethodGET {
			return ErrExpectedBodyWithHEAD
		}
		if !json.Valid(c.ExpectedBody) {
			return invalid("expected_body is not valid JSON")
		}
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("empty")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
