package check

import (
	"encoding/json"
	"time"
)

// Field is a tri-state update value. A key missing from the JSON document leaves
// Set false; an explicit null sets both Set and Null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		var zero T
		f.Null, f.Value = true, zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

// Patch is a partial update of a check. Plain pointers cannot be cleared, so a
// null frequency, url or method means "keep".
type Patch struct {
	Frequency    *Frequency             `json:"frequency"`
	URL          *string                `json:"url"`
	Method       *Method                `json:"method"`
	ExpectedBody Field[json.RawMessage] `json:"expected_body"`
	Hook         Field[string]          `json:"hook"`
}

func (p Patch) Empty() bool {
	return p.Frequency == nil && p.URL == nil && p.Method == nil && !p.ExpectedBody.Set && !p.Hook.Set
}

// Apply mutates c in place and stamps UpdatedAt. The caller validates the result.
func (p Patch) Apply(c *Check, now time.Time) {
	if p.Frequency != nil {
		c.Frequency = *p.Frequency
	}
	if p.URL != nil {
		c.URL = *p.URL
	}
	if p.Method != nil {
		c.Method = *p.Method
	}
	if p.ExpectedBody.Set {
		if p.ExpectedBody.Null {
			c.ExpectedBody = nil
		} else {
			c.ExpectedBody = p.ExpectedBody.Value
		}
	}
	if p.Hook.Set {
		if p.Hook.Null {
			c.Hook = nil
		} else {
			h := p.Hook.Value
			c.Hook = &h
		}
	}
	c.UpdatedAt = now
}
