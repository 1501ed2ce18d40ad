// Package outcome holds computed numbers that may have no defined value,
// such as a load percentage over a belt whose design capacity is zero.
package outcome

import (
	"encoding/json"
	"fmt"
)

// Value is either Valid(v) or Undefined. The zero Value is Undefined.
type Value struct {
	v  float64
	ok bool
}

func Valid(v float64) Value { return Value{v: v, ok: true} }

func Undefined() Value { return Value{} }

// Get returns the value and whether it is defined.
func (o Value) Get() (float64, bool) { return o.v, o.ok }

func (o Value) Defined() bool { return o.ok }

// Or returns the value, or fallback when undefined.
func (o Value) Or(fallback float64) float64 {
	if !o.ok {
		return fallback
	}
	return o.v
}

func (o Value) String() string {
	if !o.ok {
		return "undefined"
	}
	return fmt.Sprintf("%g", o.v)
}

// MarshalJSON encodes Undefined as null.
func (o Value) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

func (o *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Valid(v)
	return nil
}
