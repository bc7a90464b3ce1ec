package domain

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsZero reports whether the value is absent. It lets encoding/json drop
// absent fields tagged with omitzero.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// OrZero returns the value, or the zero value of T when absent.
func (o Optional[T]) OrZero() T {
	return o.value
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats null as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
