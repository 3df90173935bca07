// Package opt provides an explicit present/absent value.
//
// Normalized profile attributes use it so that "unknown" never collapses into a zero value:
// an absent age is not age 0 and an absent height is not 0 cm.
package opt

import (
	"encoding/json"
	"fmt"
)

// Value holds either a present value of type T or nothing. The zero Value is absent.
type Value[T any] struct {
	v  T
	ok bool
}

// Some returns a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

func (o Value[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the value when present and d otherwise.
func (o Value[T]) OrElse(d T) T {
	if o.ok {
		return o.v
	}
	return d
}

func (o Value[T]) String() string {
	if !o.ok {
		return ""
	}
	return fmt.Sprintf("%v", o.v)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
