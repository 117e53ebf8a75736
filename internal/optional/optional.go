package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds a T that may or may not have been provided.
// The zero Value is absent.
type Value[T any] struct {
	val T
	set bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{val: v, set: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

func (v Value[T]) IsSet() bool {
	return v.set
}

func (v Value[T]) Get() (T, bool) {
	return v.val, v.set
}

// OrElse returns the held value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.set {
		return fallback
	}

	return v.val
}

// a JSON null decodes as absent, same as a missing key
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value[T]{}
		return nil
	}

	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	*v = Some(val)
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}

	return json.Marshal(v.val)
}
