// Package option provides Option, the single-value wrapper generated builders
// use for their storage slots and that records use to declare optional
// fields.
//
// The zero Option is empty, so a zero-valued builder starts with every slot
// unset.
package option

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Option holds either a value of type T or nothing.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Set stores v, replacing any previous value.
func (o *Option[T]) Set(v T) {
	o.value = v
	o.ok = true
}

// Take returns the current contents and leaves o empty.
func (o *Option[T]) Take() Option[T] {
	out := *o
	*o = Option[T]{}
	return out
}

// Get returns the value and whether one is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// IsZero lets yaml.v3 omit empty options under omitempty.
func (o Option[T]) IsZero() bool {
	return !o.ok
}

// OrElse returns the value or def when empty.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Expect returns the value or panics with msg when empty.
func (o Option[T]) Expect(msg string) T {
	if !o.ok {
		panic(msg)
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

var jsonNull = []byte("null")

// MarshalJSON encodes an empty Option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as empty and anything else as a present value.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// MarshalYAML encodes an empty Option as null.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.ok {
		return nil, nil
	}
	return o.value, nil
}

// UnmarshalYAML decodes a null node as empty and anything else as a present
// value.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}
