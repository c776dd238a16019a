package multienc

import (
	"bytes"
	"fmt"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

// Encoded is a payload together with the base its text form is written in.
//
// The zero value holds the zero T in the Identity base; use NewEncoded to get the preferred base.
// Encoded values are comparable with Equal and usable as map keys through Key.
type Encoded[T Payload, S Strategy] struct {
	base  base.Base
	value T
}

// NewEncoded wraps v in the strategy's choice for v's preferred base.
func NewEncoded[S Strategy, T Payload](v T) Encoded[T, S] {
	var s S
	return Encoded[T, S]{
		base:  s.Preferred(v.PreferredBase()),
		value: v,
	}
}

// NewEncodedWithBase wraps v in base b.
func NewEncodedWithBase[S Strategy, T Payload](b base.Base, v T) Encoded[T, S] {
	return Encoded[T, S]{
		base:  b,
		value: v,
	}
}

// ParseEncoded parses text written by the strategy S into a T.
//
// Each candidate reading of s is offered to T's decoder in order, and the first that T accepts is returned.
// If T accepts none, the error is ErrValueFailed wrapping the last rejection.
// Bytes left over after T is decoded are ignored.
func ParseEncoded[T Payload, S Strategy](s string) (Encoded[T, S], error) {
	var strategy S
	candidates, err := strategy.Parse(s)
	if err != nil {
		return Encoded[T, S]{}, err
	}

	var lastErr error
	for _, c := range candidates {
		v, _, err := DecodePayload[T](c.Data)
		if err != nil {
			lastErr = err
			continue
		}
		return Encoded[T, S]{base: c.Base, value: v}, nil
	}

	return Encoded[T, S]{}, encio.WrapError(
		encio.ErrValueFailed,
		lastErr,
		fmt.Sprintf("%v candidates rejected by %T", len(candidates), *new(T)),
		0,
	)
}

// Base returns the base e renders in.
func (e Encoded[T, S]) Base() base.Base {
	return e.base
}

// Value returns the wrapped payload.
func (e Encoded[T, S]) Value() T {
	return e.value
}

// PreferredBase implements Payload, giving the strategy a chance to overrule T's preference.
func (e Encoded[T, S]) PreferredBase() base.Base {
	var s S
	return s.Preferred(preferredBase[T]())
}

// Render returns the text form of e, or an error if the payload cannot produce its binary form.
func (e Encoded[T, S]) Render() (string, error) {
	data, err := marshalPayload(e.value)
	if err != nil {
		return "", err
	}
	var s S
	return s.Render(e.base, data), nil
}

// String implements fmt.Stringer.
// A payload that fails to marshal renders as the error text; use Render to see the error.
func (e Encoded[T, S]) String() string {
	str, err := e.Render()
	if err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}
	return str
}

// GoString implements fmt.GoStringer, describing the base and the payload.
func (e Encoded[T, S]) GoString() string {
	var s S
	return fmt.Sprintf("%v - %#v", s.DebugString(e.base), e.value)
}

// Key returns the text form of e, for use as a map key.
// Values that are Equal have the same key.
// Keys are only meaningful for payloads that marshal: every payload failing with the same error gets the same key.
// Use Render to check first when the payload can fail.
func (e Encoded[T, S]) Key() string {
	return e.String()
}

// Equal reports whether e and o have the same base and the same payload binary form.
func (e Encoded[T, S]) Equal(o Encoded[T, S]) bool {
	if e.base != o.base {
		return false
	}
	a, errA := marshalPayload(e.value)
	b, errB := marshalPayload(o.value)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// Compare orders e and o by payload only; the base does not take part.
// Payloads implementing Compare(T) int are compared with it, others by binary form.
func (e Encoded[T, S]) Compare(o Encoded[T, S]) int {
	if c, ok := any(e.value).(interface{ Compare(T) int }); ok {
		return c.Compare(o.value)
	}

	a, _ := marshalPayload(e.value)
	b, _ := marshalPayload(o.value)
	return bytes.Compare(a, b)
}

// MarshalText implements encoding.TextMarshaler, so JSON and other text formats carry the strategy's text form.
func (e Encoded[T, S]) MarshalText() ([]byte, error) {
	str, err := e.Render()
	if err != nil {
		return nil, err
	}
	return []byte(str), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoded[T, S]) UnmarshalText(text []byte) error {
	v, err := ParseEncoded[T, S](string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// AppendBinary implements encoding.BinaryAppender.
// The binary form is the payload's own; the base is not recorded.
func (e Encoded[T, S]) AppendBinary(b []byte) ([]byte, error) {
	return e.value.AppendBinary(b)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e Encoded[T, S]) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(nil)
}

// DecodeBinary implements BinaryDecoder.
// The base is set to the strategy's choice for T's preferred base.
func (e *Encoded[T, S]) DecodeBinary(b []byte) ([]byte, error) {
	v, rest, err := DecodePayload[T](b)
	if err != nil {
		return b, err
	}
	e.base = e.PreferredBase()
	e.value = v
	return rest, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are ignored.
func (e *Encoded[T, S]) UnmarshalBinary(b []byte) error {
	_, err := e.DecodeBinary(b)
	return err
}
