package multienc

import (
	"fmt"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
)

// Tagged is a payload prefixed with its codec.
//
// Its binary form is the varint codec followed by the payload's binary form.
// Decoding refuses any codec other than T's preferred codec, so payloads with the same byte shape cannot be confused.
type Tagged[T TypedPayload] struct {
	codec codec.Codec
	value T
}

// NewTagged tags v with its preferred codec.
func NewTagged[T TypedPayload](v T) Tagged[T] {
	return Tagged[T]{
		codec: v.PreferredCodec(),
		value: v,
	}
}

// NewTaggedWithCodec tags v with c, for values whose tag on the wire differs from their type's.
// Such values encode, but Tagged[T] will not decode them; decode them with DecodeTagged.
func NewTaggedWithCodec[T TypedPayload](c codec.Codec, v T) Tagged[T] {
	return Tagged[T]{
		codec: c,
		value: v,
	}
}

// Codec returns the codec t is tagged with.
func (t Tagged[T]) Codec() codec.Codec {
	return t.codec
}

// Value returns the tagged payload.
func (t Tagged[T]) Value() T {
	return t.value
}

// PreferredBase implements Payload, deferring to T.
func (t Tagged[T]) PreferredBase() base.Base {
	return preferredBase[T]()
}

// PreferredCodec implements TypedPayload, deferring to T.
func (t Tagged[T]) PreferredCodec() codec.Codec {
	return preferredCodec[T]()
}

// AppendBinary implements encoding.BinaryAppender.
func (t Tagged[T]) AppendBinary(b []byte) ([]byte, error) {
	return t.value.AppendBinary(encio.AppendUvarint(b, uint64(t.codec)))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Tagged[T]) MarshalBinary() ([]byte, error) {
	return t.AppendBinary(nil)
}

// DecodeBinary implements BinaryDecoder.
//
// It fails with ErrDecodeFailed if the codec cannot be read, an *IncorrectSigilError if it is not T's codec,
// and ErrValueFailed if T cannot be decoded from the bytes that follow.
func (t *Tagged[T]) DecodeBinary(b []byte) ([]byte, error) {
	return t.decode(b, preferredCodec[T]())
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are ignored.
func (t *Tagged[T]) UnmarshalBinary(b []byte) error {
	_, err := t.DecodeBinary(b)
	return err
}

// DecodeTagged decodes a Tagged[T] carrying the codec want instead of T's own.
func DecodeTagged[T TypedPayload](b []byte, want codec.Codec) (Tagged[T], []byte, error) {
	var t Tagged[T]
	rest, err := t.decode(b, want)
	return t, rest, err
}

func (t *Tagged[T]) decode(b []byte, want codec.Codec) ([]byte, error) {
	c, rest, err := codec.Decode(b)
	if err != nil {
		return b, encio.WrapError(encio.ErrDecodeFailed, err, "reading codec", 1)
	}
	if c != want {
		return b, &IncorrectSigilError{Expected: want, Received: c}
	}

	v, rest, err := DecodePayload[T](rest)
	if err != nil {
		return b, encio.WrapError(encio.ErrValueFailed, err, fmt.Sprintf("decoding %v", c), 1)
	}

	t.codec = c
	t.value = v
	return rest, nil
}

// String describes the codec and the payload.
func (t Tagged[T]) String() string {
	return fmt.Sprintf("%v (0x%x) - %v", t.codec, uint64(t.codec), t.value)
}

// IncorrectSigilError is returned when a Tagged value carries a codec other than the expected one.
// It matches encio.ErrIncorrectSigil with errors.Is.
type IncorrectSigilError struct {
	Expected codec.Codec
	Received codec.Codec
}

// Error implements error
func (e *IncorrectSigilError) Error() string {
	return fmt.Sprintf("%v: expected %v (0x%x), received %v (0x%x)",
		encio.ErrIncorrectSigil, e.Expected, uint64(e.Expected), e.Received, uint64(e.Received))
}

// Is allows errors.Is(err, encio.ErrIncorrectSigil).
func (e *IncorrectSigilError) Is(target error) bool {
	return target == encio.ErrIncorrectSigil
}
