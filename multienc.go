// Package multienc provides self-describing text and binary encodings for byte-serializable values.
//
// A value that knows its own binary form (a Payload) can be wrapped in an Encoded, which renders it as text
// using a base from the base package and a Strategy deciding how the base is recorded:
// Multibase prefixes a sigil, BareBase58 always uses unprefixed base58, and Detected renders like Multibase
// but also recovers text that was written without a sigil.
//
// Values sharing a binary shape can be told apart by wrapping them in a Tagged, which prefixes the binary form
// with the value's codec and refuses to decode any other.
//
// Goals include:
// Type-safe: a Tagged payload decodes only into the type that wrote it.
//
// Unambiguous output: text rendered by this package always carries enough information to be decoded without guessing.
// Guessing is confined to the Detected strategy, which reports every reading of its input and leaves the choice to the payload type.
//
// multienc/encio provides the varint codec and the error kinds shared by every package.
//
// multienc/base is the registry of text encodings, and multienc/codec the registry of codec names.
package multienc

import (
	"encoding"
	"fmt"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
)

// Payload is a value with a binary form and a preferred text base.
//
// To be decoded, a pointer to the payload type must also implement BinaryDecoder.
type Payload interface {
	encoding.BinaryAppender

	// PreferredBase is the base used when the payload is wrapped without naming one.
	// It must not depend on the value.
	PreferredBase() base.Base
}

// TypedPayload is a Payload that names its logical type, so it can be wrapped in a Tagged.
type TypedPayload interface {
	Payload

	// PreferredCodec is the codec written before the payload's binary form.
	// It must not depend on the value.
	PreferredCodec() codec.Codec
}

// BinaryDecoder is implemented by pointers to payload types.
// DecodeBinary sets the value from the start of b and returns the bytes it did not use.
// It must not retain b.
type BinaryDecoder interface {
	DecodeBinary(b []byte) (rest []byte, err error)
}

// DecodePayload decodes a T from the start of b using *T's DecodeBinary method, returning the remaining bytes.
func DecodePayload[T any](b []byte) (T, []byte, error) {
	var v T
	dec, ok := any(&v).(BinaryDecoder)
	if !ok {
		return v, b, encio.NewError(encio.ErrValueFailed, fmt.Sprintf("%T does not implement BinaryDecoder", &v), 0)
	}

	rest, err := dec.DecodeBinary(b)
	if err != nil {
		var zero T
		return zero, b, err
	}
	return v, rest, nil
}

func marshalPayload(v encoding.BinaryAppender) ([]byte, error) {
	return v.AppendBinary(nil)
}

func preferredBase[T Payload]() base.Base {
	var zero T
	return zero.PreferredBase()
}

func preferredCodec[T TypedPayload]() codec.Codec {
	var zero T
	return zero.PreferredCodec()
}
