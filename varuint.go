package multienc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

// Varuint is an unsigned integer whose binary form is its varint.
type Varuint[T encio.Unsigned] struct {
	N T
}

// NewEncodedVaruint wraps n in base b.
func NewEncodedVaruint[T encio.Unsigned](b base.Base, n T) Encoded[Varuint[T], Multibase] {
	return NewEncodedWithBase[Multibase](b, Varuint[T]{N: n})
}

// PreferredBase implements Payload.
func (Varuint[T]) PreferredBase() base.Base {
	return base.Base16Lower
}

// AppendBinary implements encoding.BinaryAppender.
func (v Varuint[T]) AppendBinary(b []byte) ([]byte, error) {
	return encio.AppendUvarint(b, uint64(v.N)), nil
}

// DecodeBinary implements BinaryDecoder.
func (v *Varuint[T]) DecodeBinary(b []byte) ([]byte, error) {
	n, rest, err := encio.DecodeUvarint[T](b)
	if err != nil {
		return b, err
	}
	v.N = n
	return rest, nil
}

// MarshalCBOR implements cbor.Marshaler, writing the varint as a byte string.
func (v Varuint[T]) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(encio.EncodeUvarint(v.N))
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Varuint[T]) UnmarshalCBOR(b []byte) error {
	var raw []byte
	if err := cborDecMode.Unmarshal(b, &raw); err != nil {
		return err
	}
	_, err := v.DecodeBinary(raw)
	return err
}

// String formats the binary form, e.g. "[237 1]" for 0xed.
func (v Varuint[T]) String() string {
	return fmt.Sprint(encio.EncodeUvarint(v.N))
}

var (
	_ cbor.Marshaler   = Varuint[uint64]{}
	_ cbor.Unmarshaler = (*Varuint[uint64])(nil)
)
