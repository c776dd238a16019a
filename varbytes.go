package multienc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

// Varbytes is a byte slice whose binary form is its varint length followed by the bytes.
type Varbytes []byte

// NewEncodedVarbytes wraps data in base b.
func NewEncodedVarbytes(b base.Base, data []byte) Encoded[Varbytes, Multibase] {
	return NewEncodedWithBase[Multibase](b, Varbytes(data))
}

// PreferredBase implements Payload.
func (Varbytes) PreferredBase() base.Base {
	return base.Base16Lower
}

// AppendBinary implements encoding.BinaryAppender.
func (v Varbytes) AppendBinary(b []byte) ([]byte, error) {
	return encio.AppendVarbytes(b, v), nil
}

// DecodeBinary implements BinaryDecoder.
// It fails with ErrTruncated if fewer bytes follow the length than it names.
func (v *Varbytes) DecodeBinary(b []byte) ([]byte, error) {
	data, rest, err := encio.DecodeVarbytes(b)
	if err != nil {
		return b, err
	}
	*v = data
	return rest, nil
}

// MarshalCBOR implements cbor.Marshaler, writing the binary form as a byte string.
func (v Varbytes) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(encio.AppendVarbytes(nil, v))
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Varbytes) UnmarshalCBOR(b []byte) error {
	var raw []byte
	if err := cborDecMode.Unmarshal(b, &raw); err != nil {
		return err
	}
	_, err := v.DecodeBinary(raw)
	return err
}

// String formats the binary form, e.g. "[3 1 2 3]".
func (v Varbytes) String() string {
	return fmt.Sprint(encio.AppendVarbytes(nil, v))
}

var (
	_ cbor.Marshaler   = Varbytes{}
	_ cbor.Unmarshaler = (*Varbytes)(nil)
)
