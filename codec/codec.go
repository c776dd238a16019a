// Package codec names the logical type of a tagged payload.
//
// A Codec is an opaque unsigned integer; the name table exists for display only.
// Well-known multicodec entries are registered on init, and applications may Register their own.
package codec

import (
	"fmt"

	"github.com/stewi1014/multienc/encio"
)

// Codec identifies the logical type of a payload.
type Codec uint64

// AppendBinary appends the varint form of c to b.
func (c Codec) AppendBinary(b []byte) ([]byte, error) {
	return encio.AppendUvarint(b, uint64(c)), nil
}

// MarshalBinary returns the varint form of c.
func (c Codec) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(nil)
}

// Decode reads a varint codec from the start of b, returning the remaining bytes.
func Decode(b []byte) (Codec, []byte, error) {
	n, rest, err := encio.DecodeUvarint[uint64](b)
	return Codec(n), rest, err
}

// Name returns the registered name of c, or the empty string if it has none.
func (c Codec) Name() string {
	name, _ := nameOf(c)
	return name
}

// String returns the registered name of c, or its code in hex.
func (c Codec) String() string {
	if name, ok := nameOf(c); ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint64(c))
}
