package encio

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// Unsigned is the set of integer types a varint can be decoded into.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// MaxVarintLen64 is the longest varint encoding of a uint64.
const MaxVarintLen64 = 10

// AppendUvarint appends the varint encoding of n to b.
//
// n is split into 7-bit groups, least significant first. Every group but the last has its high bit set.
// Zero encodes as a single zero byte.
func AppendUvarint(b []byte, n uint64) []byte {
	for n >= 0x80 {
		b = append(b, byte(n)|0x80)
		n >>= 7
	}
	return append(b, byte(n))
}

// EncodeUvarint returns the varint encoding of n.
func EncodeUvarint[T Unsigned](n T) []byte {
	return AppendUvarint(make([]byte, 0, MaxVarintLen64), uint64(n))
}

// UvarintSize returns the number of bytes AppendUvarint writes for n.
func UvarintSize(n uint64) int {
	return (bits.Len64(n|1) + 6) / 7
}

// DecodeUvarint decodes a varint from the start of b into a T, returning the remaining bytes.
//
// It fails with ErrTruncated if b ends before a byte without the continuation bit,
// ErrIntegerOverflow if the value does not fit in T or the encoding is longer than T allows,
// and ErrNotMinimal if the encoding has redundant trailing zero groups.
func DecodeUvarint[T Unsigned](b []byte) (T, []byte, error) {
	width := uint(bits.Len64(uint64(^T(0))))
	limit := int(width+6) / 7

	var n uint64
	for i, c := range b {
		if i >= limit {
			return 0, b, NewError(ErrIntegerOverflow, fmt.Sprintf("varint longer than %v bytes for a %v-bit integer", limit, width), 0)
		}

		shift := uint(i) * 7
		group := uint64(c & 0x7f)
		if shift+7 > width && group>>(width-shift) != 0 {
			return 0, b, NewError(ErrIntegerOverflow, fmt.Sprintf("varint does not fit in %v bits", width), 0)
		}
		n |= group << shift

		if c&0x80 == 0 {
			if c == 0 && i > 0 {
				return 0, b, NewError(ErrNotMinimal, fmt.Sprintf("% x", b[:i+1]), 0)
			}
			return T(n), b[i+1:], nil
		}
	}

	return 0, b, NewError(ErrTruncated, fmt.Sprintf("varint ended after %v bytes without a terminating byte", len(b)), 0)
}

// AppendVarbytes appends data to b prefixed with its length as a varint.
func AppendVarbytes(b []byte, data []byte) []byte {
	b = AppendUvarint(b, uint64(len(data)))
	return append(b, data...)
}

// DecodeVarbytes decodes a length-prefixed byte buffer from the start of b, returning a copy of the buffer and the remaining bytes.
func DecodeVarbytes(b []byte) ([]byte, []byte, error) {
	l, rest, err := DecodeUvarint[uint64](b)
	if err != nil {
		return nil, b, err
	}
	if l > uint64(TooBig) {
		return nil, b, NewError(ErrIntegerOverflow, fmt.Sprintf("buffer with length %v is too big", l), 0)
	}
	if l > uint64(len(rest)) {
		return nil, b, NewError(ErrTruncated, fmt.Sprintf("want %v bytes but only %v remain", l, len(rest)), 0)
	}

	data := make([]byte, l)
	copy(data, rest)
	return data, rest[l:], nil
}

// Uvarint provides methods for reading and writing varints on streams.
type Uvarint [MaxVarintLen64]byte

// Encode writes n to w
func (buff *Uvarint) Encode(w io.Writer, n uint64) error {
	return Write(AppendUvarint(buff[:0], n), w)
}

// Decode reads a uint64 from r.
// It reads one byte at a time, so it never consumes more than the varint.
// It returns io.EOF if r is at its end before the first byte.
func (buff *Uvarint) Decode(r io.Reader) (uint64, error) {
	for i := range buff {
		if err := Read(buff[i:i+1], r); err != nil {
			if i == 0 {
				if errors.Is(err, io.ErrUnexpectedEOF) {
					return 0, io.EOF
				}
				return 0, err
			}
			return 0, NewIOError(ErrTruncated, fmt.Sprintf("varint ended after %v bytes", i), 0)
		}
		if buff[i]&0x80 == 0 {
			n, _, err := DecodeUvarint[uint64](buff[:i+1])
			return n, err
		}
	}
	return 0, NewError(ErrIntegerOverflow, fmt.Sprintf("varint longer than %v bytes", MaxVarintLen64), 0)
}
