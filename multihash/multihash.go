// Package multihash provides self-describing hash digests.
//
// A Digest's binary form is the varint hash function code, the varint digest length, then the digest.
// Digest is a multienc.TypedPayload, so it renders as base58btc text and can be carried in a multienc.Tagged.
package multihash

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
)

var (
	// ErrUnsupported is returned when a digest is requested for a hash function this package cannot compute.
	ErrUnsupported = errors.New("unsupported hash function")

	// ErrMismatch is returned by Verify when the data does not hash to the digest.
	ErrMismatch = errors.New("digest mismatch")
)

// sizes holds the digest length of the fixed-length hash functions.
var sizes = map[codec.Codec]int{
	codec.Sha2_256: sha256.Size,
	codec.Sha2_512: sha512.Size,
	codec.Blake3:   32,
}

func newHash(code codec.Codec) (hash.Hash, error) {
	switch code {
	case codec.Sha2_256:
		return sha256.New(), nil
	case codec.Sha2_512:
		return sha512.New(), nil
	case codec.Blake3:
		return blake3.New(), nil
	}
	return nil, encio.NewError(ErrUnsupported, code.String(), 1)
}

// Digest is a hash digest tagged with the hash function that produced it.
type Digest struct {
	code codec.Codec
	sum  []byte
}

// New returns a digest of an existing hash sum.
// The length of sum is checked for the hash functions with a fixed digest length.
func New(code codec.Codec, sum []byte) (Digest, error) {
	if err := checkSize(code, len(sum)); err != nil {
		return Digest{}, err
	}
	return Digest{
		code: code,
		sum:  bytes.Clone(sum),
	}, nil
}

// Sum hashes data with the hash function code.
// Identity digests hold data itself.
func Sum(code codec.Codec, data []byte) (Digest, error) {
	switch code {
	case codec.Identity:
		return Digest{code: code, sum: bytes.Clone(data)}, nil
	case codec.Sha2_256:
		s := sha256.Sum256(data)
		return Digest{code: code, sum: s[:]}, nil
	case codec.Sha2_512:
		s := sha512.Sum512(data)
		return Digest{code: code, sum: s[:]}, nil
	case codec.Blake3:
		s := blake3.Sum256(data)
		return Digest{code: code, sum: s[:]}, nil
	}
	return Digest{}, encio.NewError(ErrUnsupported, code.String(), 0)
}

// SumReader hashes everything read from r with the hash function code.
func SumReader(code codec.Codec, r io.Reader) (Digest, error) {
	if code == codec.Identity {
		data, err := io.ReadAll(r)
		if err != nil {
			return Digest{}, encio.NewIOError(err, "", 0)
		}
		return Digest{code: code, sum: data}, nil
	}

	h, err := newHash(code)
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, encio.NewIOError(err, "", 0)
	}
	return Digest{code: code, sum: h.Sum(nil)}, nil
}

// Code returns the hash function of d.
func (d Digest) Code() codec.Codec {
	return d.code
}

// Sum returns a copy of the digest bytes.
func (d Digest) Sum() []byte {
	return bytes.Clone(d.sum)
}

// Verify hashes data with d's hash function and compares the result with d.
func (d Digest) Verify(data []byte) error {
	got, err := Sum(d.code, data)
	if err != nil {
		return err
	}
	if !bytes.Equal(got.sum, d.sum) {
		return encio.NewError(ErrMismatch, fmt.Sprintf("%v: want %x, got %x", d.code, d.sum, got.sum), 0)
	}
	return nil
}

// Equal reports whether d and o have the same hash function and digest.
func (d Digest) Equal(o Digest) bool {
	return d.code == o.code && bytes.Equal(d.sum, o.sum)
}

// Compare orders digests by hash function code, then digest bytes.
func (d Digest) Compare(o Digest) int {
	switch {
	case d.code < o.code:
		return -1
	case d.code > o.code:
		return 1
	}
	return bytes.Compare(d.sum, o.sum)
}

// PreferredBase implements multienc.Payload.
func (Digest) PreferredBase() base.Base {
	return base.Base58Btc
}

// PreferredCodec implements multienc.TypedPayload.
func (Digest) PreferredCodec() codec.Codec {
	return codec.Multihash
}

// AppendBinary implements encoding.BinaryAppender.
func (d Digest) AppendBinary(b []byte) ([]byte, error) {
	b = encio.AppendUvarint(b, uint64(d.code))
	return encio.AppendVarbytes(b, d.sum), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d Digest) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(nil)
}

// DecodeBinary implements multienc.BinaryDecoder.
func (d *Digest) DecodeBinary(b []byte) ([]byte, error) {
	code, rest, err := codec.Decode(b)
	if err != nil {
		return b, err
	}

	sum, rest, err := encio.DecodeVarbytes(rest)
	if err != nil {
		return b, err
	}
	if err := checkSize(code, len(sum)); err != nil {
		return b, err
	}

	d.code = code
	d.sum = sum
	return rest, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Digest) UnmarshalBinary(b []byte) error {
	_, err := d.DecodeBinary(b)
	return err
}

// String returns the hash function name and the digest in hex.
func (d Digest) String() string {
	return fmt.Sprintf("%v:%x", d.code, d.sum)
}

func checkSize(code codec.Codec, n int) error {
	if size, ok := sizes[code]; ok && size != n {
		return encio.Custom(fmt.Sprintf("%v digest must be %v bytes, got %v", code, size, n))
	}
	return nil
}
