package multienc_test

import (
	"fmt"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
)

// unit is a three byte payload preferring hex.
type unit struct {
	A byte
	B [2]byte
}

func (unit) PreferredBase() base.Base { return base.Base16Lower }

func (u unit) AppendBinary(b []byte) ([]byte, error) {
	return append(b, u.A, u.B[0], u.B[1]), nil
}

func (u *unit) DecodeBinary(b []byte) ([]byte, error) {
	if len(b) < 3 {
		return b, encio.Custom("too few bytes for a unit")
	}
	u.A, u.B = b[0], [2]byte{b[1], b[2]}
	return b[3:], nil
}

var defaultUnit = unit{A: 0x59, B: [2]byte{0xDE, 0xAD}}

// pair needs at least two bytes, so it rejects single byte readings of ambiguous text.
type pair [2]byte

func (pair) PreferredBase() base.Base { return base.Base36Lower }

func (p pair) AppendBinary(b []byte) ([]byte, error) { return append(b, p[:]...), nil }

func (p *pair) DecodeBinary(b []byte) ([]byte, error) {
	if len(b) < 2 {
		return b, encio.Custom(fmt.Sprintf("pair needs 2 bytes, got %v", len(b)))
	}
	copy(p[:], b)
	return b[2:], nil
}

// pubKey and rawKey have the same shape but different codecs.
type pubKey [4]byte

func (pubKey) PreferredBase() base.Base    { return base.Base16Lower }
func (pubKey) PreferredCodec() codec.Codec { return codec.Ed25519Pub }

func (k pubKey) AppendBinary(b []byte) ([]byte, error) { return append(b, k[:]...), nil }

func (k *pubKey) DecodeBinary(b []byte) ([]byte, error) {
	if len(b) < len(k) {
		return b, encio.Custom("short key")
	}
	copy(k[:], b)
	return b[len(k):], nil
}

type rawKey [4]byte

func (rawKey) PreferredBase() base.Base    { return base.Base16Lower }
func (rawKey) PreferredCodec() codec.Codec { return codec.Raw }

func (k rawKey) AppendBinary(b []byte) ([]byte, error) { return append(b, k[:]...), nil }

func (k *rawKey) DecodeBinary(b []byte) ([]byte, error) {
	if len(b) < len(k) {
		return b, encio.Custom("short key")
	}
	copy(k[:], b)
	return b[len(k):], nil
}

// broken cannot produce its binary form.
type broken struct{}

func (broken) PreferredBase() base.Base { return base.Base16Lower }

func (broken) AppendBinary([]byte) ([]byte, error) { return nil, encio.Custom("broken") }

func (*broken) DecodeBinary(b []byte) ([]byte, error) { return b, nil }
