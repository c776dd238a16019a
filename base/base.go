// Package base is the registry of textual base encodings known to multienc.
//
// Every Base has a one-character sigil, used as the self-describing prefix of multibase text,
// a stable numeric code (the sigil's code point) and a strict alphabet codec.
// Ordered returns the bases in detection precedence; see its documentation.
package base

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stewi1014/multienc/encio"
)

// Base identifies a textual encoding scheme.
type Base int

// The registered bases, in detection precedence order.
const (
	Identity Base = iota
	Base2
	Base8
	Base10
	Base16Lower
	Base16Upper
	Base32Lower
	Base32Upper
	Base32PadLower
	Base32PadUpper
	Base32HexLower
	Base32HexUpper
	Base32HexPadLower
	Base32HexPadUpper
	Base32Z
	Base36Lower
	Base36Upper
	Base58Flickr
	Base58Btc
	Base64
	Base64Pad
	Base64Url
	Base64UrlPad
	Base256Emoji

	numBases int = iota
)

type entry struct {
	name   string
	mbName string
	sigil  rune
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

var registry = [numBases]entry{
	Identity:          {"Identity", "identity", 0x00, identityEncode, identityDecode},
	Base2:             {"Base2", "base2", '0', base2.encode, base2.decode},
	Base8:             {"Base8", "base8", '7', base8.encode, base8.decode},
	Base10:            {"Base10", "base10", '9', base10Encode, base10Decode},
	Base16Lower:       {"Base16Lower", "base16", 'f', hexLowerEncode, hexDecode},
	Base16Upper:       {"Base16Upper", "base16upper", 'F', hexUpperEncode, hexDecode},
	Base32Lower:       {"Base32Lower", "base32", 'b', b32Lower.EncodeToString, b32Lower.DecodeString},
	Base32Upper:       {"Base32Upper", "base32upper", 'B', b32Upper.EncodeToString, b32Upper.DecodeString},
	Base32PadLower:    {"Base32PadLower", "base32pad", 'c', b32PadLower.EncodeToString, b32PadLower.DecodeString},
	Base32PadUpper:    {"Base32PadUpper", "base32padupper", 'C', b32PadUpper.EncodeToString, b32PadUpper.DecodeString},
	Base32HexLower:    {"Base32HexLower", "base32hex", 'v', b32HexLower.EncodeToString, b32HexLower.DecodeString},
	Base32HexUpper:    {"Base32HexUpper", "base32hexupper", 'V', b32HexUpper.EncodeToString, b32HexUpper.DecodeString},
	Base32HexPadLower: {"Base32HexPadLower", "base32hexpad", 't', b32HexPadLower.EncodeToString, b32HexPadLower.DecodeString},
	Base32HexPadUpper: {"Base32HexPadUpper", "base32hexpadupper", 'T', b32HexPadUpper.EncodeToString, b32HexPadUpper.DecodeString},
	Base32Z:           {"Base32Z", "base32z", 'h', b32Z.EncodeToString, b32Z.DecodeString},
	Base36Lower:       {"Base36Lower", "base36", 'k', base36LowerEncode, base36Decode},
	Base36Upper:       {"Base36Upper", "base36upper", 'K', base36UpperEncode, base36Decode},
	Base58Flickr:      {"Base58Flickr", "base58flickr", 'Z', base58FlickrEncode, base58FlickrDecode},
	Base58Btc:         {"Base58Btc", "base58btc", 'z', base58BtcEncode, base58BtcDecode},
	Base64:            {"Base64", "base64", 'm', b64.EncodeToString, b64.DecodeString},
	Base64Pad:         {"Base64Pad", "base64pad", 'M', b64Pad.EncodeToString, b64Pad.DecodeString},
	Base64Url:         {"Base64Url", "base64url", 'u', b64Url.EncodeToString, b64Url.DecodeString},
	Base64UrlPad:      {"Base64UrlPad", "base64urlpad", 'U', b64UrlPad.EncodeToString, b64UrlPad.DecodeString},
	Base256Emoji:      {"Base256Emoji", "base256emoji", '🚀', emojiEncode, emojiDecode},
}

var bySigil = func() map[rune]Base {
	m := make(map[rune]Base, numBases)
	for b := range registry {
		m[registry[b].sigil] = Base(b)
	}
	return m
}()

// Ordered returns every registered base in detection precedence order.
//
// Identity comes first, then bases by increasing alphabet size,
// with lowercase and unpadded variants ahead of their uppercase and padded counterparts.
// Smaller alphabets are stricter character sets, so trying them first keeps text that is valid hex from being read as base64.
func Ordered() []Base {
	bases := make([]Base, numBases)
	for i := range bases {
		bases[i] = Base(i)
	}
	return bases
}

// FromSigil returns the base whose sigil is r.
func FromSigil(r rune) (Base, error) {
	b, ok := bySigil[r]
	if !ok {
		return 0, encio.NewError(encio.ErrUnknownSigil, fmt.Sprintf("%q", r), 0)
	}
	return b, nil
}

// FromCode returns the base with the given numeric code.
func FromCode(code uint32) (Base, error) {
	return FromSigil(rune(code))
}

// Parse returns the base named by s.
// s may be a registry name such as "Base58Btc", a multibase table name such as "base58btc", or a sigil; names are matched case-insensitively.
func Parse(s string) (Base, error) {
	for b := range registry {
		if strings.EqualFold(s, registry[b].name) || strings.EqualFold(s, registry[b].mbName) {
			return Base(b), nil
		}
	}
	if r, size := utf8.DecodeRuneInString(s); size > 0 && size == len(s) {
		return FromSigil(r)
	}
	return 0, encio.NewError(encio.ErrUnknownSigil, fmt.Sprintf("no base named %q", s), 0)
}

// Valid reports whether b is a registered base.
func (b Base) Valid() bool {
	return b >= 0 && int(b) < numBases
}

// String returns the registry name of b, e.g. "Base16Lower".
func (b Base) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Base(%d)", int(b))
	}
	return registry[b].name
}

// MultibaseName returns the name of b in the multibase table, e.g. "base16".
func (b Base) MultibaseName() string {
	if !b.Valid() {
		return b.String()
	}
	return registry[b].mbName
}

// Sigil returns the character that prefixes multibase text in b.
func (b Base) Sigil() rune {
	if !b.Valid() {
		return utf8.RuneError
	}
	return registry[b].sigil
}

// Code returns the stable numeric code of b.
func (b Base) Code() uint32 {
	return uint32(b.Sigil())
}

// Encode encodes data in the alphabet of b, without a sigil.
// It panics if b is not a registered base.
func (b Base) Encode(data []byte) string {
	if !b.Valid() {
		panic(encio.NewError(encio.ErrUnknownSigil, b.String(), 0))
	}
	return registry[b].encode(data)
}

// Decode strictly decodes s, which must not carry a sigil, from the alphabet of b.
//
// Every character must belong to the alphabet, padding must be exactly as the encoder writes it, and unused trailing bits must be zero;
// that is, s must be the canonical encoding of the returned bytes. Failures are ErrDecodeFailed.
func (b Base) Decode(s string) ([]byte, error) {
	if !b.Valid() {
		return nil, encio.NewError(encio.ErrDecodeFailed, b.String()+" is not a registered base", 0)
	}

	e := &registry[b]
	data, err := e.decode(s)
	if err != nil {
		return nil, encio.WrapError(encio.ErrDecodeFailed, err, e.name, 0)
	}
	if e.encode(data) != s {
		return nil, encio.NewError(encio.ErrDecodeFailed, e.name+": input is not in canonical form", 0)
	}
	return data, nil
}
