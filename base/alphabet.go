package base

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-base36"
)

const (
	rfc4648Lower    = "abcdefghijklmnopqrstuvwxyz234567"
	rfc4648HexLower = "0123456789abcdefghijklmnopqrstuv"
	zBase32         = "ybndrfg8ejkmcpqxot1uwisza345h769"
)

var (
	b32Lower       = base32.NewEncoding(rfc4648Lower).WithPadding(base32.NoPadding)
	b32Upper       = base32.StdEncoding.WithPadding(base32.NoPadding)
	b32PadLower    = base32.NewEncoding(rfc4648Lower)
	b32PadUpper    = base32.StdEncoding
	b32HexLower    = base32.NewEncoding(rfc4648HexLower).WithPadding(base32.NoPadding)
	b32HexUpper    = base32.HexEncoding.WithPadding(base32.NoPadding)
	b32HexPadLower = base32.NewEncoding(rfc4648HexLower)
	b32HexPadUpper = base32.HexEncoding
	b32Z           = base32.NewEncoding(zBase32).WithPadding(base32.NoPadding)

	b64       = base64.RawStdEncoding.Strict()
	b64Pad    = base64.StdEncoding.Strict()
	b64Url    = base64.RawURLEncoding.Strict()
	b64UrlPad = base64.URLEncoding.Strict()
)

func identityEncode(data []byte) string { return string(data) }

func identityDecode(s string) ([]byte, error) { return []byte(s), nil }

func hexLowerEncode(data []byte) string { return hex.EncodeToString(data) }

func hexUpperEncode(data []byte) string { return strings.ToUpper(hex.EncodeToString(data)) }

// hexDecode accepts either case; Decode rejects the wrong one when it re-encodes.
func hexDecode(s string) ([]byte, error) { return hex.DecodeString(s) }

func base36LowerEncode(data []byte) string { return base36.EncodeToStringLc(data) }

func base36UpperEncode(data []byte) string { return base36.EncodeToStringUc(data) }

func base36Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	return base36.DecodeString(s)
}

func base58BtcEncode(data []byte) string { return base58.EncodeAlphabet(data, base58.BTCAlphabet) }

func base58BtcDecode(s string) ([]byte, error) { return base58Decode(s, base58.BTCAlphabet) }

func base58FlickrEncode(data []byte) string {
	return base58.EncodeAlphabet(data, base58.FlickrAlphabet)
}

func base58FlickrDecode(s string) ([]byte, error) { return base58Decode(s, base58.FlickrAlphabet) }

func base58Decode(s string, alphabet *base58.Alphabet) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	return base58.DecodeAlphabet(s, alphabet)
}

// base10 is big-endian positional decimal, with one '0' per leading zero byte.
func base10Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	str := strings.Repeat("0", zeros)
	if zeros < len(data) {
		str += new(big.Int).SetBytes(data[zeros:]).Text(10)
	}
	return str
}

func base10Decode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("invalid character %q at offset %v", s[i], i)
		}
	}

	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}

	out := make([]byte, zeros)
	if zeros < len(s) {
		n, ok := new(big.Int).SetString(s[zeros:], 10)
		if !ok {
			return nil, fmt.Errorf("invalid decimal %q", s[zeros:])
		}
		out = append(out, n.Bytes()...)
	}
	return out, nil
}

// bitAlphabet packs bits MSB first into characters of width bits, without padding.
// The final character is filled with zero bits.
type bitAlphabet struct {
	width    uint
	alphabet string
}

var (
	base2 = bitAlphabet{width: 1, alphabet: "01"}
	base8 = bitAlphabet{width: 3, alphabet: "01234567"}
)

func (a bitAlphabet) encode(data []byte) string {
	mask := uint(1)<<a.width - 1

	var sb strings.Builder
	sb.Grow((len(data)*8 + int(a.width) - 1) / int(a.width))

	var acc, n uint
	for _, c := range data {
		acc = acc<<8 | uint(c)
		n += 8
		for n >= a.width {
			n -= a.width
			sb.WriteByte(a.alphabet[(acc>>n)&mask])
			acc &= 1<<n - 1
		}
	}
	if n > 0 {
		sb.WriteByte(a.alphabet[(acc<<(a.width-n))&mask])
	}
	return sb.String()
}

func (a bitAlphabet) decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*int(a.width)/8)

	var acc, n uint
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(a.alphabet, s[i])
		if v < 0 {
			return nil, fmt.Errorf("invalid character %q at offset %v", s[i], i)
		}

		acc = acc<<a.width | uint(v)
		n += a.width
		if n >= 8 {
			n -= 8
			out = append(out, byte(acc>>n))
			acc &= 1<<n - 1
		}
	}

	if acc != 0 {
		return nil, errors.New("non-zero trailing bits")
	}
	return out, nil
}
