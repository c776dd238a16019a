package multienc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/multienc"
	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

var testData = [][]byte{
	{},
	{0x00},
	{0x42, 0xAA},
	{0x00, 0x00, 0xFF},
	[]byte("yes mani !"),
}

func TestMultibaseRoundTrip(t *testing.T) {
	var s multienc.Multibase
	for _, b := range base.Ordered() {
		for _, data := range testData {
			t.Run(fmt.Sprintf("%v/%x", b, data), func(t *testing.T) {
				candidates, err := s.Parse(s.Render(b, data))
				if err != nil {
					t.Fatal(err)
				}
				td.Cmp(t, candidates, []multienc.Candidate{{Base: b, Data: data}})
			})
		}
	}
}

func TestMultibase(t *testing.T) {
	var s multienc.Multibase

	td.Cmp(t, s.Render(base.Base16Lower, []byte{0x42, 0xAA}), "f42aa")
	td.Cmp(t, s.Render(base.Base58Btc, []byte("yes mani !")), "z7paNL19xttacUY")
	td.Cmp(t, s.Render(base.Base256Emoji, []byte{0x42, 0xAA}), "🚀💚😰")

	candidates, err := s.Parse("f42aa")
	td.CmpNoError(t, err)
	td.Cmp(t, candidates, []multienc.Candidate{{Base: base.Base16Lower, Data: []byte{0x42, 0xAA}}})

	td.Cmp(t, s.Preferred(base.Base32Z), base.Base32Z)
	td.Cmp(t, s.DebugString(base.Base16Lower), "Base16Lower ('f')")
}

func TestMultibaseErrors(t *testing.T) {
	testCases := []struct {
		desc    string
		text    string
		unknown bool
	}{
		{desc: "empty", text: "", unknown: true},
		{desc: "unknown sigil", text: "x42aa", unknown: true},
		{desc: "bad utf8", text: "\xff42aa", unknown: true},
		{desc: "odd hex", text: "f42a"},
		{desc: "wrong case", text: "F42aa"},
		{desc: "bad base58", text: "z0OIl"},
	}

	var s multienc.Multibase
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := s.Parse(tC.text)
			td.CmpTrue(t, errors.Is(err, encio.ErrDecodeFailed), "got %v", err)
			td.Cmp(t, errors.Is(err, encio.ErrUnknownSigil), tC.unknown)
		})
	}
}

func TestBareBase58(t *testing.T) {
	var s multienc.BareBase58

	td.Cmp(t, s.Render(base.Base16Lower, []byte{0x42, 0xAA}), "65F")
	td.Cmp(t, s.Preferred(base.Base16Lower), base.Base58Btc)
	td.Cmp(t, s.DebugString(base.Base2), "Base58Btc ('z')")

	for _, data := range testData {
		t.Run(fmt.Sprintf("%x", data), func(t *testing.T) {
			candidates, err := s.Parse(s.Render(base.Base64, data))
			td.CmpNoError(t, err)
			td.Cmp(t, candidates, []multienc.Candidate{{Base: base.Base58Btc, Data: data}})
		})
	}

	_, err := s.Parse("65F0")
	td.CmpTrue(t, errors.Is(err, encio.ErrBase58DecodeFailed))
	td.CmpTrue(t, errors.Is(err, encio.ErrDecodeFailed), "the alphabet error is kept as the cause")

	// a multibase sigil is just another base58 character
	candidates, err := s.Parse("z65F")
	td.CmpNoError(t, err)
	td.Cmp(t, candidates[0].Data, td.Not([]byte{0x42, 0xAA}))
}

func TestDetectedRoundTrip(t *testing.T) {
	var s multienc.Detected
	for _, b := range base.Ordered() {
		for _, data := range testData {
			t.Run(fmt.Sprintf("%v/%x", b, data), func(t *testing.T) {
				text := s.Render(b, data)
				td.Cmp(t, text, multienc.Multibase{}.Render(b, data))

				candidates, err := s.Parse(text)
				if err != nil {
					t.Fatal(err)
				}
				td.Cmp(t, candidates, []multienc.Candidate{{Base: b, Data: data}})
			})
		}
	}
}

func TestDetectedAmbiguous(t *testing.T) {
	var s multienc.Detected

	candidates, err := s.Parse("2a")
	td.CmpNoError(t, err)
	td.Cmp(t, candidates, []multienc.Candidate{
		{Base: base.Base16Lower, Data: []byte{0x2a}},
		{Base: base.Base32Lower, Data: []byte{0xd0}},
		{Base: base.Base36Lower, Data: []byte{0x52}},
		{Base: base.Base58Flickr, Data: []byte{0x43}},
		{Base: base.Base58Btc, Data: []byte{0x5b}},
	})
}

func TestDetectedBare(t *testing.T) {
	var s multienc.Detected

	candidates, err := s.Parse("7paNL19xttacUY")
	td.CmpNoError(t, err)
	td.Cmp(t, candidates, td.Contains(multienc.Candidate{Base: base.Base58Btc, Data: []byte("yes mani !")}))
	for _, c := range candidates {
		td.Cmp(t, c.Base, td.Not(base.Base16Lower))
	}

	// "z" is the base58btc sigil and "65F" is valid base58btc, so the sigil wins.
	candidates, err = s.Parse("z65F")
	td.CmpNoError(t, err)
	td.Cmp(t, candidates, []multienc.Candidate{{Base: base.Base58Btc, Data: []byte{0x42, 0xAA}}})
}

func TestDetectedNoCandidates(t *testing.T) {
	var s multienc.Detected

	for _, text := range []string{"!!!", "x-y!", "f4g!"} {
		t.Run(text, func(t *testing.T) {
			candidates, err := s.Parse(text)
			td.CmpTrue(t, errors.Is(err, encio.ErrValueFailed), "got %v", err)
			td.CmpNil(t, candidates)
		})
	}
}
