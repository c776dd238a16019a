package multihash_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/multienc"
	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/codec"
	"github.com/stewi1014/multienc/encio"
	"github.com/stewi1014/multienc/multihash"
)

var helloWorld = []byte("hello world")

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSum(t *testing.T) {
	testCases := []struct {
		code codec.Codec
		data []byte
		sum  string
	}{
		{
			code: codec.Sha2_256,
			data: helloWorld,
			sum:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			code: codec.Sha2_512,
			data: helloWorld,
			sum:  "309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f",
		},
		{
			code: codec.Blake3,
			data: nil,
			sum:  "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			code: codec.Identity,
			data: []byte("hello"),
			sum:  "68656c6c6f",
		},
	}

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC.code), func(t *testing.T) {
			d, err := multihash.Sum(tC.code, tC.data)
			td.CmpNoError(t, err)
			td.Cmp(t, d.Code(), tC.code)
			td.Cmp(t, d.Sum(), mustHex(t, tC.sum))
			td.CmpNoError(t, d.Verify(tC.data))

			r, err := multihash.SumReader(tC.code, bytes.NewReader(tC.data))
			td.CmpNoError(t, err)
			td.CmpTrue(t, r.Equal(d))
		})
	}
}

func TestSumUnsupported(t *testing.T) {
	_, err := multihash.Sum(codec.Raw, helloWorld)
	td.CmpTrue(t, errors.Is(err, multihash.ErrUnsupported))

	_, err = multihash.SumReader(codec.Raw, bytes.NewReader(helloWorld))
	td.CmpTrue(t, errors.Is(err, multihash.ErrUnsupported))
}

func TestVerify(t *testing.T) {
	d, err := multihash.Sum(codec.Sha2_256, helloWorld)
	td.CmpNoError(t, err)

	err = d.Verify([]byte("hello world!"))
	td.CmpTrue(t, errors.Is(err, multihash.ErrMismatch))
}

func TestNew(t *testing.T) {
	sum := mustHex(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9")
	d, err := multihash.New(codec.Sha2_256, sum)
	td.CmpNoError(t, err)

	sum[0] = 0
	td.Cmp(t, d.Sum()[0], byte(0xb9), "New copies the sum")

	_, err = multihash.New(codec.Sha2_256, sum[:20])
	td.CmpTrue(t, errors.Is(err, encio.ErrCustom))

	wide, err := multihash.New(codec.Codec(0x7fff0001), sum[:20])
	td.CmpNoError(t, err, "unknown functions are not length checked")

	b, err := wide.MarshalBinary()
	td.CmpNoError(t, err)
	td.Cmp(t, b[:6], []byte{0x81, 0x80, 0xfc, 0xff, 0x07, 20})
}

func TestBinary(t *testing.T) {
	d, err := multihash.Sum(codec.Sha2_256, helloWorld)
	td.CmpNoError(t, err)

	b, err := d.MarshalBinary()
	td.CmpNoError(t, err)
	td.Cmp(t, b[:2], []byte{0x12, 0x20})
	td.CmpLen(t, b, 34)

	var got multihash.Digest
	rest, err := got.DecodeBinary(append(b, 0xFF))
	td.CmpNoError(t, err)
	td.Cmp(t, rest, []byte{0xFF})
	td.CmpTrue(t, got.Equal(d))

	td.CmpTrue(t, errors.Is(got.UnmarshalBinary(b[:20]), encio.ErrTruncated))
	td.CmpTrue(t, errors.Is(got.UnmarshalBinary([]byte{0x12, 0x02, 0x01, 0x02}), encio.ErrCustom))
}

func TestEncoded(t *testing.T) {
	d, err := multihash.Sum(codec.Sha2_256, helloWorld)
	td.CmpNoError(t, err)

	e := multienc.NewEncoded[multienc.Multibase](d)
	td.Cmp(t, e.Base(), base.Base58Btc)
	td.Cmp(t, e.String(), "zQmaozNR7DZHQK1ZcU9p7QdrshMvXqWK6gpu5rmrkPdT3L4")

	bare := multienc.NewEncoded[multienc.BareBase58](d)
	td.Cmp(t, bare.String(), "QmaozNR7DZHQK1ZcU9p7QdrshMvXqWK6gpu5rmrkPdT3L4")

	got, err := multienc.ParseEncoded[multihash.Digest, multienc.Detected]("QmaozNR7DZHQK1ZcU9p7QdrshMvXqWK6gpu5rmrkPdT3L4")
	td.CmpNoError(t, err)
	td.Cmp(t, got.Base(), base.Base58Btc)
	td.CmpTrue(t, got.Value().Equal(d))
}

func TestTagged(t *testing.T) {
	d, err := multihash.Sum(codec.Sha2_256, helloWorld)
	td.CmpNoError(t, err)

	e := multienc.NewEncodedWithBase[multienc.Multibase](base.Base16Lower, multienc.NewTagged(d))
	td.Cmp(t, e.String(), "f311220b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9")

	got, err := multienc.ParseEncoded[multienc.Tagged[multihash.Digest], multienc.Multibase](e.String())
	td.CmpNoError(t, err)
	td.CmpTrue(t, got.Value().Value().Equal(d))
	td.CmpNoError(t, got.Value().Value().Verify(helloWorld))
}

func TestCompare(t *testing.T) {
	a, _ := multihash.Sum(codec.Sha2_256, []byte("a"))
	b, _ := multihash.Sum(codec.Sha2_512, []byte("a"))
	td.Cmp(t, a.Compare(b), -1)
	td.Cmp(t, b.Compare(a), 1)
	td.Cmp(t, a.Compare(a), 0)

	ea := multienc.NewEncoded[multienc.Multibase](a)
	eb := multienc.NewEncodedWithBase[multienc.Multibase](base.Base16Lower, b)
	td.Cmp(t, ea.Compare(eb), -1)
}

func TestString(t *testing.T) {
	d, _ := multihash.Sum(codec.Identity, []byte("hi"))
	td.Cmp(t, d.String(), "identity:6869")
}
