package multienc

import (
	"fmt"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2), so a value always produces the same bytes.
var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("multienc: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("multienc: CBOR decoder initialization failed: " + err.Error())
	}
}

// cborPair is the binary serialization of an Encoded value: the base sigil, then the payload's binary form.
type cborPair struct {
	_     struct{} `cbor:",toarray"`
	Sigil string
	Data  []byte
}

// MarshalYAML implements yaml.Marshaler, writing the strategy's text form as a scalar.
func (e Encoded[T, S]) MarshalYAML() (any, error) {
	return e.Render()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Encoded[T, S]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return encio.NewError(encio.ErrDecodeFailed, fmt.Sprintf("line %v: want a scalar", node.Line), 0)
	}
	return e.UnmarshalText([]byte(node.Value))
}

// MarshalCBOR implements cbor.Marshaler, writing e as the array [sigil, payload bytes].
func (e Encoded[T, S]) MarshalCBOR() ([]byte, error) {
	data, err := marshalPayload(e.value)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(cborPair{
		Sigil: string(e.base.Sigil()),
		Data:  data,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
// It accepts the array written by MarshalCBOR, or a text string in the strategy's text form.
func (e *Encoded[T, S]) UnmarshalCBOR(b []byte) error {
	if len(b) > 0 && b[0]>>5 == 3 { // major type 3, text string
		var text string
		if err := cborDecMode.Unmarshal(b, &text); err != nil {
			return err
		}
		return e.UnmarshalText([]byte(text))
	}

	var pair cborPair
	if err := cborDecMode.Unmarshal(b, &pair); err != nil {
		return err
	}

	r, size := utf8.DecodeRuneInString(pair.Sigil)
	if size == 0 || size != len(pair.Sigil) {
		return encio.NewError(encio.ErrUnknownSigil, fmt.Sprintf("%q is not a single sigil", pair.Sigil), 0)
	}
	bs, err := base.FromSigil(r)
	if err != nil {
		return err
	}

	v, _, err := DecodePayload[T](pair.Data)
	if err != nil {
		return encio.WrapError(encio.ErrValueFailed, err, "", 0)
	}

	e.base = bs
	e.value = v
	return nil
}
