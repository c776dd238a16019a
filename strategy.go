package multienc

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/stewi1014/multienc/base"
	"github.com/stewi1014/multienc/encio"
)

// Strategy decides how the base of an Encoded value is recorded in its text form, and how it is recovered.
//
// Strategies are zero-size types used as the second type parameter of Encoded.
type Strategy interface {
	// Render encodes data as text in (or in place of) base b.
	Render(b base.Base, data []byte) string

	// Parse decodes text into one or more candidate readings, in order of preference.
	// It returns at least one candidate or an error.
	Parse(s string) ([]Candidate, error)

	// Preferred returns the base used for a payload whose preferred base is b.
	Preferred(b base.Base) base.Base

	// DebugString describes base b as this strategy records it.
	DebugString(b base.Base) string
}

// Candidate is one reading of a text value: the base it was decoded with, and the decoded bytes.
type Candidate struct {
	Base base.Base
	Data []byte
}

// Multibase records the base as a leading sigil character.
// It round-trips exactly: parsing rendered text yields the single candidate it was rendered from.
type Multibase struct{}

// Render implements Strategy
func (Multibase) Render(b base.Base, data []byte) string {
	return string(b.Sigil()) + b.Encode(data)
}

// Parse selects the base by the leading sigil and strictly decodes the rest.
// It fails with ErrDecodeFailed if the input is empty, the sigil is unknown or the rest is not valid in that base.
func (Multibase) Parse(s string) ([]Candidate, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return nil, encio.WrapError(encio.ErrDecodeFailed, encio.ErrUnknownSigil, "empty input", 0)
	}

	b, err := base.FromSigil(r)
	if err != nil {
		return nil, encio.WrapError(encio.ErrDecodeFailed, err, "", 0)
	}

	data, err := b.Decode(s[size:])
	if err != nil {
		return nil, err
	}

	return []Candidate{{Base: b, Data: data}}, nil
}

// Preferred implements Strategy
func (Multibase) Preferred(b base.Base) base.Base { return b }

// DebugString implements Strategy
func (Multibase) DebugString(b base.Base) string { return debugString(b) }

// BareBase58 renders every value as base58 (bitcoin alphabet) without a sigil, as legacy identifiers are written.
type BareBase58 struct{}

// Render ignores b and encodes data as Base58Btc.
func (BareBase58) Render(_ base.Base, data []byte) string {
	return base.Base58Btc.Encode(data)
}

// Parse strictly decodes the whole input as Base58Btc.
func (BareBase58) Parse(s string) ([]Candidate, error) {
	data, err := base.Base58Btc.Decode(s)
	if err != nil {
		return nil, encio.WrapError(encio.ErrBase58DecodeFailed, err, "", 0)
	}
	return []Candidate{{Base: base.Base58Btc, Data: data}}, nil
}

// Preferred always returns Base58Btc.
func (BareBase58) Preferred(base.Base) base.Base { return base.Base58Btc }

// DebugString implements Strategy
func (BareBase58) DebugString(base.Base) string { return debugString(base.Base58Btc) }

// Detected renders like Multibase, and parses text that may or may not carry a sigil.
//
// Text with a valid sigil parses exactly as with Multibase.
// Otherwise the whole input is strictly decoded in every base of base.Ordered except Identity,
// and every base that accepts it is returned as a candidate, in that order.
// Such text is often valid in several bases; Encoded keeps the first candidate its payload type can construct.
type Detected struct{}

// Render implements Strategy
func (Detected) Render(b base.Base, data []byte) string {
	return Multibase{}.Render(b, data)
}

// Parse implements Strategy. It fails with ErrValueFailed if no base accepts the input.
func (Detected) Parse(s string) ([]Candidate, error) {
	if candidates, err := (Multibase{}).Parse(s); err == nil {
		return candidates, nil
	}

	var candidates []Candidate
	for _, b := range base.Ordered() {
		if b == base.Identity {
			continue
		}
		if data, err := b.Decode(s); err == nil {
			candidates = append(candidates, Candidate{Base: b, Data: data})
		}
	}

	encio.Logger().Debug("detected bare text",
		zap.Int("length", len(s)),
		zap.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return nil, encio.NewError(encio.ErrValueFailed, "no base decodes the input", 0)
	}
	return candidates, nil
}

// Preferred implements Strategy
func (Detected) Preferred(b base.Base) base.Base { return b }

// DebugString implements Strategy
func (Detected) DebugString(b base.Base) string { return debugString(b) }

func debugString(b base.Base) string {
	return fmt.Sprintf("%v (%q)", b, b.Sigil())
}
