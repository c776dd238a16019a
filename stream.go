package multienc

import (
	"encoding"
	"fmt"
	"io"
	"sync"

	"github.com/stewi1014/multienc/encio"
)

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w: w,
	}
}

// Encoder writes payloads to a stream, each framed as its varint length followed by its binary form.
// It is safe for concurrent use; frames are never interleaved.
type Encoder struct {
	w     io.Writer
	mutex sync.Mutex
	buff  []byte
}

// Encode writes one frame holding v's binary form.
// Wrap v in a Tagged so that the reader can only decode it as the same type.
func (e *Encoder) Encode(v encoding.BinaryAppender) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	data, err := v.AppendBinary(e.buff[:0])
	if err != nil {
		return err
	}
	e.buff = data

	var l encio.Uvarint
	if err := l.Encode(e.w, uint64(len(data))); err != nil {
		return err
	}
	return encio.Write(data, e.w)
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r: r,
	}
}

// Decoder reads frames written by an Encoder.
// It is safe for concurrent use; each call consumes exactly one frame.
type Decoder struct {
	r     io.Reader
	mutex sync.Mutex
	buff  []byte
}

// Decode reads one frame into v.
// The frame is consumed even if v rejects it, and it is an error for v to leave bytes of the frame unread.
// At the end of the stream it returns io.EOF.
func (d *Decoder) Decode(v BinaryDecoder) error {
	if v == nil {
		return encio.NewError(encio.ErrValueFailed, "cannot decode into nil", 0)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	var l encio.Uvarint
	n, err := l.Decode(d.r)
	if err != nil {
		return err
	}
	if n > uint64(encio.TooBig) {
		return encio.NewError(encio.ErrIntegerOverflow, fmt.Sprintf("frame of %v bytes is too big", n), 0)
	}

	if uint64(cap(d.buff)) < n {
		d.buff = make([]byte, n)
	}
	d.buff = d.buff[:n]
	if err := encio.Read(d.buff, d.r); err != nil {
		return err
	}

	rest, err := v.DecodeBinary(d.buff)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return encio.NewError(encio.ErrValueFailed, fmt.Sprintf("%v of %v bytes in frame left unread by %T", len(rest), n, v), 0)
	}
	return nil
}
