package encio

import (
	"errors"
	"runtime"
)

// Error handling in multienc follows a small set of error kinds, each a sentinel below, with extra information wrapped as applicable.
// Nothing panics on bad input; every failure is returned to the caller.
// Errors carrying context are wrapped in Error or IOError, so kinds can be checked with
//
//	if errors.Is(err, encio.ErrDecodeFailed) {
//		// the text was not valid for any base tried
//	}
//
// and the wrapper itself recovered with errors.As when the caller and message are wanted.
var (
	// ErrTruncated is returned when a varint or length-prefixed buffer ends before it is complete.
	ErrTruncated = errors.New("truncated")

	// ErrIntegerOverflow is returned when a decoded varint does not fit the target integer width.
	ErrIntegerOverflow = errors.New("integer overflow")

	// ErrNotMinimal is returned when a varint is longer than its canonical form.
	ErrNotMinimal = errors.New("varint not minimal")

	// ErrUnknownSigil is returned when a multibase sigil is not in the base registry.
	ErrUnknownSigil = errors.New("unknown sigil")

	// ErrDecodeFailed is returned when a strict alphabet decode rejects its input.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrBase58DecodeFailed is returned when bare base58 decoding rejects its input.
	ErrBase58DecodeFailed = errors.New("base58 decode failed")

	// ErrValueFailed is returned when no candidate produced a value the target type could construct.
	ErrValueFailed = errors.New("no candidate produced a value")

	// ErrIncorrectSigil is returned when a tagged value carries a codec other than the expected one.
	ErrIncorrectSigil = errors.New("incorrect sigil")

	// ErrCustom is the kind of errors created with Custom, for payload construction failures that fit nowhere else.
	ErrCustom = errors.New("custom error")
)

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Reader/io.Writer, or another error describing why the reader isn't operating correctly.
// If message is empty, it is filled with the name of the function skip frames above the caller.
func NewIOError(err error, message string, skip int) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", 0)
	}
	if message == "" {
		message = "in " + GetCaller(skip+1)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when an io.Reader or io.Writer fails while a value is streamed.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// NewError returns an Error of the given kind with message, naming the function skip frames above the caller.
func NewError(kind error, message string, skip int) error {
	return Error{
		Err:     kind,
		Message: message,
		Caller:  GetCaller(skip + 1),
	}
}

// WrapError is NewError with an underlying cause, such as the error returned by an alphabet decoder.
func WrapError(kind error, cause error, message string, skip int) error {
	return Error{
		Err:     kind,
		Cause:   cause,
		Message: message,
		Caller:  GetCaller(skip + 1),
	}
}

// Custom returns an ErrCustom error with the given message.
// Payload types use it to report construction failures.
func Custom(message string) error {
	return Error{
		Err:     ErrCustom,
		Message: message,
	}
}

// Error is the error type returned throughout multienc.
// Err is one of the kinds above; Cause, if set, is the error that triggered it.
type Error struct {
	Err     error
	Cause   error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	if e.Cause != nil {
		str += ": " + e.Cause.Error()
	}

	return str
}

// Unwrap allows both the kind and the cause to be matched with errors.Is and errors.As.
func (e Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
