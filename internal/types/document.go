package types

import (
	"fmt"
	"unicode/utf8"
)

// RawDocument is the unparsed text returned by the generation service: zero
// or more "\n"-separated lines.
type RawDocument string

// InvalidInputError reports a caller contract violation: a missing document
// or bytes that are not UTF-8. Ordinary text irregularities never produce it.
type InvalidInputError struct {
	Message string
	Offset  int
}

func (e *InvalidInputError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid input: %s at byte %d", e.Message, e.Offset)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// NewRawDocument checks raw bytes and wraps them as a document.
// A nil slice means no document was supplied at all; an empty slice is a
// valid, empty document.
func NewRawDocument(data []byte) (RawDocument, error) {
	if data == nil {
		return "", &InvalidInputError{Message: "document is missing", Offset: -1}
	}
	if !utf8.Valid(data) {
		return "", &InvalidInputError{Message: "document is not valid UTF-8", Offset: firstInvalidByte(data)}
	}
	return RawDocument(data), nil
}

// String returns the document text.
func (d RawDocument) String() string {
	return string(d)
}

func firstInvalidByte(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
