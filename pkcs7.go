package cbc

import (
	"bytes"
	"crypto/subtle"
	"fmt"
)

// pad appends PKCS#7 padding so the result is a multiple of BlockSize.
// Between 1 and BlockSize bytes are always added, each holding the padding length.
// The input slice is never modified.
func pad(plaintext []byte) []byte {
	n := BlockSize - len(plaintext)%BlockSize
	padded := make([]byte, len(plaintext), len(plaintext)+n)
	copy(padded, plaintext)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips PKCS#7 padding from a block-aligned slice, returning a subslice of the input.
// The padding bytes are compared in constant time.
func unpad(padded []byte) ([]byte, error) {
	if len(padded) == 0 || len(padded)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: padded length %d is not a positive multiple of %d",
			ErrInvalidPadding, len(padded), BlockSize)
	}

	n := int(padded[len(padded)-1])
	if n == 0 || n > BlockSize {
		return nil, fmt.Errorf("%w: padding length %d out of range", ErrInvalidPadding, n)
	}

	tail := padded[len(padded)-n:]
	if subtle.ConstantTimeCompare(tail, bytes.Repeat([]byte{byte(n)}, n)) != 1 {
		return nil, fmt.Errorf("%w: padding bytes do not match length %d", ErrInvalidPadding, n)
	}

	return padded[:len(padded)-n], nil
}
