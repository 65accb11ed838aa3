package cbc

import "errors"

var (
	// ErrInvalidKeyLength is returned when a key is not 16, 24 or 32 bytes.
	ErrInvalidKeyLength = errors.New("cbc: invalid key length, must be 16, 24 or 32 bytes")

	// ErrInvalidIVLength is returned when an IV is not exactly one block (16 bytes).
	ErrInvalidIVLength = errors.New("cbc: invalid IV length, must be 16 bytes")

	// ErrInvalidCiphertextLength is returned when ciphertext is empty or not a multiple of 16 bytes.
	ErrInvalidCiphertextLength = errors.New("cbc: invalid ciphertext length")

	// ErrInvalidPadding is returned when decrypted data does not end in valid PKCS#7 padding.
	// It usually means a wrong key or IV, or tampered ciphertext.
	ErrInvalidPadding = errors.New("cbc: invalid padding")

	// ErrInvalidEncoding is returned when decrypted bytes are not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("cbc: invalid UTF-8 encoding")

	// ErrInvalidFormat is returned when an envelope has an invalid header.
	ErrInvalidFormat = errors.New("cbc: invalid envelope format")

	// ErrKeyNotFound is returned when a key ID is not found in the provider.
	ErrKeyNotFound = errors.New("cbc: key not found")

	// ErrInvalidKeyID is returned when a key ID is empty or invalid.
	ErrInvalidKeyID = errors.New("cbc: invalid key ID")
)

// IsInvalidKeyLength returns true if the error is or wraps ErrInvalidKeyLength.
func IsInvalidKeyLength(err error) bool {
	return errors.Is(err, ErrInvalidKeyLength)
}

// IsInvalidIVLength returns true if the error is or wraps ErrInvalidIVLength.
func IsInvalidIVLength(err error) bool {
	return errors.Is(err, ErrInvalidIVLength)
}

// IsInvalidCiphertextLength returns true if the error is or wraps ErrInvalidCiphertextLength.
func IsInvalidCiphertextLength(err error) bool {
	return errors.Is(err, ErrInvalidCiphertextLength)
}

// IsInvalidPadding returns true if the error is or wraps ErrInvalidPadding.
func IsInvalidPadding(err error) bool {
	return errors.Is(err, ErrInvalidPadding)
}

// IsInvalidEncoding returns true if the error is or wraps ErrInvalidEncoding.
func IsInvalidEncoding(err error) bool {
	return errors.Is(err, ErrInvalidEncoding)
}

// IsInvalidFormat returns true if the error is or wraps ErrInvalidFormat.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsKeyNotFound returns true if the error is or wraps ErrKeyNotFound.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsInvalidKeyID returns true if the error is or wraps ErrInvalidKeyID.
func IsInvalidKeyID(err error) bool {
	return errors.Is(err, ErrInvalidKeyID)
}
