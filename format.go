package cbc

import (
	"fmt"
	"io"
)

// Envelope format constants.
const (
	// magic is the 2-byte envelope signature "CB".
	magic = "CB"

	// formatVersion is the current envelope format version.
	formatVersion = 0x01

	// Algorithm identifiers, one per AES key size.
	algAES128CBC = 0x01
	algAES192CBC = 0x02
	algAES256CBC = 0x03

	// maxKeyIDLen is the longest key ID the one-byte length field can carry.
	maxKeyIDLen = 255

	// minHeaderSize is the minimum header size: magic(2) + version(1) + alg(1) + keyIDLen(1).
	minHeaderSize = 5
)

// header represents the parsed header of an envelope.
type header struct {
	version   byte
	algorithm byte
	keyID     string
	iv        []byte // 16 bytes
}

// algorithmForKey returns the algorithm identifier for a key of n bytes.
func algorithmForKey(n int) (byte, error) {
	switch n {
	case 16:
		return algAES128CBC, nil
	case 24:
		return algAES192CBC, nil
	case 32:
		return algAES256CBC, nil
	}
	return 0, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, n)
}

// keySizeForAlgorithm is the inverse of algorithmForKey. It returns 0 for unknown identifiers.
func keySizeForAlgorithm(alg byte) int {
	switch alg {
	case algAES128CBC:
		return 16
	case algAES192CBC:
		return 24
	case algAES256CBC:
		return 32
	}
	return 0
}

// headerSize returns the total header size in bytes for the given key ID.
func headerSize(keyID string) int {
	return minHeaderSize + len(keyID) + IVSize
}

// writeHeader writes the binary header to w.
func writeHeader(w io.Writer, h *header) error {
	if len(h.keyID) > maxKeyIDLen {
		return fmt.Errorf("%w: key ID too long", ErrInvalidFormat)
	}
	if len(h.iv) != IVSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidIVLength, len(h.iv))
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{h.version, h.algorithm, byte(len(h.keyID))}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, h.keyID); err != nil {
		return err
	}
	if _, err := w.Write(h.iv); err != nil {
		return err
	}
	return nil
}

// readHeader parses the binary header from data, returning the header and remaining ciphertext.
// The returned IV is a copy, safe from caller mutation.
func readHeader(data []byte) (*header, []byte, error) {
	if len(data) < minHeaderSize {
		return nil, nil, fmt.Errorf("%w: data too short", ErrInvalidFormat)
	}

	if string(data[0:2]) != magic {
		return nil, nil, fmt.Errorf("%w: invalid magic bytes", ErrInvalidFormat)
	}

	h := &header{
		version:   data[2],
		algorithm: data[3],
	}

	if h.version != formatVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, h.version)
	}
	if keySizeForAlgorithm(h.algorithm) == 0 {
		return nil, nil, fmt.Errorf("%w: unsupported algorithm %d", ErrInvalidFormat, h.algorithm)
	}

	keyIDLen := int(data[4])
	offset := minHeaderSize

	if len(data) < offset+keyIDLen+IVSize {
		return nil, nil, fmt.Errorf("%w: data too short for header", ErrInvalidFormat)
	}

	h.keyID = string(data[offset : offset+keyIDLen])
	offset += keyIDLen

	h.iv = append([]byte(nil), data[offset:offset+IVSize]...)
	offset += IVSize

	return h, data[offset:], nil
}
