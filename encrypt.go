package cbc

import (
	"bytes"
	"fmt"
	"io"
)

// seal encrypts plaintext under key with a fresh IV read from random and wraps the
// result in an envelope carrying the key ID and IV.
func seal(plaintext []byte, key Key, random io.Reader) ([]byte, error) {
	alg, err := algorithmForKey(len(key.Bytes))
	if err != nil {
		return nil, err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(random, iv); err != nil {
		return nil, fmt.Errorf("cbc: failed to generate IV: %w", err)
	}

	ciphertext, err := Encrypt(key.Bytes, iv, plaintext)
	if err != nil {
		return nil, err
	}

	h := &header{
		version:   formatVersion,
		algorithm: alg,
		keyID:     key.ID,
		iv:        iv,
	}

	var buf bytes.Buffer
	buf.Grow(headerSize(key.ID) + len(ciphertext))
	if err := writeHeader(&buf, h); err != nil {
		return nil, fmt.Errorf("cbc: failed to write header: %w", err)
	}
	buf.Write(ciphertext)

	return buf.Bytes(), nil
}
