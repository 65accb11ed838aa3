// Package cbc implements AES-CBC encryption with PKCS#7 padding.
//
// Encrypt and Decrypt are pure functions over caller-supplied key, IV and data. The caller owns
// the key and must never reuse an IV under the same key; nothing here generates or stores key
// material. CBC provides confidentiality only: a failed padding check is the sole signal of a
// wrong key or tampered ciphertext.
//
// Codec adapts the same primitives to the github.com/rbaliyan/config codec registry, drawing a
// fresh IV per value and prefixing it to the ciphertext in a small binary envelope.
package cbc

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"unicode/utf8"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = aes.BlockSize

	// IVSize is the required IV length in bytes.
	IVSize = aes.BlockSize
)

// ValidKeyLength reports whether n selects AES-128, AES-192 or AES-256.
func ValidKeyLength(n int) bool {
	switch n {
	case 16, 24, 32:
		return true
	}
	return false
}

func checkKeyIV(key, iv []byte) error {
	if !ValidKeyLength(len(key)) {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}
	if len(iv) != IVSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidIVLength, len(iv))
	}
	return nil
}

// Encrypt pads plaintext with PKCS#7 and encrypts it with AES-CBC under key and iv.
// The result is always a non-empty multiple of BlockSize. Identical inputs give identical output.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	if err := checkKeyIV(key, iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	clear(padded)

	return ciphertext, nil
}

// Decrypt decrypts AES-CBC ciphertext under key and iv and removes the PKCS#7 padding.
// Returns ErrInvalidPadding when the padding does not verify, which is the expected
// outcome for a wrong key, a wrong IV or a modified final block.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if err := checkKeyIV(key, iv); err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes, need a positive multiple of %d",
			ErrInvalidCiphertextLength, len(ciphertext), BlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := unpad(padded)
	if err != nil {
		clear(padded)
		return nil, err
	}
	return plaintext, nil
}

// EncryptString encrypts the UTF-8 bytes of plaintext.
func EncryptString(key, iv []byte, plaintext string) ([]byte, error) {
	return Encrypt(key, iv, []byte(plaintext))
}

// DecryptString decrypts ciphertext and returns it as text.
// Returns ErrInvalidEncoding if the plaintext is not valid UTF-8.
func DecryptString(key, iv, ciphertext []byte) (string, error) {
	plaintext, err := Decrypt(key, iv, ciphertext)
	if err != nil {
		return "", err
	}
	return plaintextString(plaintext)
}

// plaintextString converts decrypted bytes to a string. The bytes are cleared if they are
// not valid UTF-8.
func plaintextString(plaintext []byte) (string, error) {
	if !utf8.Valid(plaintext) {
		n := len(plaintext)
		clear(plaintext)
		return "", fmt.Errorf("%w: %d decrypted bytes", ErrInvalidEncoding, n)
	}
	return string(plaintext), nil
}
