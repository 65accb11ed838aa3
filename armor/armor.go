// Package armor carries CBC ciphertext across text boundaries such as config files,
// environment variables and logs, using standard padded base64.
package armor

import (
	"encoding/base64"
	"fmt"

	cbc "github.com/rbaliyan/config-cbc"
)

// Encode returns the standard base64 form of ciphertext.
func Encode(ciphertext []byte) string {
	return base64.StdEncoding.EncodeToString(ciphertext)
}

// Decode parses standard base64 text. Surrounding whitespace is not accepted.
func Decode(encoded string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", cbc.ErrInvalidFormat, err)
	}
	return b, nil
}

// EncryptString encrypts plaintext with cbc.EncryptString and returns base64 text.
func EncryptString(key, iv []byte, plaintext string) (string, error) {
	ciphertext, err := cbc.EncryptString(key, iv, plaintext)
	if err != nil {
		return "", err
	}
	return Encode(ciphertext), nil
}

// DecryptString decodes base64 text and decrypts it with cbc.DecryptString.
func DecryptString(key, iv []byte, encoded string) (string, error) {
	ciphertext, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	return cbc.DecryptString(key, iv, ciphertext)
}

// DecryptBytes decodes base64 text and decrypts it without interpreting the plaintext.
func DecryptBytes(key, iv []byte, encoded string) ([]byte, error) {
	ciphertext, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return cbc.Decrypt(key, iv, ciphertext)
}
