package cbc

import "fmt"

// open decrypts an envelope produced by seal.
// The key ID from the header is used to look up the key from the provider.
func open(data []byte, provider KeyProvider) ([]byte, error) {
	h, ciphertext, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	key, err := keyByID(provider, h.keyID)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	if want := keySizeForAlgorithm(h.algorithm); len(key.Bytes) != want {
		return nil, fmt.Errorf("%w: key %q has %d bytes, envelope expects %d",
			ErrInvalidKeyLength, h.keyID, len(key.Bytes), want)
	}

	return Decrypt(key.Bytes, h.iv, ciphertext)
}
