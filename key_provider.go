package cbc

import (
	"bytes"

	"github.com/awnumar/memguard"
)

// Key represents a named encryption key.
type Key struct {
	// ID is a unique identifier for the key (e.g., "config-2024-01").
	ID string

	// Bytes is the raw key material: 16, 24 or 32 bytes.
	Bytes []byte
}

// Wipe zeroes the key material in place.
func (k Key) Wipe() {
	memguard.WipeBytes(k.Bytes)
}

// KeyProvider resolves keys for the envelope Codec and Transformer.
// Implementations must be safe for concurrent use.
//
// The returned Bytes remain owned by the provider. Callers in this package never modify
// them; they work on a private copy and wipe that copy when done.
type KeyProvider interface {
	// CurrentKey returns the key to use for new encryptions.
	CurrentKey() (Key, error)

	// KeyByID returns the key with the given ID, used for decryption.
	// Returns ErrKeyNotFound if the key ID is not known.
	KeyByID(id string) (Key, error)
}

// freshKeyProvider is implemented by providers that hand out a new copy of the key on
// every call. Those copies are wiped directly instead of being cloned first.
type freshKeyProvider interface {
	freshKeys()
}

// ownKey returns a copy of k the caller may wipe.
func ownKey(p KeyProvider, k Key) Key {
	if _, ok := p.(freshKeyProvider); ok {
		return k
	}
	return Key{ID: k.ID, Bytes: bytes.Clone(k.Bytes)}
}

func currentKey(p KeyProvider) (Key, error) {
	k, err := p.CurrentKey()
	if err != nil {
		return Key{}, err
	}
	return ownKey(p, k), nil
}

func keyByID(p KeyProvider, id string) (Key, error) {
	k, err := p.KeyByID(id)
	if err != nil {
		return Key{}, err
	}
	return ownKey(p, k), nil
}
