package cbc

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// StaticKeyProvider is a KeyProvider holding a single in-memory key.
// The key is kept sealed in a memguard Enclave and only decrypted into locked memory
// long enough to hand out a copy. It is safe for concurrent use.
type StaticKeyProvider struct {
	id      string
	size    int
	enclave *memguard.Enclave
}

// NewStaticKeyProvider creates a KeyProvider for the given key.
// The keyBytes must be 16, 24 or 32 bytes. The id identifies this key in envelopes.
// Key bytes are copied internally; the caller may safely zero the original after construction.
func NewStaticKeyProvider(keyBytes []byte, id string) (*StaticKeyProvider, error) {
	if !ValidKeyLength(len(keyBytes)) {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(keyBytes))
	}
	if id == "" {
		return nil, fmt.Errorf("%w: key ID must not be empty", ErrInvalidKeyID)
	}
	if len(id) > maxKeyIDLen {
		return nil, fmt.Errorf("%w: key ID longer than %d bytes", ErrInvalidKeyID, maxKeyIDLen)
	}

	// NewEnclave wipes its argument, so seal a copy.
	b := make([]byte, len(keyBytes))
	copy(b, keyBytes)

	return &StaticKeyProvider{
		id:      id,
		size:    len(keyBytes),
		enclave: memguard.NewEnclave(b),
	}, nil
}

// ID returns the key ID.
func (p *StaticKeyProvider) ID() string {
	return p.id
}

// CurrentKey returns a copy of the key for new encryptions.
func (p *StaticKeyProvider) CurrentKey() (Key, error) {
	return p.open()
}

// KeyByID returns a copy of the key if id matches.
func (p *StaticKeyProvider) KeyByID(id string) (Key, error) {
	if id != p.id {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	return p.open()
}

func (p *StaticKeyProvider) open() (Key, error) {
	buf, err := p.enclave.Open()
	if err != nil {
		return Key{}, fmt.Errorf("cbc: failed to open key %q: %w", p.id, err)
	}
	defer buf.Destroy()

	b := make([]byte, p.size)
	copy(b, buf.Bytes())
	return Key{ID: p.id, Bytes: b}, nil
}

func (p *StaticKeyProvider) freshKeys() {}

// Compile-time interface checks.
var (
	_ KeyProvider      = (*StaticKeyProvider)(nil)
	_ freshKeyProvider = (*StaticKeyProvider)(nil)
)
