package cbc

import (
	"context"
	"fmt"

	"github.com/rbaliyan/config/codec"
)

// Codec wraps an inner codec with AES-CBC encryption.
// On Encode, the inner codec serializes the value, then the result is encrypted under the
// provider's current key with a fresh IV. On Decode, the envelope header names the key and
// carries the IV; the plaintext is then handed to the inner codec.
//
// Codec is safe for concurrent use if the underlying KeyProvider, inner codec and random
// source are safe for concurrent use. StaticKeyProvider and crypto/rand satisfy this.
type Codec struct {
	inner codec.Codec
	enc   *Transformer
	name  string
}

// Compile-time interface check.
var _ codec.Codec = (*Codec)(nil)

// NewCodec creates an encrypting codec that wraps the given inner codec.
// The codec name is "cbc:<inner>", e.g. "cbc:json".
// Returns an error if inner or provider is nil.
func NewCodec(inner codec.Codec, provider KeyProvider, opts ...Option) (*Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("cbc: NewCodec inner codec is nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("cbc: NewCodec provider is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	name := TransformerName + ":" + inner.Name()
	enc, err := newTransformer(provider, o, o.logger.WithName("cbc").WithValues("codec", name))
	if err != nil {
		return nil, err
	}

	return &Codec{
		inner: inner,
		enc:   enc,
		name:  name,
	}, nil
}

// Name returns the codec name, e.g. "cbc:json".
func (c *Codec) Name() string {
	return c.name
}

// Encode serializes the value using the inner codec, then encrypts the result.
func (c *Codec) Encode(ctx context.Context, v any) (data []byte, err error) {
	ctx, span := c.enc.tel.start(ctx, "Codec.Encode", c.name)
	defer func() { c.enc.tel.finish(ctx, span, "encode", len(data), err) }()

	plaintext, err := c.inner.Encode(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("cbc: inner encode failed: %w", err)
	}
	defer clear(plaintext)

	return c.enc.seal(plaintext)
}

// Decode decrypts the data, then deserializes the plaintext using the inner codec.
func (c *Codec) Decode(ctx context.Context, data []byte, v any) (err error) {
	ctx, span := c.enc.tel.start(ctx, "Codec.Decode", c.name)
	defer func() { c.enc.tel.finish(ctx, span, "decode", len(data), err) }()

	plaintext, err := c.enc.open(data)
	if err != nil {
		return err
	}
	defer clear(plaintext)

	if err := c.inner.Decode(ctx, plaintext, v); err != nil {
		return fmt.Errorf("cbc: inner decode failed: %w", err)
	}
	return nil
}
