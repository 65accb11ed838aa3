package cbc

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/rbaliyan/config/codec"
)

// TransformerName is the name reported by Transformer.
const TransformerName = "cbc"

// Transformer is a codec.Transformer that encrypts already-serialized bytes into an
// envelope and back. Use it with codec.NewChain or transform.WrapStore when the
// serializer is chosen elsewhere.
//
// Transformer is safe for concurrent use under the same conditions as Codec.
type Transformer struct {
	provider KeyProvider
	random   io.Reader
	logger   logr.Logger
	tel      *telemetry
}

// Compile-time interface check.
var _ codec.Transformer = (*Transformer)(nil)

// NewTransformer creates an encrypting transformer.
// Returns an error if provider is nil.
func NewTransformer(provider KeyProvider, opts ...Option) (*Transformer, error) {
	if provider == nil {
		return nil, fmt.Errorf("cbc: NewTransformer provider is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newTransformer(provider, o, o.logger.WithName("cbc"))
}

func newTransformer(provider KeyProvider, o options, logger logr.Logger) (*Transformer, error) {
	tel, err := newTelemetry(o.tracerProvider, o.meterProvider)
	if err != nil {
		return nil, err
	}
	return &Transformer{
		provider: provider,
		random:   o.random,
		logger:   logger,
		tel:      tel,
	}, nil
}

// Name returns "cbc".
func (t *Transformer) Name() string {
	return TransformerName
}

// Transform encrypts data under the provider's current key with a fresh IV.
func (t *Transformer) Transform(ctx context.Context, data []byte) (out []byte, err error) {
	ctx, span := t.tel.start(ctx, "Transformer.Transform", TransformerName)
	defer func() { t.tel.finish(ctx, span, "encode", len(out), err) }()

	return t.seal(data)
}

// Reverse decrypts an envelope produced by Transform.
func (t *Transformer) Reverse(ctx context.Context, data []byte) (out []byte, err error) {
	ctx, span := t.tel.start(ctx, "Transformer.Reverse", TransformerName)
	defer func() { t.tel.finish(ctx, span, "decode", len(data), err) }()

	return t.open(data)
}

func (t *Transformer) seal(plaintext []byte) ([]byte, error) {
	key, err := currentKey(t.provider)
	if err != nil {
		return nil, fmt.Errorf("cbc: failed to get current key: %w", err)
	}
	defer key.Wipe()

	data, err := seal(plaintext, key, t.random)
	if err != nil {
		t.logger.Error(err, "encrypt failed", "keyID", key.ID)
		return nil, err
	}

	t.logger.V(1).Info("encrypted value", "keyID", key.ID, "size", len(data))
	return data, nil
}

func (t *Transformer) open(data []byte) ([]byte, error) {
	plaintext, err := open(data, t.provider)
	if err != nil {
		t.logger.V(1).Info("decrypt failed", "error", err.Error())
		return nil, fmt.Errorf("cbc: decrypt failed: %w", err)
	}
	return plaintext, nil
}
