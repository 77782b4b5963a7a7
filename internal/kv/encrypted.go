package kv

import (
	"context"
	"fmt"

	"github.com/ramanasai/journal/internal/encryption"
)

// Encrypted seals values before handing them to the wrapped Storage. Values
// written before encryption was enabled are returned as stored.
type Encrypted struct {
	next Storage
	enc  *encryption.Encryptor
}

func NewEncrypted(next Storage, enc *encryption.Encryptor) *Encrypted {
	return &Encrypted{next: next, enc: enc}
}

func (e *Encrypted) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := e.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	if !encryption.IsEncrypted(v) {
		return v, true, nil
	}
	plain, err := e.enc.Decrypt(v)
	if err != nil {
		return "", false, fmt.Errorf("kv decrypt %q: %w", key, err)
	}
	return plain, true, nil
}

func (e *Encrypted) Set(ctx context.Context, key, value string) error {
	sealed, err := e.enc.Encrypt(value)
	if err != nil {
		return fmt.Errorf("kv encrypt %q: %w", key, err)
	}
	return e.next.Set(ctx, key, sealed)
}

func (e *Encrypted) Delete(ctx context.Context, key string) error {
	return e.next.Delete(ctx, key)
}
