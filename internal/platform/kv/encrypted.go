package kv

import (
	"context"
	"fmt"

	"sitewatch/internal/platform/crypto"
)

// Encrypted seals values with AES-GCM before handing them to the wrapped
// store.
type Encrypted struct {
	next   Store
	crypto *crypto.Service
}

func NewEncrypted(next Store, svc *crypto.Service) *Encrypted {
	return &Encrypted{next: next, crypto: svc}
}

func (e *Encrypted) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := e.crypto.Decrypt(sealed)
	if err != nil {
		return nil, fmt.Errorf("kv: decrypt %s: %w", key, err)
	}
	return plain, nil
}

func (e *Encrypted) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := e.crypto.Encrypt(value)
	if err != nil {
		return fmt.Errorf("kv: encrypt %s: %w", key, err)
	}
	return e.next.Set(ctx, key, sealed)
}

func (e *Encrypted) Delete(ctx context.Context, key string) error {
	return e.next.Delete(ctx, key)
}

func (e *Encrypted) Ping(ctx context.Context) error {
	return e.next.Ping(ctx)
}

func (e *Encrypted) Close() error {
	return e.next.Close()
}
