package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// ErrSealed is returned by Sealed.Get when a stored value cannot be opened:
// wrong passphrase, tampering, or a value that was never sealed.
var ErrSealed = errors.New("storage: cannot open sealed value")

// scrypt parameters for passphrase key derivation.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	saltLen = 16
)

type envelope struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	CT    []byte `json:"ct"`
}

// Sealed encrypts values with XChaCha20-Poly1305 under a key derived from a
// passphrase before handing them to the wrapped Storage. The storage key is
// bound as associated data, so a value copied to another key will not open.
//
// Key derivation is slow on purpose; the derived key for the current salt is
// cached, and keys for foreign salts are derived on demand and remembered.
type Sealed struct {
	inner      Storage
	passphrase []byte

	mu   sync.Mutex
	salt []byte
	keys map[string][]byte
}

// NewSealed wraps inner. It derives the write key eagerly so the first Set
// does not pay for scrypt.
func NewSealed(inner Storage, passphrase string) (*Sealed, error) {
	if passphrase == "" {
		return nil, errors.New("storage.NewSealed: passphrase is required")
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("storage.NewSealed: %w", err)
	}
	s := &Sealed{inner: inner, passphrase: []byte(passphrase), salt: salt, keys: map[string][]byte{}}
	if _, err := s.key(salt); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil || len(env.Salt) != saltLen {
		return nil, fmt.Errorf("storage.Sealed.Get: %w", ErrSealed)
	}
	k, err := s.key(env.Salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, fmt.Errorf("storage.Sealed.Get: %w", err)
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("storage.Sealed.Get: %w", ErrSealed)
	}
	plain, err := aead.Open(nil, env.Nonce, env.CT, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("storage.Sealed.Get: %w", ErrSealed)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	k, err := s.key(s.salt)
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return fmt.Errorf("storage.Sealed.Set: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("storage.Sealed.Set: %w", err)
	}

	blob, err := json.Marshal(envelope{
		Salt:  s.salt,
		Nonce: nonce,
		CT:    aead.Seal(nil, nonce, value, []byte(key)),
	})
	if err != nil {
		return fmt.Errorf("storage.Sealed.Set: %w", err)
	}
	return s.inner.Set(ctx, key, blob)
}

func (s *Sealed) Close() error { return s.inner.Close() }

// key returns the derived key for salt, deriving and caching it on first use.
func (s *Sealed) key(salt []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k, ok := s.keys[string(salt)]; ok {
		return k, nil
	}
	k, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("storage.Sealed: derive key: %w", err)
	}
	s.keys[string(salt)] = k
	return k, nil
}
