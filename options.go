package ece

import (
	"bytes"

	"github.com/majacQ/encrypted-content-encoding/internal/crypto"
)

// DefaultRecordSize is the record size used when WithRecordSize is not given.
const DefaultRecordSize = 4096

// Cipher is the AEAD capability used to protect each record.
type Cipher interface {
	// Seal returns ciphertext || tag.
	Seal(key, iv, plaintext []byte) ([]byte, error)
	// Open verifies tag and returns the plaintext.
	Open(key, iv, ciphertext, tag []byte) ([]byte, error)
}

// KDF is the key derivation capability used for the key, the nonce base
// and the auth secret mix.
type KDF interface {
	Derive(secret, salt, info []byte, length int) ([]byte, error)
}

// config holds the settings for one operation.
type config struct {
	recordSize  int
	authSecret  []byte
	hasAuth     bool
	registry    *Registry
	cipher      Cipher
	kdf         KDF
	parallelism int
}

// Option configures Encrypt, Decrypt and DeriveKey.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{
		recordSize:  DefaultRecordSize,
		authSecret:  []byte{},
		hasAuth:     true,
		cipher:      aesGCM{},
		kdf:         hkdfSHA256{},
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRecordSize sets the record size. It must be at least 2.
// Default: 4096
func WithRecordSize(rs int) Option {
	return func(c *config) {
		c.recordSize = rs
	}
}

// WithAuthSecret sets the auth secret mixed into the shared secret before
// key derivation. A nil or empty secret still performs the mix.
// Default: empty
func WithAuthSecret(secret []byte) Option {
	return func(c *config) {
		c.authSecret = bytes.Clone(secret)
		if c.authSecret == nil {
			c.authSecret = []byte{}
		}
		c.hasAuth = true
	}
}

// WithoutAuthSecret skips the auth secret mixing step entirely.
func WithoutAuthSecret() Option {
	return func(c *config) {
		c.authSecret = nil
		c.hasAuth = false
	}
}

// WithRegistry sets the key registry consulted by DiffieHellman and
// RegistryKey sources.
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithCipher replaces the AES-128-GCM record cipher.
func WithCipher(cipher Cipher) Option {
	return func(c *config) {
		if cipher != nil {
			c.cipher = cipher
		}
	}
}

// WithKDF replaces the HKDF-SHA-256 key derivation.
func WithKDF(kdf KDF) Option {
	return func(c *config) {
		if kdf != nil {
			c.kdf = kdf
		}
	}
}

// WithParallelism processes up to n records concurrently. The output is
// identical to sequential processing. Values below 1 are treated as 1.
// Default: 1
func WithParallelism(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.parallelism = n
	}
}

type aesGCM struct{}

func (aesGCM) Seal(key, iv, plaintext []byte) ([]byte, error) {
	return crypto.SealAESGCM(key, iv, plaintext)
}

func (aesGCM) Open(key, iv, ciphertext, tag []byte) ([]byte, error) {
	return crypto.OpenAESGCM(key, iv, ciphertext, tag)
}

type hkdfSHA256 struct{}

func (hkdfSHA256) Derive(secret, salt, info []byte, length int) ([]byte, error) {
	return crypto.DeriveKey(secret, salt, info, length)
}
