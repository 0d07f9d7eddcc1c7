package ece

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/majacQ/encrypted-content-encoding/internal/crypto"
)

const (
	// SaltSize is the required salt length in bytes.
	SaltSize = 16
	// KeySize is the length of the derived content-encryption key.
	KeySize = crypto.AESKeySize
	// NonceSize is the length of the derived nonce base and of each record IV.
	NonceSize = crypto.AESNonceSize
	// TagSize is the authentication tag overhead of each record.
	TagSize = crypto.AESTagSize
)

// DerivedMaterial is the per-message key and nonce base.
type DerivedMaterial struct {
	Key       []byte
	NonceBase []byte
}

// DeriveKey derives the content-encryption key and nonce base for a message.
//
// The derivation:
//  1. Resolve the secret source to a secret and a context string. Only
//     DiffieHellman sources have a non-empty context:
//     label || 0x00 || len(receiver) || receiver || len(sender) || sender.
//  2. Unless WithoutAuthSecret is given, replace the secret with
//     HKDF(salt=authSecret, info="Content-Encoding: auth\x00", L=32).
//  3. key = HKDF(salt, info="Content-Encoding: aesgcm128\x00"||context, L=16)
//     nonceBase = HKDF(salt, info="Content-Encoding: nonce\x00"||context, L=12)
func DeriveKey(mode Mode, salt []byte, source SecretSource, opts ...Option) (*DerivedMaterial, error) {
	return deriveKey(mode, salt, source, newConfig(opts))
}

func deriveKey(mode Mode, salt []byte, source SecretSource, cfg *config) (*DerivedMaterial, error) {
	if !mode.valid() {
		return nil, &ConfigurationError{Err: fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))}
	}
	if len(salt) != SaltSize {
		return nil, validationError(ErrInvalidSalt, "got %d octets", len(salt))
	}

	secret, context, err := resolveSecret(mode, source, cfg.registry)
	if err != nil {
		return nil, err
	}

	if cfg.hasAuth {
		secret, err = cfg.kdf.Derive(secret, cfg.authSecret, crypto.BuildInfo(crypto.InfoAuth, nil), crypto.HKDFAuthSize)
		if err != nil {
			return nil, fmt.Errorf("derive auth secret: %w", err)
		}
	}

	key, err := cfg.kdf.Derive(secret, salt, crypto.BuildInfo(crypto.InfoAESGCM128, context), KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	nonce, err := cfg.kdf.Derive(secret, salt, crypto.BuildInfo(crypto.InfoNonce, context), NonceSize)
	if err != nil {
		return nil, fmt.Errorf("derive nonce: %w", err)
	}

	return &DerivedMaterial{Key: key, NonceBase: nonce}, nil
}

// resolveSecret returns the shared secret and derivation context for source.
func resolveSecret(mode Mode, source SecretSource, registry *Registry) ([]byte, []byte, error) {
	switch src := source.(type) {
	case RawKey:
		if src == nil {
			return nil, nil, configError(ErrNoSecret, "")
		}
		return src, nil, nil

	case DiffieHellman:
		return resolveDH(mode, src, registry)

	case RegistryKey:
		if src == "" {
			return nil, nil, configError(ErrNoSecret, "")
		}
		key, err := registry.staticKey(string(src))
		if err != nil {
			return nil, nil, err
		}
		return key, nil, nil
	}
	return nil, nil, configError(ErrNoSecret, "")
}

func resolveDH(mode Mode, src DiffieHellman, registry *Registry) ([]byte, []byte, error) {
	if src.KeyID == "" {
		return nil, nil, configError(ErrMissingKeyID, "")
	}
	if src.PeerPublicKey == nil {
		return nil, nil, configError(ErrNoSecret, src.KeyID)
	}

	local, label, err := registry.dhEntry(src.KeyID)
	if err != nil {
		return nil, nil, err
	}

	if len(src.PeerPublicKey) > math.MaxUint16 {
		return nil, nil, validationError(ErrKeyAgreement, "peer public key is %d octets", len(src.PeerPublicKey))
	}

	var sender, receiver []byte
	if mode == ModeEncrypt {
		sender, receiver = local.PublicKey(), src.PeerPublicKey
	} else {
		sender, receiver = src.PeerPublicKey, local.PublicKey()
	}

	secret, err := local.SharedSecret(src.PeerPublicKey)
	if err != nil {
		return nil, nil, validationError(ErrKeyAgreement, "keyid %q: %v", src.KeyID, err)
	}

	context := make([]byte, 0, len(label)+1+2+len(receiver)+2+len(sender))
	context = append(context, label...)
	context = append(context, 0)
	context = appendLengthPrefixed(context, receiver)
	context = appendLengthPrefixed(context, sender)
	return secret, context, nil
}

func appendLengthPrefixed(dst, key []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(key)))
	return append(dst, key...)
}
