package ece

// SecretSource identifies where the shared secret for a message comes from.
// It is one of RawKey, DiffieHellman or RegistryKey.
type SecretSource interface {
	secretSource()
}

// RawKey uses the given bytes as the shared secret. A nil RawKey does not
// resolve to a secret.
type RawKey []byte

// DiffieHellman agrees a secret between the registry key pair KeyID and
// the peer's public key. The key pair must carry a label.
type DiffieHellman struct {
	PeerPublicKey []byte
	KeyID         string
}

// RegistryKey uses the static key stored in the registry under this id.
type RegistryKey string

func (RawKey) secretSource()        {}
func (DiffieHellman) secretSource() {}
func (RegistryKey) secretSource()   {}
