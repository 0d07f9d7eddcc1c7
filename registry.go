package ece

import (
	"bytes"
	"errors"
	"sync"
)

// Registry maps key ids to Diffie-Hellman key pairs or static keys. It is
// safe for concurrent use. A Registry is passed to Encrypt, Decrypt and
// DeriveKey with WithRegistry; there is no package-level registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	keyPair KeyPair
	static  []byte
	// label is nil when the entry has none; an empty label is valid.
	label []byte
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// AddKeyPair stores kp under id, replacing any existing entry. The entry
// has no label until SetLabel is called; use AddLabeledKeyPair to do both.
func (r *Registry) AddKeyPair(id string, kp KeyPair) error {
	if kp == nil {
		return errors.New("ece: nil key pair")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &registryEntry{keyPair: kp}
	return nil
}

// AddLabeledKeyPair stores kp under id with the given label.
func (r *Registry) AddLabeledKeyPair(id string, kp KeyPair, label string) error {
	if kp == nil {
		return errors.New("ece: nil key pair")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &registryEntry{keyPair: kp, label: append([]byte{}, label...)}
	return nil
}

// AddStaticKey stores a pre-shared key under id, replacing any existing entry.
func (r *Registry) AddStaticKey(id string, key []byte) error {
	if key == nil {
		return errors.New("ece: nil static key")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &registryEntry{static: bytes.Clone(key)}
	return nil
}

// SetLabel attaches a label to an existing entry. The label becomes part of
// the Diffie-Hellman derivation context, encoded as UTF-8.
func (r *Registry) SetLabel(id, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return configError(ErrUnknownKeyID, id)
	}
	e.label = append([]byte{}, label...)
	return nil
}

// Remove deletes the entry for id, if any.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// KeyPair returns the key pair stored under id.
func (r *Registry) KeyPair(id string) (KeyPair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || e.keyPair == nil {
		return nil, false
	}
	return e.keyPair, true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// dhEntry returns the key pair and label for a Diffie-Hellman derivation.
func (r *Registry) dhEntry(id string) (KeyPair, []byte, error) {
	if r == nil {
		return nil, nil, configError(ErrUnknownKeyID, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	switch {
	case !ok:
		return nil, nil, configError(ErrUnknownKeyID, id)
	case e.keyPair == nil:
		return nil, nil, configError(ErrNotKeyPair, id)
	case e.label == nil:
		return nil, nil, configError(ErrMissingLabel, id)
	}
	return e.keyPair, e.label, nil
}

// staticKey returns the pre-shared key stored under id.
func (r *Registry) staticKey(id string) ([]byte, error) {
	if r == nil {
		return nil, configError(ErrUnknownKeyID, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	switch {
	case !ok:
		return nil, configError(ErrUnknownKeyID, id)
	case e.static == nil:
		return nil, configError(ErrNotStaticKey, id)
	}
	return e.static, nil
}
