package ece

import "fmt"

// Mode selects which side of a Diffie-Hellman exchange the local key plays
// when building the derivation context. It does not change the cipher
// direction.
type Mode int

const (
	// ModeEncrypt treats the local key as the sender.
	ModeEncrypt Mode = iota + 1
	// ModeDecrypt treats the local key as the receiver.
	ModeDecrypt
)

func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	}
	return "unknown"
}

func (m Mode) valid() bool {
	return m == ModeEncrypt || m == ModeDecrypt
}

// ParseMode converts "encrypt" or "decrypt" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "encrypt":
		return ModeEncrypt, nil
	case "decrypt":
		return ModeDecrypt, nil
	}
	return 0, &ConfigurationError{Err: fmt.Errorf("%w: %q", ErrUnknownMode, s)}
}
