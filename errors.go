package ece

import (
	"errors"
	"fmt"
)

// Kind classifies an error returned by this package.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// KindConfiguration marks an unresolvable secret source or key registry problem.
	KindConfiguration
	// KindValidation marks malformed input: salt, record size, framing or padding.
	KindValidation
	// KindAuthentication marks a record whose authentication tag did not verify.
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	}
	return "unknown"
}

// Class sentinels. Every error returned by this package matches exactly one
// of these with errors.Is.
var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication matches every *AuthenticationError.
	ErrAuthentication = errors.New("authentication failed")
)

// Cause sentinels for errors.Is() checks
var (
	// ErrNoSecret is returned when the secret source does not resolve to a secret.
	ErrNoSecret = errors.New("unable to determine the secret")

	// ErrMissingKeyID is returned when a Diffie-Hellman source names no local key.
	ErrMissingKeyID = errors.New("keyid is not specified with dh")

	// ErrUnknownKeyID is returned when a keyid is not in the registry.
	ErrUnknownKeyID = errors.New("keyid doesn't identify a key")

	// ErrMissingLabel is returned when a Diffie-Hellman key has no label.
	ErrMissingLabel = errors.New("keyid doesn't identify a key label")

	// ErrNotStaticKey is returned when a RegistryKey names a key pair
	// rather than a static key.
	ErrNotStaticKey = errors.New("keyid doesn't identify a static key")

	// ErrNotKeyPair is returned when a Diffie-Hellman source names a static
	// key rather than a key pair.
	ErrNotKeyPair = errors.New("keyid doesn't identify a key pair")

	// ErrUnknownMode is returned for a mode other than encrypt or decrypt.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrKeyAgreement is returned when the Diffie-Hellman computation fails,
	// typically because the peer public key is malformed.
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrInvalidSalt is returned when the salt is not exactly 16 bytes.
	ErrInvalidSalt = errors.New("salt must be a 16 octet value")

	// ErrRecordSizeTooSmall is returned when the record size is below 2.
	ErrRecordSizeTooSmall = errors.New("record size too small")

	// ErrCounterOverflow is returned when the record counter would exceed 64 bits.
	ErrCounterOverflow = errors.New("counter too big")

	// ErrInvalidNonceBase is returned when a nonce base is not 12 bytes.
	ErrInvalidNonceBase = errors.New("nonce base must be a 12 octet value")

	// ErrTruncated is returned when a ciphertext ends on a record boundary
	// or its final record is shorter than a tag.
	ErrTruncated = errors.New("message truncated")

	// ErrBadPadding is returned when a record's padding is not all zeros.
	ErrBadPadding = errors.New("bad padding")
)

// ECEError is implemented by all errors returned from this package.
type ECEError interface {
	error
	Kind() Kind
}

// ConfigurationError reports a secret source that could not be resolved.
type ConfigurationError struct {
	KeyID string // if the failure concerns a registry entry
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.KeyID != "" {
		return fmt.Sprintf("configuration error: %v: %q", e.Err, e.KeyID)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Kind implements the ECEError interface.
func (e *ConfigurationError) Kind() Kind { return KindConfiguration }

// ValidationError reports malformed caller input or a malformed ciphertext.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation error: %v: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("validation error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Kind implements the ECEError interface.
func (e *ValidationError) Kind() Kind { return KindValidation }

// AuthenticationError reports a record that failed tag verification. It
// indicates tampering or a wrong key and is never worth retrying.
type AuthenticationError struct {
	Record uint64 // zero-based record index
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for record %d: %v", e.Record, e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// Kind implements the ECEError interface.
func (e *AuthenticationError) Kind() Kind { return KindAuthentication }

// KindOf returns the kind of the first ECEError in err's chain.
func KindOf(err error) Kind {
	var e ECEError
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

func configError(cause error, keyID string) error {
	return &ConfigurationError{KeyID: keyID, Err: cause}
}

func validationError(cause error, format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...), Err: cause}
}
