package ece

import (
	"bytes"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Encrypt encrypts plaintext into a sequence of records.
//
// Each record carries rs-1 octets of plaintext behind a zero padding-length
// octet and is followed by a 16 octet tag. Records are produced for every
// chunk offset in [0, len(plaintext)], so a plaintext whose length is a
// multiple of rs-1 ends with an empty record. That record lets Decrypt
// tell an aligned message from a truncated one.
func Encrypt(plaintext, salt []byte, source SecretSource, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	dm, err := deriveKey(ModeEncrypt, salt, source, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.recordSize < 2 {
		return nil, validationError(ErrRecordSizeTooSmall, "got %d", cfg.recordSize)
	}

	chunk := cfg.recordSize - 1
	count := len(plaintext)/chunk + 1

	ivs, err := recordIVs(dm.NonceBase, count)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(plaintext)+count*(1+TagSize))
	stride := cfg.recordSize + TagSize

	err = forEachRecord(count, cfg.parallelism, func(i int) error {
		start := i * chunk
		end := min(start+chunk, len(plaintext))

		// Padding length is always zero.
		record := make([]byte, 1+end-start)
		copy(record[1:], plaintext[start:end])

		sealed, err := cfg.cipher.Seal(dm.Key, ivs[i], record)
		if err != nil {
			return fmt.Errorf("seal record %d: %w", i, err)
		}
		if len(sealed) != len(record)+TagSize {
			return fmt.Errorf("seal record %d: cipher returned %d octets, want %d", i, len(sealed), len(record)+TagSize)
		}

		copy(out[i*stride:], sealed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Decrypt reverses Encrypt. The same salt, secret source, record size and
// auth secret must be supplied. Nothing is returned unless every record
// authenticates and carries valid padding.
func Decrypt(ciphertext, salt []byte, source SecretSource, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	dm, err := deriveKey(ModeDecrypt, salt, source, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.recordSize < 2 {
		return nil, validationError(ErrRecordSizeTooSmall, "got %d", cfg.recordSize)
	}

	stride := cfg.recordSize + TagSize
	if len(ciphertext)%stride == 0 {
		return nil, validationError(ErrTruncated, "%d octets ends on a record boundary", len(ciphertext))
	}

	count := (len(ciphertext) + stride - 1) / stride

	ivs, err := recordIVs(dm.NonceBase, count)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, count)

	err = forEachRecord(count, cfg.parallelism, func(i int) error {
		start := i * stride
		end := min(start+stride, len(ciphertext))
		record := ciphertext[start:end]

		if len(record) < TagSize {
			return validationError(ErrTruncated, "record %d is %d octets", i, len(record))
		}

		split := len(record) - TagSize
		data, err := cfg.cipher.Open(dm.Key, ivs[i], record[:split], record[split:])
		if err != nil {
			return &AuthenticationError{Record: uint64(i), Err: err}
		}

		payload, err := unpad(data, i)
		if err != nil {
			return err
		}
		parts[i] = payload
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bytes.Join(parts, nil), nil
}

// unpad strips the padding-length octet and the padding it announces.
func unpad(data []byte, record int) ([]byte, error) {
	if len(data) == 0 {
		return nil, validationError(ErrBadPadding, "record %d has no padding length", record)
	}

	pad := int(data[0])
	if 1+pad > len(data) {
		return nil, validationError(ErrBadPadding, "record %d declares %d padding octets in %d", record, pad, len(data)-1)
	}
	for _, b := range data[1 : 1+pad] {
		if b != 0 {
			return nil, validationError(ErrBadPadding, "record %d has non-zero padding", record)
		}
	}
	return data[1+pad:], nil
}

// recordIVs returns the IVs for records 0 through n-1.
func recordIVs(nonceBase []byte, n int) ([][]byte, error) {
	seq, err := newSequencer(nonceBase)
	if err != nil {
		return nil, err
	}

	ivs := make([][]byte, n)
	for i := range ivs {
		if ivs[i], err = seq.next(); err != nil {
			return nil, err
		}
	}
	return ivs, nil
}

// forEachRecord calls fn for record indexes 0 through n-1, running up to
// parallelism calls at once. Sequential runs stop at the first error.
func forEachRecord(n, parallelism int, fn func(i int) error) error {
	if parallelism <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
