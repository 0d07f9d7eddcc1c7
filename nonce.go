package ece

import (
	"encoding/binary"
	"math"
)

// RecordIV returns the IV for record counter: the first four bytes of
// nonceBase unchanged, followed by the big-endian 64-bit counter XORed
// with the last eight bytes of nonceBase.
func RecordIV(nonceBase []byte, counter uint64) ([]byte, error) {
	if len(nonceBase) != NonceSize {
		return nil, validationError(ErrInvalidNonceBase, "got %d octets", len(nonceBase))
	}

	mask := binary.BigEndian.Uint64(nonceBase[4:])
	iv := make([]byte, NonceSize)
	copy(iv, nonceBase[:4])
	binary.BigEndian.PutUint64(iv[4:], counter^mask)
	return iv, nil
}

// sequencer hands out record IVs for counters 0, 1, 2, ... in order.
type sequencer struct {
	base      []byte
	counter   uint64
	exhausted bool
}

func newSequencer(nonceBase []byte) (*sequencer, error) {
	if len(nonceBase) != NonceSize {
		return nil, validationError(ErrInvalidNonceBase, "got %d octets", len(nonceBase))
	}
	return &sequencer{base: nonceBase}, nil
}

// next returns the IV for the current counter and advances it by one.
// Once counter 2^64-1 has been used the sequence fails with ErrCounterOverflow.
func (s *sequencer) next() ([]byte, error) {
	if s.exhausted {
		return nil, validationError(ErrCounterOverflow, "more than 2^64 records")
	}
	iv, err := RecordIV(s.base, s.counter)
	if err != nil {
		return nil, err
	}
	if s.counter == math.MaxUint64 {
		s.exhausted = true
	} else {
		s.counter++
	}
	return iv, nil
}
