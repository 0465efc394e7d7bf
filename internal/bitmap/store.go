package bitmap

import (
	"errors"
	"math/bits"
)

// WordBits is the number of ID slots tracked by one detail word.
const WordBits = 64

// MaxOrder is the largest number of detail words a Store can hold.
// The summary is a single word with one bit per detail word.
const MaxOrder = WordBits

const (
	wordShift = 6 // log2(WordBits)
	wordMask  = WordBits - 1
	fullWord  = ^uint64(0)
)

// ErrInvalidOrder is returned by New when order is outside [1, MaxOrder].
var ErrInvalidOrder = errors.New("order out of range")

// Store is a two-level allocation bitmap.
//
// Bit j of details[i] is set iff ID i*WordBits+j is allocated. Bit i of
// summary is set iff details[i] is completely full. The summary is a
// derived cache and is kept exact by Allocate and Recycle.
//
// Store is not safe for concurrent use; callers provide locking.
type Store struct {
	summary uint64
	details []uint64
	used    int
}

// New creates an empty store with order detail words.
func New(order int) (*Store, error) {
	if order < 1 || order > MaxOrder {
		return nil, ErrInvalidOrder
	}
	return &Store{details: make([]uint64, order)}, nil
}

// Allocate claims the lowest free ID.
// It returns false when every block is full.
func (s *Store) Allocate() (uint64, bool) {
	for i, w := range s.details {
		if w == fullWord {
			continue
		}
		bit := bits.TrailingZeros64(^w)
		w |= 1 << bit
		s.details[i] = w
		if w == fullWord {
			s.summary |= 1 << i
		}
		s.used++
		return uint64(i)<<wordShift | uint64(bit), true
	}
	return 0, false
}

// Recycle releases id and reports whether it was allocated.
// Out-of-range and already free IDs leave the store untouched.
func (s *Store) Recycle(id uint64) bool {
	block, mask, ok := s.locate(id)
	if !ok || s.details[block]&mask == 0 {
		return false
	}
	s.details[block] &^= mask
	if s.details[block] != fullWord {
		s.summary &^= 1 << block
	}
	s.used--
	return true
}

// Contains reports whether id is allocated. IDs beyond Cap are never
// allocated.
func (s *Store) Contains(id uint64) bool {
	block, mask, ok := s.locate(id)
	return ok && s.details[block]&mask != 0
}

func (s *Store) locate(id uint64) (int, uint64, bool) {
	block := id >> wordShift
	if block >= uint64(len(s.details)) {
		return 0, 0, false
	}
	return int(block), 1 << (id & wordMask), true
}

// Summary returns the summary word: bit i is set iff block i is full.
func (s *Store) Summary() uint64 { return s.summary }

// Order returns the number of detail words.
func (s *Store) Order() int { return len(s.details) }

// Cap returns the total number of IDs.
func (s *Store) Cap() int { return len(s.details) * WordBits }

// Len returns the number of allocated IDs.
func (s *Store) Len() int { return s.used }

// Available returns the number of free IDs.
func (s *Store) Available() int { return s.Cap() - s.used }

// AppendWords appends a copy of the detail words to dst.
func (s *Store) AppendWords(dst []uint64) []uint64 {
	return append(dst, s.details...)
}

// Reset frees every ID.
func (s *Store) Reset() {
	clear(s.details)
	s.summary = 0
	s.used = 0
}
