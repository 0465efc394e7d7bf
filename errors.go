package pidalloc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pidalloc/internal/bitmap"
)

var (
	// ErrExhausted is returned by AllocateContext when no ID became free
	// before the context ended.
	ErrExhausted = errors.New("id pool exhausted")
)

// ErrInvalidOrder indicates an order outside [1, MaxOrder].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOrder struct {
	Order int
	cause error
}

func (e *ErrInvalidOrder) Error() string {
	return fmt.Sprintf("invalid order: %d (must be between 1 and %d)", e.Order, MaxOrder)
}

func (e *ErrInvalidOrder) Unwrap() error { return e.cause }

func translateError(err error, order int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bitmap.ErrInvalidOrder) {
		return &ErrInvalidOrder{Order: order, cause: err}
	}
	return err
}
