package inference

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks request validation failures so transport layers
// can map them to client errors rather than server faults.
var ErrInvalidRequest = errors.New("invalid request")

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}
