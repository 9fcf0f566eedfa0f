package imagesource

import (
	"errors"
	"fmt"
)

// MinDistance is the smallest allowed source-receiver separation, in sample
// periods.
const MinDistance = 0.5

// Errors returned by the image-source kernels.
var (
	ErrSourceTooClose = errors.New("imagesource: source and receiver are closer than half a sample period")
	ErrInvalidPoints  = errors.New("imagesource: number of points must be positive")
	ErrNoReceivers    = errors.New("imagesource: no receivers given")
	ErrOutsideRoom    = errors.New("imagesource: position lies outside the room")
)

// ReceiverError reports which receiver of a batch call failed validation.
type ReceiverError struct {
	Index int
	Err   error
}

func (e *ReceiverError) Error() string {
	return fmt.Sprintf("imagesource: receiver %d: %v", e.Index, e.Err)
}

func (e *ReceiverError) Unwrap() error {
	return e.Err
}
