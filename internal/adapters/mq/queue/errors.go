package queue

import "errors"

// Reasons an enqueue can fail.
var (
	ErrClosed = errors.New("queue closed")
	ErrFull   = errors.New("queue full")
)
