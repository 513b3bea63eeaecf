package landmark

import "errors"

// Sentinel kinds for malformed landmark input.
var (
	ErrLandmarkCount = errors.New("wrong landmark count")
	ErrFieldCount    = errors.New("wrong landmark field count")
	ErrNonFinite     = errors.New("non-finite landmark value")
)
