package analysis

import "errors"

// Sentinel errors surfaced through Result.Error.
var (
	ErrUnsupportedPose  = errors.New("pose not supported for quality analysis")
	ErrInvalidLandmarks = errors.New("invalid landmarks")
)
