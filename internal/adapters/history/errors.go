package history

import "errors"

var (
	ErrNotFound     = errors.New("no sessions recorded for user")
	ErrInvalidLimit = errors.New("limit must be >= 1")
	ErrMissingID    = errors.New("session_id and user_id are required")
	ErrDisabled     = errors.New("session history is disabled")
)
