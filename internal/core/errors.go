package core

import "errors"

// ErrInvalidArgument reports a caller contract violation such as a negative
// step count or a zero-sized domain. Operations wrap it with context.
var ErrInvalidArgument = errors.New("invalid argument")
