package lock

import "errors"

// ErrLockTimeout is returned when a table lock cannot be acquired within
// the timeout period.
var ErrLockTimeout = errors.New("table lock acquisition timeout")
