package repository

import "errors"

// ErrNotFound is returned when a record does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")
