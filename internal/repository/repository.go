package repository

import "errors"

// ErrConflict is returned by conditional writes (finalize, advance) when the
// row was no longer in the expected state. The approval service re-reads and
// maps this to the domain's invalid-transition error.
var ErrConflict = errors.New("record changed concurrently")
