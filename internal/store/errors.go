package store

import "errors"

// ErrLockPoisoned is returned once a previous holder of the store's lock
// panicked while holding it.
var ErrLockPoisoned = errors.New("lock poisoned")

// LockError reports a store operation that could not acquire a usable lock.
type LockError struct {
	Op  string // append, snapshot, len
	Err error
}

func (e *LockError) Error() string {
	return "store " + e.Op + ": " + e.Err.Error()
}

func (e *LockError) Unwrap() error {
	return e.Err
}
