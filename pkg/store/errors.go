package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAccount indicates an account with the same name already exists.
	ErrDuplicateAccount = errors.New("store: account already exists")

	// ErrAccountNotFound indicates no account has the requested name.
	ErrAccountNotFound = errors.New("store: account not found")

	// ErrInvalidAccount indicates an account record violates the data model.
	ErrInvalidAccount = errors.New("store: invalid account")

	// ErrCorruptStore indicates the backing file could not be read or parsed.
	ErrCorruptStore = errors.New("store: corrupt account store")

	// ErrPersistence indicates the store could not be written back.
	ErrPersistence = errors.New("store: failed to persist account store")

	// ErrLocked indicates another process holds the store.
	ErrLocked = errors.New("store: account store is in use by another process")
)

// AccountError ties a failure to the account it concerns.
type AccountError struct {
	Name string
	Err  error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %q: %v", e.Name, e.Err)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func accountErr(name string, err error) error {
	return &AccountError{Name: name, Err: err}
}
