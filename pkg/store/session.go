package store

import (
	"context"
	"errors"
	"log/slog"
)

// LockSuffix is appended to the store path to name its lock file.
const LockSuffix = ".lock"

// Session is an open, locked store. Close persists it.
type Session struct {
	store  *Store
	lock   *fileLock
	closed bool
}

// Open provisions the store file, takes the store lock and loads the
// accounts. It fails with ErrLocked if another process has the store open.
func Open(path string) (*Session, error) {
	if err := Provision(path); err != nil {
		return nil, err
	}

	lock, err := lockFile(path + LockSuffix)
	if err != nil {
		return nil, err
	}

	s, err := Load(path)
	if err != nil {
		return nil, errors.Join(err, lock.unlock())
	}

	return &Session{store: s, lock: lock}, nil
}

// Store returns the session's store.
func (s *Session) Store() *Store {
	return s.store
}

// Close persists the store and releases the lock. Calling Close more than
// once is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	err := s.store.Persist()
	return errors.Join(err, s.lock.unlock())
}

// WithSession opens the store at path, calls fn with it, and persists the
// store however fn exits. The returned error is fn's; a failure to persist is
// logged to logger and does not change it.
func WithSession(ctx context.Context, path string, logger *slog.Logger, fn func(*Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	sess, err := Open(path)
	if err != nil {
		return err
	}
	logger.Debug("account store opened", "path", path, "accounts", sess.Store().Len())

	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("failed to persist account store", "path", path, "err", err)
			return
		}
		logger.Debug("account store persisted", "path", path)
	}()

	return fn(sess.Store())
}
