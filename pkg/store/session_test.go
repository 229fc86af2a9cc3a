package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

func TestOpenProvisionsAndLoads(t *testing.T) {
	path := tempStorePath(t)

	sess, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Store().Len())

	require.NoError(t, sess.Store().Add(NewAccount("vpn", rfcSecret, otp.AlgorithmSHA1, otp.TypeHOTP)))
	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())

	sess, err = Open(path)
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, []string{"vpn"}, sess.Store().Names())
}

func TestOpenCorruptDoesNotOverwrite(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), DirMode))
	require.NoError(t, os.WriteFile(path, []byte("{broken"), FileMode))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))

	// the lock was released
	require.NoError(t, os.WriteFile(path, nil, FileMode))
	sess, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, sess.Close())
}

func TestWithSessionPersistsCounterAdvance(t *testing.T) {
	path := tempStorePath(t)
	ctx := context.Background()

	err := WithSession(ctx, path, nil, func(s *Store) error {
		return s.Add(NewAccount("vpn", rfcSecret, otp.AlgorithmSHA1, otp.TypeHOTP))
	})
	require.NoError(t, err)

	for want := uint64(1); want <= 3; want++ {
		err := WithSession(ctx, path, nil, func(s *Store) error {
			acct, err := s.Get("vpn")
			if err != nil {
				return err
			}
			acct.Advance()
			return nil
		})
		require.NoError(t, err)

		s, err := Load(path)
		require.NoError(t, err)
		acct, err := s.Get("vpn")
		require.NoError(t, err)
		assert.Equal(t, want, acct.CounterValue())
	}
}

func TestWithSessionPersistsOnError(t *testing.T) {
	path := tempStorePath(t)
	boom := errors.New("boom")

	err := WithSession(context.Background(), path, nil, func(s *Store) error {
		if err := s.Add(NewAccount("vpn", rfcSecret, otp.AlgorithmSHA1, otp.TypeHOTP)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vpn"}, s.Names())
}

func TestWithSessionPersistsOnPanic(t *testing.T) {
	path := tempStorePath(t)

	require.Panics(t, func() {
		_ = WithSession(context.Background(), path, nil, func(s *Store) error {
			if err := s.Add(NewAccount("vpn", rfcSecret, otp.AlgorithmSHA1, otp.TypeHOTP)); err != nil {
				return err
			}
			panic("unexpected")
		})
	})

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vpn"}, s.Names())
}

func TestWithSessionPersistenceFailureIsNotFatal(t *testing.T) {
	path := tempStorePath(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := WithSession(context.Background(), path, logger, func(s *Store) error {
		// replace the store file with a directory so the final rename fails
		if err := os.Remove(path); err != nil {
			return err
		}
		return os.Mkdir(path, DirMode)
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "failed to persist account store")
}

func TestWithSessionCancelledContext(t *testing.T) {
	path := tempStorePath(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithSession(ctx, path, nil, func(*Store) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
