//go:build !unix

package store

// Without flock, concurrent invocations fall back to last writer wins.
type fileLock struct{}

func lockFile(string) (*fileLock, error) {
	return &fileLock{}, nil
}

func (*fileLock) unlock() error {
	return nil
}
