package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
)

const (
	// FileMode is the permission of the store file.
	FileMode fs.FileMode = 0o600
	// DirMode is the permission of the directory holding the store.
	DirMode fs.FileMode = 0o700
)

// Store maps account names to accounts. It is not safe for concurrent use.
type Store struct {
	path     string
	accounts map[string]*Account
}

// New returns an empty store backed by path.
func New(path string) *Store {
	return &Store{
		path:     path,
		accounts: map[string]*Account{},
	}
}

// Provision creates the store directory and an empty store file with
// owner-only permissions if they do not exist yet.
func Provision(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("store: failed to create store directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: failed to create store file: %w", err)
	}
	return f.Close()
}

// Load reads the store at path. A missing, empty, or whitespace-only file
// yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	s := New(path)
	if err := s.decode(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) decode(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var accounts map[string]*Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if accounts == nil {
		return fmt.Errorf("%w: top-level value is not an object", ErrCorruptStore)
	}

	for name, acct := range accounts {
		if acct == nil {
			return fmt.Errorf("%w: account %q has no record", ErrCorruptStore, name)
		}
		if acct.Name == "" {
			acct.Name = name
		}
		if acct.Name != name {
			return fmt.Errorf("%w: account %q stored under key %q", ErrCorruptStore, acct.Name, name)
		}
		if err := acct.normalize(); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}
	}
	s.accounts = accounts
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	return len(s.accounts)
}

// Names returns the account names in sorted order.
func (s *Store) Names() []string {
	names := lo.Keys(s.accounts)
	slices.Sort(names)
	return names
}

// All iterates accounts in name order. The yielded accounts are live; changes
// made through them are persisted.
func (s *Store) All() iter.Seq2[string, *Account] {
	return func(yield func(string, *Account) bool) {
		for _, name := range s.Names() {
			acct, ok := s.accounts[name]
			if !ok {
				continue
			}
			if !yield(name, acct) {
				return
			}
		}
	}
}

// Add inserts a copy of acct. The store is unchanged if the name is taken.
func (s *Store) Add(acct Account) error {
	a := acct.clone()
	if err := a.normalize(); err != nil {
		return accountErr(acct.Name, err)
	}
	if _, ok := s.accounts[a.Name]; ok {
		return accountErr(a.Name, ErrDuplicateAccount)
	}
	s.accounts[a.Name] = a
	return nil
}

// Delete removes the named account.
func (s *Store) Delete(name string) error {
	if _, ok := s.accounts[name]; !ok {
		return accountErr(name, ErrAccountNotFound)
	}
	delete(s.accounts, name)
	return nil
}

// Get returns the live account for name.
func (s *Store) Get(name string) (*Account, error) {
	acct, ok := s.accounts[name]
	if !ok {
		return nil, accountErr(name, ErrAccountNotFound)
	}
	return acct, nil
}

// MarshalJSON encodes the store as an object keyed by account name.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.accounts)
}

// Persist writes the whole store to its file, replacing it atomically.
func (s *Store) Persist() error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	buf.WriteByte('\n')
	data := buf.Bytes()

	if err := writeFileAtomic(s.path, data, FileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
