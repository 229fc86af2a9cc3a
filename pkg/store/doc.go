// Package store persists authenticator accounts in a single JSON file.
//
// A Store is loaded once per invocation, mutated in memory, and written back
// as a whole. The file is a JSON object keyed by account name:
//
//	{
//	  "github": {"name": "github", "key": "JBSWY3DPEHPK3PXP", "algorithm": "SHA1", "totp": true, "counter": null},
//	  "vpn":    {"name": "vpn", "key": "GEZDGNBVGY3TQOJQ", "algorithm": "SHA256", "totp": false, "counter": 7}
//	}
//
// # Sessions
//
// Open acquires an exclusive lock next to the store file, loads it, and
// returns a Session whose Close persists the store and releases the lock.
// WithSession wraps that in a function scope so the store is written on every
// exit path, including error returns and panics:
//
//	err := store.WithSession(ctx, path, logger, func(s *store.Store) error {
//	    acct, err := s.Get("vpn")
//	    if err != nil {
//	        return err
//	    }
//	    acct.Advance()
//	    return nil
//	})
//
// A second process opening the same store while a session is active gets
// ErrLocked instead of silently overwriting the first one's changes. Writes go
// through a temporary file and an atomic rename, so a crash mid-write leaves
// the previous contents intact.
package store
