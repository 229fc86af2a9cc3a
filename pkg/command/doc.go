// Package command implements the authenticator operations (add, delete,
// list and view) on top of an account store.
//
// A Service works on a store that the caller has already opened, normally
// inside store.WithSession so that counter changes are persisted when the
// operation finishes:
//
//	err := store.WithSession(ctx, cfg.StorePath(), logger, func(s *store.Store) error {
//	    svc, err := command.New(s)
//	    if err != nil {
//	        return err
//	    }
//	    code, err := svc.View(command.ViewRequest{Account: "vpn", Length: 6})
//	    ...
//	})
//
// Generating a code for an HOTP account advances its counter by one. TOTP
// accounts are never modified by View or List.
package command
