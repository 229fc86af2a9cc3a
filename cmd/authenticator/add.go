package main

import (
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-authenticator/pkg/command"
	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

func (a *app) addCommand() *cobra.Command {
	var (
		req        command.AddRequest
		totp, hotp bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case hotp:
				req.Mode = string(otp.TypeHOTP)
			case totp:
				req.Mode = string(otp.TypeTOTP)
			default:
				req.Mode = string(a.cfg.Mode())
			}
			if req.Algorithm == "" {
				req.Algorithm = string(a.cfg.Algorithm())
			}

			return a.withService(cmd.Context(), func(svc *command.Service) error {
				secret, err := svc.Add(req)
				if err != nil {
					return err
				}
				if req.Generate {
					a.printer.secret(req.Account, secret)
				}
				a.printer.done("added " + req.Account)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Account, "account", "", "name of the account")
	flags.StringVarP(&req.Key, "key", "k", "", "base32 secret key")
	flags.BoolVarP(&req.Generate, "generate", "g", false, "generate a random secret key")
	flags.BoolVar(&totp, "totp", false, "time based account (default)")
	flags.BoolVar(&hotp, "hotp", false, "counter based account")
	flags.StringVarP(&req.Algorithm, "algorithm", "a", "", "hash algorithm: sha1, sha256, sha384 or sha512 (default sha1)")

	_ = cmd.MarkFlagRequired("account")
	cmd.MarkFlagsMutuallyExclusive("totp", "hotp")
	cmd.MarkFlagsMutuallyExclusive("key", "generate")
	cmd.MarkFlagsOneRequired("key", "generate")

	return cmd
}
