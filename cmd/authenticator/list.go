package main

import (
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-authenticator/pkg/command"
	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

func (a *app) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show codes for all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := command.ListRequest{Length: a.cfg.OTP.Length}

			return a.withService(cmd.Context(), func(svc *command.Service) error {
				results, err := svc.List(req)
				if err != nil {
					return err
				}
				for _, r := range results {
					if r.Err == nil {
						a.printer.code(r.Name, r.Code)
					}
				}
				for _, r := range command.Failed(results) {
					a.printer.failure(r.Name, r.Err)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntP("length", "l", otp.DefaultDigits, "number of digits in each code")

	return cmd
}
