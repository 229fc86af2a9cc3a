package main

import (
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-authenticator/pkg/command"
	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

func (a *app) viewCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the code for one account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := command.ViewRequest{Account: account, Length: a.cfg.OTP.Length}

			return a.withService(cmd.Context(), func(svc *command.Service) error {
				code, err := svc.View(req)
				if err != nil {
					return err
				}
				a.printer.plain(code)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "name of the account")
	cmd.Flags().IntP("length", "l", otp.DefaultDigits, "number of digits in the code")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
