package main

import (
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-authenticator/pkg/command"
)

func (a *app) deleteCommand() *cobra.Command {
	var req command.DeleteRequest

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd.Context(), func(svc *command.Service) error {
				if err := svc.Delete(req); err != nil {
					return err
				}
				a.printer.done("deleted " + req.Account)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Account, "account", "", "name of the account")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
