package main

import (
	"context"
	"fmt"

	"innovation_showcase/internal/service"

	"github.com/spf13/cobra"
)

var createAdminInput service.RegisterInput

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		u, err := a.services.CreateAdmin(context.Background(), createAdminInput)
		if err != nil {
			return err
		}
		a.log.Infow("admin created", "user_id", u.ID, "username", u.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&createAdminInput.Username, "username", "", "admin username")
	f.StringVar(&createAdminInput.Email, "email", "", "admin email")
	f.StringVar(&createAdminInput.Password, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
