package cli

import (
	"fmt"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}

	var user, role string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token for the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if err := cfg.RequireTokenSecret(); err != nil {
				return err
			}
			token, err := auth.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL).Issue(user, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&user, "user", "", "User the token is issued to")
	issue.Flags().StringVar(&role, "role", "office", "Role claim (office or crew)")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}
