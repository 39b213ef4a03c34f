package cli

import (
	"fmt"
	"time"

	"github.com/erp/papelera/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func (a *app) tokenCmd() *cobra.Command {
	var (
		in      auth.TokenInput
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if in.Username == "" {
				in.Username = in.UserID
			}
			token, expires, err := auth.NewJWTService(cfg.JWT).GenerateAccessToken(in)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintf(out, "%s user=%s roles=%s superuser=%t expires=%s\n",
					dimText("#"), in.UserID, joinOr(in.Roles, "-"), in.Superuser, expires.Format(time.RFC3339))
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.UserID, "user-id", "", "subject of the token (required)")
	cmd.Flags().StringVar(&in.Username, "username", "", "username claim, defaults to the user id")
	cmd.Flags().StringSliceVar(&in.Roles, "role", nil, "group the user belongs to, repeatable")
	cmd.Flags().BoolVar(&in.Superuser, "superuser", false, "grant superuser rights")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the claims before the token")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
