package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/contact-service/internal/app"
)

func newTokenCmd(rt *runtime) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			return rt.withServices(cmd.Context(), func(s *app.Services) error {
				result, err := s.Auth.IssueToken(cmd.Context(), email)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, result.Token.Value)
				fmt.Fprintf(out, "%s %s\n", yellow("expires"), result.Token.ExpiresAt.Format(time.RFC3339))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the account to issue a token for")
	return cmd
}
