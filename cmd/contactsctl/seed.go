package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/contact-service/internal/app"
	"github.com/spec-kit/contact-service/internal/service"
)

func newSeedCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo accounts and their contacts",
		Long: `Creates the demo users and their contacts. Records that already exist
are left untouched, so the command can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withServices(cmd.Context(), func(s *app.Services) error {
				report, err := s.Seeder.Seed(cmd.Context(), service.DemoAccounts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s users: %d created, %d already present\n",
					green("ok"), report.UsersCreated, report.UsersExisting)
				fmt.Fprintf(out, "%s contacts: %d created, %d skipped\n",
					green("ok"), report.ContactsCreated, report.ContactsSkipped)

				fmt.Fprintln(out, bold("Demo credentials:"))
				for _, account := range service.DemoAccounts {
					fmt.Fprintf(out, "  %s / %s\n", account.Email, yellow(account.Password))
				}
				return nil
			})
		},
	}
}
