package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/contact-service/internal/app"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (or indexes) for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Migrate(cmd.Context(), rt.cfg, rt.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s store is up to date\n", green("ok"), rt.cfg.Store.Driver)
			return nil
		},
	}
}
