package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/app"
	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/observability"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// runtime is what every subcommand needs once flags are parsed.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "contactsctl",
		Short:         "Maintenance commands for the contact service",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			rt.cfg = cfg

			if !rt.verbose {
				rt.logger = zap.NewNop()
				return nil
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "emit structured logs")

	cmd.AddCommand(
		newMigrateCmd(rt),
		newSeedCmd(rt),
		newTokenCmd(rt),
	)
	return cmd
}

// withServices opens the configured store, builds the services and closes
// the store when fn returns.
func (rt *runtime) withServices(ctx context.Context, fn func(*app.Services) error) error {
	store, err := app.OpenStore(ctx, rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			rt.logger.Warn("close store", zap.Error(err))
		}
	}()

	return fn(app.NewServices(rt.cfg, store, nil, rt.logger))
}
