package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/configuration"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "backoffice",
		Short:         "Back-office maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(importCmd(), seedCmd())
	return cmd
}

// withPool opens the configured database pool and hands a
// pool-carrying context to fn.
func withPool(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return fn(composables.WithPool(ctx, pool), pool)
}
