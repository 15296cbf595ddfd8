package main

import (
	"github.com/smallbiznis/orderhub/internal/account"
	"github.com/smallbiznis/orderhub/internal/auth"
	"github.com/smallbiznis/orderhub/internal/booking"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/config"
	"github.com/smallbiznis/orderhub/internal/ledger"
	"github.com/smallbiznis/orderhub/internal/migration"
	"github.com/smallbiznis/orderhub/internal/observability"
	"github.com/smallbiznis/orderhub/internal/orders"
	"github.com/smallbiznis/orderhub/internal/ratelimit"
	"github.com/smallbiznis/orderhub/internal/server"
	"github.com/smallbiznis/orderhub/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			// Core Infrastructure
			config.Module,
			observability.Module,
			db.Module,
			clock.Module,
			migration.Module,

			// Functional Domains
			account.Module,
			booking.Module,
			ledger.Module,
			auth.Module,
			ratelimit.Module,
			orders.Module,

			server.Module,
		)
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}
