package migration

import (
	"github.com/smallbiznis/orderhub/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module migrates on start when MIGRATE_ON_START is set.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if !cfg.MigrateOnStart {
			return nil
		}
		log.Named("migration").Info("applying migrations", zap.String("dialect", conn.Dialector.Name()))
		return Run(conn)
	}),
)
