package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	accountdomain "github.com/smallbiznis/orderhub/internal/account/domain"
	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	ledgerdomain "github.com/smallbiznis/orderhub/internal/ledger/domain"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// catalogEntity is the shape every reference-entity table shares.
type catalogEntity struct {
	ID   string  `gorm:"primaryKey;column:id"`
	Name *string `gorm:"column:name"`
}

// Run brings the schema up to date. Postgres uses the versioned SQL files;
// other dialects are migrated from the models.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if conn.Dialector.Name() != "postgres" {
		return AutoMigrate(conn)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates every table from its gorm model.
func AutoMigrate(conn *gorm.DB) error {
	models := append(bookingdomain.Models(), &ledgerdomain.Entry{}, &accountdomain.Account{})
	if err := conn.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, kind := range bookingdomain.EntityKinds {
		if err := conn.Table(string(kind)).AutoMigrate(&catalogEntity{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", kind, err)
		}
	}
	return nil
}
