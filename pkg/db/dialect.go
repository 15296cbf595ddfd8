package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/smallbiznis/orderhub/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteBusyTimeoutMS covers the seven concurrent source reads of one listing
// queueing behind a claim write.
const sqliteBusyTimeoutMS = 5000

func Dialect(cfg config.Config) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.DBType {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// DSN builds the connection string for cfg.DBType. Connections are tagged with
// the service name so the booking databases can tell orderhub reads apart.
func DSN(cfg config.Config) (string, error) {
	switch cfg.DBType {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&connectionAttributes=program_name:%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
			url.QueryEscape(applicationName(cfg)),
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC application_name=%s",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			cfg.DBSSLMode,
			applicationName(cfg),
		), nil
	case "sqlite":
		return sqliteDSN(cfg.DBPath), nil
	default:
		return "", fmt.Errorf("unsupported %s type", cfg.DBType)
	}
}

func applicationName(cfg config.Config) string {
	name := strings.Join(strings.Fields(cfg.AppName), "-")
	if name == "" {
		return "orderhub"
	}
	return name
}

// sqliteDSN enables foreign keys and a busy timeout unless the path already sets them.
func sqliteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "orderhub.db"
	}
	params := make([]string, 0, 2)
	if !strings.Contains(path, "_busy_timeout=") {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", sqliteBusyTimeoutMS))
	}
	if !strings.Contains(path, "_foreign_keys=") {
		params = append(params, "_foreign_keys=on")
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}
