package db

import (
	"testing"

	"github.com/smallbiznis/orderhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	for _, kind := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialect(config.Config{DBType: kind, DBPath: ":memory:"})
		require.NoError(t, err, kind)
		assert.Equal(t, kind, d.Name())
	}

	_, err := Dialect(config.Config{DBType: "oracle"})
	assert.EqualError(t, err, "unsupported oracle type")
}

func TestDSNTagsConnectionsWithServiceName(t *testing.T) {
	cfg := config.Config{
		DBType:    "postgres",
		DBHost:    "db",
		DBPort:    "5432",
		DBName:    "bookings",
		DBUser:    "reader",
		DBSSLMode: "disable",
		AppName:   "orderhub api",
	}
	dsn, err := DSN(cfg)
	require.NoError(t, err)
	assert.Contains(t, dsn, "application_name=orderhub-api")
	assert.Contains(t, dsn, "TimeZone=UTC")

	cfg.DBType = "mysql"
	cfg.AppName = ""
	dsn, err = DSN(cfg)
	require.NoError(t, err)
	assert.Contains(t, dsn, "connectionAttributes=program_name:orderhub")
	assert.Contains(t, dsn, "loc=UTC")
}

func TestSqliteDSN(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"", "orderhub.db?_busy_timeout=5000&_foreign_keys=on"},
		{"data/orders.db", "data/orders.db?_busy_timeout=5000&_foreign_keys=on"},
		{"file:orders.db?mode=ro", "file:orders.db?mode=ro&_busy_timeout=5000&_foreign_keys=on"},
		{"orders.db?_busy_timeout=100", "orders.db?_busy_timeout=100&_foreign_keys=on"},
		{"orders.db?_busy_timeout=1&_foreign_keys=off", "orders.db?_busy_timeout=1&_foreign_keys=off"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sqliteDSN(tc.path), tc.path)
	}
}
