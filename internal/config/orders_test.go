package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrdersConfigDefaultsWhenFileMissing(t *testing.T) {
	v := viper.New()
	v.SetConfigName("orders")
	v.SetConfigType("yml")
	v.AddConfigPath(t.TempDir())

	holder, err := newOrdersConfigHolder(v, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultOrdersConfig().SourceTimeout, holder.Get().SourceTimeout)
	assert.Equal(t, "phone.orderhub.local", holder.Get().PseudoEmailDomain)
	assert.Empty(t, holder.Get().DisabledSources)
}

func TestOrdersConfigEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_TIMEOUT", "750ms")
	t.Setenv("DISABLED_SOURCES", "Gifts, tour")
	t.Setenv("ORDERHUB_CLAIM_FUZZY_MIN_LENGTH", "8")

	v := viper.New()
	v.AddConfigPath(t.TempDir())
	v.SetConfigName("orders")

	holder, err := newOrdersConfigHolder(v, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 750*time.Millisecond, cfg.SourceTimeout)
	assert.Equal(t, []string{"gifts", "tour"}, cfg.DisabledSources)
	assert.Equal(t, 8, cfg.ClaimFuzzyMinLength)
	assert.True(t, cfg.IsDisabled("GIFTS"))
	assert.False(t, cfg.IsDisabled("hotel"))
}

func TestOrdersConfigFromFileAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.yml")
	write := func(body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write(`orders:
  pseudo_email_domain: Phone.Example.NG
  source_timeout: 2s
  reconcile_concurrency: 2
  disabled_sources: [chops]
`)

	v := viper.New()
	v.SetConfigFile(path)
	holder, err := newOrdersConfigHolder(v, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "phone.example.ng", cfg.PseudoEmailDomain)
	assert.Equal(t, 2*time.Second, cfg.SourceTimeout)
	assert.Equal(t, 2, cfg.ReconcileConcurrency)
	assert.Equal(t, []string{"chops"}, cfg.DisabledSources)
	assert.Equal(t, 6, cfg.ClaimFuzzyMinLength)

	write(`orders:
  pseudo_email_domain: phone.example.ng
  source_timeout: 3s
`)
	assert.Eventually(t, func() bool {
		return holder.Get().SourceTimeout == 3*time.Second
	}, 5*time.Second, 50*time.Millisecond)
}

func TestValidateOrdersConfig(t *testing.T) {
	cfg := DefaultOrdersConfig()
	assert.NoError(t, validateOrdersConfig(cfg))

	bad := cfg
	bad.SourceTimeout = 0
	assert.Error(t, validateOrdersConfig(bad))

	bad = cfg
	bad.PseudoEmailDomain = "x@y"
	assert.Error(t, validateOrdersConfig(bad))

	bad = cfg
	bad.ClaimRateLimit.Capacity = 0
	assert.Error(t, validateOrdersConfig(bad))
}
