package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// OrdersConfig tunes order listing and booking claims at runtime.
type OrdersConfig struct {
	PseudoEmailDomain    string
	SourceTimeout        time.Duration
	ReconcileConcurrency int
	ClaimFuzzyMinLength  int
	DisabledSources      []string
	ClaimRateLimit       RateLimitConfig
}

type RateLimitConfig struct {
	Enabled         bool
	Capacity        int
	RefillPerSecond float64
}

// IsDisabled reports whether source was switched off.
func (c OrdersConfig) IsDisabled(source string) bool {
	for _, s := range c.DisabledSources {
		if strings.EqualFold(s, source) {
			return true
		}
	}
	return false
}

func DefaultOrdersConfig() OrdersConfig {
	return OrdersConfig{
		PseudoEmailDomain:    "phone.orderhub.local",
		SourceTimeout:        5 * time.Second,
		ReconcileConcurrency: 4,
		ClaimFuzzyMinLength:  6,
		ClaimRateLimit: RateLimitConfig{
			Enabled:         true,
			Capacity:        10,
			RefillPerSecond: 0.2,
		},
	}
}

// env names kept flat so deployments can set them without the ORDERHUB_ prefix.
var ordersEnv = map[string]string{
	"orders.pseudo_email_domain":                "PSEUDO_EMAIL_DOMAIN",
	"orders.source_timeout":                     "SOURCE_TIMEOUT",
	"orders.reconcile_concurrency":              "RECONCILE_CONCURRENCY",
	"orders.claim_fuzzy_min_length":             "CLAIM_FUZZY_MIN_LENGTH",
	"orders.disabled_sources":                   "DISABLED_SOURCES",
	"orders.claim_rate_limit.enabled":           "CLAIM_RATE_LIMIT_ENABLED",
	"orders.claim_rate_limit.capacity":          "CLAIM_RATE_LIMIT_CAPACITY",
	"orders.claim_rate_limit.refill_per_second": "CLAIM_RATE_LIMIT_REFILL_PER_SECOND",
}

type OrdersConfigHolder struct {
	current atomic.Value // holds OrdersConfig
}

// NewOrdersConfigHolder loads orders.yml, falling back to defaults and env, and
// keeps watching the file for changes.
func NewOrdersConfigHolder(log *zap.Logger) (*OrdersConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("orders")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/orderhub")
	v.AddConfigPath(".")

	return newOrdersConfigHolder(v, log)
}

// NewStaticOrdersConfigHolder serves a fixed config.
func NewStaticOrdersConfigHolder(cfg OrdersConfig) *OrdersConfigHolder {
	holder := &OrdersConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func newOrdersConfigHolder(v *viper.Viper, log *zap.Logger) (*OrdersConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("orders.config")

	v.SetEnvPrefix("ORDERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range ordersEnv {
		if err := v.BindEnv(key, "ORDERHUB_"+env, env); err != nil {
			return nil, err
		}
	}
	setOrdersDefaults(v)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		watch = false
	}

	cfg := decodeOrdersConfig(v)
	if err := validateOrdersConfig(cfg); err != nil {
		return nil, err
	}

	holder := &OrdersConfigHolder{}
	holder.current.Store(cfg)

	if watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			updated := decodeOrdersConfig(v)
			if err := validateOrdersConfig(updated); err != nil {
				log.Warn("invalid orders config ignored", zap.Error(err))
				return
			}
			holder.current.Store(updated)
			log.Info("orders config reloaded", zap.String("file", e.Name))
		})
		v.WatchConfig()
	}

	return holder, nil
}

func (h *OrdersConfigHolder) Get() OrdersConfig {
	return h.current.Load().(OrdersConfig)
}

func setOrdersDefaults(v *viper.Viper) {
	defaults := DefaultOrdersConfig()
	v.SetDefault("orders.pseudo_email_domain", defaults.PseudoEmailDomain)
	v.SetDefault("orders.source_timeout", defaults.SourceTimeout)
	v.SetDefault("orders.reconcile_concurrency", defaults.ReconcileConcurrency)
	v.SetDefault("orders.claim_fuzzy_min_length", defaults.ClaimFuzzyMinLength)
	v.SetDefault("orders.disabled_sources", []string{})
	v.SetDefault("orders.claim_rate_limit.enabled", defaults.ClaimRateLimit.Enabled)
	v.SetDefault("orders.claim_rate_limit.capacity", defaults.ClaimRateLimit.Capacity)
	v.SetDefault("orders.claim_rate_limit.refill_per_second", defaults.ClaimRateLimit.RefillPerSecond)
}

func decodeOrdersConfig(v *viper.Viper) OrdersConfig {
	return OrdersConfig{
		PseudoEmailDomain:    strings.ToLower(strings.TrimSpace(v.GetString("orders.pseudo_email_domain"))),
		SourceTimeout:        v.GetDuration("orders.source_timeout"),
		ReconcileConcurrency: v.GetInt("orders.reconcile_concurrency"),
		ClaimFuzzyMinLength:  v.GetInt("orders.claim_fuzzy_min_length"),
		DisabledSources:      splitList(v.Get("orders.disabled_sources")),
		ClaimRateLimit: RateLimitConfig{
			Enabled:         v.GetBool("orders.claim_rate_limit.enabled"),
			Capacity:        v.GetInt("orders.claim_rate_limit.capacity"),
			RefillPerSecond: v.GetFloat64("orders.claim_rate_limit.refill_per_second"),
		},
	}
}

// splitList accepts a YAML list or a comma separated env value.
func splitList(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateOrdersConfig(cfg OrdersConfig) error {
	if cfg.PseudoEmailDomain == "" || strings.Contains(cfg.PseudoEmailDomain, "@") {
		return fmt.Errorf("orders.pseudo_email_domain %q is not a domain", cfg.PseudoEmailDomain)
	}
	if cfg.SourceTimeout <= 0 {
		return errors.New("orders.source_timeout must be positive")
	}
	if cfg.ReconcileConcurrency < 1 {
		return errors.New("orders.reconcile_concurrency must be at least 1")
	}
	if cfg.ClaimFuzzyMinLength < 1 {
		return errors.New("orders.claim_fuzzy_min_length must be at least 1")
	}
	if cfg.ClaimRateLimit.Enabled && (cfg.ClaimRateLimit.Capacity < 1 || cfg.ClaimRateLimit.RefillPerSecond <= 0) {
		return errors.New("orders.claim_rate_limit needs a positive capacity and refill rate")
	}
	return nil
}
