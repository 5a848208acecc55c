// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/memberhub/internal/app/system/httpmw"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// envPrefix scopes app keys in the environment: MEMBERHUB_MONGO_URI, etc.
const envPrefix = "MEMBERHUB"

// appConfigKeys defines the configuration keys for MemberHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, storage_mode, etc.
//   - Environment variables: MEMBERHUB_MONGO_URI, MEMBERHUB_STORAGE_MODE, etc.
//   - Command-line flags: --mongo_uri, --storage_mode, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "memberhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "storage_mode", Default: StorageMongo, Desc: "Member store: 'mongo' or 'memory'"},

	// HTTP
	{Name: "max_body_bytes", Default: int(httpmw.DefaultMaxBodyBytes), Desc: "Maximum request body size in bytes"},
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
	{Name: "rate_limit_rps", Default: 0, Desc: "API requests per second (0 disables rate limiting)"},
	{Name: "rate_limit_burst", Default: 20, Desc: "API rate limit burst size"},
	{Name: "max_concurrent_requests", Default: 0, Desc: "Maximum in-flight API requests (0 disables)"},

	// Handler timeouts
	{Name: "timeout_short", Default: timeouts.DefaultShort.String(), Desc: "Timeout for single-member operations"},
	{Name: "timeout_medium", Default: timeouts.DefaultMedium.String(), Desc: "Timeout for list and create"},
	{Name: "timeout_long", Default: timeouts.DefaultLong.String(), Desc: "Timeout for exports and schema setup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, MEMBERHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, envPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		StorageMode:      appValues.String("storage_mode"),

		MaxBodyBytes:   int64(appValues.Int("max_body_bytes")),
		MetricsEnabled: appValues.Bool("metrics_enabled"),

		RateLimitRPS:          appValues.Int("rate_limit_rps"),
		RateLimitBurst:        appValues.Int("rate_limit_burst"),
		MaxConcurrentRequests: int64(appValues.Int("max_concurrent_requests")),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is only checked when the Mongo store is selected.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StorageMode {
	case StorageMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database must be set")
		}
		if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
			return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
				appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
		}
	case StorageMemory:
		logger.Warn("storage_mode=memory: members are kept in-process and lost on restart")
	default:
		return fmt.Errorf("storage_mode must be %q or %q, got %q", StorageMongo, StorageMemory, appCfg.StorageMode)
	}

	if appCfg.RateLimitRPS < 0 || appCfg.MaxConcurrentRequests < 0 {
		return fmt.Errorf("rate_limit_rps and max_concurrent_requests must not be negative")
	}
	if appCfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", appCfg.MaxBodyBytes)
	}
	return nil
}
