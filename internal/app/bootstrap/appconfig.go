// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Storage modes accepted by the storage_mode config key.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level and format. Everything below is MemberHub's own.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Connections kept warm in the driver pool

	// StorageMode selects the member store: "mongo" (default) or "memory".
	// Memory mode keeps records in-process and loses them on restart.
	StorageMode string

	// HTTP
	MaxBodyBytes   int64 // Request body cap for the JSON API
	MetricsEnabled bool  // Serve /metrics and record request metrics

	// API protection; zero disables each limit.
	RateLimitRPS          int   // Sustained requests per second across the API
	RateLimitBurst        int   // Token bucket size
	MaxConcurrentRequests int64 // In-flight API requests

	// Handler timeouts; zero keeps the built-in default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
