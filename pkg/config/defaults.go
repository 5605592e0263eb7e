package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "parkd"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultBaseRatePerMinute = 5.0

	DefaultGridRows     = 4
	DefaultGridCols     = 5
	DefaultEntranceNode = 0

	DefaultKafkaTopic = "parkd.state"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Pricing policies. Exit-time pricing is canonical: the rate reflects
// occupancy at the moment of release. Entry-time pricing locks the
// rate observed at admission instead.
const (
	PricingAtExit  = "exit"
	PricingAtEntry = "entry"
)

const DefaultPricingPolicy = PricingAtExit
