package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "buildingDB"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultTokenTTL = 48 * time.Hour

	DefaultPaymentCurrency = "usd"

	DefaultListingCacheTTL = 5 * time.Minute

	DefaultAnnouncementEventTopic = "building.announcements"

	DefaultCORSAllowedOrigins = "*"

	DefaultStoreReadTimeout  = 5 * time.Second
	DefaultStoreWriteTimeout = 5 * time.Second

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// ApartmentPageSize is the fixed page size of the public listing.
	ApartmentPageSize = 6
)
