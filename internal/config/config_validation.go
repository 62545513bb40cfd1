package config

import "time"

const (
	defaultTokenIssuer    = "flight-booking"
	defaultTokenDuration  = 24 * time.Hour
	defaultBcryptCost     = 10
	defaultHTTPAddress    = ":8080"
	defaultFlightsTTL     = time.Minute
	defaultRequestTimeout = 30 * time.Second
)

// setDefaults fills in documented default values for every field the merged
// sources left at its zero value. Token TTL defaults to 24 hours; bcrypt cost
// is never allowed below the default of 10.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.BcryptCost < defaultBcryptCost {
		cfg.App.BcryptCost = defaultBcryptCost
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.Redis.FlightsTTL == 0 {
		cfg.Storage.Redis.FlightsTTL = defaultFlightsTTL
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
