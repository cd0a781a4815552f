// Package config provides environment-based configuration for Markbase.
//
// Configuration is loaded from environment variables using Viper, with sensible
// defaults for development. This package handles database connection settings,
// token signing, logging levels, and server ports.
//
// # Environment Variables
//
//   - DB_TYPE: Database type (sqlite, postgres, mysql). Default: sqlite
//   - DSN: Database connection string. Default: markbase.db
//   - SKIP_AUTO_MIGRATE: Skip automatic database migrations. Default: false
//   - LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - PORT: HTTP server port. Default: 8080
//   - JWT_SECRET: HMAC secret for signing bearer tokens. Default: dev-only value
//   - TOKEN_TTL: Bearer token lifetime. Default: 24h
//   - TOKEN_STORE: Live-token store backend (database, redis). Default: database
//   - REDIS_ADDR: Redis address, required when TOKEN_STORE=redis
//   - BCRYPT_COST: Password hashing cost. Default: 12
//
// # Example Usage
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Starting on port %d with %s database\n", cfg.Port, cfg.DBType)
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBType          string        `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql
	DSN             string        `mapstructure:"DSN"`
	SkipAutoMigrate bool          `mapstructure:"SKIP_AUTO_MIGRATE"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	Port            int           `mapstructure:"PORT"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	TokenStore      string        `mapstructure:"TOKEN_STORE"` // database, redis
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	BcryptCost      int           `mapstructure:"BCRYPT_COST"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "markbase.db") // Default to sqlite if not provided
	viper.SetDefault("SKIP_AUTO_MIGRATE", false)
	viper.SetDefault("JWT_SECRET", "markbase-dev-secret")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("TOKEN_STORE", "database")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("BCRYPT_COST", 12)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
