package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr      string `env:"WALLETCORE_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	HTTP HTTPConfig `envPrefix:"HTTP_"`

	Chain   ChainConfig   `envPrefix:"CHAIN_"`
	JWT     JWTConfig     `envPrefix:"JWT_"`
	Indexer IndexerConfig `envPrefix:"INDEXER_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Kafka   KafkaConfig   `envPrefix:"KAFKA_"`
	Breaker BreakerConfig `envPrefix:"BREAKER_"`

	RateLimit RateLimitConfig `envPrefix:"RATELIMIT_"`
}

// HTTPConfig bounds request phases on the API server.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"2m"`
}

// ChainConfig configures the ledger and the genesis deployment.
type ChainConfig struct {
	ID uint64 `env:"ID" envDefault:"31337"`
	// Admin deploys and owns the genesis contracts.
	Admin string `env:"ADMIN" envDefault:"0x00000000000000000000000000000000000000ad"`
	// Inbox is the receipt buffer between the ledger and the indexer.
	Inbox int `env:"INBOX" envDefault:"1024"`
}

type JWTConfig struct {
	// Use a default for development - should be overridden in production
	SigningKey string        `env:"SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string        `env:"ISSUER" envDefault:"walletcore"`
	Audience   string        `env:"AUDIENCE" envDefault:"walletcore-api"`
	TTL        time.Duration `env:"TTL" envDefault:"1h"`
}

// IndexerConfig selects the record store: memory, sqlite or postgres.
type IndexerConfig struct {
	Driver      string `env:"DRIVER" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"walletcore.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`
}

// RedisConfig configures the optional Redis stream publisher. An empty URL
// disables it.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	Stream       string        `env:"STREAM" envDefault:"walletcore:ledger"`
	StreamMaxLen int64         `env:"STREAM_MAXLEN" envDefault:"100000"`
}

// KafkaConfig configures the optional Kafka publisher. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	Topic             string   `env:"TOPIC" envDefault:"walletcore.ledger"`
	Partitions        int32    `env:"PARTITIONS" envDefault:"3"`
	ReplicationFactor int16    `env:"REPLICATION_FACTOR" envDefault:"1"`
}

type BreakerConfig struct {
	Threshold int           `env:"THRESHOLD" envDefault:"5"`
	Cooldown  time.Duration `env:"COOLDOWN" envDefault:"30s"`
}

// RateLimitConfig caps authenticated writes per caller. Zero disables it.
type RateLimitConfig struct {
	Writes int           `env:"WRITES" envDefault:"120"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AdminAddress is the parsed chain admin.
func (c ChainConfig) AdminAddress() common.Address {
	return common.HexToAddress(c.Admin)
}

func (c Config) validate() error {
	if !common.IsHexAddress(c.Chain.Admin) {
		return fmt.Errorf("CHAIN_ADMIN is not an address: %q", c.Chain.Admin)
	}
	if c.Chain.Inbox <= 0 {
		return fmt.Errorf("CHAIN_INBOX must be positive")
	}
	switch strings.ToLower(c.Indexer.Driver) {
	case "memory", "sqlite":
	case "postgres":
		if c.Indexer.PostgresDSN == "" {
			return fmt.Errorf("INDEXER_POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown INDEXER_DRIVER %q", c.Indexer.Driver)
	}
	if c.RateLimit.Writes > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATELIMIT_WINDOW must be positive when RATELIMIT_WRITES is set")
	}
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	return nil
}
