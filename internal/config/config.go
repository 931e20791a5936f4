// Package config loads application configuration from configs/config.yml,
// an optional .env file and SHOWCASE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SHOWCASE"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

type ServerConfig struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	DataDir    string `mapstructure:"data_dir"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	MinPasswordLength int           `mapstructure:"min_password_length"`
	BcryptCost        int           `mapstructure:"bcrypt_cost"`
	AllowAdminSignup  bool          `mapstructure:"allow_admin_signup"`
}

// RedisConfig enables the approved-project cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type StatsConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type SeedConfig struct {
	SampleProject bool `mapstructure:"sample_project"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "showcase.db")
	v.SetDefault("storage.data_dir", "data")

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.min_password_length", 6)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.allow_admin_signup", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.cache_ttl", 30*time.Second)

	v.SetDefault("stats.interval", 15*time.Second)
	v.SetDefault("seed.sample_project", true)
}

// Load reads configuration from the given search paths. A missing config file is
// not an error; defaults and environment variables still apply.
func Load(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile:
	default:
		return fmt.Errorf("unknown storage.driver %q (want %q or %q)", c.Storage.Driver, DriverSQLite, DriverFile)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Auth.MinPasswordLength < 1 {
		return errors.New("auth.min_password_length must be at least 1")
	}
	if c.Stats.Interval <= 0 {
		return errors.New("stats.interval must be positive")
	}
	return nil
}
