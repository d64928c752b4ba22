// Package config loads server settings from an optional YAML file, an
// optional .env file and GRIMOIRE_* environment variables, in that order of
// increasing precedence.
package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// Storage drivers
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Supplementary spell sources
const (
	SpellSourceNone     = "none"
	SpellSourceFile     = "file"
	SpellSourceDND5eAPI = "dnd5eapi"
)

// Config is the complete server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"GRIMOIRE_"`
	Storage  StorageConfig  `yaml:"storage" envPrefix:"GRIMOIRE_"`
	Auth     AuthConfig     `yaml:"auth" envPrefix:"GRIMOIRE_JWT_"`
	Catalog  CatalogConfig  `yaml:"catalog" envPrefix:"GRIMOIRE_"`
	Share    ShareConfig    `yaml:"share" envPrefix:"GRIMOIRE_SHARE_"`
	LogLevel string         `yaml:"log_level" env:"GRIMOIRE_LOG_LEVEL"`
}

// ServerConfig holds listener settings
type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	HealthPort      int           `yaml:"health_port" env:"HEALTH_PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
}

// StorageConfig selects and configures the character store. The privileged
// credentials are used only by the share token store.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER"`

	RedisEndpoint           string `yaml:"redis_endpoint" env:"REDIS_ENDPOINT"`
	RedisUsername           string `yaml:"redis_username" env:"REDIS_USERNAME"`
	RedisPassword           string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisPrivilegedUsername string `yaml:"redis_privileged_username" env:"REDIS_PRIVILEGED_USERNAME"`
	RedisPrivilegedPassword string `yaml:"redis_privileged_password" env:"REDIS_PRIVILEGED_PASSWORD"`
	RedisDB                 int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisTLS                bool   `yaml:"redis_tls" env:"REDIS_TLS"`

	PostgresDSN           string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	PostgresPrivilegedDSN string `yaml:"postgres_privileged_dsn" env:"POSTGRES_PRIVILEGED_DSN"`
	AutoMigrate           bool   `yaml:"auto_migrate" env:"POSTGRES_AUTO_MIGRATE"`
}

// AuthConfig configures bearer token verification
type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"SECRET"`
	Issuer   string        `yaml:"issuer" env:"ISSUER"`
	Audience string        `yaml:"audience" env:"AUDIENCE"`
	Leeway   time.Duration `yaml:"leeway" env:"LEEWAY"`
}

// CatalogConfig points at rules data. Empty file paths use the bundled data.
type CatalogConfig struct {
	ClassesFile      string        `yaml:"classes_file" env:"CATALOG_CLASSES_FILE"`
	SpellsFile       string        `yaml:"spells_file" env:"CATALOG_SPELLS_FILE"`
	SpellSource      string        `yaml:"spell_source" env:"SPELL_SOURCE"`
	SpellSourceFile  string        `yaml:"spell_source_file" env:"SPELL_SOURCE_FILE"`
	SpellAPIBaseURL  string        `yaml:"spell_api_base_url" env:"SPELL_API_BASE_URL"`
	SpellAPITimeout  time.Duration `yaml:"spell_api_timeout" env:"SPELL_API_TIMEOUT"`
	SpellAPICacheTTL time.Duration `yaml:"spell_api_cache_ttl" env:"SPELL_API_CACHE_TTL"`
}

// ShareConfig configures share links
type ShareConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			HealthPort:      50051,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		Storage: StorageConfig{
			Driver:        DriverRedis,
			RedisEndpoint: "localhost:6379",
		},
		Auth: AuthConfig{
			Issuer:   "grimoire-auth",
			Audience: "authenticated",
			Leeway:   30 * time.Second,
		},
		Catalog: CatalogConfig{
			SpellSource:      SpellSourceNone,
			SpellAPITimeout:  30 * time.Second,
			SpellAPICacheTTL: 24 * time.Hour,
		},
		Share:    ShareConfig{TokenTTL: 30 * 24 * time.Hour},
		LogLevel: "info",
	}
}

// LoadInput controls where configuration is read from
type LoadInput struct {
	// Path is an optional YAML file
	Path string
	// EnvFiles are dotenv files to load if present; defaults to ".env"
	EnvFiles []string
	// SkipValidation returns the merged settings without checking them, for
	// callers that apply overrides first or only need part of the config.
	SkipValidation bool
}

// Load builds the configuration and validates it.
func Load(input *LoadInput) (*Config, error) {
	if input == nil {
		input = &LoadInput{}
	}
	cfg := Default()

	if input.Path != "" {
		data, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", input.Path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config file")
		}
	}

	envFiles := input.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// variables already in the environment win over the file
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to load %s", file)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.normalize()
	if input.SkipValidation {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Catalog.SpellSource = strings.ToLower(strings.TrimSpace(c.Catalog.SpellSource))
	if c.Catalog.SpellSource == "" {
		c.Catalog.SpellSource = SpellSourceNone
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	validatePort("server.port", c.Server.Port, vb)
	validatePort("server.health_port", c.Server.HealthPort, vb)
	if c.Server.Port == c.Server.HealthPort {
		vb.Field("server.health_port", "must differ from server.port")
	}
	if c.Server.ShutdownTimeout <= 0 {
		vb.Field("server.shutdown_timeout", "must be positive")
	}

	errors.ValidateEnum("log_level", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)

	errors.ValidateEnum("storage.driver", c.Storage.Driver, []string{DriverRedis, DriverPostgres}, vb)
	switch c.Storage.Driver {
	case DriverRedis:
		errors.ValidateRequired("storage.redis_endpoint", c.Storage.RedisEndpoint, vb)
	case DriverPostgres:
		errors.ValidateRequired("storage.postgres_dsn", c.Storage.PostgresDSN, vb)
	}

	errors.ValidateRequired("auth.secret", c.Auth.Secret, vb)

	errors.ValidateEnum("catalog.spell_source", c.Catalog.SpellSource,
		[]string{SpellSourceNone, SpellSourceFile, SpellSourceDND5eAPI}, vb)
	if c.Catalog.SpellSource == SpellSourceFile {
		errors.ValidateRequired("catalog.spell_source_file", c.Catalog.SpellSourceFile, vb)
	}

	if c.Share.TokenTTL <= 0 {
		vb.Field("share.token_ttl", "must be positive")
	}

	return vb.Build()
}

func validatePort(field string, port int, vb *errors.ValidationBuilder) {
	if port < 1 || port > 65535 {
		vb.Fieldf(field, "must be between 1 and 65535, got %d", port)
	}
}
