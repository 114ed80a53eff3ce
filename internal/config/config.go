// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"yelpcamp/internal/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	ImageStoreDisk       = "disk"
	ImageStoreGridFS     = "gridfs"
	ImageStoreCloudinary = "cloudinary"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"3000"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	DatabaseDriver string   `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	Postgres       Postgres `envPrefix:"POSTGRES_"`

	SessionSecret string `env:"SESSION_SECRET"`
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"JWT_SECRET"`

	MapTilerAPIKey  string `env:"MAPTILER_API_KEY"`
	MapTilerBaseURL string `env:"MAPTILER_BASE_URL" envDefault:"https://api.maptiler.com"`

	ImageStore string `env:"IMAGE_STORE" envDefault:"disk"`
	UploadDir  string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MongoURI   string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB    string `env:"MONGO_DB" envDefault:"yelpcamp"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryKey       string `env:"CLOUDINARY_KEY"`
	CloudinarySecret    string `env:"CLOUDINARY_SECRET"`

	ExternalTimeout time.Duration `env:"EXTERNAL_TIMEOUT" envDefault:"10s"`
}

// Postgres holds the individual connection settings used when DATABASE_URL is unset.
type Postgres struct {
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	DB       string `env:"DB" envDefault:"yelpcamp"`
}

func (p Postgres) URL() string {
	return "postgres://" + p.User + ":" + p.Password + "@" + p.Host + ":" + p.Port + "/" + p.DB + "?sslmode=disable"
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads .env (when present) and the environment into a validated Config.
func Load() (*Config, error) {
	if err := utils.LoadEnv(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseDriver {
		case DriverSQLite:
			cfg.DatabaseURL = "yelpcamp.db"
		default:
			cfg.DatabaseURL = cfg.Postgres.URL()
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of postgres, sqlite", c.DatabaseDriver))
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE %q is not one of memory, redis", c.SessionStore))
	}
	switch c.ImageStore {
	case ImageStoreDisk, ImageStoreGridFS:
	case ImageStoreCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_KEY and CLOUDINARY_SECRET are required for the cloudinary image store"))
		}
	default:
		errs = append(errs, fmt.Errorf("IMAGE_STORE %q is not one of disk, gridfs, cloudinary", c.ImageStore))
	}
	if c.ExternalTimeout <= 0 {
		errs = append(errs, errors.New("EXTERNAL_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// TokenSecret is the JWT signing key, falling back to the session secret.
func (c *Config) TokenSecret() string {
	if c.JWTSecret != "" {
		return c.JWTSecret
	}
	return c.SessionSecret
}
