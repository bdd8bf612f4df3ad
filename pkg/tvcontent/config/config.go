package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/tv-content/pkg/tvcontent"
	fsstore "github.com/tendant/tv-content/pkg/tvcontent/storage/fs"
	memorystore "github.com/tendant/tv-content/pkg/tvcontent/storage/memory"
	pgstore "github.com/tendant/tv-content/pkg/tvcontent/storage/postgres"
	s3store "github.com/tendant/tv-content/pkg/tvcontent/storage/s3"
)

// Store types
const (
	StoreFS       = "fs"
	StoreMemory   = "memory"
	StoreS3       = "s3"
	StorePostgres = "postgres"
)

// Config is the server configuration. Values come from the environment, or
// from a YAML/TOML/ENV file overridden by the environment.
type Config struct {
	Environment        string `yaml:"environment" toml:"environment" env:"ENVIRONMENT" env-default:"development" env-description:"development shows error detail on error pages"`
	Banner             string `yaml:"banner" toml:"banner" env:"BANNER" env-default:"I&Co TV Content Management"`
	Store              string `yaml:"store" toml:"store" env:"CONTENT_STORE" env-default:"fs" env-description:"fs, memory, s3 or postgres"`
	File               string `yaml:"file" toml:"file" env:"CONTENT_FILE" env-default:"contents.json"`
	EnableEventLogging bool   `yaml:"enable_event_logging" toml:"enable_event_logging" env:"ENABLE_EVENT_LOGGING" env-default:"true"`

	S3 S3Config `yaml:"s3" toml:"s3"`
	DB DbConfig `yaml:"db" toml:"db"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" toml:"endpoint" env:"CONTENT_S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" toml:"bucket" env:"CONTENT_S3_BUCKET"`
	Key             string `yaml:"key" toml:"key" env:"CONTENT_S3_KEY" env-default:"contents.json"`
	Region          string `yaml:"region" toml:"region" env:"CONTENT_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `yaml:"use_path_style" toml:"use_path_style" env:"CONTENT_S3_USE_PATH_STYLE" env-default:"false"`
	CreateBucket    bool   `yaml:"create_bucket" toml:"create_bucket" env:"CONTENT_S3_CREATE_BUCKET" env-default:"false"`
}

type DbConfig struct {
	Port     uint16 `yaml:"port" toml:"port" env:"CONTENT_PG_PORT" env-default:"5432"`
	Host     string `yaml:"host" toml:"host" env:"CONTENT_PG_HOST" env-default:"localhost"`
	Name     string `yaml:"name" toml:"name" env:"CONTENT_PG_NAME" env-default:"content_db"`
	User     string `yaml:"user" toml:"user" env:"CONTENT_PG_USER" env-default:"content"`
	Password string `yaml:"password" toml:"password" env:"CONTENT_PG_PASSWORD" env-default:"pwd"`
	Document string `yaml:"document" toml:"document" env:"CONTENT_PG_DOCUMENT" env-default:"contents"`
}

func (c DbConfig) toDatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// Load reads the configuration. When path is empty only the environment is used.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Usage returns the environment variable help text
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}

// Development reports whether error details may be shown to clients
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFS:
		if c.File == "" {
			return errors.New("file is required for the fs store")
		}
	case StoreMemory:
	case StoreS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required for the s3 store")
		}
	case StorePostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return errors.New("db host and name are required for the postgres store")
		}
	default:
		return fmt.Errorf("unsupported content store: %q", c.Store)
	}
	return nil
}

// BuildStore creates the configured document store. The returned func
// releases any held connections.
func (c *Config) BuildStore(ctx context.Context) (tvcontent.DocumentStore, func(), error) {
	noop := func() {}

	switch c.Store {
	case StoreMemory:
		return memorystore.New(), noop, nil

	case StoreFS:
		store, err := fsstore.New(fsstore.Config{Path: c.File})
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case StoreS3:
		store, err := s3store.New(s3store.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			Key:                    c.S3.Key,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		return store, noop, nil

	case StorePostgres:
		pool, err := pgxpool.New(ctx, c.DB.toDatabaseUrl())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store := pgstore.NewWithPool(pool, c.DB.Document)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported content store: %q", c.Store)
	}
}

// BuildService creates a Service from the configuration
func (c *Config) BuildService(ctx context.Context) (tvcontent.Service, func(), error) {
	store, cleanup, err := c.BuildStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build store: %w", err)
	}

	options := []tvcontent.Option{tvcontent.WithDocumentStore(store)}
	if c.EnableEventLogging {
		options = append(options, tvcontent.WithEventSink(tvcontent.NewLoggingEventSink(slog.Default())))
	}

	svc, err := tvcontent.New(options...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
