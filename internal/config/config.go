package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath     = "config/config.yaml"
	defaultAddress        = ":4000"
	defaultBackend        = "redis"
	defaultRedisAddr      = "localhost:6379"
	defaultRedisPrefix    = "tes:"
	defaultSQLTable       = "kv_store"
	defaultTokenTTL       = 24 * time.Hour
	defaultBcryptCost     = 10
	defaultReminderPeriod = time.Hour
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Storage struct {
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Database struct {
			URL   string `yaml:"url"`
			Table string `yaml:"table"`
		} `yaml:"database"`
	} `yaml:"storage"`
	Auth struct {
		JWTSigningKey string        `yaml:"jwt_signing_key"`
		TokenTTL      time.Duration `yaml:"token_ttl"`
		BcryptCost    int           `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	Log struct {
		Level       string `yaml:"level"`
		Environment string `yaml:"environment"`
	} `yaml:"log"`
	Reminder struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"reminder"`
	S3 struct {
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"s3"`
	FCM struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"fcm"`
	Seed bool `yaml:"seed"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Address = defaultAddress
	cfg.Storage.Backend = defaultBackend
	cfg.Storage.Redis.Addr = defaultRedisAddr
	cfg.Storage.Redis.Prefix = defaultRedisPrefix
	cfg.Storage.Database.Table = defaultSQLTable
	cfg.Auth.TokenTTL = defaultTokenTTL
	cfg.Auth.BcryptCost = defaultBcryptCost
	cfg.Log.Level = "info"
	cfg.Log.Environment = "development"
	cfg.Reminder.Interval = defaultReminderPeriod
	cfg.Seed = true
	return cfg
}

// LoadConfig reads .env, then the YAML file at CONFIG_PATH, then applies
// environment overrides. A missing YAML file leaves the defaults in place.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config data: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Storage.Redis.Password = v
	}
	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Storage.Redis.DB = *v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.Database.URL = v
	}
	if v := os.Getenv("JWT_SIGNING_KEY"); v != "" {
		cfg.Auth.JWTSigningKey = v
	}
	if v, err := readIntEnv("BCRYPT_COST"); err != nil {
		return fmt.Errorf("parse BCRYPT_COST: %w", err)
	} else if v != nil {
		cfg.Auth.BcryptCost = *v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Log.Environment = v
	}
	if v := os.Getenv("REMINDER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse REMINDER_INTERVAL: %w", err)
		}
		cfg.Reminder.Interval = d
	}
	if v := os.Getenv("AWS_S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("FCM_CREDENTIALS_FILE"); v != "" {
		cfg.FCM.CredentialsFile = v
	}
	return nil
}

// Validate checks the fields the server cannot start without.
func (c Config) Validate() error {
	if c.Auth.JWTSigningKey == "" {
		return errors.New("config: JWT_SIGNING_KEY is required")
	}
	switch c.Storage.Backend {
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return errors.New("config: redis addr is required")
		}
	case "mysql", "postgres":
		if c.Storage.Database.URL == "" {
			return fmt.Errorf("config: database url is required for %s backend", c.Storage.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Reminder.Interval <= 0 {
		return errors.New("config: reminder interval must be positive")
	}
	return nil
}

func readIntEnv(name string) (*int, error) {
	val := os.Getenv(name)
	if val == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
