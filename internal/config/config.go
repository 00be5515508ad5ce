package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

type Config struct {
	AppHost string        `mapstructure:"host"`
	DB      DBConfig      `mapstructure:"db"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Upload  UploadConfig  `mapstructure:"upload"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Issuer string        `mapstructure:"issuer"`
}

type AuthConfig struct {
	BcryptCost      int           `mapstructure:"bcrypt_cost"`
	MaxFailedLogins int           `mapstructure:"max_failed_logins"`
	Lockout         time.Duration `mapstructure:"lockout"`
}

type StorageConfig struct {
	Driver string      `mapstructure:"driver"`
	Path   string      `mapstructure:"path"`
	Minio  MinioConfig `mapstructure:"minio"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", ":8080")
	v.SetDefault("db.source", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("jwt.issuer", "file-server")
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("auth.max_failed_logins", 5)
	v.SetDefault("auth.lockout", 15*time.Minute)
	v.SetDefault("storage.driver", StorageDriverLocal)
	v.SetDefault("storage.path", "data/files")
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "")
	v.SetDefault("upload.max_bytes", 32<<20)
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
}

// Load reads configs/settings.yml when present and overlays environment
// variables, e.g. JWT_SECRET or STORAGE_PATH.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret must be set")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl must be positive, got %s", c.JWT.TTL)
	}
	if c.DB.Source == "" {
		return errors.New("db.source must be set")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch c.Storage.Driver {
	case StorageDriverLocal:
		if c.Storage.Path == "" {
			return errors.New("storage.path must be set for the local driver")
		}
	case StorageDriverMinio:
		m := c.Storage.Minio
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return errors.New("storage.minio configuration incomplete")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	return nil
}
