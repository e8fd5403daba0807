package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings. A trailing "*" matches any suffix.
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	// Optional storage settings
	DBDriver    string `mapstructure:"db_driver"` // "sqlite" or "postgres"
	DBPath      string `mapstructure:"db_path"`
	DatabaseURL string `mapstructure:"database_url"`

	// Optional JWT settings
	JWTAlgorithm string        `mapstructure:"jwt_algorithm"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`

	// The single identity allowed to log in
	AuthUsername string `mapstructure:"auth_username"`
	AuthPassword string `mapstructure:"auth_password"`

	SwaggerEnabled bool `mapstructure:"swagger_enabled"`

	// Static paths
	ConfigPath string
}

const (
	DefaultConfigPath   = "/etc/boatapi/config.yml"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 8080
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultDBDriver     = "sqlite"
	DefaultDBPath       = "boats.sqlite3"
	DefaultJWTAlgorithm = "HS256"
	DefaultTokenTTL     = time.Hour
	DefaultAuthUsername = "admin"
	DefaultAuthPassword = "password"
)

var DefaultCORSOrigins = []string{"http://localhost*"}

// Load reads the YAML file at configPath and applies BOATAPI_* environment
// overrides. A missing file is only tolerated for the default path.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("cors_origins", DefaultCORSOrigins)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("token_ttl", DefaultTokenTTL)
	v.SetDefault("auth_username", DefaultAuthUsername)
	v.SetDefault("auth_password", DefaultAuthPassword)
	v.SetDefault("swagger_enabled", false)

	// Allow environment variable overrides
	v.SetEnvPrefix("BOATAPI")
	v.AutomaticEnv()
	for _, key := range []string{"jwt_secret_key", "ssl_cert", "ssl_key", "log_file", "database_url"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}

	if c.AuthUsername == "" || c.AuthPassword == "" {
		return fmt.Errorf("auth_username and auth_password are required")
	}

	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("db_driver must be 'sqlite' or 'postgres'")
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be 'text' or 'json'")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

// DataSource returns the driver name and DSN for the configured database.
func (c *Config) DataSource() (driver, dsn string) {
	if c.DBDriver == "postgres" {
		return "postgres", c.DatabaseURL
	}
	return "sqlite", c.DBPath
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("BOATAPI_DEV_MODE") == "1"
}
