package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	PasswordPlaceholder = "{password}"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Security    SecurityConfig    `mapstructure:"security"`
	Session     SessionConfig     `mapstructure:"session"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Departments DepartmentsConfig `mapstructure:"departments"`
}

type DatabaseConfig struct {
	Driver            string        `mapstructure:"driver"`
	Source            string        `mapstructure:"source"`
	EncryptedPassword string        `mapstructure:"encrypted_password"`
	MaxOpenConns      int           `mapstructure:"max_open_conns"`
	MaxIdleConns      int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime   time.Duration `mapstructure:"conn_max_lifetime"`
}

type SecurityConfig struct {
	EncryptedJWTSecret  string        `mapstructure:"encrypted_jwt_secret"`
	KeyEnv              string        `mapstructure:"key_env"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
	BCryptCost          int           `mapstructure:"bcrypt_cost"`
}

type SessionConfig struct {
	File     string `mapstructure:"file"`
	TokenKey string `mapstructure:"token_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DepartmentsConfig names the departments that carry business rules.
type DepartmentsConfig struct {
	Superuser  string `mapstructure:"superuser"`
	Management string `mapstructure:"management"`
	Sales      string `mapstructure:"sales"`
	Support    string `mapstructure:"support"`
}

// DefaultConfig holds the values used when a key is absent from config.yml and the environment.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Source:          "eecrm.db",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Security: SecurityConfig{
			KeyEnv:              "EECRM_KEY",
			AccessTokenDuration: 15 * time.Minute,
			BCryptCost:          12,
		},
		Session: SessionConfig{
			File:     ".eecrm_session",
			TokenKey: "EECRM_JWT_TOKEN",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Departments: DepartmentsConfig{
			Superuser:  "Superuser",
			Management: "Management",
			Sales:      "Sales",
			Support:    "Support",
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	if strings.Contains(c.Source, PasswordPlaceholder) && c.EncryptedPassword == "" {
		return errors.New("source references {password} but encrypted_password is empty")
	}
	return nil
}

// NeedsPassword reports whether the DSN expects the decrypted database password.
func (c *DatabaseConfig) NeedsPassword() bool {
	return strings.Contains(c.Source, PasswordPlaceholder)
}

// GetDSN substitutes the decrypted password into the configured source.
func (c *DatabaseConfig) GetDSN(password string) string {
	return strings.ReplaceAll(c.Source, PasswordPlaceholder, password)
}

func (c *SecurityConfig) Validate() error {
	if c.KeyEnv == "" {
		return errors.New("key_env is required")
	}
	if c.AccessTokenDuration < time.Minute || c.AccessTokenDuration > time.Hour {
		return errors.New("access_token_duration must be between 1m and 1h")
	}
	if c.BCryptCost < 4 || c.BCryptCost > 31 {
		return errors.New("bcrypt_cost must be between 4 and 31")
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if c.File == "" {
		return errors.New("file is required")
	}
	if c.TokenKey == "" {
		return errors.New("token_key is required")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch c.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
