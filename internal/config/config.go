package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type (
	Config struct {
		Host       string `mapstructure:"HOST" validate:"required"`
		Port       string `mapstructure:"PORT" validate:"required,numeric"`
		GRPCPort   string `mapstructure:"GRPC_PORT" validate:"required,numeric"`
		Env        string `mapstructure:"ENV" validate:"oneof=development production test"`
		LogLevel   string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
		APIToken   string `mapstructure:"API_TOKEN" validate:"required"`
		DBDriver   string `mapstructure:"DB_DRIVER" validate:"oneof=postgres sqlite"`
		DBHost     string `mapstructure:"DB_HOST"`
		DBPort     string `mapstructure:"DB_PORT"`
		DBUser     string `mapstructure:"DB_USER"`
		DBPassword string `mapstructure:"DB_PASSWORD"`
		DBName     string `mapstructure:"DB_NAME"`
		DBSSLMode  string `mapstructure:"DB_SSL_MODE" validate:"oneof=disable require"`
		SQLitePath string `mapstructure:"SQLITE_PATH" validate:"required_if=DBDriver sqlite"`
	}
)

var defaults = map[string]string{
	"HOST":        "0.0.0.0",
	"PORT":        "8000",
	"GRPC_PORT":   "9000",
	"ENV":         EnvDevelopment,
	"LOG_LEVEL":   "info",
	"API_TOKEN":   "",
	"DB_DRIVER":   DriverPostgres,
	"DB_HOST":     "0.0.0.0",
	"DB_PORT":     "5432",
	"DB_USER":     "user",
	"DB_PASSWORD": "password",
	"DB_NAME":     "bookmarks",
	"DB_SSL_MODE": sslModeDisable,
	"SQLITE_PATH": "bookmarks.db",
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}
