// Package config assembles the client configuration from defaults,
// command-line flags, environment variables and an optional .env file.
package config

import (
	"flag"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the Hoy client.
type Config struct {
	APIBaseURL     string        `env:"HOY_API_BASE_URL" validate:"url"`
	SocketURL      string        `env:"HOY_SOCKET_URL" validate:"url"`
	LogLevel       string        `env:"HOY_LOG_LEVEL" validate:"loglevel"`
	StoragePath    string        `env:"HOY_STORAGE_PATH" validate:"filepath"`
	DeviceName     string        `env:"HOY_DEVICE_NAME"`
	RequestTimeout time.Duration `env:"HOY_REQUEST_TIMEOUT"`
	RetryCount     int           `env:"HOY_RETRY_COUNT" validate:"min=0,max=10"`
	RetryWaitMin   time.Duration `env:"HOY_RETRY_WAIT_MIN"`
	RetryWaitMax   time.Duration `env:"HOY_RETRY_WAIT_MAX"`
	PollInterval   time.Duration `env:"HOY_POLL_INTERVAL"`
	RefreshLeeway  time.Duration `env:"HOY_REFRESH_LEEWAY"`
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// InitOption customizes configuration assembly.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	disableDotEnv       bool
}

// WithDisableFlagsParsing disables command-line flag parsing.
// It is mainly used by tests, where the flag package would see
// the test binary's own arguments.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithDisableDotEnv skips loading the .env file.
func WithDisableDotEnv(disableDotEnv bool) InitOption {
	return func(options *initOptions) {
		options.disableDotEnv = disableDotEnv
	}
}

func defaults() Config {
	return Config{
		APIBaseURL:     "https://api.hoyapp.dev",
		SocketURL:      "wss://api.hoyapp.dev/ws",
		LogLevel:       "info",
		StoragePath:    "hoy_store.json",
		DeviceName:     "hoygo",
		RequestTimeout: 15 * time.Second,
		RetryCount:     3,
		RetryWaitMin:   250 * time.Millisecond,
		RetryWaitMax:   5 * time.Second,
		PollInterval:   30 * time.Second,
		RefreshLeeway:  30 * time.Second,
	}
}

// New assembles a Config. Precedence, lowest to highest:
// built-in defaults, command-line flags, environment variables.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if !options.disableDotEnv {
		if err := godotenv.Load(); err != nil {
			log.Printf("Unable to load .env file: %v", err)
		}
	}

	values := defaults()

	if !options.disableFlagsParsing {
		flag.StringVar(&values.APIBaseURL, "a", values.APIBaseURL, "base URL of the Hoy REST API")
		flag.StringVar(&values.SocketURL, "s", values.SocketURL, "URL of the Hoy realtime socket endpoint")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.StoragePath, "f", values.StoragePath, "JSON file name with the device key-value store")
		flag.StringVar(&values.DeviceName, "n", values.DeviceName, "device name reported to the backend")
		flag.DurationVar(&values.PollInterval, "p", values.PollInterval, "poll interval for conversation and notification watchers")
		flag.Parse()
	}

	var valuesFromEnv Config
	err := env.Parse(&valuesFromEnv)
	if err != nil {
		return nil, err
	}

	if valuesFromEnv.APIBaseURL != "" {
		values.APIBaseURL = valuesFromEnv.APIBaseURL
	}

	if valuesFromEnv.SocketURL != "" {
		values.SocketURL = valuesFromEnv.SocketURL
	}

	if valuesFromEnv.LogLevel != "" {
		values.LogLevel = valuesFromEnv.LogLevel
	}

	if valuesFromEnv.StoragePath != "" {
		values.StoragePath = valuesFromEnv.StoragePath
	}

	if valuesFromEnv.DeviceName != "" {
		values.DeviceName = valuesFromEnv.DeviceName
	}

	if valuesFromEnv.RequestTimeout != 0 {
		values.RequestTimeout = valuesFromEnv.RequestTimeout
	}

	if valuesFromEnv.RetryCount != 0 {
		values.RetryCount = valuesFromEnv.RetryCount
	}

	if valuesFromEnv.RetryWaitMin != 0 {
		values.RetryWaitMin = valuesFromEnv.RetryWaitMin
	}

	if valuesFromEnv.RetryWaitMax != 0 {
		values.RetryWaitMax = valuesFromEnv.RetryWaitMax
	}

	if valuesFromEnv.PollInterval != 0 {
		values.PollInterval = valuesFromEnv.PollInterval
	}

	if valuesFromEnv.RefreshLeeway != 0 {
		values.RefreshLeeway = valuesFromEnv.RefreshLeeway
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
