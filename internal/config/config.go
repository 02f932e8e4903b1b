// Package config loads client settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "CTP"

// DefaultEnvFile is read when present and no file was named explicitly.
const DefaultEnvFile = ".env"

// Viper keys. The environment variable is EnvPrefix + "_" + upper(key).
const (
	KeyAuthURL      = "auth_url"
	KeyAPIURL       = "api_url"
	KeyProjectKey   = "project_key"
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
	KeyScopes       = "scopes"

	KeyRequestTimeout = "request_timeout"
	KeyRetryMax       = "retry_max"
	KeyRetryWaitMin   = "retry_wait_min"
	KeyRetryWaitMax   = "retry_wait_max"
	KeyDebug          = "debug"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

var errEnvFileNotFound = errors.New("env file not found")

// Options controls where settings are read from.
type Options struct {
	// EnvFile names a .env file. It must exist when set. When empty,
	// DefaultEnvFile is read if it exists.
	EnvFile string
	// Viper supplies values bound from flags or set by tests. A fresh
	// instance is used when nil.
	Viper *viper.Viper
}

// Settings holds everything Load resolves.
type Settings struct {
	Client    *ctp.Config
	LogLevel  string
	LogFormat string
}

// raw mirrors the variables before conversion. The env tag names the
// variable reported when validation fails.
type raw struct {
	AuthURL      string `env:"CTP_AUTH_URL"      validate:"required"`
	APIURL       string `env:"CTP_API_URL"       validate:"required"`
	ProjectKey   string `env:"CTP_PROJECT_KEY"   validate:"required"`
	ClientID     string `env:"CTP_CLIENT_ID"     validate:"required"`
	ClientSecret string `env:"CTP_CLIENT_SECRET" validate:"required"`
	Scopes       string `env:"CTP_SCOPES"        validate:"required"`

	LogLevel  string `env:"CTP_LOG_LEVEL"  validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `env:"CTP_LOG_FORMAT" validate:"omitempty,oneof=console json"`
}

// Load resolves the client configuration.
func Load(opts Options) (*ctp.Config, error) {
	settings, err := LoadSettings(opts)
	if err != nil {
		return nil, err
	}

	return settings.Client, nil
}

// LoadSettings resolves the client configuration together with the logging
// settings. Every missing required variable is reported in one
// *ctp.ConfigError.
func LoadSettings(opts Options) (*Settings, error) {
	v := opts.Viper
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := loadEnvFile(v, opts.EnvFile)
	if err != nil {
		return nil, &ctp.ConfigError{Err: err}
	}

	values := raw{
		AuthURL:      strings.TrimSpace(v.GetString(KeyAuthURL)),
		APIURL:       strings.TrimSpace(v.GetString(KeyAPIURL)),
		ProjectKey:   strings.TrimSpace(v.GetString(KeyProjectKey)),
		ClientID:     strings.TrimSpace(v.GetString(KeyClientID)),
		ClientSecret: strings.TrimSpace(v.GetString(KeyClientSecret)),
		Scopes:       strings.TrimSpace(v.GetString(KeyScopes)),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
	}

	configErr := &ctp.ConfigError{}
	validateRaw(&values, configErr)

	scopes := SplitScopes(values.Scopes)
	if values.Scopes != "" && len(scopes) == 0 {
		configErr.Missing = append(configErr.Missing, envName(KeyScopes))
	}

	client := &ctp.Config{
		AuthURL:      values.AuthURL,
		APIURL:       values.APIURL,
		ProjectKey:   values.ProjectKey,
		ClientID:     values.ClientID,
		ClientSecret: values.ClientSecret,
		Scopes:       scopes,
		UserAgent:    constants.UserAgent,
	}

	client.RequestTimeout = durationSetting(v, KeyRequestTimeout, configErr)
	client.RetryWaitMin = durationSetting(v, KeyRetryWaitMin, configErr)
	client.RetryWaitMax = durationSetting(v, KeyRetryWaitMax, configErr)
	client.RetryMax = intSetting(v, KeyRetryMax, configErr)
	client.Debug = boolSetting(v, KeyDebug, configErr)

	if len(configErr.Missing) > 0 || len(configErr.Invalid) > 0 {
		return nil, configErr
	}

	logFormat := values.LogFormat
	if logFormat == "" {
		logFormat = constants.LogFormatConsole
	}

	return &Settings{
		Client:    client,
		LogLevel:  values.LogLevel,
		LogFormat: logFormat,
	}, nil
}

// SplitScopes splits on commas and whitespace, dropping empty items.
func SplitScopes(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// loadEnvFile feeds .env entries to v as defaults, so real environment
// variables keep precedence. The process environment is left untouched.
func loadEnvFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	_, err := os.Stat(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w: %s", errEnvFileNotFound, path)
	}

	entries, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	prefix := EnvPrefix + "_"
	for name, value := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		v.SetDefault(strings.ToLower(strings.TrimPrefix(name, prefix)), value)
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})

	return validate
}

func validateRaw(values *raw, configErr *ctp.ConfigError) {
	err := validate.Struct(values)
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		configErr.Err = err

		return
	}

	for _, fieldErr := range validationErrors {
		if fieldErr.Tag() == "required" {
			configErr.Missing = append(configErr.Missing, fieldErr.Field())
		} else {
			configErr.Invalid = append(configErr.Invalid, fieldErr.Field())
		}
	}
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func durationSetting(v *viper.Viper, key string, configErr *ctp.ConfigError) time.Duration {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return 0
	}

	// Bare numbers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		configErr.Invalid = append(configErr.Invalid, envName(key))

		return 0
	}

	return duration
}

func intSetting(v *viper.Viper, key string, configErr *ctp.ConfigError) int {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return 0
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		configErr.Invalid = append(configErr.Invalid, envName(key))

		return 0
	}

	return n
}

func boolSetting(v *viper.Viper, key string, configErr *ctp.ConfigError) bool {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return false
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		configErr.Invalid = append(configErr.Invalid, envName(key))

		return false
	}

	return b
}
