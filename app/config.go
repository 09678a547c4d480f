package bookstore

import (
	"encoding/base64"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spf13/viper"
)

type Config struct {
	// Port is the port number to listen on. The default is 8080.
	Port int `validate:"required,port" default:"8080"`
	// Hostname is the hostname to listen on. The default is 0.0.0.0.
	Hostname string `validate:"required" default:"0.0.0.0"`
	Auth     struct {
		// Secret is the key used to sign bearer tokens. It must be a
		// base64 encoded string. It is decoded once at startup and passed
		// explicitly into the token codec.
		Secret Base64Encoded `validate:"required"`
		// TokenTTL is the fixed validity window of issued tokens.
		// The default is 10 hours.
		TokenTTL time.Duration
	}
	SQLite struct {
		// File is the path to the SQLite database file.
		File string `validate:"required"`
		// Migrations is the path to the directory that the migration files
		// reside in.
		Migrations string `validate:"required"`
	}
	TLS struct {
		// Crt and Key are paths to the TLS certificate and private key.
		// TLS is enabled when both are set.
		Crt string
		Key string
	}
	Admin struct {
		// Username of the initial admin user created at startup when no
		// admin exists. Bootstrap is skipped when empty.
		Username string
		// Password of the initial admin user. A random password is
		// generated and logged when empty.
		Password string
	}
	// AllowedOrigins is a list of origins that are allowed to connect to the
	// server. The default is ["*"].
	AllowedOrigins []string
	valid          bool
}

type Base64Encoded []byte

func (b *Base64Encoded) UnmarshalText(text []byte) error {
	dec, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("base64 decode: %w", err)
	}
	*b = dec
	return nil
}

// LoadConfig loads the configuration from the config file and environment
// variables. Any invalid configuration will not be loaded, and the error will
// be caught in the validation step.
func LoadConfig() (*Config, error) {
	config := &Config{}
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("hostname", "0.0.0.0")
	viper.SetDefault("auth.tokenttl", "10h")
	viper.SetDefault("sqlite.file", "./bookstore.db")
	viper.SetDefault("sqlite.migrations", "./migrations")
	viper.SetDefault("allowedorigins", "*")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := viper.Unmarshal(&config,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		),
	); err != nil {
		// defer error to validation step
		return config, nil
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.valid {
		return nil
	}
	err := validate.Struct(c)
	if err != nil {
		return err
	}
	c.valid = true
	return nil
}

func FormatValidationErrors(err error) string {
	errors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ""
	}
	trans, _ := uniTrans.GetTranslator("en")
	translated := errors.Translate(trans)

	var sb strings.Builder
	for v := range maps.Values(translated) {
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}
