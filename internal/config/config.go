// Package config loads sigtool settings from defaults, an optional YAML file
// and SIGTOOL_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/chainsig/pkg/sigbatch"
)

// EnvPrefix prefixes every environment variable, e.g. SIGTOOL_BATCH_WORKERS.
const EnvPrefix = "SIGTOOL"

// DefaultFileName is looked up in the home directory when no file is given.
const DefaultFileName = ".sigtool.yaml"

const (
	OutputText = "text"
	OutputJSON = "json"

	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ErrInvalidConfig is returned for settings that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full sigtool configuration.
type Config struct {
	Output string      `mapstructure:"output"`
	Log    LogConfig   `mapstructure:"log"`
	Batch  BatchConfig `mapstructure:"batch"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	// Workers is the size of the verification pool; 0 means one per CPU.
	Workers int          `mapstructure:"workers"`
	Format  string       `mapstructure:"format"`
	Fields  FieldsConfig `mapstructure:"fields"`
}

// FieldsConfig names the JSON keys or CSV columns of batch files.
type FieldsConfig struct {
	PublicKey string `mapstructure:"public_key"`
	Signature string `mapstructure:"signature"`
	Message   string `mapstructure:"message"`
	Digest    string `mapstructure:"digest"`
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	fields := sigbatch.DefaultFields()
	v.SetDefault("output", OutputText)
	v.SetDefault("log.level", zerolog.InfoLevel.String())
	v.SetDefault("batch.workers", 0)
	v.SetDefault("batch.format", FormatJSON)
	v.SetDefault("batch.fields.public_key", fields.PublicKey)
	v.SetDefault("batch.fields.signature", fields.Signature)
	v.SetDefault("batch.fields.message", fields.Message)
	v.SetDefault("batch.fields.digest", fields.Digest)
}

// Load reads path, or ~/.sigtool.yaml when path is empty and the file
// exists, into v and returns the validated result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return errors.Wrapf(ErrInvalidConfig, "output %q must be %s or %s", c.Output, OutputText, OutputJSON)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log.level: %v", err)
	}
	if c.Batch.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	if c.Batch.Format != FormatJSON && c.Batch.Format != FormatCSV {
		return errors.Wrapf(ErrInvalidConfig, "batch.format %q must be %s or %s", c.Batch.Format, FormatJSON, FormatCSV)
	}
	return nil
}

// Parser returns the batch file parser selected by the configuration.
func (c BatchConfig) Parser() sigbatch.RequestParser {
	fields := sigbatch.Fields{
		PublicKey: c.Fields.PublicKey,
		Signature: c.Fields.Signature,
		Message:   c.Fields.Message,
		Digest:    c.Fields.Digest,
	}
	if c.Format == FormatCSV {
		return &sigbatch.CSVParser{Fields: fields}
	}
	return &sigbatch.JSONParser{Fields: fields}
}
