/*
Package config provides configuration of the token ledger command line tool.

Configuration is read from a YAML file, missing sections keep their default
values:

	Ledger:
	  Storage:
	    Type: boltdb
	    BoltDBOptions:
	      FilePath: ./ledger.bolt
	Logger:
	  Level: info
	  Encoding: console
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBoltPath is the BoltDB file used when nothing else is configured.
	DefaultBoltPath = "./ledger.bolt"
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
	// DefaultLogEncoding is the default log encoding.
	DefaultLogEncoding = "console"
)

// Config is the top-level configuration.
type Config struct {
	Ledger Ledger `yaml:"Ledger"`
	Logger Logger `yaml:"Logger"`
}

// Ledger contains ledger storage settings.
type Ledger struct {
	Storage dbconfig.DBConfiguration `yaml:"Storage"`
}

// Logger contains logging settings.
type Logger struct {
	// One of zap levels: debug, info, warn, error.
	Level string `yaml:"Level"`
	// Either "console" or "json".
	Encoding string `yaml:"Encoding"`
}

// Default returns configuration with all default values set.
func Default() Config {
	return Config{
		Ledger: Ledger{
			Storage: dbconfig.DBConfiguration{
				Type: dbconfig.BoltDB,
				BoltDBOptions: dbconfig.BoltDBOptions{
					FilePath: DefaultBoltPath,
				},
			},
		},
		Logger: Logger{
			Level:    DefaultLogLevel,
			Encoding: DefaultLogEncoding,
		},
	}
}

// Load reads configuration from the given YAML file on top of defaults. Empty
// path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal config YAML: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that configuration values are usable.
func (c Config) Validate() error {
	switch c.Ledger.Storage.Type {
	case dbconfig.InMemoryDB:
	case dbconfig.BoltDB:
		if c.Ledger.Storage.BoltDBOptions.FilePath == "" {
			return errors.New("empty BoltDB file path")
		}
	case dbconfig.LevelDB:
		if c.Ledger.Storage.LevelDBOptions.DataDirectoryPath == "" {
			return errors.New("empty LevelDB directory path")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Ledger.Storage.Type)
	}

	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.Logger.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log encoding %q", c.Logger.Encoding)
	}

	return nil
}

// Build creates a logger with the given settings.
func (l Logger) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = l.Encoding
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	cc.OutputPaths = []string{"stderr"}
	if l.Encoding == "console" {
		cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return cc.Build()
}
