// Package config loads toolchain settings from defaults, an optional YAML
// file, WHILE_* environment variables and command line flags, in increasing
// order of priority.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Prefix is the environment variable prefix: parser.maxDepth is read from
// WHILE_PARSER_MAXDEPTH.
const Prefix = "WHILE"

// TopLevel is the whole configuration.
type TopLevel struct {
	Logging Logging
	Parser  Parser
	VM      VM
	Source  Source
}

type Logging struct {
	Level  string
	Format string
}

type Parser struct {
	MaxDepth int
}

type VM struct {
	Gas int
}

type Source struct {
	Root     string
	MaxBytes int64
}

// Defaults mirrors the built-in settings.
var Defaults = TopLevel{
	Logging: Logging{
		Level:  "info",
		Format: "console",
	},
	Parser: Parser{
		MaxDepth: 256,
	},
	VM: VM{
		Gas: 1000000,
	},
	Source: Source{
		Root:     ".",
		MaxBytes: 1 << 20,
	},
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"max-depth":  "parser.maxDepth",
	"gas":        "vm.gas",
	"root":       "source.root",
	"max-bytes":  "source.maxBytes",
}

// RegisterFlags adds the flags that override configuration keys.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("log-level", Defaults.Logging.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", Defaults.Logging.Format, "log format (console, json, logfmt)")
	flags.Int("max-depth", Defaults.Parser.MaxDepth, "maximum parenthesis nesting, 0 for unbounded")
	flags.Int("gas", Defaults.VM.Gas, "instruction budget for evaluation")
	flags.String("root", Defaults.Source.Root, "directory source files are read from")
	flags.Int64("max-bytes", Defaults.Source.MaxBytes, "size limit for source files")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("logging.level", Defaults.Logging.Level)
	v.SetDefault("logging.format", Defaults.Logging.Format)
	v.SetDefault("parser.maxDepth", Defaults.Parser.MaxDepth)
	v.SetDefault("vm.gas", Defaults.VM.Gas)
	v.SetDefault("source.root", Defaults.Source.Root)
	v.SetDefault("source.maxBytes", Defaults.Source.MaxBytes)

	// for environment variables
	v.SetEnvPrefix(Prefix)
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	return v
}

// BindFlags makes every registered flag in flags override its key. Flags
// left at their default do not mask the file or the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "config: binding --%s", name)
		}
	}
	return nil
}

// Load reads file (if not empty) into v and decodes the result.
func Load(v *viper.Viper, file string) (*TopLevel, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", file)
		}
	}

	var conf TopLevel
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "config: decoding")
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *TopLevel) validate() error {
	switch {
	case c.Parser.MaxDepth < 0:
		return errors.Errorf("config: parser.maxDepth must not be negative, got %d", c.Parser.MaxDepth)
	case c.VM.Gas <= 0:
		return errors.Errorf("config: vm.gas must be positive, got %d", c.VM.Gas)
	case c.Source.MaxBytes <= 0:
		return errors.Errorf("config: source.maxBytes must be positive, got %d", c.Source.MaxBytes)
	}
	return nil
}
