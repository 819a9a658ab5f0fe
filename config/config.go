package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/lixenwraith/textconsole/console"
)

const (
	defBackend         = BackendANSI
	defColorMode       = "auto"
	defQuitKey         = "q"
	defLogDir          = "logs"
	defEscapeTimeoutMs = 50
	defTitle           = "textconsole"

	EnvVarPrefix = "TC"
)

// Backend names
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

var replacer = strings.NewReplacer(".", "_")

// Config holds demo settings; yaml tags mirror mapstructure so defaults merge by key
type Config struct {
	Backend         string `mapstructure:"backend" yaml:"backend"`
	ColorMode       string `mapstructure:"color_mode" yaml:"color_mode"`
	QuitKey         string `mapstructure:"quit_key" yaml:"quit_key"`
	Debug           bool   `mapstructure:"debug" yaml:"debug"`
	LogDir          string `mapstructure:"log_dir" yaml:"log_dir"`
	EscapeTimeoutMs int    `mapstructure:"escape_timeout_ms" yaml:"escape_timeout_ms"`
	Title           string `mapstructure:"title" yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:         defBackend,
		ColorMode:       defColorMode,
		QuitKey:         defQuitKey,
		LogDir:          defLogDir,
		EscapeTimeoutMs: defEscapeTimeoutMs,
		Title:           defTitle,
	}
}

// Load layers defaults, the YAML file at cfgFile (skipped when empty) and
// TC_* environment variables, then validates the result
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Viper needs to know a key exists before env or file values can override it
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, errors.Wrap(err, "encode defaults")
	}
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		if err != nil {
			return nil, errors.Wrapf(err, "config file %s", cfgFile)
		}
		if fi.IsDir() {
			return nil, errors.Errorf("config file %s is a directory", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", cfgFile)
		}
	}

	// Environment variables are the final override
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	if err := bindVars(v, reflect.TypeOf(Config{}), ""); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindVars registers every mapstructure key so AutomaticEnv sees it on Unmarshal
func bindVars(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		switch {
		case field.Type.Kind() == reflect.Struct:
			if err := bindVars(v, field.Type, tag+"."); err != nil {
				return err
			}
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct:
			if err := bindVars(v, field.Type.Elem(), tag+"."); err != nil {
				return err
			}
		default:
			if err := v.BindEnv(tag); err != nil {
				return errors.Wrapf(err, "bind environment variable for %s", tag)
			}
		}
	}
	return nil
}

// Validate checks values that cannot be expressed in the types alone
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendANSI, BackendTcell:
	default:
		return errors.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendANSI, BackendTcell)
	}

	switch strings.ToLower(strings.TrimSpace(c.ColorMode)) {
	case "", "auto", "basic", "8", "16", "ansi", "256", "truecolor", "true", "24bit":
	default:
		return errors.Errorf("unknown color mode %q", c.ColorMode)
	}

	if _, ok := console.ParseBinding(c.QuitKey); !ok {
		return errors.Errorf("invalid quit key %q", c.QuitKey)
	}
	if c.EscapeTimeoutMs <= 0 {
		return errors.Errorf("escape_timeout_ms must be positive, got %d", c.EscapeTimeoutMs)
	}
	return nil
}

// QuitBinding returns the update that ends the demo
func (c *Config) QuitBinding() console.Update {
	u, ok := console.ParseBinding(c.QuitKey)
	if !ok {
		return console.Character('q')
	}
	return u
}
