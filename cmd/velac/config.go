package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// velacConfig is the content of a velac configuration file.
type velacConfig struct {
	Emit     string // ll, tree or symbols
	Color    string // auto, always or never
	LogLevel string // logrus level name
	Output   string // output file, empty for stdout
}

var defaultConfig = velacConfig{
	Emit:     "ll",
	Color:    "auto",
	LogLevel: "info",
}

func loadConfig(file string, cfg *velacConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the defaults, then the configuration file, then the
// command-line flags, each overriding the previous.
func makeConfig(ctx *cli.Context) (velacConfig, error) {
	cfg := defaultConfig
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet(emitFlag.Name) || cfg.Emit == "" {
		cfg.Emit = ctx.String(emitFlag.Name)
	}
	if ctx.IsSet(colorFlag.Name) || cfg.Color == "" {
		cfg.Color = ctx.String(colorFlag.Name)
	}
	if ctx.IsSet("output") {
		cfg.Output = ctx.String("output")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return cfg, errors.Errorf("unknown color mode %q", cfg.Color)
	}
	return cfg, nil
}
