package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
	"github.com/woozymasta/crom"
)

// Config is the uncrom configuration. TOML keys are the field names.
type Config struct {
	OutputDir           string // Empty: write next to each input file.
	Suffix              string // Appended after "<input>.<segment>".
	Jobs                int    // Input files processed concurrently; 0 means runtime.NumCPU.
	KeepGoing           bool   // Skip segments whose decode fails.
	AllowOversubscribed bool   // See crom.Options.AllowOversubscribed.
	Verbosity           string // debug, info, warn or error.
	LogFile             string // Rotated log file; empty logs to stderr.
}

var defaultConfig = Config{
	Suffix:    ".bin",
	Jobs:      1,
	Verbosity: "info",
}

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

// loadConfig builds the configuration: defaults, then the config file, then flags.
func loadConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig

	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return nil, err
		}
	}
	applyFlags(ctx, &cfg)

	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if _, err := parseLevel(cfg.Verbosity); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadConfigFile(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(f).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}

	return err
}

func applyFlags(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet(outDirFlag.Name) {
		cfg.OutputDir = ctx.String(outDirFlag.Name)
	}
	if ctx.IsSet(suffixFlag.Name) {
		cfg.Suffix = ctx.String(suffixFlag.Name)
	}
	if ctx.IsSet(jobsFlag.Name) {
		cfg.Jobs = ctx.Int(jobsFlag.Name)
	}
	if ctx.IsSet(keepGoingFlag.Name) {
		cfg.KeepGoing = ctx.Bool(keepGoingFlag.Name)
	}
	if ctx.IsSet(lenientFlag.Name) {
		cfg.AllowOversubscribed = ctx.Bool(lenientFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.LogFile = ctx.String(logFileFlag.Name)
	}
}

// decodeOptions returns the library options for this configuration.
func (cfg *Config) decodeOptions() *crom.Options {
	opts := crom.DefaultOptions()
	opts.AllowOversubscribed = cfg.AllowOversubscribed

	return opts
}

func (u *uncrom) dumpConfig(ctx *cli.Context) error {
	out, err := tomlSettings.Marshal(u.cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)

	return err
}
