// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/symbiflow/ftpvl/fetch"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:          "ftpvl",
	Short:        "Fetch, process and visualize FPGA toolchain benchmark results",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	v.SetEnvPrefix("FTPVL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	registerString(flags, "config", "", "read settings from YAML `file`")
	registerString(flags, "log-level", "info", "logging `level`: trace, debug, info, warn or error")
	registerString(flags, "log-format", "text", "logging `format`: text or json")
	registerString(flags, "hydra-url", fetch.DefaultHydraURL, "Hydra server `url`")
	registerString(flags, "hydra-token", "", "bearer `token` for the Hydra server")
	registerInt(flags, "hydra-retries", 3, "retry failing Hydra requests up to `n` times; negative disables retries")
	registerString(flags, "cache-driver", "sqlite3", "build cache database `driver`: sqlite3 or mysql")
	registerString(flags, "cache-dsn", "", "build cache data source `name`; empty disables the cache")
	registerString(flags, "mapping", "", "YAML `file` mapping input columns to output columns")
	registerStringSlice(flags, "clock-names", nil, "preferred clock `names` for the achieved frequency")

	rootCmd.AddCommand(showCmd, diffCmd)
}

func registerString(flags *pflag.FlagSet, name, value, usage string) {
	flags.String(name, value, usage)
	_ = v.BindPFlag(name, flags.Lookup(name))
	v.SetDefault(name, value)
}

func registerInt(flags *pflag.FlagSet, name string, value int, usage string) {
	flags.Int(name, value, usage)
	_ = v.BindPFlag(name, flags.Lookup(name))
	v.SetDefault(name, value)
}

func registerStringSlice(flags *pflag.FlagSet, name string, value []string, usage string) {
	flags.StringSlice(name, value, usage)
	_ = v.BindPFlag(name, flags.Lookup(name))
	v.SetDefault(name, value)
}

// initConfig merges the config file into v and sets up logging.
func initConfig() error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	switch f := v.GetString("log-format"); f {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", f)
	}
	logrus.SetOutput(os.Stderr)
	return nil
}
