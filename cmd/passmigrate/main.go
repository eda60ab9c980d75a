// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the passmigrate CLI, which converts
// TrueKey password-manager exports into the CSV dialects that Proton Pass,
// LastPass, and 1Password import.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/passmigrate/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds defaults resolved from the config file and environment; flags
// override it per command.
var cfg types.Config

// rootCmd is the base command for the passmigrate CLI.
var rootCmd = &cobra.Command{
	Use:   "passmigrate",
	Short: "Convert TrueKey exports for other password managers",
	Long: `passmigrate converts a TrueKey CSV export into the CSV dialect expected by
Proton Pass, LastPass, or 1Password. TrueKey exports embed raw line breaks
inside quoted notes fields; passmigrate reassembles those into whole entries
before remapping them, and can route notes to a separate file.

Use "convert" to produce an import file, or "inspect" to dry-run an export
and see what a conversion would do.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./passmigrate.yaml or ~/.config/passmigrate/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit structured JSON logs instead of console output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("passmigrate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "passmigrate"))
		}
	}

	viper.SetEnvPrefix("PASSMIGRATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not parse config:", err)
	}
	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if jsonLogs, _ := rootCmd.PersistentFlags().GetBool("log-json"); jsonLogs {
		cfg.Log.JSON = true
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
