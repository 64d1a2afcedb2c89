// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the coursedoc CLI.
// Implements: prd001-conversion, prd003-frontmatter, prd004-history
// (CLI surface). See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the coursedoc CLI.
var rootCmd = &cobra.Command{
	Use:   "coursedoc",
	Short: "Convert DOCX course material to Markdown with frontmatter",
	Long: `coursedoc converts word-processing documents into Markdown for structured
educational content. Each document becomes a Markdown file with a YAML
frontmatter header (title, chapter, section, learning objectives) and its
embedded images extracted alongside.

Single documents are converted with the convert subcommand; directories of
documents with batch. Past conversions are listed with history.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coursedoc.yaml or ~/.config/coursedoc/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coursedoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coursedoc"))
		}
	}

	viper.SetEnvPrefix("COURSEDOC")
	viper.AutomaticEnv()

	viper.SetDefault("conversion.output_dir", "output")
	viper.SetDefault("conversion.extract_images", true)
	viper.SetDefault("history.dir", ".coursedoc")
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
