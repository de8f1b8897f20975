// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the to-texts CLI. It walks a file or
// directory tree and writes a plain-text copy of every PDF and EPUB it finds.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/internal/convert"
	"github.com/pdiddy/to-texts/internal/extract"
	"github.com/pdiddy/to-texts/internal/logging"
	"github.com/pdiddy/to-texts/internal/report"
	"github.com/pdiddy/to-texts/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the to-texts command tree. Each call gets its own viper
// instance so flag bindings do not leak between invocations.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "to-texts",
		Short: "Convert PDF and EPUB files to plain text",
		Long: `to-texts scans a file or directory recursively for PDF and EPUB files and
writes the extracted text of each one to <name>.txt in the output directory.

Files are processed one at a time. A file that cannot be read is reported and
counted, and the run continues with the next file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default: ./to-texts.yaml or ~/.config/to-texts/config.yaml)")

	flags := cmd.Flags()
	flags.StringP("target", "t", "", "file or directory to scan for PDF and EPUB files")
	flags.StringP("output", "o", "", "directory that receives the .txt files")
	flags.String("report", "", "write a YAML report of the run to this file")
	flags.String("log-level", logging.DefaultLevel, "diagnostic log level: debug, info, warn, or error")

	_ = v.BindPFlag("target", flags.Lookup("target"))
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("report", flags.Lookup("report"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the optional config file and resolves flag and file
// values into a Config. Flags set on the command line take precedence.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (types.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("to-texts")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "to-texts"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	cfg := types.Config{
		Target:     v.GetString("target"),
		OutputDir:  v.GetString("output"),
		ReportPath: v.GetString("report"),
		LogLevel:   v.GetString("log_level"),
	}
	if cfg.Target == "" {
		return cfg, errors.New("target is required: pass --target or set target in the config file")
	}
	if cfg.OutputDir == "" {
		return cfg, errors.New("output is required: pass --output or set output in the config file")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = logging.DefaultLevel
	}
	return cfg, nil
}

// run converts every document under cfg.Target. Per-file failures are
// printed and counted but do not make run fail.
func run(cfg types.Config, out, errOut io.Writer) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := convert.Prepare(cfg.Target, cfg.OutputDir); err != nil {
		return err
	}

	c := convert.New(extract.NewRegistry(logger), cfg.OutputDir, out, errOut, logger)
	result, err := c.Run(cfg.Target)
	if err != nil {
		return err
	}
	logger.Info("run finished",
		zap.Int("documents", result.Total()),
		zap.Bool("failures", result.HasFailures()))

	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, report.New(cfg, result)); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
