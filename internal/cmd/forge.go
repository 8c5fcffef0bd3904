package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/apkforge/apkforge/internal/config"
	"github.com/apkforge/apkforge/internal/console"
	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/keystore"
	"github.com/apkforge/apkforge/internal/logging"
	"github.com/apkforge/apkforge/internal/pipeline"
	"github.com/apkforge/apkforge/internal/runner"
)

var (
	forgeInput    string
	forgeOutput   string
	forgeKeystore string
	forgeInstall  bool
)

func init() {
	rootCmd.Flags().StringVarP(&forgeInput, "input", "i", "", "decompiled package directory (required)")
	rootCmd.Flags().StringVarP(&forgeOutput, "output", "o", "", "destination for the signed APK (required)")
	rootCmd.Flags().StringVar(&forgeKeystore, "keystore", "", "keystore to sign with (default: debug keystore, generated if absent)")
	rootCmd.Flags().BoolVar(&forgeInstall, "install", false, "install on all attached devices after signing")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")
}

func runForge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger, err := buildLogger(cfg, verbose)
	if err != nil {
		return err
	}
	defer logger.Close()

	bus := event.NewBus()
	console.New(cmd.OutOrStdout(), verbose).Attach(bus)

	// The output parent must exist before apksigner writes to it.
	if dir := filepath.Dir(forgeOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ksPath := forgeKeystore
	if ksPath == "" {
		ksPath = cfg.Keystore.Path
	}
	var ksOpts []keystore.Option
	if cfg.Keystore.DebugPath != "" {
		ksOpts = append(ksOpts, keystore.WithDebugKeystore(cfg.Keystore.DebugPath))
	}
	if cfg.Keystore.GeneratedPath != "" {
		ksOpts = append(ksOpts, keystore.WithGeneratedPath(cfg.Keystore.GeneratedPath))
	}

	run := runner.New(time.Duration(cfg.Pipeline.TimeoutSeconds)*time.Second, bus, logger)
	orch := pipeline.New(run, bus, logger, pipeline.WithKeystoreOptions(ksOpts...))

	res, err := orch.Run(cmd.Context(), pipeline.Request{
		InputDir:  forgeInput,
		OutputAPK: forgeOutput,
		Keystore:  ksPath,
		Install:   forgeInstall,
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), console.Warning.Render("warning:"), w)
	}
	return nil
}

// buildLogger picks the structured log destination: a configured file wins,
// verbose mode falls back to stderr, and otherwise logs are discarded since
// the console renderer covers the human-facing output.
func buildLogger(cfg *config.Config, verbose bool) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(cfg.Logging.File, level)
	}
	if verbose {
		return logging.NewLogger(os.Stderr, logging.LevelDebug), nil
	}
	return logging.NopLogger(), nil
}
