// Package cmd wires the apkforge command-line interface: the root command
// runs the full pipeline, with subcommands for environment diagnostics and
// device listing.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apkforge/apkforge/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "apkforge",
	Short: "Rebuild, align, sign, and install decompiled Android packages",
	Long: `Apkforge turns a directory decompiled with apktool back into an
installable APK: it rebuilds the package, aligns it, signs it with a debug
identity, and optionally installs it on every attached device.`,
	Version:      Version,
	Args:         cobra.NoArgs,
	RunE:         runForge,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "",
		fmt.Sprintf("config file (default is %s)", config.ConfigFile()))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print every external command invocation")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APKFORGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., APKFORGE_PIPELINE_TIMEOUT_SECONDS for pipeline.timeout_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
