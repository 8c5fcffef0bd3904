package cmd

import (
	"slices"
	"strings"
	"testing"

	"github.com/apkforge/apkforge/internal/config"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "apkforge" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "apkforge")
	}

	for _, flag := range []string{"input", "output", "keystore", "install"} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("root command missing --%s flag", flag)
		}
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command missing --verbose flag")
	}
}

func TestConfigFlagHelpNamesDefaultFile(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("config")
	if f == nil {
		t.Fatal("config flag not registered")
	}
	if !strings.Contains(f.Usage, config.ConfigFile()) {
		t.Errorf("config flag usage %q does not name %s", f.Usage, config.ConfigFile())
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"doctor", "devices"} {
		if !slices.Contains(names, want) {
			t.Errorf("subcommand %q not registered (have %v)", want, names)
		}
	}
}

func TestRequiredFlags(t *testing.T) {
	for _, flag := range []string{"input", "output"} {
		f := rootCmd.Flags().Lookup(flag)
		if f == nil {
			t.Fatalf("flag --%s not registered", flag)
		}
		if f.Annotations[cobraRequiredAnnotation] == nil {
			t.Errorf("flag --%s not marked required", flag)
		}
	}
}

// cobra marks required flags via this annotation key.
const cobraRequiredAnnotation = "cobra_annotation_bash_completion_one_required_flag"
