package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apkforge/apkforge/internal/android"
	"github.com/apkforge/apkforge/internal/console"
	"github.com/apkforge/apkforge/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that all required external tools are available",
	Long: `Doctor resolves every external tool the pipeline depends on and reports
where each one was found. It exits non-zero when any tool is missing.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	avail := toolchain.New(nil, nil).Check(android.RequiredTools())

	for _, name := range android.RequiredTools() {
		tool, _ := avail.Lookup(name)
		if tool.Present {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %s\n",
				console.Secondary.Render("✓"), name, console.Muted.Render(tool.Path))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %s\n",
				console.Error.Render("✗"), name, console.Error.Render("not found"))
		}
	}

	if missing := avail.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}
