package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/apkforge/apkforge/internal/config"
	"github.com/apkforge/apkforge/internal/console"
	"github.com/apkforge/apkforge/internal/devices"
	"github.com/apkforge/apkforge/internal/runner"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List attached Android devices and their install eligibility",
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	run := runner.New(time.Duration(cfg.Pipeline.TimeoutSeconds)*time.Second, nil, nil)

	all, err := devices.New(run, nil, nil).List(cmd.Context())
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), console.Muted.Render("no devices attached"))
		return nil
	}

	for _, d := range all {
		if d.Ready() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %s\n",
				console.Secondary.Render("✓"), d.Serial, d.State)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %s\n",
				console.Warning.Render("-"), d.Serial, console.Warning.Render(d.State))
		}
	}
	return nil
}
