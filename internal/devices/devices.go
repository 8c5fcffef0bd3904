// Package devices enumerates attached Android targets through the debug
// bridge and fans the signed artifact out to every ready one. Installation
// is an optional trailing phase: its failures degrade the run, never fail it.
package devices

import (
	"context"
	"fmt"
	"strings"

	"github.com/apkforge/apkforge/internal/android"
	apkerrors "github.com/apkforge/apkforge/internal/errors"
	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/logging"
	"github.com/apkforge/apkforge/internal/runner"
)

// InstallResult is the outcome of one install attempt on one target.
type InstallResult struct {
	Serial string
	OK     bool
	Reason string
}

// Report aggregates the install attempts of one fan-out.
type Report struct {
	Results []InstallResult
}

// Succeeded returns the number of successful install attempts.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

// Failed returns the number of failed install attempts.
func (r Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// AllOK reports whether every install attempt succeeded.
func (r Report) AllOK() bool {
	return r.Failed() == 0
}

// Installer lists attached targets and installs artifacts on them.
type Installer struct {
	run     runner.Runner
	bus     *event.Bus
	logger  *logging.Logger
	adbPath string
}

// Option customizes an Installer.
type Option func(*Installer)

// WithADB overrides the adb binary path, typically with the
// preflight-resolved one.
func WithADB(path string) Option {
	return func(i *Installer) { i.adbPath = path }
}

// New creates an Installer. The bus may be nil; a nil logger discards output.
func New(run runner.Runner, bus *event.Bus, logger *logging.Logger, opts ...Option) *Installer {
	if logger == nil {
		logger = logging.NopLogger()
	}

	i := &Installer{
		run:     run,
		bus:     bus,
		logger:  logger,
		adbPath: android.ToolADB,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// List enumerates all attached targets, ready or not.
func (i *Installer) List(ctx context.Context) ([]android.Device, error) {
	res := i.run.Run(ctx, i.adbPath, android.DevicesArgs()...)
	if !res.OK {
		return nil, fmt.Errorf("failed to list devices: %s", res.Reason)
	}
	return android.ParseDevices(res.Stdout), nil
}

// Ready enumerates attached targets and keeps only those eligible for
// installation. Offline and unauthorized targets are logged and skipped.
// Returns ErrNoDevices when no eligible target remains.
func (i *Installer) Ready(ctx context.Context) ([]android.Device, error) {
	all, err := i.List(ctx)
	if err != nil {
		return nil, err
	}

	var ready []android.Device
	for _, d := range all {
		if d.Ready() {
			ready = append(ready, d)
			continue
		}
		i.logger.Warn("skipping device", "serial", d.Serial, "state", d.State)
	}

	if len(ready) == 0 {
		return nil, apkerrors.ErrNoDevices
	}
	return ready, nil
}

// InstallAll installs the artifact on every given target, one at a time,
// continuing past per-target failures. The returned Report covers every
// attempt; err is non-nil only when at least one attempt failed, and it
// wraps ErrPartialInstall so callers can degrade instead of aborting.
func (i *Installer) InstallAll(ctx context.Context, apk string, targets []android.Device) (Report, error) {
	var report Report
	for _, d := range targets {
		report.Results = append(report.Results, i.install(ctx, apk, d))
	}

	if report.AllOK() {
		return report, nil
	}

	var failed []string
	for _, res := range report.Results {
		if !res.OK {
			failed = append(failed, res.Serial)
		}
	}
	return report, apkerrors.NewInstallError(
		fmt.Sprintf("install failed on %d of %d devices", report.Failed(), len(report.Results)),
		apkerrors.ErrPartialInstall,
	).WithSerial(strings.Join(failed, ","))
}

func (i *Installer) install(ctx context.Context, apk string, d android.Device) InstallResult {
	log := i.logger.WithDevice(d.Serial)
	log.Info("installing", "apk", apk)
	i.publish(event.NewDeviceInstallStartedEvent(d.Serial))

	res := i.run.Run(ctx, i.adbPath, android.InstallArgs(d.Serial, apk)...)

	out := InstallResult{Serial: d.Serial, OK: res.OK, Reason: res.Reason}
	if res.OK {
		log.Info("install succeeded")
	} else {
		log.Warn("install failed", "reason", res.Reason)
	}
	i.publish(event.NewDeviceInstallFinishedEvent(d.Serial, res.OK, res.Reason))
	return out
}

func (i *Installer) publish(e event.Event) {
	if i.bus != nil {
		i.bus.Publish(e)
	}
}
