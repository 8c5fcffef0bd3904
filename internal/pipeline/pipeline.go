// Package pipeline orchestrates the rebuild of a decompiled Android package
// into an installable artifact: preflight checks, rebuild, alignment,
// signing, and optional device installation.
//
// Phases run strictly in order and each gates the next: a phase failure
// halts the run and later phases never execute. Installation is the one
// exception; its failures degrade the run to warnings instead of failing it.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apkforge/apkforge/internal/android"
	"github.com/apkforge/apkforge/internal/devices"
	apkerrors "github.com/apkforge/apkforge/internal/errors"
	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/keystore"
	"github.com/apkforge/apkforge/internal/logging"
	"github.com/apkforge/apkforge/internal/runner"
	"github.com/apkforge/apkforge/internal/toolchain"
	"github.com/apkforge/apkforge/internal/workarea"
)

// Orchestrator drives one pipeline run at a time.
type Orchestrator struct {
	run     runner.Runner
	bus     *event.Bus
	logger  *logging.Logger
	checker *toolchain.Checker
	ksOpts  []keystore.Option

	phase Phase
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithChecker overrides the preflight tool checker.
func WithChecker(c *toolchain.Checker) Option {
	return func(o *Orchestrator) { o.checker = c }
}

// WithKeystoreOptions forwards options to the keystore provisioner built for
// each run.
func WithKeystoreOptions(opts ...keystore.Option) Option {
	return func(o *Orchestrator) { o.ksOpts = append(o.ksOpts, opts...) }
}

// New creates an Orchestrator. The bus may be nil; a nil logger discards
// output.
func New(run runner.Runner, bus *event.Bus, logger *logging.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = logging.NopLogger()
	}

	o := &Orchestrator{
		run:    run,
		bus:    bus,
		logger: logger,
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.checker == nil {
		o.checker = toolchain.New(bus, logger)
	}
	return o
}

// Phase returns the current pipeline phase. Meaningful only between and
// after Run calls; Run is not safe for concurrent use.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Run executes the full pipeline for one request.
//
// On success the returned Result names the signed artifact and carries any
// degraded-install warnings. On failure the returned error identifies the
// failing phase, and any intermediate artifacts have been removed.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	o.publish(event.NewPipelineStartedEvent(req.InputDir, req.OutputAPK, req.Install))

	avail, err := o.preflight(req)
	if err != nil {
		return Result{}, o.fail(PhasePreflight, err)
	}

	// The working area exists only past preflight, so a missing tool never
	// leaves a stray directory behind.
	area, err := workarea.New(o.bus, o.logger)
	if err != nil {
		return Result{}, o.fail(PhaseRebuilding, err)
	}
	defer area.Release()

	if err := o.rebuild(ctx, req.InputDir, area.UnsignedAPK(), avail); err != nil {
		return Result{}, o.fail(PhaseRebuilding, err)
	}

	if err := o.align(ctx, area.UnsignedAPK(), area.AlignedAPK(), avail); err != nil {
		return Result{}, o.fail(PhaseAligning, err)
	}

	if err := o.sign(ctx, req, area.AlignedAPK(), avail); err != nil {
		return Result{}, o.fail(PhaseSigning, err)
	}

	res := Result{OutputAPK: req.OutputAPK}
	if req.Install {
		res.Installs, res.Warnings = o.install(ctx, req.OutputAPK, avail)
	}

	o.setPhase(PhaseDone)
	res.Duration = time.Since(start)
	o.publish(event.NewPipelineCompletedEvent(req.OutputAPK, res.Duration))
	return res, nil
}

// preflight verifies every required tool, then the input directory, before
// any work begins. The dependency gate comes first: missing tools are
// reported together in one error even when the input is also invalid.
func (o *Orchestrator) preflight(req Request) (toolchain.Availability, error) {
	o.setPhase(PhasePreflight)

	avail := o.checker.Check(android.RequiredTools())
	if missing := avail.Missing(); len(missing) > 0 {
		return toolchain.Availability{}, apkerrors.NewDependencyError(missing)
	}

	info, err := os.Stat(req.InputDir)
	if err != nil || !info.IsDir() {
		return toolchain.Availability{}, apkerrors.NewInputError(
			"input is not a directory", apkerrors.ErrInvalidInput).WithPath(req.InputDir)
	}
	if !android.HasManifest(req.InputDir) {
		return toolchain.Availability{}, apkerrors.NewInputError(
			"no AndroidManifest.xml found; not a decompiled package directory",
			apkerrors.ErrManifestMissing).WithPath(req.InputDir)
	}

	o.completePhase(PhasePreflight, "")
	return avail, nil
}

// rebuild turns the decompiled directory into an unsigned APK. Packages
// targeting a high API level are built with aapt2 first; on failure the
// plain invocation is retried exactly once before giving up.
func (o *Orchestrator) rebuild(ctx context.Context, inputDir, outputAPK string, avail toolchain.Availability) error {
	o.setPhase(PhaseRebuilding)
	log := o.logger.WithPhase(PhaseRebuilding.String())
	apktool := avail.Path(android.ToolApktool)

	attempts := [][]string{android.BuildArgs(inputDir, outputAPK, false)}
	if android.PrefersAAPT2(inputDir) {
		log.Info("high target API level detected, preferring aapt2")
		attempts = [][]string{
			android.BuildArgs(inputDir, outputAPK, true),
			android.BuildArgs(inputDir, outputAPK, false),
		}
	}

	var last runner.Result
	for i, args := range attempts {
		if i > 0 {
			log.Warn("rebuild failed, retrying without aapt2", "reason", last.Reason)
		}
		last = o.run.Run(ctx, apktool, args...)
		if !last.OK {
			continue
		}
		// The tool can exit zero without producing output; the artifact
		// itself is the success criterion.
		if _, err := os.Stat(outputAPK); err != nil {
			last = runner.Result{Reason: "rebuild produced no output artifact"}
			continue
		}
		o.completePhase(PhaseRebuilding, outputAPK)
		return nil
	}

	return o.toolError(android.ToolApktool, PhaseRebuilding, last)
}

// align produces a byte-aligned copy of the unsigned APK, then verifies the
// alignment before the artifact is allowed to proceed.
func (o *Orchestrator) align(ctx context.Context, inputAPK, outputAPK string, avail toolchain.Availability) error {
	o.setPhase(PhaseAligning)
	zipalign := avail.Path(android.ToolZipalign)

	if res := o.run.Run(ctx, zipalign, android.AlignArgs(inputAPK, outputAPK)...); !res.OK {
		return o.toolError(android.ToolZipalign, PhaseAligning, res)
	}

	if res := o.run.Run(ctx, zipalign, android.AlignCheckArgs(outputAPK)...); !res.OK {
		return apkerrors.NewVerificationError("aligned artifact failed verification").
			WithCheck("alignment").WithArtifact(outputAPK)
	}

	o.completePhase(PhaseAligning, outputAPK)
	return nil
}

// sign resolves a signing identity, signs the aligned APK into the final
// destination, and verifies the signature before declaring success.
func (o *Orchestrator) sign(ctx context.Context, req Request, alignedAPK string, avail toolchain.Availability) error {
	o.setPhase(PhaseSigning)
	apksigner := avail.Path(android.ToolApksigner)

	ksOpts := append([]keystore.Option{
		keystore.WithKeytool(avail.Path(android.ToolKeytool)),
	}, o.ksOpts...)
	ks, err := keystore.New(o.run, o.bus, o.logger, ksOpts...).Resolve(ctx, req.Keystore)
	if err != nil {
		return err
	}

	if res := o.run.Run(ctx, apksigner, android.SignArgs(alignedAPK, req.OutputAPK, ks.Path)...); !res.OK {
		return o.toolError(android.ToolApksigner, PhaseSigning, res)
	}

	if res := o.run.Run(ctx, apksigner, android.VerifyArgs(req.OutputAPK)...); !res.OK {
		return apkerrors.NewVerificationError("signed artifact failed signature verification").
			WithCheck("signature").WithArtifact(req.OutputAPK)
	}

	o.completePhase(PhaseSigning, req.OutputAPK)
	return nil
}

// install fans the signed artifact out to every ready device. Nothing here
// can fail the run: absent devices and per-device failures become warnings.
func (o *Orchestrator) install(ctx context.Context, apk string, avail toolchain.Availability) (devices.Report, []string) {
	o.setPhase(PhaseInstalling)
	log := o.logger.WithPhase(PhaseInstalling.String())

	inst := devices.New(o.run, o.bus, log,
		devices.WithADB(avail.Path(android.ToolADB)))

	targets, err := inst.Ready(ctx)
	if err != nil {
		var warning string
		if apkerrors.Is(err, apkerrors.ErrNoDevices) {
			warning = "no ready devices attached, skipping install"
		} else {
			warning = fmt.Sprintf("could not enumerate devices: %v", err)
		}
		log.Warn(warning)
		o.completePhase(PhaseInstalling, "")
		return devices.Report{}, []string{warning}
	}

	report, err := inst.InstallAll(ctx, apk, targets)
	var warnings []string
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	o.completePhase(PhaseInstalling, "")
	return report, warnings
}

func (o *Orchestrator) toolError(tool string, phase Phase, res runner.Result) error {
	if res.TimedOut {
		return apkerrors.NewToolError(res.Reason, apkerrors.ErrTimeout).
			WithTool(tool).WithPhase(phase.String())
	}
	return apkerrors.NewToolError(fmt.Sprintf("%s failed: %s", tool, res.Reason), nil).
		WithTool(tool).WithPhase(phase.String()).WithStderr(res.Stderr)
}

func (o *Orchestrator) setPhase(p Phase) {
	o.phase = p
	o.logger.Info("phase started", "phase", p.String())
	o.publish(event.NewPhaseStartedEvent(p.String()))
}

func (o *Orchestrator) completePhase(p Phase, artifact string) {
	o.logger.Info("phase completed", "phase", p.String())
	o.publish(event.NewPhaseCompletedEvent(p.String(), artifact))
}

func (o *Orchestrator) fail(p Phase, err error) error {
	o.phase = PhaseFailed
	o.logger.Error("phase failed", "phase", p.String(), "error", err.Error())
	o.publish(event.NewPhaseFailedEvent(p.String(), err.Error()))
	o.publish(event.NewPipelineFailedEvent(p.String(), err.Error()))
	return err
}

func (o *Orchestrator) publish(e event.Event) {
	if o.bus != nil {
		o.bus.Publish(e)
	}
}
