package pipeline

import (
	"time"

	"github.com/apkforge/apkforge/internal/devices"
)

// Phase represents a phase of the rebuild pipeline.
type Phase string

const (
	// PhaseIdle indicates the pipeline has not started.
	PhaseIdle Phase = "idle"

	// PhasePreflight indicates the pipeline is verifying tools and input.
	PhasePreflight Phase = "preflight"

	// PhaseRebuilding indicates the pipeline is rebuilding the package.
	PhaseRebuilding Phase = "rebuilding"

	// PhaseAligning indicates the pipeline is aligning the rebuilt APK.
	PhaseAligning Phase = "aligning"

	// PhaseSigning indicates the pipeline is signing the aligned APK.
	PhaseSigning Phase = "signing"

	// PhaseInstalling indicates the pipeline is installing on devices.
	PhaseInstalling Phase = "installing"

	// PhaseDone indicates the pipeline has completed successfully.
	PhaseDone Phase = "done"

	// PhaseFailed indicates the pipeline has failed.
	PhaseFailed Phase = "failed"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if this phase represents a final state.
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// Request describes one pipeline run.
type Request struct {
	InputDir  string // Decompiled package directory
	OutputAPK string // Destination for the signed artifact
	Keystore  string // Explicit keystore path; empty means resolve automatically
	Install   bool   // Install on attached devices after signing
}

// Result summarizes a completed run. Warnings carry degraded outcomes
// (install failures, absent devices) that did not fail the run.
type Result struct {
	OutputAPK string
	Duration  time.Duration
	Installs  devices.Report
	Warnings  []string
}
