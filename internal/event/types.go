// Package event defines event types for decoupling pipeline components from
// presentation. The orchestrator and its collaborators publish these events;
// the console renderer and structured log sink subscribe to them.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "phase.started", "tool.missing")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Pipeline Lifecycle Events
// -----------------------------------------------------------------------------

// PipelineStartedEvent is emitted when a pipeline run begins.
type PipelineStartedEvent struct {
	baseEvent
	InputDir  string // Decompiled package directory
	OutputAPK string // Final artifact destination
	Install   bool   // Whether installation was requested
}

// NewPipelineStartedEvent creates a PipelineStartedEvent.
func NewPipelineStartedEvent(inputDir, outputAPK string, install bool) PipelineStartedEvent {
	return PipelineStartedEvent{
		baseEvent: newBaseEvent("pipeline.started"),
		InputDir:  inputDir,
		OutputAPK: outputAPK,
		Install:   install,
	}
}

// PipelineCompletedEvent is emitted when all mandatory phases succeed.
type PipelineCompletedEvent struct {
	baseEvent
	OutputAPK string        // Path of the signed artifact
	Duration  time.Duration // Total wall-clock time of the run
}

// NewPipelineCompletedEvent creates a PipelineCompletedEvent.
func NewPipelineCompletedEvent(outputAPK string, duration time.Duration) PipelineCompletedEvent {
	return PipelineCompletedEvent{
		baseEvent: newBaseEvent("pipeline.completed"),
		OutputAPK: outputAPK,
		Duration:  duration,
	}
}

// PipelineFailedEvent is emitted when the pipeline halts on a phase failure.
type PipelineFailedEvent struct {
	baseEvent
	Phase  string // Phase in which the failure occurred
	Reason string // Human-readable failure reason
}

// NewPipelineFailedEvent creates a PipelineFailedEvent.
func NewPipelineFailedEvent(phase, reason string) PipelineFailedEvent {
	return PipelineFailedEvent{
		baseEvent: newBaseEvent("pipeline.failed"),
		Phase:     phase,
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Phase Events
// -----------------------------------------------------------------------------

// PhaseStartedEvent is emitted when a pipeline phase begins.
type PhaseStartedEvent struct {
	baseEvent
	Phase string // Phase name (e.g. "rebuilding")
}

// NewPhaseStartedEvent creates a PhaseStartedEvent.
func NewPhaseStartedEvent(phase string) PhaseStartedEvent {
	return PhaseStartedEvent{
		baseEvent: newBaseEvent("phase.started"),
		Phase:     phase,
	}
}

// PhaseCompletedEvent is emitted when a pipeline phase succeeds.
type PhaseCompletedEvent struct {
	baseEvent
	Phase    string // Phase name
	Artifact string // Artifact produced by the phase, if any
}

// NewPhaseCompletedEvent creates a PhaseCompletedEvent.
func NewPhaseCompletedEvent(phase, artifact string) PhaseCompletedEvent {
	return PhaseCompletedEvent{
		baseEvent: newBaseEvent("phase.completed"),
		Phase:     phase,
		Artifact:  artifact,
	}
}

// PhaseFailedEvent is emitted when a pipeline phase fails.
type PhaseFailedEvent struct {
	baseEvent
	Phase  string // Phase name
	Reason string // Human-readable failure reason
}

// NewPhaseFailedEvent creates a PhaseFailedEvent.
func NewPhaseFailedEvent(phase, reason string) PhaseFailedEvent {
	return PhaseFailedEvent{
		baseEvent: newBaseEvent("phase.failed"),
		Phase:     phase,
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Preflight Events
// -----------------------------------------------------------------------------

// ToolLocatedEvent is emitted for each required tool resolved at preflight.
type ToolLocatedEvent struct {
	baseEvent
	Tool string // Tool name
	Path string // Resolved filesystem path
}

// NewToolLocatedEvent creates a ToolLocatedEvent.
func NewToolLocatedEvent(tool, path string) ToolLocatedEvent {
	return ToolLocatedEvent{
		baseEvent: newBaseEvent("tool.located"),
		Tool:      tool,
		Path:      path,
	}
}

// ToolMissingEvent is emitted for each required tool that cannot be resolved.
type ToolMissingEvent struct {
	baseEvent
	Tool string // Tool name
}

// NewToolMissingEvent creates a ToolMissingEvent.
func NewToolMissingEvent(tool string) ToolMissingEvent {
	return ToolMissingEvent{
		baseEvent: newBaseEvent("tool.missing"),
		Tool:      tool,
	}
}

// ToolUnconventionalPathEvent is emitted when a tool resolves outside the
// conventional system binary directories. Informational only, never blocking.
type ToolUnconventionalPathEvent struct {
	baseEvent
	Tool string // Tool name
	Path string // Resolved filesystem path
}

// NewToolUnconventionalPathEvent creates a ToolUnconventionalPathEvent.
func NewToolUnconventionalPathEvent(tool, path string) ToolUnconventionalPathEvent {
	return ToolUnconventionalPathEvent{
		baseEvent: newBaseEvent("tool.unconventional"),
		Tool:      tool,
		Path:      path,
	}
}

// -----------------------------------------------------------------------------
// Command Events
// -----------------------------------------------------------------------------

// CommandExecutedEvent is emitted after every external tool invocation.
type CommandExecutedEvent struct {
	baseEvent
	Argv     []string      // Full argument vector
	OK       bool          // True iff exit status was zero
	TimedOut bool          // True if the invocation exceeded its time bound
	Duration time.Duration // Wall-clock duration of the invocation
}

// NewCommandExecutedEvent creates a CommandExecutedEvent.
func NewCommandExecutedEvent(argv []string, ok, timedOut bool, duration time.Duration) CommandExecutedEvent {
	return CommandExecutedEvent{
		baseEvent: newBaseEvent("command.executed"),
		Argv:      argv,
		OK:        ok,
		TimedOut:  timedOut,
		Duration:  duration,
	}
}

// -----------------------------------------------------------------------------
// Keystore Events
// -----------------------------------------------------------------------------

// KeystoreResolvedEvent is emitted when an existing keystore is selected.
type KeystoreResolvedEvent struct {
	baseEvent
	Path string // Keystore path
}

// NewKeystoreResolvedEvent creates a KeystoreResolvedEvent.
func NewKeystoreResolvedEvent(path string) KeystoreResolvedEvent {
	return KeystoreResolvedEvent{
		baseEvent: newBaseEvent("keystore.resolved"),
		Path:      path,
	}
}

// KeystoreGeneratedEvent is emitted when a throwaway keystore is created.
type KeystoreGeneratedEvent struct {
	baseEvent
	Path string // Generated keystore path
}

// NewKeystoreGeneratedEvent creates a KeystoreGeneratedEvent.
func NewKeystoreGeneratedEvent(path string) KeystoreGeneratedEvent {
	return KeystoreGeneratedEvent{
		baseEvent: newBaseEvent("keystore.generated"),
		Path:      path,
	}
}

// -----------------------------------------------------------------------------
// Install Events
// -----------------------------------------------------------------------------

// DeviceInstallStartedEvent is emitted before installing on one target.
type DeviceInstallStartedEvent struct {
	baseEvent
	Serial string // Device serial
}

// NewDeviceInstallStartedEvent creates a DeviceInstallStartedEvent.
func NewDeviceInstallStartedEvent(serial string) DeviceInstallStartedEvent {
	return DeviceInstallStartedEvent{
		baseEvent: newBaseEvent("device.install.started"),
		Serial:    serial,
	}
}

// DeviceInstallFinishedEvent is emitted after an install attempt on one target.
type DeviceInstallFinishedEvent struct {
	baseEvent
	Serial string // Device serial
	OK     bool   // Whether the install succeeded
	Reason string // Failure reason when OK is false
}

// NewDeviceInstallFinishedEvent creates a DeviceInstallFinishedEvent.
func NewDeviceInstallFinishedEvent(serial string, ok bool, reason string) DeviceInstallFinishedEvent {
	return DeviceInstallFinishedEvent{
		baseEvent: newBaseEvent("device.install.finished"),
		Serial:    serial,
		OK:        ok,
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Working Area Events
// -----------------------------------------------------------------------------

// WorkAreaCreatedEvent is emitted when the ephemeral working area is allocated.
type WorkAreaCreatedEvent struct {
	baseEvent
	Path string // Working area directory
}

// NewWorkAreaCreatedEvent creates a WorkAreaCreatedEvent.
func NewWorkAreaCreatedEvent(path string) WorkAreaCreatedEvent {
	return WorkAreaCreatedEvent{
		baseEvent: newBaseEvent("workarea.created"),
		Path:      path,
	}
}

// WorkAreaReleasedEvent is emitted when the working area has been removed.
type WorkAreaReleasedEvent struct {
	baseEvent
	Path string // Working area directory
	OK   bool   // False if removal failed (best-effort, never escalated)
}

// NewWorkAreaReleasedEvent creates a WorkAreaReleasedEvent.
func NewWorkAreaReleasedEvent(path string, ok bool) WorkAreaReleasedEvent {
	return WorkAreaReleasedEvent{
		baseEvent: newBaseEvent("workarea.released"),
		Path:      path,
		OK:        ok,
	}
}
