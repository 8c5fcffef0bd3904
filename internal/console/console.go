// Package console renders pipeline events as human-readable progress lines.
// It subscribes to the event bus so the pipeline itself stays silent on
// stdout; structured logs are a separate concern handled by logging.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/util"
)

// roundTo trims duration noise out of the completion line.
const roundTo = 10 * time.Millisecond

// maxReasonWidth bounds failure reasons so multi-page tool stderr does not
// flood the progress output.
const maxReasonWidth = 200

// phaseLabels maps phase names to the progress text shown for them.
var phaseLabels = map[string]string{
	"preflight":  "Checking required tools",
	"rebuilding": "Rebuilding package",
	"aligning":   "Aligning APK",
	"signing":    "Signing APK",
	"installing": "Installing on devices",
}

// Renderer writes progress lines for pipeline events.
type Renderer struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// New creates a Renderer writing to w. Verbose mode additionally prints
// every external command invocation.
func New(w io.Writer, verbose bool) *Renderer {
	return &Renderer{w: w, verbose: verbose}
}

// Attach subscribes the renderer to all events it knows how to present.
func (r *Renderer) Attach(bus *event.Bus) {
	bus.Subscribe("pipeline.started", r.handle)
	bus.Subscribe("pipeline.completed", r.handle)
	bus.Subscribe("pipeline.failed", r.handle)
	bus.Subscribe("phase.started", r.handle)
	bus.Subscribe("tool.missing", r.handle)
	bus.Subscribe("tool.unconventional", r.handle)
	bus.Subscribe("command.executed", r.handle)
	bus.Subscribe("keystore.resolved", r.handle)
	bus.Subscribe("keystore.generated", r.handle)
	bus.Subscribe("device.install.finished", r.handle)
}

func (r *Renderer) handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev := e.(type) {
	case event.PipelineStartedEvent:
		r.println(Title.Render("apkforge"), Muted.Render(ev.InputDir+" -> "+ev.OutputAPK))
	case event.PipelineCompletedEvent:
		r.println(Success.Render("✓ done"),
			fmt.Sprintf("%s (%s)", ev.OutputAPK, ev.Duration.Round(roundTo)))
	case event.PipelineFailedEvent:
		r.println(Failure.Render("✗ failed"),
			fmt.Sprintf("during %s: %s", ev.Phase, util.TruncateANSI(ev.Reason, maxReasonWidth)))
	case event.PhaseStartedEvent:
		if label, ok := phaseLabels[ev.Phase]; ok {
			r.println(Primary.Render("•"), label)
		}
	case event.ToolMissingEvent:
		r.println(Error.Render("missing tool:"), ev.Tool)
	case event.ToolUnconventionalPathEvent:
		r.println(Warning.Render("warning:"),
			fmt.Sprintf("%s resolved outside system directories (%s)", ev.Tool, ev.Path))
	case event.CommandExecutedEvent:
		if r.verbose {
			r.println(Muted.Render("$"), Muted.Render(fmt.Sprintf("%v", ev.Argv)))
		}
	case event.KeystoreResolvedEvent:
		r.println(Muted.Render("keystore:"), ev.Path)
	case event.KeystoreGeneratedEvent:
		r.println(Warning.Render("generated throwaway keystore:"), ev.Path)
	case event.DeviceInstallFinishedEvent:
		if ev.OK {
			r.println(Secondary.Render("installed:"), ev.Serial)
		} else {
			r.println(Warning.Render("install failed:"),
				fmt.Sprintf("%s (%s)", ev.Serial, ev.Reason))
		}
	}
}

func (r *Renderer) println(parts ...string) {
	for i, p := range parts {
		if i > 0 {
			fmt.Fprint(r.w, " ")
		}
		fmt.Fprint(r.w, p)
	}
	fmt.Fprintln(r.w)
}
