// Package toolchain verifies that the external tools the pipeline invokes
// are resolvable on the execution path before any phase runs.
package toolchain

import (
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/logging"
)

// conventionalBinDirs are the directories a system-managed tool is expected
// to live in. A tool resolving elsewhere triggers an informational warning,
// never a failure.
var conventionalBinDirs = map[string]bool{
	"/bin":            true,
	"/sbin":           true,
	"/usr/bin":        true,
	"/usr/sbin":       true,
	"/usr/local/bin":  true,
	"/usr/local/sbin": true,
}

// Tool is the resolution outcome for one required tool.
type Tool struct {
	Name    string
	Present bool
	Path    string // Resolved filesystem path; empty when absent
}

// Availability maps each required tool to its resolution outcome.
// It is built once per run at preflight and never mutated afterwards.
type Availability struct {
	tools map[string]Tool
}

// Lookup returns the resolution outcome for a tool name.
func (a Availability) Lookup(name string) (Tool, bool) {
	t, ok := a.tools[name]
	return t, ok
}

// Path returns the resolved path of a present tool, or its bare name when
// resolution data is unavailable, letting the OS search the path again.
func (a Availability) Path(name string) string {
	if t, ok := a.tools[name]; ok && t.Present {
		return t.Path
	}
	return name
}

// Missing returns the sorted names of all unresolvable tools, so the caller
// can report them in one aggregated message.
func (a Availability) Missing() []string {
	var missing []string
	for _, t := range a.tools {
		if !t.Present {
			missing = append(missing, t.Name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Checker resolves required tools on the execution search path.
// It never fails the process itself; callers decide based on Missing().
type Checker struct {
	lookPath func(string) (string, error) // Injectable for tests
	bus      *event.Bus
	logger   *logging.Logger
}

// Option customizes a Checker.
type Option func(*Checker)

// WithLookPath overrides how tool names resolve to paths. Used by tests to
// script availability without depending on the host system.
func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(c *Checker) { c.lookPath = lookPath }
}

// New creates a Checker. The bus may be nil; a nil logger discards output.
func New(bus *event.Bus, logger *logging.Logger, opts ...Option) *Checker {
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := &Checker{
		lookPath: exec.LookPath,
		bus:      bus,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check resolves each named tool and returns the complete availability map.
// For each resolved tool living outside a conventional system binary
// directory it emits a warning-level diagnostic (informational only).
func (c *Checker) Check(tools []string) Availability {
	avail := Availability{tools: make(map[string]Tool, len(tools))}

	for _, name := range tools {
		path, err := c.lookPath(name)
		if err != nil {
			avail.tools[name] = Tool{Name: name}
			c.logger.Warn("required tool not found", "tool", name)
			c.publish(event.NewToolMissingEvent(name))
			continue
		}

		avail.tools[name] = Tool{Name: name, Present: true, Path: path}
		c.logger.Debug("tool resolved", "tool", name, "path", path)
		c.publish(event.NewToolLocatedEvent(name, path))

		if !conventionalBinDirs[filepath.Dir(path)] {
			c.logger.Warn("tool resolved outside system binary directories",
				"tool", name, "path", path)
			c.publish(event.NewToolUnconventionalPathEvent(name, path))
		}
	}

	return avail
}

func (c *Checker) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
