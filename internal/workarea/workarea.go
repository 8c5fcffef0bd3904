// Package workarea owns the ephemeral directory holding intermediate
// artifacts for one pipeline run. Exactly one area exists per run; it is
// created before the rebuild phase and removed on every exit path.
package workarea

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/logging"
)

// Intermediate artifact names inside the working area.
const (
	unsignedName = "unsigned.apk"
	alignedName  = "aligned.apk"
)

// Area is an exclusively-owned ephemeral working directory.
type Area struct {
	path     string
	bus      *event.Bus
	logger   *logging.Logger
	once     sync.Once
	released atomic.Bool
}

// New allocates a fresh working area under the system temporary directory.
// The bus may be nil; a nil logger discards output.
func New(bus *event.Bus, logger *logging.Logger) (*Area, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	path, err := os.MkdirTemp("", "apkforge-")
	if err != nil {
		return nil, fmt.Errorf("failed to create working area: %w", err)
	}

	logger.Debug("working area created", "path", path)
	if bus != nil {
		bus.Publish(event.NewWorkAreaCreatedEvent(path))
	}

	return &Area{
		path:   path,
		bus:    bus,
		logger: logger,
	}, nil
}

// Path returns the working area directory.
func (a *Area) Path() string {
	return a.path
}

// UnsignedAPK returns the path for the rebuild phase's output artifact.
func (a *Area) UnsignedAPK() string {
	return filepath.Join(a.path, unsignedName)
}

// AlignedAPK returns the path for the alignment phase's output artifact.
func (a *Area) AlignedAPK() string {
	return filepath.Join(a.path, alignedName)
}

// Release removes the working area recursively. It is safe to call from any
// exit path and acts exactly once; repeated calls are no-ops. Removal
// failures are logged, never escalated: cleanup is best-effort and must not
// flip an otherwise-successful run to failure.
func (a *Area) Release() {
	a.once.Do(func() {
		err := os.RemoveAll(a.path)
		if err != nil {
			a.logger.Warn("failed to remove working area", "path", a.path, "error", err.Error())
		} else {
			a.logger.Debug("working area removed", "path", a.path)
		}
		a.released.Store(true)
		if a.bus != nil {
			a.bus.Publish(event.NewWorkAreaReleasedEvent(a.path, err == nil))
		}
	})
}

// Released reports whether Release has completed.
func (a *Area) Released() bool {
	return a.released.Load()
}
