// Package keystore resolves the signing identity for the signing phase:
// reuse the well-known per-user debug keystore when present, otherwise
// synthesize a throwaway keystore with the external key-generation tool.
package keystore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apkforge/apkforge/internal/android"
	apkerrors "github.com/apkforge/apkforge/internal/errors"
	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/logging"
	"github.com/apkforge/apkforge/internal/runner"
)

// GeneratedName is the file name of a synthesized throwaway keystore.
const GeneratedName = "apkforge.keystore"

// Handle is a resolved signing identity: a keystore path plus the fixed
// debug alias/passphrase pair used with it.
type Handle struct {
	Path       string
	Alias      string
	Passphrase string
}

// Provisioner resolves or creates a signing keystore.
type Provisioner struct {
	run         runner.Runner
	bus         *event.Bus
	logger      *logging.Logger
	debugPath   string
	genPath     string
	keytoolPath string
}

// Option customizes a Provisioner.
type Option func(*Provisioner)

// WithDebugKeystore overrides the well-known per-user debug keystore path.
func WithDebugKeystore(path string) Option {
	return func(p *Provisioner) { p.debugPath = path }
}

// WithGeneratedPath overrides where a throwaway keystore is synthesized.
func WithGeneratedPath(path string) Option {
	return func(p *Provisioner) { p.genPath = path }
}

// WithKeytool overrides the keytool binary path, typically with the
// preflight-resolved one.
func WithKeytool(path string) Option {
	return func(p *Provisioner) { p.keytoolPath = path }
}

// New creates a Provisioner. The bus may be nil; a nil logger discards
// output.
func New(run runner.Runner, bus *event.Bus, logger *logging.Logger, opts ...Option) *Provisioner {
	if logger == nil {
		logger = logging.NopLogger()
	}

	p := &Provisioner{
		run:         run,
		bus:         bus,
		logger:      logger,
		debugPath:   DefaultDebugKeystorePath(),
		genPath:     filepath.Join(os.TempDir(), GeneratedName),
		keytoolPath: android.ToolKeytool,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultDebugKeystorePath returns the fixed per-user location of the
// Android debug keystore. Falls back to a relative path when the home
// directory cannot be determined.
func DefaultDebugKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".android", "debug.keystore")
	}
	return filepath.Join(home, ".android", "debug.keystore")
}

// Resolve returns a signing identity for this run.
//
// Precedence: an explicit user-supplied keystore wins; otherwise the
// per-user debug keystore is reused when present; otherwise a throwaway
// keystore is generated (or reused, if a previous run already generated
// one). The alias/passphrase pair is always the fixed debug identity,
// including for explicit keystores.
func (p *Provisioner) Resolve(ctx context.Context, explicit string) (Handle, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return Handle{}, apkerrors.NewKeystoreError("keystore not found", err).WithPath(explicit)
		}
		p.logger.Info("using explicit keystore", "path", explicit)
		p.publish(event.NewKeystoreResolvedEvent(explicit))
		return p.handle(explicit), nil
	}

	if _, err := os.Stat(p.debugPath); err == nil {
		p.logger.Info("reusing debug keystore", "path", p.debugPath)
		p.publish(event.NewKeystoreResolvedEvent(p.debugPath))
		return p.handle(p.debugPath), nil
	}

	// A keystore generated by an earlier run is reused rather than
	// regenerated; keytool refuses to add a duplicate alias anyway.
	if _, err := os.Stat(p.genPath); err == nil {
		p.logger.Info("reusing generated keystore", "path", p.genPath)
		p.publish(event.NewKeystoreResolvedEvent(p.genPath))
		return p.handle(p.genPath), nil
	}

	return p.generate(ctx)
}

// generate synthesizes a throwaway keystore with the fixed algorithm
// parameters. Failure here is unrecoverable for the signing phase.
func (p *Provisioner) generate(ctx context.Context) (Handle, error) {
	p.logger.Info("creating temporary keystore", "path", p.genPath)

	res := p.run.Run(ctx, p.keytoolPath, android.GenKeyArgs(p.genPath)...)
	if !res.OK {
		return Handle{}, apkerrors.NewKeystoreError("failed to generate keystore",
			apkerrors.ErrKeystoreUnavailable).WithPath(p.genPath)
	}

	p.publish(event.NewKeystoreGeneratedEvent(p.genPath))
	return p.handle(p.genPath), nil
}

func (p *Provisioner) handle(path string) Handle {
	return Handle{
		Path:       path,
		Alias:      android.DebugAlias,
		Passphrase: android.DebugPassphrase,
	}
}

func (p *Provisioner) publish(e event.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
