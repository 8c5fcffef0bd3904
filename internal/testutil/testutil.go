// Package testutil provides testing utilities for apkforge tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/apkforge/apkforge/internal/runner"
)

// Call records one invocation observed by a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like command line for assertions.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s %v", c.Name, c.Args)
}

// FakeRunner implements runner.Runner with scripted results, recording every
// invocation. The zero value succeeds on everything.
type FakeRunner struct {
	mu    sync.Mutex
	calls []Call

	// Stub computes the result for one invocation. When nil, every
	// invocation succeeds with empty output.
	Stub func(name string, args []string) runner.Result
}

// Run records the call and returns the scripted result.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) runner.Result {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: args})
	f.mu.Unlock()

	if f.Stub == nil {
		return OK()
	}
	return f.Stub(name, args)
}

// Calls returns a copy of all recorded invocations in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the recorded invocations of one tool, in order.
func (f *FakeRunner) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// OK returns a successful invocation result.
func OK() runner.Result {
	return runner.Result{OK: true}
}

// OKWith returns a successful invocation result carrying stdout.
func OKWith(stdout string) runner.Result {
	return runner.Result{OK: true, Stdout: stdout}
}

// Fail returns a failed invocation result with the given reason.
func Fail(reason string) runner.Result {
	return runner.Result{Reason: reason}
}

// Timeout returns a timed-out invocation result.
func Timeout() runner.Result {
	return runner.Result{TimedOut: true, Reason: "timed out after 2m0s"}
}

// DecompiledApp creates a temporary decompiled package directory containing
// a manifest. targetSDK <= 0 omits the target-version attribute.
func DecompiledApp(t *testing.T, targetSDK int) string {
	t.Helper()

	dir := t.TempDir()
	manifest := `<manifest package="com.example.app"/>`
	if targetSDK > 0 {
		manifest = fmt.Sprintf(`<manifest package="com.example.app" android:targetSdkVersion="%d"/>`, targetSDK)
	}
	if err := os.WriteFile(filepath.Join(dir, "AndroidManifest.xml"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

// EmptyAppDir creates a temporary directory without a manifest marker.
func EmptyAppDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
