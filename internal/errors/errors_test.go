package errors

import (
	"strings"
	"testing"
)

func TestDependencyError(t *testing.T) {
	t.Run("aggregates all missing tools in one message", func(t *testing.T) {
		err := NewDependencyError([]string{"apktool", "zipalign", "keytool"})

		msg := err.Error()
		for _, tool := range []string{"apktool", "zipalign", "keytool"} {
			if !strings.Contains(msg, tool) {
				t.Errorf("Error() = %q, missing tool %q", msg, tool)
			}
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		err := NewDependencyError([]string{"adb"})
		if !Is(err, ErrMissingDependency) {
			t.Error("expected DependencyError to match ErrMissingDependency")
		}
	})

	t.Run("matches type via As", func(t *testing.T) {
		var depErr *DependencyError
		err := NewDependencyError([]string{"adb"})
		if !As(err, &depErr) {
			t.Fatal("expected As to match *DependencyError")
		}
		if len(depErr.Missing) != 1 || depErr.Missing[0] != "adb" {
			t.Errorf("Missing = %v, want [adb]", depErr.Missing)
		}
	})
}

func TestToolError(t *testing.T) {
	t.Run("includes tool and phase context", func(t *testing.T) {
		err := NewToolError("rebuild failed", nil).
			WithTool("apktool").
			WithPhase("rebuilding")

		msg := err.Error()
		if !strings.Contains(msg, "tool=apktool") {
			t.Errorf("Error() = %q, want tool context", msg)
		}
		if !strings.Contains(msg, "phase=rebuilding") {
			t.Errorf("Error() = %q, want phase context", msg)
		}
	})

	t.Run("trims captured stderr", func(t *testing.T) {
		err := NewToolError("sign failed", nil).WithStderr("  bad keystore\n\n")
		if err.Stderr != "bad keystore" {
			t.Errorf("Stderr = %q, want %q", err.Stderr, "bad keystore")
		}
	})

	t.Run("timeout cause is detectable", func(t *testing.T) {
		err := NewToolError("zipalign timed out", ErrTimeout).WithTool("zipalign")
		if !IsTimeout(err) {
			t.Error("expected IsTimeout to report true for ErrTimeout cause")
		}
	})
}

func TestVerificationError(t *testing.T) {
	err := NewVerificationError("signature did not verify").
		WithCheck("apksigner verify").
		WithArtifact("/tmp/out.apk")

	if !Is(err, ErrVerificationFailed) {
		t.Error("expected VerificationError to match ErrVerificationFailed")
	}

	// A verification failure must remain distinguishable from a tool failure.
	var toolErr *ToolError
	if As(err, &toolErr) {
		t.Error("VerificationError should not match *ToolError")
	}

	msg := err.Error()
	if !strings.Contains(msg, "check=apksigner verify") {
		t.Errorf("Error() = %q, want check context", msg)
	}
}

func TestInstallErrorIsWarning(t *testing.T) {
	err := NewInstallError("install failed", ErrNoDevices).WithSerial("emulator-5554")

	if !IsWarning(err) {
		t.Error("expected install errors to classify as warnings")
	}
	if !Is(err, ErrNoDevices) {
		t.Error("expected InstallError to match its cause")
	}
	if !strings.Contains(err.Error(), "device=emulator-5554") {
		t.Errorf("Error() = %q, want device context", err.Error())
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"tool error", NewToolError("boom", nil), SeverityError},
		{"install error", NewInstallError("boom", nil), SeverityWarning},
		{"plain error", New("boom"), SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeverityOf(tt.err); got != tt.want {
				t.Errorf("SeverityOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
