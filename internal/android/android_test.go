package android

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestBuildArgs(t *testing.T) {
	t.Run("aapt2 mode", func(t *testing.T) {
		got := BuildArgs("/in", "/tmp/unsigned.apk", true)
		want := []string{"b", "-o", "/tmp/unsigned.apk", "--use-aapt2", "/in"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildArgs = %v, want %v", got, want)
		}
	})

	t.Run("plain mode", func(t *testing.T) {
		got := BuildArgs("/in", "/tmp/unsigned.apk", false)
		want := []string{"b", "-o", "/tmp/unsigned.apk", "/in"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildArgs = %v, want %v", got, want)
		}
	})
}

func TestAlignArgs(t *testing.T) {
	got := AlignArgs("/tmp/unsigned.apk", "/tmp/aligned.apk")
	want := []string{"-v", "4", "/tmp/unsigned.apk", "/tmp/aligned.apk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AlignArgs = %v, want %v", got, want)
	}

	got = AlignCheckArgs("/tmp/aligned.apk")
	want = []string{"-c", "4", "/tmp/aligned.apk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AlignCheckArgs = %v, want %v", got, want)
	}
}

func TestSignArgs(t *testing.T) {
	got := SignArgs("/tmp/aligned.apk", "/out/final.apk", "/ks/debug.keystore")
	want := []string{
		"sign",
		"--ks", "/ks/debug.keystore",
		"--ks-pass", "pass:android",
		"--ks-key-alias", "androiddebugkey",
		"--key-pass", "pass:android",
		"--out", "/out/final.apk",
		"/tmp/aligned.apk",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SignArgs = %v, want %v", got, want)
	}
}

func TestGenKeyArgs(t *testing.T) {
	got := GenKeyArgs("/tmp/apkforge.keystore")

	// Fixed algorithm parameters for the throwaway identity.
	for _, want := range []string{"-genkey", "RSA", "2048", "10000", "androiddebugkey", DebugDName} {
		found := false
		for _, arg := range got {
			if arg == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("GenKeyArgs missing %q in %v", want, got)
		}
	}
}

func TestHasManifest(t *testing.T) {
	dir := t.TempDir()
	if HasManifest(dir) {
		t.Error("HasManifest = true for empty directory")
	}

	writeManifest(t, dir, `<manifest/>`)
	if !HasManifest(dir) {
		t.Error("HasManifest = false after writing manifest")
	}
}

func TestTargetSDK(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantSDK  int
		wantOK   bool
	}{
		{
			name:     "declared target version",
			manifest: `<manifest android:targetSdkVersion="34"/>`,
			wantSDK:  34,
			wantOK:   true,
		},
		{
			name:     "whitespace around attribute",
			manifest: `<manifest targetSdkVersion = "28"/>`,
			wantSDK:  28,
			wantOK:   true,
		},
		{
			name:     "no target version attribute",
			manifest: `<manifest package="com.example"/>`,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.manifest)

			sdk, ok := TargetSDK(dir)
			if ok != tt.wantOK {
				t.Fatalf("TargetSDK ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && sdk != tt.wantSDK {
				t.Errorf("TargetSDK = %d, want %d", sdk, tt.wantSDK)
			}
		})
	}

	t.Run("missing manifest", func(t *testing.T) {
		if _, ok := TargetSDK(t.TempDir()); ok {
			t.Error("TargetSDK ok = true for missing manifest")
		}
	})
}

func TestPrefersAAPT2(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     bool
	}{
		{"at threshold", `<manifest targetSdkVersion="34"/>`, true},
		{"above threshold", `<manifest targetSdkVersion="35"/>`, true},
		{"below threshold", `<manifest targetSdkVersion="33"/>`, false},
		{"undeclared", `<manifest/>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.manifest)
			if got := PrefersAAPT2(dir); got != tt.want {
				t.Errorf("PrefersAAPT2 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDevices(t *testing.T) {
	output := "List of devices attached\n" +
		"emulator-5554\tdevice\n" +
		"ABC123\toffline\n" +
		"DEF456\tunauthorized\n" +
		"GHI789\tdevice\n" +
		"\n"

	devices := ParseDevices(output)
	if len(devices) != 4 {
		t.Fatalf("ParseDevices returned %d devices, want 4", len(devices))
	}

	want := []Device{
		{Serial: "emulator-5554", State: "device"},
		{Serial: "ABC123", State: "offline"},
		{Serial: "DEF456", State: "unauthorized"},
		{Serial: "GHI789", State: "device"},
	}
	if !reflect.DeepEqual(devices, want) {
		t.Errorf("ParseDevices = %v, want %v", devices, want)
	}

	if !devices[0].Ready() {
		t.Error("device state should be ready")
	}
	if devices[1].Ready() {
		t.Error("offline state should not be ready")
	}
	if devices[2].Ready() {
		t.Error("unauthorized state should not be ready")
	}
}

func TestParseDevicesEmpty(t *testing.T) {
	devices := ParseDevices("List of devices attached\n\n")
	if len(devices) != 0 {
		t.Errorf("ParseDevices = %v, want empty", devices)
	}
}

func TestRequiredTools(t *testing.T) {
	tools := RequiredTools()
	if len(tools) != 5 {
		t.Fatalf("RequiredTools returned %d tools, want 5", len(tools))
	}
	want := []string{"apktool", "zipalign", "apksigner", "adb", "keytool"}
	if !reflect.DeepEqual(tools, want) {
		t.Errorf("RequiredTools = %v, want %v", tools, want)
	}
}
