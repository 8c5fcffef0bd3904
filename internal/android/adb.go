package android

import "strings"

// Device states reported by adb. Only StateDevice is eligible for install.
const (
	StateDevice       = "device"
	StateOffline      = "offline"
	StateUnauthorized = "unauthorized"
)

// Device is one attached target as reported by the device bridge.
// It has no persistent identity across runs.
type Device struct {
	Serial string
	State  string
}

// Ready reports whether the device is in the ready state and eligible
// for installation.
func (d Device) Ready() bool {
	return d.State == StateDevice
}

// DevicesArgs returns the adb arguments to enumerate attached targets.
func DevicesArgs() []string {
	return []string{"devices"}
}

// InstallArgs returns the adb arguments to install an APK on one target,
// replacing an existing installation.
func InstallArgs(serial, apk string) []string {
	return []string{"-s", serial, "install", "-r", apk}
}

// ParseDevices parses the output of `adb devices` into a device list.
// The first line is a banner; each subsequent non-empty line is
// "<serial>\t<state>". Malformed lines are skipped.
func ParseDevices(output string) []Device {
	lines := strings.Split(output, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "List of devices") {
		lines = lines[1:]
	}

	var devices []Device
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, Device{
			Serial: strings.TrimSpace(fields[0]),
			State:  strings.TrimSpace(fields[1]),
		})
	}
	return devices
}
