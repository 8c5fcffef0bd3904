package android

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// ManifestName is the marker file that confirms a directory is a valid
// decompiled package root.
const ManifestName = "AndroidManifest.xml"

// HighTargetSDKThreshold is the target API level at or above which the
// rebuild prefers the aapt2 resource compiler.
const HighTargetSDKThreshold = 34

var targetSDKPattern = regexp.MustCompile(`targetSdkVersion\s*=\s*"(\d+)"`)

// ManifestPath returns the expected manifest location inside a decompiled
// package directory.
func ManifestPath(inputDir string) string {
	return filepath.Join(inputDir, ManifestName)
}

// HasManifest reports whether the directory contains the manifest marker.
func HasManifest(inputDir string) bool {
	_, err := os.Stat(ManifestPath(inputDir))
	return err == nil
}

// TargetSDK scans the manifest for the target-version attribute.
// The second return value is false when the manifest is unreadable or
// carries no such attribute.
func TargetSDK(inputDir string) (int, bool) {
	content, err := os.ReadFile(ManifestPath(inputDir))
	if err != nil {
		return 0, false
	}

	match := targetSDKPattern.FindSubmatch(content)
	if match == nil {
		return 0, false
	}

	sdk, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return 0, false
	}
	return sdk, true
}

// PrefersAAPT2 reports whether the manifest declares a target API level at
// or above HighTargetSDKThreshold. Unreadable or attribute-less manifests
// report false, which keeps the rebuild on the plain invocation.
func PrefersAAPT2(inputDir string) bool {
	sdk, ok := TargetSDK(inputDir)
	return ok && sdk >= HighTargetSDKThreshold
}
