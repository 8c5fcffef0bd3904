// Package android centralizes the invocation surface of the external Android
// SDK tooling the pipeline drives: apktool, zipalign, apksigner, keytool, and
// adb. It builds argument vectors and parses tool output, but never executes
// anything itself; execution goes through the runner package so argv
// construction stays testable in isolation.
package android

// Names of the external tools required by the pipeline.
const (
	ToolApktool   = "apktool"
	ToolZipalign  = "zipalign"
	ToolApksigner = "apksigner"
	ToolADB       = "adb"
	ToolKeytool   = "keytool"
)

// RequiredTools returns the fixed set of tools the pipeline depends on,
// in preflight-report order.
func RequiredTools() []string {
	return []string{ToolApktool, ToolZipalign, ToolApksigner, ToolADB, ToolKeytool}
}

// Debug signing identity. These are the well-known, non-secret Android debug
// credentials; this tool targets development workflows, never release
// signing. The same alias/passphrase pair is applied even when the user
// supplies a custom keystore.
const (
	DebugAlias      = "androiddebugkey"
	DebugPassphrase = "android"
	DebugDName      = "CN=Android Debug,O=Android,C=US"
)

// Throwaway keystore generation parameters.
const (
	KeyAlgorithm = "RSA"
	KeySizeBits  = "2048"
	ValidityDays = "10000"
)

// AlignmentBoundary is the byte boundary zipalign normalizes to.
const AlignmentBoundary = "4"
