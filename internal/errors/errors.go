// Package errors provides centralized error definitions and error handling
// utilities for the apkforge codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures from specific pipeline stages:
//   - DependencyError: required external tools unresolvable at preflight
//   - InputError: invalid input directory or missing manifest
//   - ToolError: an invoked external tool exited non-zero or timed out
//   - VerificationError: a post-transform check (alignment, signature) failed
//   - KeystoreError: keystore resolution or generation failed
//   - InstallError: device enumeration or installation failed
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewToolError("rebuild failed", cause).WithTool("apktool").WithPhase("rebuilding")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrTimeout) { ... }
//
//	var toolErr *errors.ToolError
//	if errors.As(err, &toolErr) { ... }
//
// # Error Classification
//
// Errors carry a severity and a user-facing flag. Install-phase errors are
// classified as warnings: they never fail a run whose mandatory phases
// succeeded.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for errors that degrade a run without failing it.
	SeverityWarning
	// SeverityError is for errors that fail the current pipeline run.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Preflight and input sentinel errors
var (
	// ErrMissingDependency indicates one or more required tools are unresolvable.
	ErrMissingDependency = New("missing required tools")
	// ErrInvalidInput indicates the input directory does not exist or is not a directory.
	ErrInvalidInput = New("invalid input directory")
	// ErrManifestMissing indicates the input directory lacks AndroidManifest.xml.
	ErrManifestMissing = New("manifest not found in input directory")
)

// Invocation sentinel errors
var (
	// ErrTimeout indicates an external invocation exceeded its time bound.
	ErrTimeout = New("command timed out")
	// ErrVerificationFailed indicates a post-transform check did not pass.
	ErrVerificationFailed = New("verification failed")
)

// Signing and install sentinel errors
var (
	// ErrKeystoreUnavailable indicates no keystore could be resolved or generated.
	ErrKeystoreUnavailable = New("keystore unavailable")
	// ErrNoDevices indicates no eligible install targets are attached.
	ErrNoDevices = New("no connected devices found")
	// ErrPartialInstall indicates installation failed on at least one target.
	ErrPartialInstall = New("installation failed on some devices")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// DependencyError reports tools that could not be resolved at preflight.
// It always aggregates the complete set of missing tools so the user sees
// one message rather than discovering them one at a time.
type DependencyError struct {
	baseError
	Missing []string
}

// NewDependencyError creates a DependencyError for the given missing tools.
func NewDependencyError(missing []string) *DependencyError {
	return &DependencyError{
		baseError: baseError{
			message:    "missing dependencies",
			cause:      ErrMissingDependency,
			severity:   SeverityError,
			userFacing: true,
		},
		Missing: missing,
	}
}

// Error returns the formatted error message.
func (e *DependencyError) Error() string {
	if len(e.Missing) == 0 {
		return e.baseError.Error()
	}
	return fmt.Sprintf("missing dependencies: %s", strings.Join(e.Missing, ", "))
}

// Is checks if this error matches the target.
func (e *DependencyError) Is(target error) bool {
	if _, ok := target.(*DependencyError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// InputError represents an invalid pipeline input (directory or manifest).
type InputError struct {
	baseError
	Path string
}

// NewInputError creates a new InputError.
func NewInputError(message string, cause error) *InputError {
	return &InputError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the offending path to the error context.
func (e *InputError) WithPath(path string) *InputError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *InputError) Error() string {
	prefix := "input error"
	if e.Path != "" {
		prefix = fmt.Sprintf("input error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *InputError) Is(target error) bool {
	if _, ok := target.(*InputError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ToolError represents a failed external tool invocation: a non-zero exit,
// a timeout (cause ErrTimeout), or an inability to launch the process.
type ToolError struct {
	baseError
	Tool   string
	Phase  string
	Stderr string
}

// NewToolError creates a new ToolError.
func NewToolError(message string, cause error) *ToolError {
	return &ToolError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithTool adds the tool name to the error context.
func (e *ToolError) WithTool(tool string) *ToolError {
	e.Tool = tool
	return e
}

// WithPhase adds the pipeline phase to the error context.
func (e *ToolError) WithPhase(phase string) *ToolError {
	e.Phase = phase
	return e
}

// WithStderr attaches the tool's captured error output.
func (e *ToolError) WithStderr(stderr string) *ToolError {
	e.Stderr = strings.TrimSpace(stderr)
	return e
}

// Error returns the formatted error message.
func (e *ToolError) Error() string {
	var parts []string
	if e.Tool != "" {
		parts = append(parts, fmt.Sprintf("tool=%s", e.Tool))
	}
	if e.Phase != "" {
		parts = append(parts, fmt.Sprintf("phase=%s", e.Phase))
	}

	prefix := "tool error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("tool error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ToolError) Is(target error) bool {
	if _, ok := target.(*ToolError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// VerificationError represents a failed post-transform check. It is distinct
// from ToolError so callers can tell "the transform failed" apart from
// "the transform succeeded but the produced artifact did not verify".
type VerificationError struct {
	baseError
	Check    string
	Artifact string
}

// NewVerificationError creates a new VerificationError.
func NewVerificationError(message string) *VerificationError {
	return &VerificationError{
		baseError: baseError{
			message:    message,
			cause:      ErrVerificationFailed,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithCheck names the verification step that failed (e.g. "zipalign -c").
func (e *VerificationError) WithCheck(check string) *VerificationError {
	e.Check = check
	return e
}

// WithArtifact adds the artifact path to the error context.
func (e *VerificationError) WithArtifact(artifact string) *VerificationError {
	e.Artifact = artifact
	return e
}

// Error returns the formatted error message.
func (e *VerificationError) Error() string {
	var parts []string
	if e.Check != "" {
		parts = append(parts, fmt.Sprintf("check=%s", e.Check))
	}
	if e.Artifact != "" {
		parts = append(parts, fmt.Sprintf("artifact=%s", e.Artifact))
	}

	prefix := "verification error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("verification error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *VerificationError) Is(target error) bool {
	if _, ok := target.(*VerificationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// KeystoreError represents a keystore resolution or generation failure.
// It is unrecoverable for the signing phase.
type KeystoreError struct {
	baseError
	Path string
}

// NewKeystoreError creates a new KeystoreError.
func NewKeystoreError(message string, cause error) *KeystoreError {
	return &KeystoreError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the keystore path to the error context.
func (e *KeystoreError) WithPath(path string) *KeystoreError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *KeystoreError) Error() string {
	prefix := "keystore error"
	if e.Path != "" {
		prefix = fmt.Sprintf("keystore error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *KeystoreError) Is(target error) bool {
	if _, ok := target.(*KeystoreError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// InstallError represents a device enumeration or installation failure.
// The orchestrator downgrades it to a warning: a produced artifact stays
// valid even when installation fails.
type InstallError struct {
	baseError
	Serial string
}

// NewInstallError creates a new InstallError.
func NewInstallError(message string, cause error) *InstallError {
	return &InstallError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithSerial adds the device serial to the error context.
func (e *InstallError) WithSerial(serial string) *InstallError {
	e.Serial = serial
	return e
}

// Error returns the formatted error message.
func (e *InstallError) Error() string {
	prefix := "install error"
	if e.Serial != "" {
		prefix = fmt.Sprintf("install error [device=%s]", e.Serial)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *InstallError) Is(target error) bool {
	if _, ok := target.(*InstallError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// severityCarrier is implemented by all errors in this package.
type severityCarrier interface {
	Severity() Severity
}

// SeverityOf returns the severity of an error, defaulting to SeverityError
// for errors that don't carry one.
func SeverityOf(err error) Severity {
	var sc severityCarrier
	if As(err, &sc) {
		return sc.Severity()
	}
	return SeverityError
}

// IsWarning reports whether the error degrades a run without failing it.
// Install-phase errors are the only warnings in the pipeline.
func IsWarning(err error) bool {
	return SeverityOf(err) == SeverityWarning
}

// IsTimeout reports whether the error was caused by an invocation timeout.
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}
