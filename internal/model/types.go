// Package model defines the domain types for the dev-container CLI.
//
// The types here are transient values passed between the resolution chain,
// the display discovery, and the docker runtime layer. Nothing is persisted:
// an image resolution is computed once per invocation and consumed
// immediately by the command assembler.
package model

import (
	"fmt"
)

// Resolution is the outcome of a successful image resolution: the image
// reference that should be used for the container session, plus the name of
// the provider (CI dialect) that supplied it. The provider name exists purely
// for diagnostic display — the CLI prints which config file the image came from.
type Resolution struct {
	// Image is the container image reference, e.g. "registry/repo:tag".
	// It is always complete: either a provider produced the whole string
	// (including any environment substitution) or resolution failed.
	Image string `json:"image"`

	// Provider is the human-readable name of the provider that resolved
	// the image, e.g. "travis-ci" or "github-actions".
	Provider string `json:"provider"`
}

// RunOptions carries the CLI flags that influence how the container session
// is assembled and launched. It is built once at the command boundary and
// passed down explicitly — no package reads flag state ambiently.
type RunOptions struct {
	// ProjectDir is the absolute path to the project root that will be
	// mounted into the container. Immutable for the process's duration.
	ProjectDir string

	// ImageOverride, when non-empty, bypasses the resolution chain entirely
	// and uses this image reference as-is.
	ImageOverride string

	// Update pulls the resolved image before starting the container.
	Update bool

	// SysCaps adds elevated capabilities (SYS_ADMIN, SYS_PTRACE) to the
	// container, needed for debuggers and some build sandboxes.
	SysCaps bool

	// Command is an optional command to run inside the container instead
	// of the image's default command.
	Command []string
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically distinguish failure modes.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNoProviderFound indicates that no CI configuration in the project
	// directory could supply a container image.
	ExitNoProviderFound ExitCode = 2

	// ExitMalformedConfig indicates a CI configuration file exists but does
	// not have the expected shape (e.g. a CircleCI config without "jobs").
	ExitMalformedConfig ExitCode = 3

	// ExitMissingEnvVariable indicates a $VAR placeholder in a CI config
	// references an environment variable that is unset.
	ExitMissingEnvVariable ExitCode = 4

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
