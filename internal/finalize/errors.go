package finalize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBuildArtifactMissing means the compiled server directory does not
	// exist, which signals an upstream compile failure.
	ErrBuildArtifactMissing = errors.New("build artifact missing")

	// ErrInstallFailed is matched by every *InstallFailedError.
	ErrInstallFailed = errors.New("production install failed")
)

// InstallFailedError reports a failed production dependency install.
type InstallFailedError struct {
	Command  []string
	ExitCode int
	Err      error
}

func (e *InstallFailedError) Error() string {
	return fmt.Sprintf("%s: %q exited with code %d: %v",
		ErrInstallFailed, strings.Join(e.Command, " "), e.ExitCode, e.Err)
}

func (e *InstallFailedError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrInstallFailed.
func (e *InstallFailedError) Is(target error) bool {
	return target == ErrInstallFailed
}
