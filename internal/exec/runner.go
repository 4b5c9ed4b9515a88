package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command describes a child process to run.
type Command struct {
	// Args is the program followed by its arguments.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env overrides or extends the current process environment.
	Env map[string]string
	// Stdout and Stderr default to the parent's streams when nil.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is only connected when set.
	Stdin io.Reader
}

// Run executes the command and waits for it to exit. Output is streamed as
// it is produced. SIGINT, SIGTERM and SIGHUP received by the parent are
// forwarded to the child. The returned error preserves the child's exit code
// when available.
func Run(ctx context.Context, c Command) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("command must not be empty")
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = mergeEnv(os.Environ(), c.Env)
	cmd.Stdin = c.Stdin
	cmd.Stdout = orDefault(c.Stdout, os.Stdout)
	cmd.Stderr = orDefault(c.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting command %q: %w", c.Args[0], err)
	}

	cleanup := ForwardSignals(ctx, cmd.Process)
	defer cleanup()

	return cmd.Wait()
}

// ExitCode extracts the exit code from an error returned by Run.
// Returns 0 if err is nil. Returns the process exit code if err is an
// *exec.ExitError. Returns 1 for all other error types.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}

// Exited reports whether err means the child ran and exited unsuccessfully,
// as opposed to failing to start.
func Exited(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// mergeEnv combines the current process environment with additional
// env vars. Additional values override existing ones with the same key.
// Neither input slice nor map is mutated.
func mergeEnv(current []string, additional map[string]string) []string {
	envMap := parseEnvSlice(current)

	for k, v := range additional {
		envMap[k] = v
	}

	return formatEnvMap(envMap)
}

// parseEnvSlice converts a slice of "KEY=VALUE" strings into a map.
func parseEnvSlice(envSlice []string) map[string]string {
	result := make(map[string]string, len(envSlice))

	for _, entry := range envSlice {
		key, value := splitEnvEntry(entry)
		if key != "" {
			result[key] = value
		}
	}

	return result
}

// splitEnvEntry splits a "KEY=VALUE" string into key and value.
func splitEnvEntry(entry string) (string, string) {
	for i := range entry {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:]
		}
	}

	return entry, ""
}

// formatEnvMap converts a map back into a slice of "KEY=VALUE" strings.
func formatEnvMap(envMap map[string]string) []string {
	result := make([]string, 0, len(envMap))

	for k, v := range envMap {
		result = append(result, k+"="+v)
	}

	return result
}
