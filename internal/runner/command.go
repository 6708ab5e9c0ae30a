package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// RunShell executes the caller-supplied update command through the shell with
// the inherited environment. Its side effects on the working tree are opaque
// and unconstrained; output streams through to the process's own stdout and
// stderr. A non-zero exit is fatal for the whole run.
func RunShell(ctx context.Context, command, dir string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("update command %q failed: %w", command, err)
	}
	return nil
}
