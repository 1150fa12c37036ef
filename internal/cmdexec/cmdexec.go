// Package cmdexec abstracts external process execution (setterm, the C compiler)
// so callers can be tested with testutil.FakeCommander.
package cmdexec

import (
	"context"
	"os/exec"
)

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct {
	// Dir is the working directory for executed commands. Empty means the current one.
	Dir string
}

var _ Commander = (*RealCommander)(nil)

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir
	return cmd.CombinedOutput()
}

// LookPath delegates to exec.LookPath.
func (c *RealCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
