// Package executor runs engine commands, elevating privileges when needed.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Executor runs subprocesses with optional sudo elevation and a dry-run
// mode that prints commands instead of executing them.
type Executor struct {
	dryRun  bool
	verbose bool
}

// New creates an Executor.
func New(dryRun, verbose bool) *Executor {
	return &Executor{dryRun: dryRun, verbose: verbose}
}

// Run executes a command, wiring the terminal through.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.announceDryRun(false, name, args)
		return nil
	}
	e.trace(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunSudo executes a command as root, via sudo when not already root.
func (e *Executor) RunSudo(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.announceDryRun(true, name, args)
		return nil
	}

	cmd, err := e.elevated(ctx, name, args)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunSudoWithStderr executes a command as root, streaming output to the
// terminal while also capturing stderr for error analysis.
func (e *Executor) RunSudoWithStderr(ctx context.Context, name string, args ...string) (string, error) {
	if e.dryRun {
		e.announceDryRun(true, name, args)
		return "", nil
	}

	cmd, err := e.elevated(ctx, name, args)
	if err != nil {
		return "", err
	}
	var stderr bytes.Buffer
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)

	runErr := cmd.Run()
	return stderr.String(), runErr
}

// Output runs a command and returns its stdout; stderr goes to the
// terminal. Queries are read-only, so dry-run mode does not block them.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	e.trace(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	return stdout.String(), err
}

// OutputQuiet runs a command and returns its stdout, discarding stderr.
func (e *Executor) OutputQuiet(ctx context.Context, name string, args ...string) (string, error) {
	e.trace(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	return stdout.String(), err
}

// OutputCombined runs a command and returns stdout and stderr interleaved.
func (e *Executor) OutputCombined(ctx context.Context, name string, args ...string) (string, error) {
	e.trace(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	return combined.String(), err
}

// elevated builds the command, prefixed with sudo when required.
func (e *Executor) elevated(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	switch {
	case isRoot():
		e.trace(name, args)
		return exec.CommandContext(ctx, name, args...), nil
	case hasSudo():
		e.trace("sudo "+name, args)
		return exec.CommandContext(ctx, "sudo", append([]string{name}, args...)...), nil
	default:
		return nil, ErrNoPrivileges
	}
}

func (e *Executor) trace(name string, args []string) {
	logrus.Debugf("exec: %s %s", name, strings.Join(args, " "))
	if e.verbose {
		fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
	}
}

func (e *Executor) announceDryRun(sudo bool, name string, args []string) {
	prefix := ""
	if sudo && !isRoot() {
		prefix = "sudo "
	}
	fmt.Printf("[dry-run] Would execute: %s%s %s\n", prefix, name, strings.Join(args, " "))
}
