// Package semrel invokes the semantic-release binary against a project
// configuration. The tool owns version computation and changelog content;
// this package only hands it a config file, an argument list and a working
// directory, and classifies the result.
package semrel

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultTool is the binary looked up on PATH when Runner.Tool is empty.
const DefaultTool = "semantic-release"

// Subcommands accepted by Run.
const (
	SubVersion   = "version"
	SubChangelog = "changelog"
	SubPublish   = "publish"
)

// Runner executes semantic-release. The zero value runs DefaultTool from
// PATH; tests point Tool at a stand-in executable.
type Runner struct {
	Tool string
}

// Outcome carries the captured output of a successful invocation. Either
// stream may be empty.
type Outcome struct {
	Stdout string
	Stderr string
}

// ToolError reports an invocation that could not be started or exited
// non-zero, with whatever diagnostic text the tool wrote to stderr.
type ToolError struct {
	Sub    string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("semantic-release %s failed: %v", e.Sub, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Run invokes `<tool> -c <configPath> [--noop] <sub> [args...]` with the
// child's working directory set to dir. The --noop token is hoisted in
// front of the subcommand name: semantic-release treats dry-run as a global
// option while every other flag is scoped to the subcommand. The calling
// process's working directory is never touched.
func (r Runner) Run(ctx context.Context, sub, configPath string, args []string, dir string) (Outcome, error) {
	tool := r.Tool
	if tool == "" {
		tool = DefaultTool
	}

	pre, post := splitGlobal(args)
	argv := append([]string{"-c", configPath}, pre...)
	argv = append(argv, sub)
	argv = append(argv, post...)

	cmd := exec.CommandContext(ctx, tool, argv...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Outcome{}, &ToolError{Sub: sub, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return Outcome{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// splitGlobal buckets args around the subcommand position.
func splitGlobal(args []string) (pre, post []string) {
	for _, a := range args {
		if a == "--noop" {
			pre = append(pre, a)
		} else {
			post = append(post, a)
		}
	}
	return pre, post
}
