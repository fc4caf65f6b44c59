// Package claudecli wraps the claude command-line client as a reasoning
// backend. Prefer this package over ad-hoc exec.Command usage when invoking
// the CLI so timeouts and error shaping stay consistent.
package claudecli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"cellar/internal/services"
)

var commandContext = exec.CommandContext

const defaultBinary = "claude"

// Client invokes the claude CLI in print mode for one-shot completions.
type Client struct {
	binary string
	model  string
}

// Option configures the CLI client.
type Option func(*Client)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithModel selects the model passed to the CLI.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = strings.TrimSpace(model)
	}
}

// NewClient constructs a CLI client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{binary: defaultBinary}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Complete runs one prompt through the CLI and returns trimmed stdout.
// A non-zero exit is a hard failure for the attempt; the deadline on ctx
// bounds the call.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("claude complete: prompt required")
	}

	args := []string{"-p"}
	if c.model != "" {
		args = append(args, "--model", c.model)
	}
	args = append(args, prompt)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTimeout, "claude", "complete", "deadline exceeded", ctx.Err())
		}
		return "", services.Wrap(services.ErrExternalTool, "claude", "complete", snippet(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	if s == "" {
		return "<no stderr>"
	}
	return s
}
