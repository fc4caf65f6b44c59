// Package publish pushes updated listing files to their git remote once a
// rating run completes. Publishing is best-effort: ratings are already
// persisted on disk, so a sync failure is reported but never undoes work.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"cellar/internal/logging"
)

var commandContext = exec.CommandContext

// Publisher commits and pushes listing updates from a git checkout.
type Publisher struct {
	repoDir string
	message string
	logger  *slog.Logger
}

// Option configures the publisher.
type Option func(*Publisher)

// WithMessage overrides the default commit message.
func WithMessage(message string) Option {
	return func(p *Publisher) {
		if strings.TrimSpace(message) != "" {
			p.message = message
		}
	}
}

// New constructs a publisher rooted at the given git checkout.
func New(repoDir string, logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		repoDir: repoDir,
		message: "Update wine ratings",
		logger:  logging.NewComponentLogger(logger, "publish"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish stages the given files, commits, rebases onto the remote, and
// pushes. Nothing staged means nothing to publish and is not an error.
func (p *Publisher) Publish(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}

	args := []string{"add", "--"}
	for _, f := range files {
		rel, err := filepath.Rel(p.repoDir, f)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = f
		}
		args = append(args, rel)
	}
	if _, err := p.git(ctx, args...); err != nil {
		return fmt.Errorf("stage listings: %w", err)
	}

	// git diff --cached --quiet exits non-zero when something is staged.
	if _, err := p.git(ctx, "diff", "--cached", "--quiet"); err == nil {
		p.logger.Info("no rating changes to publish")
		return nil
	}

	if _, err := p.git(ctx, "commit", "-m", p.message); err != nil {
		return fmt.Errorf("commit ratings: %w", err)
	}
	if _, err := p.git(ctx, "pull", "--rebase"); err != nil {
		return fmt.Errorf("rebase onto remote: %w", err)
	}
	if _, err := p.git(ctx, "push"); err != nil {
		return fmt.Errorf("push ratings: %w", err)
	}

	p.logger.Info("published rating updates", logging.Int("files", len(files)))
	return nil
}

func (p *Publisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := commandContext(ctx, "git", args...)
	cmd.Dir = p.repoDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %s: %w", args[0], ctx.Err())
		}
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, firstLine(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "<no stderr>"
	}
	return s
}
