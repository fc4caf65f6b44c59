package publish

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"cellar/internal/logging"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	// args after "--" are the real git arguments
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch os.Getenv("HELPER_MODE") {
	case "ok":
		if sub == "diff" {
			os.Exit(1) // staged changes present
		}
	case "clean":
		if sub == "diff" {
			os.Exit(0) // nothing staged
		}
	case "push-fail":
		if sub == "diff" {
			os.Exit(1)
		}
		if sub == "push" {
			fmt.Fprint(os.Stderr, "remote: permission denied")
			os.Exit(1)
		}
	}
}

// stubGit replaces command execution with the helper process and records
// every git invocation.
func stubGit(t *testing.T, mode string) *[][]string {
	t.Helper()
	var calls [][]string
	original := commandContext
	commandContext = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		calls = append(calls, args)
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
	return &calls
}

func subcommands(calls [][]string) []string {
	var subs []string
	for _, args := range calls {
		if len(args) > 0 {
			subs = append(subs, args[0])
		}
	}
	return subs
}

func TestPublishFullSequence(t *testing.T) {
	calls := stubGit(t, "ok")
	p := New(t.TempDir(), logging.NewNop(), WithMessage("Update wine ratings"))

	if err := p.Publish(context.Background(), []string{"wines/2026.txt"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := []string{"add", "diff", "commit", "pull", "push"}
	got := subcommands(*calls)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("git sequence = %v, want %v", got, want)
	}
}

func TestPublishNothingStaged(t *testing.T) {
	calls := stubGit(t, "clean")
	p := New(t.TempDir(), logging.NewNop())

	if err := p.Publish(context.Background(), []string{"wines/2026.txt"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := subcommands(*calls)
	for _, sub := range got {
		if sub == "commit" || sub == "push" {
			t.Fatalf("unexpected %s with nothing staged: %v", sub, got)
		}
	}
}

func TestPublishNoFiles(t *testing.T) {
	calls := stubGit(t, "ok")
	p := New(t.TempDir(), logging.NewNop())

	if err := p.Publish(context.Background(), nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no git calls, got %v", subcommands(*calls))
	}
}

func TestPublishPushFailureSurfacesStderr(t *testing.T) {
	stubGit(t, "push-fail")
	p := New(t.TempDir(), logging.NewNop())

	err := p.Publish(context.Background(), []string{"wines/2026.txt"})
	if err == nil {
		t.Fatal("expected push failure")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("stderr missing from error: %v", err)
	}
}

func TestCommitMessageOption(t *testing.T) {
	calls := stubGit(t, "ok")
	p := New(t.TempDir(), logging.NewNop(), WithMessage("Rate March arrivals"))

	if err := p.Publish(context.Background(), []string{"wines.txt"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for _, args := range *calls {
		if len(args) >= 3 && args[0] == "commit" {
			if args[2] != "Rate March arrivals" {
				t.Fatalf("commit message = %q", args[2])
			}
			return
		}
	}
	t.Fatal("no commit invocation recorded")
}
