package claudecli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"cellar/internal/services"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	switch os.Getenv("HELPER_MODE") {
	case "ok":
		fmt.Print("  {\"score\": 3, \"reason\": \"silky tannins\"}\n")
	case "fail":
		fmt.Fprint(os.Stderr, "rate limited")
		os.Exit(1)
	case "hang":
		time.Sleep(10 * time.Second)
	}
}

func stubCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
}

func TestCompleteTrimsOutput(t *testing.T) {
	stubCommand(t, "ok")
	out, err := NewClient(WithModel("test-model")).Complete(context.Background(), "rate this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("output not trimmed: %q", out)
	}
}

func TestCompleteNonZeroExit(t *testing.T) {
	stubCommand(t, "fail")
	_, err := NewClient().Complete(context.Background(), "rate this")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("stderr snippet missing from error: %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("exit failure not tagged as external tool error: %v", err)
	}
}

func TestCompleteTimeout(t *testing.T) {
	stubCommand(t, "hang")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := NewClient().Complete(ctx, "rate this")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("deadline failure not tagged as timeout: %v", err)
	}
}

func TestCompleteEmptyPrompt(t *testing.T) {
	if _, err := NewClient().Complete(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}
