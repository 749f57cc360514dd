package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quackverse/ducktyper/internal/config"
	"github.com/quackverse/ducktyper/internal/domain"
)

func TestOpenEngineWith(t *testing.T) {
	home := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Progress.File = filepath.Join(home, "ducktyper_user.json")
	cfg.Journal.Dir = home
	cfg.User.GitHubUsername = "quackduck"

	svc, j, err := openEngineWith(cfg)
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	defer closeJournal(j)

	if j == nil {
		t.Fatal("journal should be opened when enabled")
	}
	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 5})

	if _, err := os.Stat(cfg.Progress.File); err != nil {
		t.Errorf("progress not written to configured path: %v", err)
	}
	n, err := j.Count()
	if err != nil {
		t.Fatalf("count journal: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 journaled event, got %d", n)
	}
}

func TestOpenEngineWith_EmptyProgressPathUsesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("QUACK_HOME", home)
	t.Setenv("DUCKTYPER_PROGRESS_FILE", "")

	cfg := config.DefaultConfig()
	cfg.Progress.File = ""
	cfg.Journal.Enabled = false

	svc, j, err := openEngineWith(cfg)
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	defer closeJournal(j)

	if j != nil {
		t.Error("journal should not open when disabled")
	}
	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 5})

	if _, err := os.Stat(filepath.Join(home, "ducktyper_user.json")); err != nil {
		t.Errorf("progress not written to default path: %v", err)
	}
}
