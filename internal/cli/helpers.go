package cli

import (
	"log"

	"github.com/quackverse/ducktyper/internal/app/gamification"
	"github.com/quackverse/ducktyper/internal/config"
	"github.com/quackverse/ducktyper/internal/infra/journal"
	"github.com/quackverse/ducktyper/internal/infra/store"
)

// openEngine wires the engine from the loaded config: JSON store plus the
// optional event journal. Callers close the returned journal (nil-safe).
func openEngine() (*gamification.Service, *journal.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return openEngineWith(cfg)
}

// openEngineWith wires the engine from an already-loaded config.
func openEngineWith(cfg config.Config) (*gamification.Service, *journal.DB, error) {
	st := store.New(cfg.Progress.File)
	if cfg.Progress.File == "" {
		// A config file can blank the path; fall back to the default
		st = store.NewDefault()
	}

	svc, err := gamification.NewService(st, cfg.User.GitHubUsername)
	if err != nil {
		return nil, nil, err
	}

	var j *journal.DB
	if cfg.Journal.Enabled {
		j, err = journal.Open(cfg.Journal.Dir)
		if err != nil {
			// History is a convenience — the engine works without it
			log.Printf("[cli] WARNING: open journal: %v", err)
			j = nil
		} else {
			svc.SetJournal(j)
		}
	}
	return svc, j, nil
}

// closeJournal closes the journal if one was opened.
func closeJournal(j *journal.DB) {
	if j != nil {
		j.Close()
	}
}
