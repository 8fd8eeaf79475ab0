package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-dev/daybook/internal/auditlog"
	"github.com/daybook-dev/daybook/internal/backup"
	"github.com/daybook-dev/daybook/internal/config"
	"github.com/daybook-dev/daybook/internal/report"
	"github.com/daybook-dev/daybook/internal/store"
)

// env bundles the per-invocation collaborators: config, the open store,
// and the report engine. Open once per command, Close on the way out.
type env struct {
	dataDir string
	cfg     *config.Config
	store   *store.Store
	reports *report.Engine
}

func openEnv(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.FileName)
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no %s in %s (run `daybook init` first)", config.FileName, absDir)
	}
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath(absDir))
	if err != nil {
		return nil, err
	}

	eng := report.NewEngine(st)
	if len(cfg.Reports.CashKeywords) > 0 {
		eng.CashKeywords = cfg.Reports.CashKeywords
	}

	return &env{dataDir: absDir, cfg: cfg, store: st, reports: eng}, nil
}

func (e *env) Close() {
	e.store.Close()
}

// snapshot copies the database aside before a mutating operation and
// prunes old copies. The write proceeds only if the snapshot lands.
func (e *env) snapshot(tag string) error {
	dir := e.cfg.BackupDir(e.dataDir)
	if _, err := backup.Snapshot(e.store.Path(), dir, tag); err != nil {
		return fmt.Errorf("pre-write backup: %w", err)
	}
	if err := backup.Prune(dir, e.cfg.Backup.Keep); err != nil {
		return fmt.Errorf("pruning backups: %w", err)
	}
	return nil
}

// audit records a mutation in the audit log. Log trouble is reported but
// never undoes the committed write.
func (e *env) audit(action, details, ref string) {
	if err := auditlog.Record(e.dataDir, action, details, ref); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}
}
