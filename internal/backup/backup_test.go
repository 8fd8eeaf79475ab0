package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("db contents"), 0o644))

	backupDir := filepath.Join(dir, "backups")
	dst, err := Snapshot(dbPath, backupDir, "pre_save")
	require.NoError(t, err)
	require.NotEmpty(t, dst)

	name := filepath.Base(dst)
	assert.True(t, strings.HasPrefix(name, "ledger_pre_save_"), "got %q", name)
	assert.True(t, strings.HasSuffix(name, ".db"), "got %q", name)

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "db contents", string(copied))
}

func TestSnapshot_MissingDatabase(t *testing.T) {
	dir := t.TempDir()

	dst, err := Snapshot(filepath.Join(dir, "absent.db"), filepath.Join(dir, "backups"), "pre_save")
	require.NoError(t, err)
	assert.Empty(t, dst)
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"ledger_pre_save_20240101_090000.db",
		"ledger_pre_save_20240102_090000.db",
		"ledger_pre_save_20240103_090000.db",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	require.NoError(t, Prune(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// The oldest snapshot goes first.
	assert.Equal(t, "ledger_pre_save_20240102_090000.db", entries[0].Name())
	assert.Equal(t, "ledger_pre_save_20240103_090000.db", entries[1].Name())
}

func TestPrune_KeepZeroDisables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.db"), []byte("x"), 0o644))

	require.NoError(t, Prune(dir, 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPrune_MissingDir(t *testing.T) {
	assert.NoError(t, Prune(filepath.Join(t.TempDir(), "nope"), 5))
}
