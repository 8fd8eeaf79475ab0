package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Acme Trading")

	assert.Equal(t, "Acme Trading", cfg.Business.Name)
	assert.Equal(t, "daybook.db", cfg.Storage.File)
	assert.Equal(t, "db_backups", cfg.Backup.Dir)
	assert.Equal(t, 20, cfg.Backup.Keep)
	assert.Equal(t, []string{"cash", "bank"}, cfg.Reports.CashKeywords)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default("Acme Trading")
	cfg.Backup.Keep = 5
	cfg.Reports.CashKeywords = []string{"till"}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default("x")

	assert.Equal(t, filepath.Join("books", "daybook.db"), cfg.DatabasePath("books"))
	assert.Equal(t, filepath.Join("books", "db_backups"), cfg.BackupDir("books"))
}
