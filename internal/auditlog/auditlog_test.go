package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRoundTrip(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Action:    "voucher-saved",
		Details:   "Opening sale, 2 lines",
		Ref:       "7",
	}

	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalEntry_BadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "few"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "a", "b", "c"})
	require.Error(t, err)
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Record(dir, "account-added", "Cash (Asset)", "Cash"))
	require.NoError(t, Record(dir, "voucher-saved", "Opening sale", "1"))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "account-added", entries[0].Action)
	assert.Equal(t, "Cash", entries[0].Ref)
	assert.Equal(t, "voucher-saved", entries[1].Action)

	// The header is written once.
	data, err := os.ReadFile(filepath.Join(dir, "logs", "audit-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
