package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/store"
)

// run executes the CLI against dir and returns captured stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func initBooks(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "books")
	require.NoError(t, runInit(dir, "Acme Trading", true))
	return dir
}

func TestParseLines(t *testing.T) {
	dir := initBooks(t)
	st, err := store.Open(filepath.Join(dir, "daybook.db"))
	require.NoError(t, err)
	defer st.Close()

	lines, err := parseLines(st, []string{"Cash=100.50"}, []string{"Sales Revenue=100.50"})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Cash", lines[0].Account)
	assert.Equal(t, "100.5", lines[0].Debit.String())
	assert.True(t, lines[0].Credit.IsZero())
	assert.Equal(t, "Sales Revenue", lines[1].Account)
	assert.Equal(t, "100.5", lines[1].Credit.String())
}

func TestParseLines_Malformed(t *testing.T) {
	dir := initBooks(t)
	st, err := store.Open(filepath.Join(dir, "daybook.db"))
	require.NoError(t, err)
	defer st.Close()

	for _, spec := range []string{"Cash", "Cash=", "=100", "Cash=ten"} {
		_, err := parseLines(st, []string{spec}, nil)
		assert.Error(t, err, "spec %q", spec)
	}

	// Unknown account names are rejected at parse time.
	_, err = parseLines(st, []string{"Petty Cash=10"}, nil)
	assert.Error(t, err)
}

func TestVoucherSaveFlow(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "voucher", "save",
		"--date", "2024-01-05", "--desc", "Opening sale",
		"--debit", "Cash=100", "--credit", "Sales Revenue=100")
	require.NoError(t, err)

	st, err := store.Open(filepath.Join(dir, "daybook.db"))
	require.NoError(t, err)
	defer st.Close()

	vouchers, err := st.ListVouchers("2024-01-01", "2024-12-31", "", false)
	require.NoError(t, err)
	require.Len(t, vouchers, 1)
	assert.Equal(t, model.StatusPosted, vouchers[0].Status)
	assert.Equal(t, "100.00", vouchers[0].TotalDebit.StringFixed(2))

	// The save left a pre-write snapshot behind.
	snaps, err := os.ReadDir(filepath.Join(dir, "db_backups"))
	require.NoError(t, err)
	assert.NotEmpty(t, snaps)
}

func TestVoucherSave_UnbalancedRejected(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "voucher", "save",
		"--date", "2024-01-05",
		"--debit", "Cash=100", "--credit", "Sales Revenue=90")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debits (100.00) != credits (90.00)")
}

func TestVoucherSave_DraftEscapeHatch(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "voucher", "save", "--draft",
		"--date", "2024-01-05",
		"--debit", "Cash=100", "--credit", "Sales Revenue=90")
	require.NoError(t, err)

	out, err := run(t, dir, "voucher", "list", "--from", "2024-01-01", "--to", "2024-12-31",
		"--unbalanced", "--csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft")
}

func TestReportTrialBalanceCSV(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "voucher", "save",
		"--date", "2024-01-05", "--desc", "Opening sale",
		"--debit", "Cash=100", "--credit", "Sales Revenue=100")
	require.NoError(t, err)

	out, err := run(t, dir, "report", "trial-balance",
		"--from", "2024-01-01", "--to", "2024-12-31", "--csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Account,Debit,Credit", lines[0])
	assert.Contains(t, out, "Cash,100.00,0.00")
	assert.Contains(t, out, "Sales Revenue,0.00,100.00")
}
