package report

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/store"
	"github.com/daybook-dev/daybook/internal/table"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture opens a fresh store with a small chart and returns it with an
// engine. Accounts: Cash (Asset), Loans Payable (Liability), Sales
// (Income), Rent (Expense).
func fixture(t *testing.T) (*store.Store, *Engine) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for _, a := range []struct {
		name string
		typ  model.AccountType
	}{
		{"Cash", model.AccountTypeAsset},
		{"Loans Payable", model.AccountTypeLiability},
		{"Sales", model.AccountTypeIncome},
		{"Rent", model.AccountTypeExpense},
	} {
		_, err := st.AddAccount(a.name, a.typ)
		require.NoError(t, err)
	}
	return st, NewEngine(st)
}

func post(t *testing.T, st *store.Store, date, debit, credit, amt string) {
	t.Helper()
	da, err := st.AccountByName(debit)
	require.NoError(t, err)
	ca, err := st.AccountByName(credit)
	require.NoError(t, err)
	_, err = st.SaveVoucher(store.SaveParams{
		Date:        date,
		Description: debit + " / " + credit,
		Lines: []model.DraftLine{
			{AccountID: da.ID, Debit: dec(amt)},
			{AccountID: ca.ID, Credit: dec(amt)},
		},
	})
	require.NoError(t, err)
}

// row finds the first row whose first cell equals name.
func row(t *testing.T, tab *table.Table, name string) []string {
	t.Helper()
	for _, r := range tab.Rows {
		if r[0] == name {
			return r
		}
	}
	t.Fatalf("no row %q in %s", name, tab.Title)
	return nil
}

func TestTrialBalance(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")
	post(t, st, "2024-01-10", "Rent", "Cash", "30")

	tab, err := e.TrialBalance("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, []string{"Cash", "100.00", "30.00"}, row(t, tab, "Cash"))
	assert.Equal(t, []string{"Sales", "0.00", "100.00"}, row(t, tab, "Sales"))
	assert.Equal(t, []string{"Rent", "30.00", "0.00"}, row(t, tab, "Rent"))

	// Rerunning the same report yields the same table.
	again, err := e.TrialBalance("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, tab.Rows, again.Rows)
}

func TestTrialBalance_InvalidRange(t *testing.T) {
	_, e := fixture(t)

	_, err := e.TrialBalance("2024-02-01", "2024-01-01")
	require.Error(t, err)
	assert.Equal(t, ledger.KindInvalidDateRange, ledger.KindOf(err))
}

func TestProfitAndLoss_NetProfit(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")
	post(t, st, "2024-01-10", "Rent", "Cash", "30")

	tab, err := e.ProfitAndLoss("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, []string{"Sales", "0.00", "100.00"}, row(t, tab, "Sales"))
	assert.Equal(t, []string{"Rent", "30.00", "0.00"}, row(t, tab, "Rent"))
	assert.Equal(t, []string{"Net Profit", "0.00", "70.00"}, row(t, tab, "Net Profit"))
}

func TestProfitAndLoss_NetLoss(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "20")
	post(t, st, "2024-01-10", "Rent", "Cash", "50")

	tab, err := e.ProfitAndLoss("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, []string{"Net Loss", "30.00", "0.00"}, row(t, tab, "Net Loss"))
}

func TestBalanceSheet_Cumulative(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2023-12-01", "Cash", "Loans Payable", "500")
	post(t, st, "2024-01-10", "Rent", "Cash", "100")

	// As-of January: the December loan still counts.
	tab, err := e.BalanceSheet("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash", "400.00", "0.00"}, row(t, tab, "Cash"))
	assert.Equal(t, []string{"Loans Payable", "0.00", "500.00"}, row(t, tab, "Loans Payable"))

	// As-of before the rent payment.
	earlier, err := e.BalanceSheet("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash", "500.00", "0.00"}, row(t, earlier, "Cash"))
}

func TestBalanceSheet_InvalidDate(t *testing.T) {
	_, e := fixture(t)

	_, err := e.BalanceSheet("Jan 31")
	require.Error(t, err)
	assert.Equal(t, ledger.KindInvalidDate, ledger.KindOf(err))
}

func TestGeneralLedger_RunningBalance(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2023-12-15", "Cash", "Sales", "50")
	post(t, st, "2024-01-05", "Cash", "Sales", "100")
	post(t, st, "2024-01-10", "Rent", "Cash", "120")

	opening, err := e.OpeningBalance("Cash", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "50.00", opening.StringFixed(2))

	tab, err := e.GeneralLedger("Cash", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, tab.Rows, 2)

	// 50 opening + 100 = 150, then - 120 = 30.
	assert.Equal(t, "150.00", tab.Rows[0][4])
	assert.Equal(t, "30.00", tab.Rows[1][4])
	assert.Equal(t, "2024-01-05", tab.Rows[0][0])
	assert.Equal(t, "2024-01-10", tab.Rows[1][0])
}

func TestGeneralLedger_CreditNormalAccount(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")

	tab, err := e.GeneralLedger("Sales", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "100.00", tab.Rows[0][4])
}

func TestGeneralLedger_UnknownAccount(t *testing.T) {
	_, e := fixture(t)

	_, err := e.GeneralLedger("Petty Cash", "2024-01-01", "2024-01-31")
	require.Error(t, err)
	assert.Equal(t, ledger.KindNotFound, ledger.KindOf(err))
}

func TestCashFlow_AutoResolvesByKeyword(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")
	post(t, st, "2024-01-10", "Rent", "Cash", "30")

	tab, err := e.CashFlow(nil, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, []string{"Cash", "100.00", "30.00"}, row(t, tab, "Cash"))
	// Net Cash is the trailing row.
	last := tab.Rows[len(tab.Rows)-1]
	assert.Equal(t, []string{"Net Cash", "100.00", "30.00"}, last)
}

func TestCashFlow_ExplicitAccounts(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")

	tab, err := e.CashFlow([]string{"Sales"}, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "0.00", "100.00"}, row(t, tab, "Sales"))
	last := tab.Rows[len(tab.Rows)-1]
	assert.Equal(t, []string{"Net Cash", "0.00", "100.00"}, last)
}

func TestCashFlow_NoMatchingAccounts(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	_, err = st.AddAccount("Inventory", model.AccountTypeAsset)
	require.NoError(t, err)

	e := NewEngine(st)
	_, err = e.CashFlow(nil, "2024-01-01", "2024-01-31")
	require.Error(t, err)
	assert.Equal(t, ledger.KindNoCashAccounts, ledger.KindOf(err))
}

func TestCashFlow_CustomKeywords(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	till, err := st.AddAccount("Till Float", model.AccountTypeAsset)
	require.NoError(t, err)
	sales, err := st.AddAccount("Sales", model.AccountTypeIncome)
	require.NoError(t, err)
	_, err = st.SaveVoucher(store.SaveParams{
		Date: "2024-01-05",
		Lines: []model.DraftLine{
			{AccountID: till.ID, Debit: dec("40")},
			{AccountID: sales.ID, Credit: dec("40")},
		},
	})
	require.NoError(t, err)

	e := NewEngine(st)
	e.CashKeywords = []string{"till"}

	tab, err := e.CashFlow(nil, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"Till Float", "40.00", "0.00"}, row(t, tab, "Till Float"))
}

func TestDashboardTotals(t *testing.T) {
	st, e := fixture(t)
	post(t, st, "2024-01-05", "Cash", "Sales", "100")
	post(t, st, "2024-01-10", "Rent", "Cash", "30")
	post(t, st, "2024-01-15", "Cash", "Loans Payable", "500")

	totals, err := e.DashboardTotals()
	require.NoError(t, err)
	assert.Equal(t, "570.00", totals.TotalAssets.StringFixed(2))
	assert.Equal(t, "500.00", totals.TotalLiabilities.StringFixed(2))
	assert.Equal(t, "70.00", totals.NetProfit.StringFixed(2))
}

func TestDashboardTotals_EmptyLedger(t *testing.T) {
	_, e := fixture(t)

	totals, err := e.DashboardTotals()
	require.NoError(t, err)
	assert.True(t, totals.TotalAssets.IsZero())
	assert.True(t, totals.TotalLiabilities.IsZero())
	assert.True(t, totals.NetProfit.IsZero())
}
