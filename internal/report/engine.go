// Package report derives the financial reports from the transaction log.
// Every function is a pure read: it queries the store, aggregates, and
// returns a table for the presentation boundary.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/store"
	"github.com/daybook-dev/daybook/internal/table"
)

// DefaultCashKeywords resolve cash-flow accounts when the caller names
// none: any account whose name contains one of these, case-insensitively.
var DefaultCashKeywords = []string{"cash", "bank"}

// Engine runs reports against one store.
type Engine struct {
	store *store.Store

	// CashKeywords override the auto-resolution of cash-flow accounts.
	CashKeywords []string
}

// NewEngine creates a report engine over st.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st, CashKeywords: DefaultCashKeywords}
}

func amount(cents int64) string {
	return model.FromCents(cents).StringFixed(2)
}

// delta returns one line's signed contribution under the account type's
// natural-balance convention.
func delta(typ model.AccountType, debit, credit int64) int64 {
	if typ.DebitNormal() {
		return debit - credit
	}
	return credit - debit
}

// TrialBalance emits per-account summed debits and credits over [from,
// to], ordered by account name.
func (e *Engine) TrialBalance(from, to string) (*table.Table, error) {
	if err := ledger.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	rows, err := e.store.AccountActivity(from, to)
	if err != nil {
		return nil, err
	}

	t := table.New("Trial Balance",
		table.Column{Name: "Account", Kind: table.String},
		table.Column{Name: "Debit", Kind: table.Decimal},
		table.Column{Name: "Credit", Kind: table.Decimal},
	)
	for _, r := range rows {
		t.AddRow(r.Name, amount(r.Debit), amount(r.Credit))
	}
	return t, nil
}

// ProfitAndLoss emits income accounts as credit lines, expense accounts as
// debit lines, then a synthetic Net Profit (credit) or Net Loss (debit)
// row with the absolute net.
func (e *Engine) ProfitAndLoss(from, to string) (*table.Table, error) {
	if err := ledger.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	income, err := e.store.ActivityByType(model.AccountTypeIncome, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := e.store.ActivityByType(model.AccountTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	t := table.New("Profit & Loss",
		table.Column{Name: "Account", Kind: table.String},
		table.Column{Name: "Debit", Kind: table.Decimal},
		table.Column{Name: "Credit", Kind: table.Decimal},
	)

	var totalIncome, totalExpense int64
	for _, r := range income {
		rev := r.Credit - r.Debit
		totalIncome += rev
		t.AddRow(r.Name, amount(0), amount(rev))
	}
	for _, r := range expense {
		exp := r.Debit - r.Credit
		totalExpense += exp
		t.AddRow(r.Name, amount(exp), amount(0))
	}

	net := totalIncome - totalExpense
	if net >= 0 {
		t.AddRow("Net Profit", amount(0), amount(net))
	} else {
		t.AddRow("Net Loss", amount(-net), amount(0))
	}
	return t, nil
}

// BalanceSheet emits asset and liability balances cumulative from
// inception through asOf (not a windowed range).
func (e *Engine) BalanceSheet(asOf string) (*table.Table, error) {
	if err := ledger.ValidateDate(asOf); err != nil {
		return nil, err
	}

	assets, err := e.store.ActivityThrough(model.AccountTypeAsset, asOf)
	if err != nil {
		return nil, err
	}
	liabilities, err := e.store.ActivityThrough(model.AccountTypeLiability, asOf)
	if err != nil {
		return nil, err
	}

	t := table.New("Balance Sheet",
		table.Column{Name: "Account", Kind: table.String},
		table.Column{Name: "Debit", Kind: table.Decimal},
		table.Column{Name: "Credit", Kind: table.Decimal},
	)
	for _, r := range assets {
		t.AddRow(r.Name, amount(r.Debit-r.Credit), amount(0))
	}
	for _, r := range liabilities {
		t.AddRow(r.Name, amount(0), amount(r.Credit-r.Debit))
	}
	return t, nil
}

// GeneralLedger walks one account's lines in [from, to], seeding the
// running balance with the natural-balance sum of everything dated before
// from.
func (e *Engine) GeneralLedger(accountName, from, to string) (*table.Table, error) {
	if err := ledger.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	acct, err := e.store.AccountByName(accountName)
	if err != nil {
		return nil, err
	}

	openDebit, openCredit, err := e.store.AccountTotalsBefore(acct.ID, from)
	if err != nil {
		return nil, err
	}
	balance := delta(acct.Type, openDebit, openCredit)

	lines, err := e.store.AccountLines(acct.ID, from, to)
	if err != nil {
		return nil, err
	}

	t := table.New("General Ledger",
		table.Column{Name: "Date", Kind: table.Date},
		table.Column{Name: "Description", Kind: table.String},
		table.Column{Name: "Debit", Kind: table.Decimal},
		table.Column{Name: "Credit", Kind: table.Decimal},
		table.Column{Name: "Balance", Kind: table.Decimal},
	)
	for _, l := range lines {
		balance += delta(acct.Type, l.Debit, l.Credit)
		t.AddRow(l.Date, l.Description, amount(l.Debit), amount(l.Credit), amount(balance))
	}
	return t, nil
}

// OpeningBalance returns the natural-balance sum of an account's lines
// dated strictly before from (the seed the general ledger starts at).
func (e *Engine) OpeningBalance(accountName, from string) (decimal.Decimal, error) {
	if err := ledger.ValidateDate(from); err != nil {
		return decimal.Zero, err
	}
	acct, err := e.store.AccountByName(accountName)
	if err != nil {
		return decimal.Zero, err
	}
	debit, credit, err := e.store.AccountTotalsBefore(acct.ID, from)
	if err != nil {
		return decimal.Zero, err
	}
	return model.FromCents(delta(acct.Type, debit, credit)), nil
}

// CashFlow emits per-account inflow (debits) and outflow (credits) for the
// named accounts, or for every account matching the cash keywords when
// names is empty, plus a trailing Net Cash row.
func (e *Engine) CashFlow(names []string, from, to string) (*table.Table, error) {
	if err := ledger.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		resolved, err := e.store.CashAccountNames(e.CashKeywords)
		if err != nil {
			return nil, err
		}
		names = resolved
	}
	if len(names) == 0 {
		return nil, ledger.Errorf(ledger.KindNoCashAccounts,
			"no accounts matching %v; name cash accounts explicitly", e.CashKeywords)
	}

	rows, err := e.store.ActivityForAccounts(names, from, to)
	if err != nil {
		return nil, err
	}

	t := table.New("Cash Flow",
		table.Column{Name: "Account", Kind: table.String},
		table.Column{Name: "Inflow", Kind: table.Decimal},
		table.Column{Name: "Outflow", Kind: table.Decimal},
	)
	var totalIn, totalOut int64
	for _, r := range rows {
		totalIn += r.Debit
		totalOut += r.Credit
		t.AddRow(r.Name, amount(r.Debit), amount(r.Credit))
	}
	t.AddRow("Net Cash", amount(totalIn), amount(totalOut))
	return t, nil
}

// Totals are the three all-time dashboard figures.
type Totals struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetProfit        decimal.Decimal
}

// DashboardTotals computes the dashboard figures over all-time data.
func (e *Engine) DashboardTotals() (Totals, error) {
	byType, err := e.store.TotalsByType()
	if err != nil {
		return Totals{}, err
	}

	assets := byType[model.AccountTypeAsset]
	liabilities := byType[model.AccountTypeLiability]
	income := byType[model.AccountTypeIncome]
	expense := byType[model.AccountTypeExpense]

	return Totals{
		TotalAssets:      model.FromCents(assets.Debit - assets.Credit),
		TotalLiabilities: model.FromCents(liabilities.Credit - liabilities.Debit),
		NetProfit:        model.FromCents((income.Credit - income.Debit) - (expense.Debit - expense.Credit)),
	}, nil
}
