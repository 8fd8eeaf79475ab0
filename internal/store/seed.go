package store

import (
	"fmt"

	"github.com/daybook-dev/daybook/internal/model"
)

// defaultChart is the starter chart of accounts installed by `init
// --seed-chart`.
var defaultChart = []model.Account{
	{Name: "Cash", Type: model.AccountTypeAsset},
	{Name: "Bank", Type: model.AccountTypeAsset},
	{Name: "Accounts Receivable", Type: model.AccountTypeAsset},
	{Name: "Inventory", Type: model.AccountTypeAsset},
	{Name: "Accounts Payable", Type: model.AccountTypeLiability},
	{Name: "Loans Payable", Type: model.AccountTypeLiability},
	{Name: "Sales Revenue", Type: model.AccountTypeIncome},
	{Name: "Service Income", Type: model.AccountTypeIncome},
	{Name: "Rent Expense", Type: model.AccountTypeExpense},
	{Name: "Salaries Expense", Type: model.AccountTypeExpense},
	{Name: "Utilities Expense", Type: model.AccountTypeExpense},
}

// SeedDefaultChart installs the starter chart into an empty accounts
// table. It refuses when any account already exists, so re-running init
// never mingles charts.
func (s *Store) SeedDefaultChart() error {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return fmt.Errorf("counting accounts: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("accounts table is not empty (%d accounts)", count)
	}

	for _, a := range defaultChart {
		if _, err := s.AddAccount(a.Name, a.Type); err != nil {
			return fmt.Errorf("seeding %q: %w", a.Name, err)
		}
	}
	return nil
}
