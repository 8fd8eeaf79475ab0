package store

import (
	"fmt"
	"strings"

	"github.com/daybook-dev/daybook/internal/model"
)

// ActivityRow is one account's summed debit/credit activity, in cents.
type ActivityRow struct {
	Name   string
	Type   model.AccountType
	Debit  int64
	Credit int64
}

// LineRow is one transaction line with its voucher's date and description,
// in cents, as the general ledger walks them.
type LineRow struct {
	Date        string
	Description string
	Debit       int64
	Credit      int64
}

// TypeTotals holds all-time summed debits and credits for one account
// type, in cents.
type TypeTotals struct {
	Debit  int64
	Credit int64
}

// AccountActivity sums debits and credits per account over vouchers dated
// in [from, to], ordered by account name. Accounts with no activity in the
// range are absent.
func (s *Store) AccountActivity(from, to string) ([]ActivityRow, error) {
	return s.activityRows(`
		SELECT a.name, a.type, COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE v.date BETWEEN ? AND ?
		GROUP BY a.name, a.type
		ORDER BY a.name`, from, to)
}

// ActivityByType is AccountActivity restricted to one account type.
func (s *Store) ActivityByType(typ model.AccountType, from, to string) ([]ActivityRow, error) {
	return s.activityRows(`
		SELECT a.name, a.type, COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE a.type = ? AND v.date BETWEEN ? AND ?
		GROUP BY a.name, a.type
		ORDER BY a.name`, string(typ), from, to)
}

// ActivityThrough sums per-account activity of one type cumulatively from
// inception through asOf. The balance sheet uses this rather than a
// windowed range.
func (s *Store) ActivityThrough(typ model.AccountType, asOf string) ([]ActivityRow, error) {
	return s.activityRows(`
		SELECT a.name, a.type, COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE a.type = ? AND v.date <= ?
		GROUP BY a.name, a.type
		ORDER BY a.name`, string(typ), asOf)
}

// ActivityForAccounts sums activity in [from, to] for an explicit set of
// account names.
func (s *Store) ActivityForAccounts(names []string, from, to string) ([]ActivityRow, error) {
	if len(names) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, 0, len(names)+2)
	for _, n := range names {
		args = append(args, n)
	}
	args = append(args, from, to)

	return s.activityRows(fmt.Sprintf(`
		SELECT a.name, a.type, COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE a.name IN (%s) AND v.date BETWEEN ? AND ?
		GROUP BY a.name, a.type
		ORDER BY a.name`, placeholders), args...)
}

// AccountLines returns one account's lines in [from, to] ordered by
// (date, voucher id, line id) — the order the running balance walks.
func (s *Store) AccountLines(accountID int64, from, to string) ([]LineRow, error) {
	rows, err := s.db.Query(`
		SELECT v.date, v.description, t.debit, t.credit
		FROM transactions t
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE t.account_id = ? AND v.date BETWEEN ? AND ?
		ORDER BY v.date, v.id, t.id`, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading account lines: %w", err)
	}
	defer rows.Close()

	var out []LineRow
	for rows.Next() {
		var r LineRow
		if err := rows.Scan(&r.Date, &r.Description, &r.Debit, &r.Credit); err != nil {
			return nil, fmt.Errorf("scanning account line: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AccountTotalsBefore sums one account's debits and credits over lines
// dated strictly before the given date (the opening-balance input).
func (s *Store) AccountTotalsBefore(accountID int64, before string) (debit, credit int64, err error) {
	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN vouchers v ON t.voucher_id = v.id
		WHERE t.account_id = ? AND v.date < ?`, accountID, before).Scan(&debit, &credit)
	if err != nil {
		return 0, 0, fmt.Errorf("summing opening balance: %w", err)
	}
	return debit, credit, nil
}

// CashAccountNames returns the names of accounts whose name contains any
// of the keywords, case-insensitively.
func (s *Store) CashAccountNames(keywords []string) ([]string, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	conds := make([]string, len(keywords))
	args := make([]any, len(keywords))
	for i, kw := range keywords {
		conds[i] = "LOWER(name) LIKE ?"
		args[i] = "%" + strings.ToLower(kw) + "%"
	}

	rows, err := s.db.Query(
		"SELECT name FROM accounts WHERE "+strings.Join(conds, " OR ")+" ORDER BY name",
		args...)
	if err != nil {
		return nil, fmt.Errorf("resolving cash accounts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning account name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) activityRows(query string, args ...any) ([]ActivityRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityRow
	for rows.Next() {
		var r ActivityRow
		var typ string
		if err := rows.Scan(&r.Name, &typ, &r.Debit, &r.Credit); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		r.Type = model.AccountType(typ)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TotalsByType sums all-time debits and credits per account type (the
// dashboard inputs; no date filter).
func (s *Store) TotalsByType() (map[model.AccountType]TypeTotals, error) {
	rows, err := s.db.Query(`
		SELECT a.type, COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		GROUP BY a.type`)
	if err != nil {
		return nil, fmt.Errorf("summing by type: %w", err)
	}
	defer rows.Close()

	totals := make(map[model.AccountType]TypeTotals)
	for rows.Next() {
		var typ string
		var tt TypeTotals
		if err := rows.Scan(&typ, &tt.Debit, &tt.Credit); err != nil {
			return nil, fmt.Errorf("scanning type totals: %w", err)
		}
		totals[model.AccountType(typ)] = tt
	}
	return totals, rows.Err()
}
