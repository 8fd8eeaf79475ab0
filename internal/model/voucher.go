package model

import "github.com/shopspring/decimal"

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	StatusDraft  VoucherStatus = "Draft"
	StatusPosted VoucherStatus = "Posted"
)

// Voucher is one journal entry: a dated group of balanced lines.
type Voucher struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Description string
	Status      VoucherStatus
}

// Line is one debit-or-credit leg of a voucher against one account.
// Exactly one of Debit/Credit is positive; the other is zero.
type Line struct {
	ID        int64
	VoucherID int64
	AccountID int64
	Account   string // account name, filled on loads that join accounts
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// DraftLine is the client-side voucher builder value: a line the caller
// assembles before submitting a save. It carries the account label so the
// presentation layer can render the in-progress voucher without a lookup.
type DraftLine struct {
	AccountID int64
	Account   string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// VoucherSummary is one row of the voucher history listing.
type VoucherSummary struct {
	ID          int64
	Date        string
	Description string
	Status      VoucherStatus
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Totals sums the debit and credit columns of a draft line set, rounding
// each line to 2 decimal places first.
func Totals(lines []DraftLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit.Round(2))
		credit = credit.Add(l.Credit.Round(2))
	}
	return debit, credit
}
