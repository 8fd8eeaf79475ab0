package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

// DateLayout is the fixed-width ISO form every stored date uses. Because it
// is zero-padded, lexicographic comparison matches calendar order.
const DateLayout = "2006-01-02"

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return Errorf(KindInvalidDate, "date %q must be YYYY-MM-DD", s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return Errorf(KindInvalidDate, "date %q must be YYYY-MM-DD", s)
	}
	return nil
}

// ValidateDateRange checks both endpoints and that from <= to.
func ValidateDateRange(from, to string) error {
	if err := ValidateDate(from); err != nil {
		return err
	}
	if err := ValidateDate(to); err != nil {
		return err
	}
	if from > to {
		return Errorf(KindInvalidDateRange, "from %s is after to %s", from, to)
	}
	return nil
}

// ValidateAccountType checks t against the four enumerated types.
func ValidateAccountType(t model.AccountType) error {
	if !t.Valid() {
		return Errorf(KindInvalidType, "account type %q is not one of Asset, Liability, Income, Expense", t)
	}
	return nil
}

// ValidateAccount checks the shape of an account before insert or update.
// Uniqueness is checked by the store, which can see existing rows.
func ValidateAccount(name string, t model.AccountType) error {
	if name == "" {
		return Errorf(KindInvalidType, "account name is required")
	}
	return ValidateAccountType(t)
}

// ValidateLine enforces the line invariant: neither side negative, and
// exactly one of debit/credit strictly positive.
func ValidateLine(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return Errorf(KindInvalidLine, "debit and credit must not be negative")
	}
	hasDebit := debit.IsPositive()
	hasCredit := credit.IsPositive()
	if hasDebit == hasCredit {
		return Errorf(KindInvalidLine, "line must have exactly one of debit or credit")
	}
	return nil
}

// ValidateVoucherForPosting is the authoritative gate for the draft->posted
// transition: at least two lines, and debits equal credits at 2 decimal
// places.
func ValidateVoucherForPosting(lines []model.DraftLine) error {
	if len(lines) < 2 {
		return Errorf(KindTooFewLines, "voucher needs at least 2 lines, got %d", len(lines))
	}
	debit, credit := model.Totals(lines)
	if !debit.Equal(credit) {
		return Errorf(KindUnbalanced, "debits (%s) != credits (%s)",
			debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// GuardPostedImmutable rejects direct line mutations under a posted
// voucher. Callers must clear the posted status first.
func GuardPostedImmutable(status model.VoucherStatus) error {
	if status == model.StatusPosted {
		return Errorf(KindPostedLocked, "voucher is posted; unpost it before changing lines")
	}
	return nil
}
