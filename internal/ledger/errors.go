// Package ledger holds the invariant checks and the error taxonomy shared
// by every mutating operation. The checks are pure: the store consumes them
// before and inside its atomic units.
package ledger

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure category.
type Kind string

const (
	// Validation failures.
	KindDuplicateAccount Kind = "duplicate-account"
	KindInvalidType      Kind = "invalid-type"
	KindInvalidLine      Kind = "invalid-line"
	KindInvalidDate      Kind = "invalid-date"
	KindInvalidDateRange Kind = "invalid-date-range"

	// Invariant violations.
	KindTooFewLines  Kind = "too-few-lines"
	KindUnbalanced   Kind = "unbalanced"
	KindPostedLocked Kind = "posted-voucher-locked"

	// Referential failures.
	KindAccountInUse Kind = "account-in-use"
	KindNotFound     Kind = "not-found"

	// Configuration failures.
	KindNoCashAccounts Kind = "no-cash-accounts"

	// Anything the persistence layer reports that is not classified above.
	KindStorage Kind = "storage"
)

// Error is a structured ledger failure.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindStorage if err is not a ledger
// Error (unclassified persistence failures default to storage).
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == kind
}
