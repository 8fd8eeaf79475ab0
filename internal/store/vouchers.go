package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
)

// SaveParams carries one voucher save request. A zero VoucherID creates a
// new voucher; a non-zero one replaces the lines of an existing voucher
// (which is cleared back to draft first, inside the same atomic unit).
type SaveParams struct {
	VoucherID   int64
	Date        string
	Description string
	Lines       []model.DraftLine
}

// SaveVoucher is the central write operation: it validates the line set,
// writes voucher and lines in one atomic unit, and flips the voucher to
// posted after re-running the posting gate. Unbalanced or too-small line
// sets fail before anything is written.
func (s *Store) SaveVoucher(p SaveParams) (model.Voucher, error) {
	if err := s.validateSave(p); err != nil {
		return model.Voucher{}, err
	}
	if err := ledger.ValidateVoucherForPosting(p.Lines); err != nil {
		return model.Voucher{}, err
	}

	var v model.Voucher
	err := s.transaction(func(tx *sql.Tx) error {
		id, err := writeVoucher(tx, p)
		if err != nil {
			return err
		}

		// The posting gate is authoritative: the status flip happens only
		// after it passes, never on the pre-check alone.
		if err := ledger.ValidateVoucherForPosting(p.Lines); err != nil {
			return err
		}
		if _, err := tx.Exec("UPDATE vouchers SET posted = 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("posting voucher: %w", err)
		}

		v = model.Voucher{ID: id, Date: p.Date, Description: p.Description, Status: model.StatusPosted}
		return nil
	})
	if err != nil {
		return model.Voucher{}, err
	}
	return v, nil
}

// SaveDraft persists a voucher without the posting gate, leaving it in
// draft. This is the explicit force-draft path; it is a separate operation,
// not a flag that weakens SaveVoucher.
func (s *Store) SaveDraft(p SaveParams) (model.Voucher, error) {
	if err := s.validateSave(p); err != nil {
		return model.Voucher{}, err
	}

	var v model.Voucher
	err := s.transaction(func(tx *sql.Tx) error {
		id, err := writeVoucher(tx, p)
		if err != nil {
			return err
		}
		v = model.Voucher{ID: id, Date: p.Date, Description: p.Description, Status: model.StatusDraft}
		return nil
	})
	if err != nil {
		return model.Voucher{}, err
	}
	return v, nil
}

// validateSave runs the checks common to both save paths: date shape, a
// non-empty line set, every line well formed, every account present.
func (s *Store) validateSave(p SaveParams) error {
	if err := ledger.ValidateDate(p.Date); err != nil {
		return err
	}
	if len(p.Lines) == 0 {
		return ledger.Errorf(ledger.KindTooFewLines, "voucher has no lines")
	}
	for _, l := range p.Lines {
		if err := ledger.ValidateLine(l.Debit, l.Credit); err != nil {
			return err
		}
		var one int
		err := s.db.QueryRow("SELECT 1 FROM accounts WHERE id = ?", l.AccountID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Errorf(ledger.KindNotFound, "account id %d not found", l.AccountID)
		}
		if err != nil {
			return fmt.Errorf("checking account %d: %w", l.AccountID, err)
		}
	}
	return nil
}

// writeVoucher inserts or rewrites the voucher row and its line set. The
// voucher always lands in draft here; posting is a separate status flip.
func writeVoucher(tx *sql.Tx, p SaveParams) (int64, error) {
	var id int64
	if p.VoucherID == 0 {
		res, err := tx.Exec(
			"INSERT INTO vouchers (date, description, posted) VALUES (?, ?, 0)",
			p.Date, p.Description,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting voucher: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading new voucher id: %w", err)
		}
	} else {
		id = p.VoucherID
		res, err := tx.Exec(
			"UPDATE vouchers SET date = ?, description = ?, posted = 0 WHERE id = ?",
			p.Date, p.Description, id,
		)
		if err != nil {
			return 0, fmt.Errorf("updating voucher: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("checking voucher update: %w", err)
		}
		if n == 0 {
			return 0, ledger.Errorf(ledger.KindNotFound, "voucher %d not found", id)
		}
		if _, err := tx.Exec("DELETE FROM transactions WHERE voucher_id = ?", id); err != nil {
			return 0, fmt.Errorf("clearing prior lines: %w", err)
		}
	}

	for _, l := range p.Lines {
		_, err := tx.Exec(
			"INSERT INTO transactions (voucher_id, account_id, debit, credit) VALUES (?, ?, ?, ?)",
			id, l.AccountID, model.Cents(l.Debit), model.Cents(l.Credit),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting line: %w", err)
		}
	}
	return id, nil
}

// UnpostVoucher clears the posted status so lines may be changed.
func (s *Store) UnpostVoucher(id int64) error {
	return s.transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE vouchers SET posted = 0 WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("unposting voucher: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking unpost: %w", err)
		}
		if n == 0 {
			return ledger.Errorf(ledger.KindNotFound, "voucher %d not found", id)
		}
		return nil
	})
}

// DeleteVoucher clears the posted status and removes the voucher; its
// lines go with it via the cascade.
func (s *Store) DeleteVoucher(id int64) error {
	return s.transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE vouchers SET posted = 0 WHERE id = ?", id); err != nil {
			return fmt.Errorf("unposting voucher: %w", err)
		}
		res, err := tx.Exec("DELETE FROM vouchers WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting voucher: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking voucher delete: %w", err)
		}
		if n == 0 {
			return ledger.Errorf(ledger.KindNotFound, "voucher %d not found", id)
		}
		return nil
	})
}

// LoadVoucherForEdit returns a voucher and its ordered line set with
// account names resolved, ready to seed the caller's draft builder.
func (s *Store) LoadVoucherForEdit(id int64) (model.Voucher, []model.Line, error) {
	v, err := s.voucher(id)
	if err != nil {
		return model.Voucher{}, nil, err
	}
	lines, err := s.VoucherLines(id)
	if err != nil {
		return model.Voucher{}, nil, err
	}
	return v, lines, nil
}

// VoucherLines returns the lines of one voucher in insertion order.
func (s *Store) VoucherLines(voucherID int64) ([]model.Line, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.voucher_id, t.account_id, a.name, t.debit, t.credit
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		WHERE t.voucher_id = ?
		ORDER BY t.id`, voucherID)
	if err != nil {
		return nil, fmt.Errorf("loading voucher lines: %w", err)
	}
	defer rows.Close()

	var lines []model.Line
	for rows.Next() {
		var l model.Line
		var debit, credit int64
		if err := rows.Scan(&l.ID, &l.VoucherID, &l.AccountID, &l.Account, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		l.Debit = model.FromCents(debit)
		l.Credit = model.FromCents(credit)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListVouchers returns voucher summaries in [from, to], newest first.
// search matches the description or the bare id; unbalancedOnly keeps only
// drafts, which are exactly the vouchers that never passed the posting
// gate.
func (s *Store) ListVouchers(from, to, search string, unbalancedOnly bool) ([]model.VoucherSummary, error) {
	if err := ledger.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	query := `
		SELECT v.id, v.date, v.description, v.posted,
		       COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
		FROM vouchers v
		LEFT JOIN transactions t ON v.id = t.voucher_id
		WHERE v.date BETWEEN ? AND ?
		  AND (v.description LIKE ? OR CAST(v.id AS TEXT) LIKE ?)`
	args := []any{from, to, "%" + search + "%", "%" + search + "%"}
	if unbalancedOnly {
		query += " AND v.posted = 0"
	}
	query += `
		GROUP BY v.id, v.date, v.description, v.posted
		ORDER BY v.date DESC, v.id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vouchers: %w", err)
	}
	defer rows.Close()

	var out []model.VoucherSummary
	for rows.Next() {
		var sum model.VoucherSummary
		var posted int
		var debit, credit int64
		if err := rows.Scan(&sum.ID, &sum.Date, &sum.Description, &posted, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning voucher summary: %w", err)
		}
		sum.Status = statusFromPosted(posted)
		sum.TotalDebit = model.FromCents(debit)
		sum.TotalCredit = model.FromCents(credit)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// InsertLine adds one line to an existing draft voucher. Posted vouchers
// refuse direct line mutation.
func (s *Store) InsertLine(voucherID, accountID int64, line model.DraftLine) (int64, error) {
	if err := ledger.ValidateLine(line.Debit, line.Credit); err != nil {
		return 0, err
	}

	var lineID int64
	err := s.transaction(func(tx *sql.Tx) error {
		status, err := voucherStatus(tx, voucherID)
		if err != nil {
			return err
		}
		if err := ledger.GuardPostedImmutable(status); err != nil {
			return err
		}

		res, err := tx.Exec(
			"INSERT INTO transactions (voucher_id, account_id, debit, credit) VALUES (?, ?, ?, ?)",
			voucherID, accountID, model.Cents(line.Debit), model.Cents(line.Credit),
		)
		if err != nil {
			return fmt.Errorf("inserting line: %w", err)
		}
		lineID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new line id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return lineID, nil
}

// DeleteLine removes one line, refusing while the owning voucher is posted.
func (s *Store) DeleteLine(lineID int64) error {
	return s.transaction(func(tx *sql.Tx) error {
		var voucherID int64
		err := tx.QueryRow("SELECT voucher_id FROM transactions WHERE id = ?", lineID).Scan(&voucherID)
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Errorf(ledger.KindNotFound, "line %d not found", lineID)
		}
		if err != nil {
			return fmt.Errorf("looking up line: %w", err)
		}

		status, err := voucherStatus(tx, voucherID)
		if err != nil {
			return err
		}
		if err := ledger.GuardPostedImmutable(status); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM transactions WHERE id = ?", lineID); err != nil {
			return fmt.Errorf("deleting line: %w", err)
		}
		return nil
	})
}

func (s *Store) voucher(id int64) (model.Voucher, error) {
	var v model.Voucher
	var posted int
	err := s.db.QueryRow("SELECT id, date, description, posted FROM vouchers WHERE id = ?", id).
		Scan(&v.ID, &v.Date, &v.Description, &posted)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Voucher{}, ledger.Errorf(ledger.KindNotFound, "voucher %d not found", id)
	}
	if err != nil {
		return model.Voucher{}, fmt.Errorf("loading voucher: %w", err)
	}
	v.Status = statusFromPosted(posted)
	return v, nil
}

func voucherStatus(tx *sql.Tx, id int64) (model.VoucherStatus, error) {
	var posted int
	err := tx.QueryRow("SELECT posted FROM vouchers WHERE id = ?", id).Scan(&posted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ledger.Errorf(ledger.KindNotFound, "voucher %d not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("loading voucher status: %w", err)
	}
	return statusFromPosted(posted), nil
}

func statusFromPosted(posted int) model.VoucherStatus {
	if posted != 0 {
		return model.StatusPosted
	}
	return model.StatusDraft
}
