package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
)

// AddAccount validates and inserts a new account, returning it with its
// assigned id. Name uniqueness is case-insensitive.
func (s *Store) AddAccount(name string, typ model.AccountType) (model.Account, error) {
	name = strings.TrimSpace(name)
	if err := ledger.ValidateAccount(name, typ); err != nil {
		return model.Account{}, err
	}

	var acct model.Account
	err := s.transaction(func(tx *sql.Tx) error {
		taken, err := nameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ledger.Errorf(ledger.KindDuplicateAccount, "account %q already exists", name)
		}

		res, err := tx.Exec("INSERT INTO accounts (name, type) VALUES (?, ?)", name, string(typ))
		if err != nil {
			return fmt.Errorf("inserting account: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new account id: %w", err)
		}
		acct = model.Account{ID: id, Name: name, Type: typ}
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// UpdateAccount renames and/or retypes the account currently named oldName.
func (s *Store) UpdateAccount(oldName, newName string, typ model.AccountType) (model.Account, error) {
	newName = strings.TrimSpace(newName)
	if err := ledger.ValidateAccount(newName, typ); err != nil {
		return model.Account{}, err
	}

	var acct model.Account
	err := s.transaction(func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRow("SELECT id FROM accounts WHERE name = ?", oldName).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Errorf(ledger.KindNotFound, "account %q not found", oldName)
		}
		if err != nil {
			return fmt.Errorf("looking up account: %w", err)
		}

		taken, err := nameTaken(tx, newName, id)
		if err != nil {
			return err
		}
		if taken {
			return ledger.Errorf(ledger.KindDuplicateAccount, "account %q already exists", newName)
		}

		if _, err := tx.Exec("UPDATE accounts SET name = ?, type = ? WHERE id = ?", newName, string(typ), id); err != nil {
			return fmt.Errorf("updating account: %w", err)
		}
		acct = model.Account{ID: id, Name: newName, Type: typ}
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// DeleteAccount removes an account. An account referenced by any
// transaction line cannot be deleted; the reference is surfaced as an
// error, never a cascade.
func (s *Store) DeleteAccount(name string) error {
	return s.transaction(func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRow("SELECT id FROM accounts WHERE name = ?", name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Errorf(ledger.KindNotFound, "account %q not found", name)
		}
		if err != nil {
			return fmt.Errorf("looking up account: %w", err)
		}

		var refs int64
		if err := tx.QueryRow("SELECT COUNT(*) FROM transactions WHERE account_id = ?", id).Scan(&refs); err != nil {
			return fmt.Errorf("counting references: %w", err)
		}
		if refs > 0 {
			return ledger.Errorf(ledger.KindAccountInUse, "account %q is used by %d transaction line(s)", name, refs)
		}

		if _, err := tx.Exec("DELETE FROM accounts WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}
		return nil
	})
}

// AccountByName returns the account with the given exact name.
func (s *Store) AccountByName(name string) (model.Account, error) {
	var acct model.Account
	var typ string
	err := s.db.QueryRow("SELECT id, name, type FROM accounts WHERE name = ?", name).
		Scan(&acct.ID, &acct.Name, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ledger.Errorf(ledger.KindNotFound, "account %q not found", name)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("looking up account: %w", err)
	}
	acct.Type = model.AccountType(typ)
	return acct, nil
}

// ListAccounts returns accounts matching the name substring and, when
// typeFilter is non-empty, the given type, ordered by name.
func (s *Store) ListAccounts(nameFilter string, typeFilter model.AccountType) ([]model.Account, error) {
	query := "SELECT id, name, type FROM accounts WHERE name LIKE ?"
	args := []any{"%" + nameFilter + "%"}
	if typeFilter != "" {
		if err := ledger.ValidateAccountType(typeFilter); err != nil {
			return nil, err
		}
		query += " AND type = ?"
		args = append(args, string(typeFilter))
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// nameTaken reports whether a case-insensitive name match exists on a
// different account than excludeID.
func nameTaken(tx *sql.Tx, name string, excludeID int64) (bool, error) {
	var one int
	err := tx.QueryRow(
		"SELECT 1 FROM accounts WHERE LOWER(name) = LOWER(?) AND id <> ?",
		name, excludeID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking name uniqueness: %w", err)
	}
	return true, nil
}
