package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/store"
	"github.com/daybook-dev/daybook/internal/table"
)

func newVoucherCommand() *cobra.Command {
	voucherCmd := &cobra.Command{
		Use:   "voucher",
		Short: "Record and manage vouchers",
	}
	voucherCmd.AddCommand(newVoucherSaveCommand())
	voucherCmd.AddCommand(newVoucherListCommand())
	voucherCmd.AddCommand(newVoucherShowCommand())
	voucherCmd.AddCommand(newVoucherUnpostCommand())
	voucherCmd.AddCommand(newVoucherRmCommand())
	return voucherCmd
}

func newVoucherSaveCommand() *cobra.Command {
	var date, desc string
	var debits, credits []string
	var voucherID int64
	var draft bool

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a balanced voucher (posts immediately)",
		Long: `Save a voucher from repeated --debit and --credit flags, each in the
form "Account=Amount". The default path posts the voucher and rejects
unbalanced line sets outright; --draft is the explicit escape hatch that
saves the lines unposted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			lines, err := parseLines(e.store, debits, credits)
			if err != nil {
				return err
			}

			params := store.SaveParams{
				VoucherID:   voucherID,
				Date:        date,
				Description: desc,
				Lines:       lines,
			}

			if err := e.snapshot("pre_voucher_save"); err != nil {
				return err
			}

			var v model.Voucher
			if draft {
				v, err = e.store.SaveDraft(params)
			} else {
				v, err = e.store.SaveVoucher(params)
			}
			if err != nil {
				return err
			}

			e.audit("voucher-saved", fmt.Sprintf("%s %q (%s)", v.Date, v.Description, v.Status),
				strconv.FormatInt(v.ID, 10))
			fmt.Printf("Saved voucher %d (%s)\n", v.ID, v.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "voucher date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "desc", "", "voucher description")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, `debit line "Account=Amount" (repeatable)`)
	cmd.Flags().StringArrayVar(&credits, "credit", nil, `credit line "Account=Amount" (repeatable)`)
	cmd.Flags().Int64Var(&voucherID, "voucher", 0, "replace the lines of an existing voucher id")
	cmd.Flags().BoolVar(&draft, "draft", false, "save without posting (skips the balance gate)")

	return cmd
}

// parseLines turns --debit/--credit flag values into draft lines, resolving
// each account name against the store.
func parseLines(st *store.Store, debits, credits []string) ([]model.DraftLine, error) {
	var lines []model.DraftLine

	add := func(spec string, isDebit bool) error {
		idx := strings.LastIndex(spec, "=")
		if idx <= 0 || idx == len(spec)-1 {
			return fmt.Errorf("line %q: want \"Account=Amount\"", spec)
		}
		name := strings.TrimSpace(spec[:idx])
		amt, err := decimal.NewFromString(strings.TrimSpace(spec[idx+1:]))
		if err != nil {
			return fmt.Errorf("line %q: bad amount: %w", spec, err)
		}

		acct, err := st.AccountByName(name)
		if err != nil {
			return err
		}

		line := model.DraftLine{AccountID: acct.ID, Account: acct.Name}
		if isDebit {
			line.Debit = amt
		} else {
			line.Credit = amt
		}
		lines = append(lines, line)
		return nil
	}

	for _, spec := range debits {
		if err := add(spec, true); err != nil {
			return nil, err
		}
	}
	for _, spec := range credits {
		if err := add(spec, false); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func newVoucherListCommand() *cobra.Command {
	var from, to, search string
	var unbalanced, csvOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vouchers with their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			vouchers, err := e.store.ListVouchers(from, to, search, unbalanced)
			if err != nil {
				return err
			}

			t := table.New("Vouchers",
				table.Column{Name: "ID", Kind: table.String},
				table.Column{Name: "Date", Kind: table.Date},
				table.Column{Name: "Description", Kind: table.String},
				table.Column{Name: "Status", Kind: table.String},
				table.Column{Name: "Total Debit", Kind: table.Decimal},
				table.Column{Name: "Total Credit", Kind: table.Decimal},
			)
			for _, v := range vouchers {
				t.AddRow(
					strconv.FormatInt(v.ID, 10),
					v.Date,
					v.Description,
					string(v.Status),
					v.TotalDebit.StringFixed(2),
					v.TotalCredit.StringFixed(2),
				)
			}
			return renderTable(cmd.OutOrStdout(), t, csvOut)
		},
	}

	cmd.Flags().StringVar(&from, "from", "2000-01-01", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", time.Now().Format("2006-01-02"), "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&search, "search", "", "match description or voucher id")
	cmd.Flags().BoolVar(&unbalanced, "unbalanced", false, "only drafts (never passed the posting gate)")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "emit CSV instead of a table")

	return cmd
}

func newVoucherShowCommand() *cobra.Command {
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one voucher's lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("voucher id %q is not a number", args[0])
			}

			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			v, lines, err := e.store.LoadVoucherForEdit(id)
			if err != nil {
				return err
			}

			fmt.Printf("Voucher %d  %s  %s  [%s]\n", v.ID, v.Date, v.Description, v.Status)
			t := table.New("Voucher Lines",
				table.Column{Name: "Account", Kind: table.String},
				table.Column{Name: "Debit", Kind: table.Decimal},
				table.Column{Name: "Credit", Kind: table.Decimal},
			)
			for _, l := range lines {
				t.AddRow(l.Account, l.Debit.StringFixed(2), l.Credit.StringFixed(2))
			}
			return renderTable(cmd.OutOrStdout(), t, csvOut)
		},
	}

	cmd.Flags().BoolVar(&csvOut, "csv", false, "emit CSV instead of a table")

	return cmd
}

func newVoucherUnpostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpost <id>",
		Short: "Clear a voucher's posted status so lines may change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("voucher id %q is not a number", args[0])
			}

			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.snapshot("pre_voucher_unpost"); err != nil {
				return err
			}
			if err := e.store.UnpostVoucher(id); err != nil {
				return err
			}
			e.audit("voucher-unposted", "", args[0])
			fmt.Printf("Voucher %d is now a draft\n", id)
			return nil
		},
	}
}

func newVoucherRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a voucher and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("voucher id %q is not a number", args[0])
			}

			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.snapshot("pre_voucher_rm"); err != nil {
				return err
			}
			if err := e.store.DeleteVoucher(id); err != nil {
				return err
			}
			e.audit("voucher-deleted", "", args[0])
			fmt.Printf("Deleted voucher %d\n", id)
			return nil
		},
	}
}
