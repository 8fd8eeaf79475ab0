package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/table"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}
	reportCmd.AddCommand(newTrialBalanceCommand())
	reportCmd.AddCommand(newProfitLossCommand())
	reportCmd.AddCommand(newBalanceSheetCommand())
	reportCmd.AddCommand(newGeneralLedgerCommand())
	reportCmd.AddCommand(newCashFlowCommand())
	return reportCmd
}

// rangeFlags adds the shared --from/--to/--csv flags and returns pointers
// to their values.
func rangeFlags(cmd *cobra.Command) (from, to *string, csvOut *bool) {
	from = cmd.Flags().String("from", "2000-01-01", "start date (YYYY-MM-DD)")
	to = cmd.Flags().String("to", time.Now().Format("2006-01-02"), "end date (YYYY-MM-DD)")
	csvOut = cmd.Flags().Bool("csv", false, "emit CSV instead of a table")
	return from, to, csvOut
}

func runReport(cmd *cobra.Command, csvOut bool, run func(e *env) (*table.Table, error)) error {
	e, err := openEnv(dataDir(cmd))
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := run(e)
	if err != nil {
		return err
	}
	return renderTable(cmd.OutOrStdout(), t, csvOut)
}

func newTrialBalanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Per-account debit and credit totals over a period",
		Args:  cobra.NoArgs,
	}
	from, to, csvOut := rangeFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, *csvOut, func(e *env) (*table.Table, error) {
			return e.reports.TrialBalance(*from, *to)
		})
	}
	return cmd
}

func newProfitLossCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Income and expenses with the period's net result",
		Args:  cobra.NoArgs,
	}
	from, to, csvOut := rangeFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, *csvOut, func(e *env) (*table.Table, error) {
			return e.reports.ProfitAndLoss(*from, *to)
		})
	}
	return cmd
}

func newBalanceSheetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Asset and liability balances cumulative through a date",
		Args:  cobra.NoArgs,
	}
	asOf := cmd.Flags().String("as-of", time.Now().Format("2006-01-02"), "balance date (YYYY-MM-DD)")
	csvOut := cmd.Flags().Bool("csv", false, "emit CSV instead of a table")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, *csvOut, func(e *env) (*table.Table, error) {
			return e.reports.BalanceSheet(*asOf)
		})
	}
	return cmd
}

func newGeneralLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "general-ledger",
		Short: "One account's lines with a running balance",
		Args:  cobra.NoArgs,
	}
	account := cmd.Flags().String("account", "", "account name (required)")
	_ = cmd.MarkFlagRequired("account")
	from, to, csvOut := rangeFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, *csvOut, func(e *env) (*table.Table, error) {
			return e.reports.GeneralLedger(*account, *from, *to)
		})
	}
	return cmd
}

func newCashFlowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Inflows and outflows through the cash accounts",
		Args:  cobra.NoArgs,
	}
	accounts := cmd.Flags().StringSlice("accounts", nil, "cash account names (default: names containing cash/bank)")
	from, to, csvOut := rangeFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, *csvOut, func(e *env) (*table.Table, error) {
			return e.reports.CashFlow(*accounts, *from, *to)
		})
	}
	return cmd
}
