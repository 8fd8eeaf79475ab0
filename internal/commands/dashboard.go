package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "All-time totals: assets, liabilities, net profit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			totals, err := e.reports.DashboardTotals()
			if err != nil {
				return err
			}

			fmt.Printf("Total Assets:      %s\n", totals.TotalAssets.StringFixed(2))
			fmt.Printf("Total Liabilities: %s\n", totals.TotalLiabilities.StringFixed(2))
			fmt.Printf("Net Profit:        %s\n", totals.NetProfit.StringFixed(2))
			return nil
		},
	}
}
