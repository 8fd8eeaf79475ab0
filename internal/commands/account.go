package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/table"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand())
	accountCmd.AddCommand(newAccountUpdateCommand())
	accountCmd.AddCommand(newAccountRmCommand())
	accountCmd.AddCommand(newAccountListCommand())
	return accountCmd
}

func newAccountAddCommand() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.snapshot("pre_account_add"); err != nil {
				return err
			}
			acct, err := e.store.AddAccount(args[0], model.AccountType(typ))
			if err != nil {
				return err
			}
			e.audit("account-added", fmt.Sprintf("%s (%s)", acct.Name, acct.Type), acct.Name)
			fmt.Printf("Added account %s (%s) with id %d\n", acct.Name, acct.Type, acct.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "account type: Asset, Liability, Income, or Expense (required)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountUpdateCommand() *cobra.Command {
	var newName, typ string

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Rename or retype an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			oldName := args[0]
			if newName == "" {
				newName = oldName
			}
			if typ == "" {
				acct, err := e.store.AccountByName(oldName)
				if err != nil {
					return err
				}
				typ = string(acct.Type)
			}

			if err := e.snapshot("pre_account_update"); err != nil {
				return err
			}
			acct, err := e.store.UpdateAccount(oldName, newName, model.AccountType(typ))
			if err != nil {
				return err
			}
			e.audit("account-updated", fmt.Sprintf("%s -> %s (%s)", oldName, acct.Name, acct.Type), acct.Name)
			fmt.Printf("Updated account %s (%s)\n", acct.Name, acct.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new account name")
	cmd.Flags().StringVar(&typ, "type", "", "new account type")

	return cmd
}

func newAccountRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete an unreferenced account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.snapshot("pre_account_rm"); err != nil {
				return err
			}
			if err := e.store.DeleteAccount(args[0]); err != nil {
				return err
			}
			e.audit("account-deleted", "", args[0])
			fmt.Printf("Deleted account %s\n", args[0])
			return nil
		},
	}
}

func newAccountListCommand() *cobra.Command {
	var search, typ string
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir(cmd))
			if err != nil {
				return err
			}
			defer e.Close()

			accounts, err := e.store.ListAccounts(search, model.AccountType(typ))
			if err != nil {
				return err
			}

			t := table.New("Accounts",
				table.Column{Name: "Account", Kind: table.String},
				table.Column{Name: "Type", Kind: table.String},
			)
			for _, a := range accounts {
				t.AddRow(a.Name, string(a.Type))
			}
			return renderTable(cmd.OutOrStdout(), t, csvOut)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name substring")
	cmd.Flags().StringVar(&typ, "type", "", "filter by account type")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "emit CSV instead of a table")

	return cmd
}
