package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finderhub/internal/budget"
	"finderhub/internal/logging"
)

func newBudgetCommand(ctx *commandContext) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Inspect and manage the credit spend ledger",
	}

	budgetCmd.AddCommand(newBudgetShowCommand(ctx))
	budgetCmd.AddCommand(newBudgetResetCommand(ctx))

	return budgetCmd
}

func newBudgetShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show credits used against the ceiling",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withLedger(logging.NewNop(), func(ledger *budget.Ledger) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				for _, line := range renderSectionHeader("Spend Budget", colorize) {
					fmt.Fprintln(out, line)
				}

				kind := statusOK
				switch {
				case !ledger.CanSpend(1):
					kind = statusError
				case ledger.Remaining() < cfg.Budget.Reserve:
					kind = statusWarn
				}

				fmt.Fprintln(out, renderStatusLine("Used", kind, fmt.Sprintf("%d of %d credits", ledger.Used(), ledger.Ceiling()), colorize))
				fmt.Fprintln(out, renderStatusLine("Remaining", statusInfo, fmt.Sprintf("%d", ledger.Remaining()), colorize))
				fmt.Fprintln(out, renderStatusLine("Reserve", statusInfo, fmt.Sprintf("%d", cfg.Budget.Reserve), colorize))
				fmt.Fprintln(out, renderStatusLine("Ledger", statusInfo, ledger.Location(), colorize))

				if kind == statusError {
					fmt.Fprintln(out, renderStatusLine("Status", statusError, "exhausted; runs will stop before spending", colorize))
				}
				return nil
			})
		},
	}
}

func newBudgetResetCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the spend counter to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to reset the spend ledger without --force; the counter guards real credit spend")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openLedgerStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Reset(); err != nil {
				return fmt.Errorf("reset spend ledger: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Spend ledger reset at %s\n", store.Location())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm resetting the persisted spend counter")
	return cmd
}
