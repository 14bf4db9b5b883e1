package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"finderhub/internal/runhistory"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect enrichment run history",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var job string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent enrichment runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runhistory.Open(cfg.RunHistoryPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			var runs []*runhistory.Run
			if job != "" {
				runs, err = store.RecentForJob(cmd.Context(), job, limit)
			} else {
				runs, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			fmt.Fprintln(out, renderRunsTable(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&job, "job", "", "Only show runs for this job")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func renderRunsTable(runs []*runhistory.Run) string {
	now := time.Now()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Job", "Batch", "Started", "Duration", "Processed", "Updated", "Not Found", "Errors", "Spend", "Note"})
	for _, run := range runs {
		duration := "running"
		if run.Finished() {
			duration = run.Duration(now).Round(time.Second).String()
		}
		tw.AppendRow(table.Row{
			run.ID,
			run.Job,
			run.BatchNumber,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			duration,
			run.Processed,
			run.Updated,
			run.NotFound,
			run.Errors,
			run.Spend,
			run.Note,
		})
	}

	// Counters read better right-aligned; everything else stays left.
	configs := make([]table.ColumnConfig, 0, 8)
	for _, number := range []int{1, 3, 5, 6, 7, 8, 9, 10} {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
