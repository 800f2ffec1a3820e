package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"zhbatch/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show the items of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				if len(args) == 1 {
					return showRun(cmd, store, args[0])
				}
				return listRuns(cmd, store, limit)
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
				return nil
			})
		},
	})

	return historyCmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.ListRuns(commandCtx(cmd), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		kind := run.Kind
		if run.Operation != "" {
			kind += "/" + run.Operation
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			kind,
			run.Direction,
			strconv.Itoa(run.Success),
			strconv.Itoa(run.Fail),
			run.Duration().Round(time.Millisecond).String(),
			yesNo(run.Cancelled),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Started", "Kind", "Direction", "Success", "Failed", "Duration", "Cancelled"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, id string) error {
	run, err := store.GetRun(commandCtx(cmd), id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", run.ID)
	fmt.Fprintf(out, "Kind:      %s\n", run.Kind)
	if run.Operation != "" {
		fmt.Fprintf(out, "Operation: %s\n", run.Operation)
	}
	fmt.Fprintf(out, "Direction: %s\n", run.Direction)
	fmt.Fprintf(out, "Output:    %s\n", run.OutputFolder)
	fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Duration:  %s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(out, "Cancelled: %s\n", yesNo(run.Cancelled))
	fmt.Fprintf(out, "Success:   %d  Failed: %d\n", run.Success, run.Fail)
	if len(run.Items) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(run.Items))
	for _, item := range run.Items {
		rows = append(rows, []string{strconv.Itoa(item.Index), item.Path, string(item.Status), item.NewPath})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Path", "Status", "New Path"}, rows,
		[]columnAlignment{alignRight, alignPath, alignLeft, alignPath}))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
