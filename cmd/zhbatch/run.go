package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"zhbatch/internal/filelist"
	"zhbatch/internal/history"
	"zhbatch/internal/logging"
	"zhbatch/internal/task"
	"zhbatch/internal/workspace"
)

// taskControl is the part of a task handle signals drive.
type taskControl interface {
	Pause()
	Resume()
	Cancel()
}

// awaitFinish dispatches workspace events until a task finishes.
func awaitFinish(ctx context.Context, ws *workspace.Workspace, progress *progressPrinter) workspace.Event {
	defer progress.done()
	for {
		select {
		case ev := <-ws.Events():
			ws.Dispatch(ev)
			if ev.Progress != nil {
				progress.update(*ev.Progress)
			}
			if ev.Finished() {
				return ev
			}
		case <-ctx.Done():
			// The runner cancels the task on ctx; drain until its finish event.
			ctx = context.Background()
		}
	}
}

// recordRun stores a finished task in history. Failures are logged and do
// not fail the command.
func (c *commandContext) recordRun(ctx context.Context, run history.Run) {
	err := c.withHistory(func(store *history.Store) error {
		return store.RecordRun(ctx, run)
	})
	if err != nil {
		logging.WarnWithContext(c.loggerValue(), "history record failed", "history_record_failed",
			logging.String(logging.FieldTaskID, run.ID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the state directory is writable"))
	}
}

func runItems(summary task.Summary) []history.RunItem {
	items := make([]history.RunItem, 0, len(summary.Order))
	for i, path := range summary.Order {
		outcome := summary.Outcomes[path]
		items = append(items, history.RunItem{
			Index:   i + 1,
			Path:    path,
			Status:  outcome.Status,
			NewPath: outcome.NewPath,
		})
	}
	return items
}

func contentRun(f task.ContentFinish) history.Run {
	return history.Run{
		ID:           f.TaskID,
		Kind:         string(task.KindContent),
		Direction:    string(f.Params.Direction),
		OutputFolder: f.OutputFolder,
		StartedAt:    f.StartedAt,
		FinishedAt:   f.FinishedAt,
		Cancelled:    f.Cancelled,
		Success:      f.Summary.Success,
		Fail:         f.Summary.Fail,
		Items:        runItems(f.Summary),
	}
}

func filenameRun(f task.FilenameFinish) history.Run {
	return history.Run{
		ID:           f.TaskID,
		Kind:         string(task.KindFilename),
		Direction:    string(f.Params.Direction),
		Operation:    string(f.Operation),
		OutputFolder: f.OutputFolder,
		StartedAt:    f.StartedAt,
		FinishedAt:   f.FinishedAt,
		Cancelled:    f.Cancelled,
		Success:      f.Summary.Success,
		Fail:         f.Summary.Fail,
		Items:        runItems(f.Summary),
	}
}

// printSummary writes the status counts, optionally followed by every item.
func printSummary(out io.Writer, summary task.Summary, total int, cancelled, showItems bool) {
	if cancelled {
		fmt.Fprintf(out, "Cancelled after %d of %d items\n", summary.Processed, total)
	}

	statuses := make([]filelist.Status, 0, len(summary.Counts))
	for status := range summary.Counts {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{status.Label(), strconv.Itoa(summary.Counts[status])})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Status", "Items"}, rows, []columnAlignment{alignLeft, alignRight}))
	}

	if showItems && len(summary.Order) > 0 {
		itemRows := make([][]string, 0, len(summary.Order))
		for i, path := range summary.Order {
			outcome := summary.Outcomes[path]
			itemRows = append(itemRows, []string{strconv.Itoa(i + 1), path, string(outcome.Status), outcome.NewPath})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Path", "Status", "New Path"}, itemRows,
			[]columnAlignment{alignRight, alignPath, alignLeft, alignPath}))
	}

	fmt.Fprintf(out, "Success: %d  Failed: %d\n", summary.Success, summary.Fail)
}
