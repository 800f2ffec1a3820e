package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/task"
	"zhbatch/internal/workspace"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		output         string
		direction      string
		operation      string
		detectLanguage bool
		recursive      bool
		items          bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "rename [files or directories...]",
		Short: "Convert file and folder names, moving or copying them into an output folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			directionValue := cfg.Filename.Direction
			if cmd.Flags().Changed("direction") {
				directionValue = direction
			}
			dir, err := convert.ParseDirection(directionValue)
			if err != nil {
				return err
			}
			operationValue := cfg.Filename.Operation
			if cmd.Flags().Changed("operation") {
				operationValue = operation
			}
			op, err := task.ParseOperation(operationValue)
			if err != nil {
				return err
			}
			folder, err := outputFolder(cfg, output)
			if err != nil {
				return err
			}
			params := task.FilenameParams{
				Direction:      dir,
				OutputFolder:   folder,
				Operation:      op,
				DetectLanguage: cfg.Filename.DetectLanguage,
			}
			if cmd.Flags().Changed("detect-language") {
				params.DetectLanguage = detectLanguage
			}

			paths, err := renameInputs(args, recursive)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no files found")
			}

			runner, dispatcher, err := ctx.newRunner()
			if err != nil {
				return err
			}
			ws := workspace.New(runner, dispatcher, workspace.WithLogger(ctx.loggerValue()))
			ws.Add(filelist.Filename, paths...)

			h, err := ws.StartFilename(cmd.Context(), params)
			if err != nil {
				return err
			}
			stop := watchSignals(h)
			defer stop()

			out := cmd.OutOrStdout()
			ev := awaitFinish(cmd.Context(), ws, newProgressPrinter(cmd.ErrOrStderr(), verbose))
			finish := ev.FilenameFinish
			ctx.recordRun(cmd.Context(), filenameRun(*finish))

			fmt.Fprintf(out, "Task %s: %s, %s into %s\n", finish.TaskID, dir.Label(), finish.Operation, finish.OutputFolder)
			printSummary(out, finish.Summary, len(paths), finish.Cancelled, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output folder (defaults to paths.output_dir)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "Conversion direction: s2t or t2s")
	cmd.Flags().StringVar(&operation, "operation", "", "What to do with each item: move or copy")
	cmd.Flags().BoolVar(&detectLanguage, "detect-language", false, "Skip names that are not Chinese")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Expand directories into their files instead of renaming them")
	cmd.Flags().BoolVar(&items, "items", false, "Print the status of every item")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a line per item when not on a terminal")
	return cmd
}

// renameInputs keeps directories as items unless recursive is set, since a
// filename task renames folders as a whole.
func renameInputs(args []string, recursive bool) ([]string, error) {
	if recursive {
		return expandInputs(args, true)
	}
	out := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := expandPathArg(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}
