package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"zhbatch/internal/config"
	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/task"
	"zhbatch/internal/textenc"
	"zhbatch/internal/workspace"
)

const previewRunes = 200

type contentFlags struct {
	output         string
	direction      string
	encoding       string
	pattern        string
	extension      string
	noVocab        bool
	detectLanguage bool
	recursive      bool
	items          bool
	preview        bool
	verbose        bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags contentFlags

	cmd := &cobra.Command{
		Use:   "convert [files or directories...]",
		Short: "Convert the contents of text files into an output folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			params, err := contentParamsFromFlags(cmd, cfg, flags)
			if err != nil {
				return err
			}
			if params.VocabularyEnabled {
				vocab, err := ctx.vocabulary()
				if err != nil {
					return err
				}
				params.Vocabulary = vocab
			}
			paths, err := expandInputs(args, flags.recursive)
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
			ws.Add(filelist.Content, paths...)

			h, err := ws.StartContent(cmd.Context(), params)
			if err != nil {
				return err
			}
			stop := watchSignals(h)
			defer stop()

			out := cmd.OutOrStdout()
			ev := awaitFinish(cmd.Context(), ws, newProgressPrinter(cmd.ErrOrStderr(), flags.verbose))
			finish := ev.ContentFinish
			ctx.recordRun(cmd.Context(), contentRun(*finish))

			fmt.Fprintf(out, "Task %s: %s into %s\n", finish.TaskID, params.Direction.Label(), finish.OutputFolder)
			printSummary(out, finish.Summary, len(paths), finish.Cancelled, flags.items)
			if flags.preview && finish.Preview != nil {
				fmt.Fprintf(out, "\nPreview of %s\n--- original\n%s\n--- converted\n%s\n",
					finish.Preview.Path, truncateRunes(finish.Preview.Original, previewRunes), truncateRunes(finish.Preview.Converted, previewRunes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output folder (defaults to paths.output_dir)")
	cmd.Flags().StringVarP(&flags.direction, "direction", "d", "", "Conversion direction: s2t or t2s")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "Source encoding: auto, or one of "+strings.Join(textenc.Names(), ", "))
	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "Output name pattern, e.g. {original_name}_{index:03d}")
	cmd.Flags().StringVar(&flags.extension, "ext", "", "Accepted file extension")
	cmd.Flags().BoolVar(&flags.noVocab, "no-vocab", false, "Disable the custom vocabulary")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false, "Skip files that are not Chinese text")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&flags.items, "items", false, "Print the status of every item")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "Print the first converted file before and after")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print a line per item when not on a terminal")
	return cmd
}

func contentParamsFromFlags(cmd *cobra.Command, cfg *config.Config, flags contentFlags) (task.ContentParams, error) {
	directionValue := cfg.Content.Direction
	if cmd.Flags().Changed("direction") {
		directionValue = flags.direction
	}
	direction, err := convert.ParseDirection(directionValue)
	if err != nil {
		return task.ContentParams{}, err
	}
	output, err := outputFolder(cfg, flags.output)
	if err != nil {
		return task.ContentParams{}, err
	}

	params := task.ContentParams{
		Direction:         direction,
		VocabularyEnabled: cfg.Content.VocabularyEnabled && !flags.noVocab,
		OutputFolder:      output,
		Encoding:          cfg.Content.Encoding,
		NamePattern:       cfg.Content.NamePattern,
		AcceptedExtension: cfg.Content.AcceptedExtension,
		DetectLanguage:    cfg.Content.DetectLanguage,
	}
	if cmd.Flags().Changed("encoding") {
		params.Encoding = strings.ToLower(strings.TrimSpace(flags.encoding))
	}
	if cmd.Flags().Changed("pattern") {
		params.NamePattern = flags.pattern
	}
	if cmd.Flags().Changed("ext") {
		params.AcceptedExtension = flags.extension
	}
	if cmd.Flags().Changed("detect-language") {
		params.DetectLanguage = flags.detectLanguage
	}
	return params, nil
}

func outputFolder(cfg *config.Config, flagValue string) (string, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		value = cfg.Paths.OutputDir
	}
	if value == "" {
		return "", errors.New("output folder not set; pass --output or set paths.output_dir")
	}
	return config.ExpandPath(value)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
