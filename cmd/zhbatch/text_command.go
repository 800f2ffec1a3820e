package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"zhbatch/internal/convert"
	"zhbatch/internal/language"
)

func newTextCommand(ctx *commandContext) *cobra.Command {
	var (
		direction     string
		noVocab       bool
		fromClipboard bool
		toClipboard   bool
		explain       bool
		reverse       bool
	)

	cmd := &cobra.Command{
		Use:   "text [text...]",
		Short: "Convert text from arguments, stdin, or the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			directionValue := cfg.Content.Direction
			if cmd.Flags().Changed("direction") {
				directionValue = direction
			}
			dir, err := convert.ParseDirection(directionValue)
			if err != nil {
				return err
			}
			if reverse {
				dir = dir.Reverse()
			}

			input, err := readTextInput(cmd.InOrStdin(), args, fromClipboard)
			if err != nil {
				return err
			}
			if explain {
				code, confidence := convert.DetectLanguage(input)
				fmt.Fprintf(cmd.ErrOrStderr(), "Detected %s (%s, confidence %.2f), contains Han: %s\n",
					language.DisplayName(code), code, confidence, yesNo(convert.ContainsHan(input)))
			}

			dispatcher, err := ctx.dispatcherValue()
			if err != nil {
				return err
			}
			vocabEnabled := cfg.Content.VocabularyEnabled && !noVocab
			var vocab *convert.Vocabulary
			if vocabEnabled {
				if vocab, err = ctx.vocabulary(); err != nil {
					return err
				}
			}
			output, convErr := dispatcher.Apply(input, dir, vocab, vocabEnabled)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			if convErr != nil {
				return convErr
			}
			if toClipboard {
				if err := clipboard.WriteAll(output); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "Conversion direction: s2t or t2s")
	cmd.Flags().BoolVar(&noVocab, "no-vocab", false, "Disable the custom vocabulary")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read input from the clipboard")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Convert in the opposite of the chosen direction")
	cmd.Flags().BoolVar(&explain, "explain", false, "Report the detected language on stderr")
	return cmd
}

func readTextInput(stdin io.Reader, args []string, fromClipboard bool) (string, error) {
	switch {
	case fromClipboard:
		if clipboard.Unsupported {
			return "", errors.New("clipboard is not available; run `zhbatch doctor` for details")
		}
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	case len(args) > 0 && !(len(args) == 1 && args[0] == "-"):
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}
