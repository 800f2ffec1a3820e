package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"zhbatch/internal/convert"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the custom vocabulary applied after dictionary conversion",
	}

	vocabCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List vocabulary terms in application order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := ctx.vocabulary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if vocab.Len() == 0 {
				fmt.Fprintln(out, "Vocabulary is empty")
				return nil
			}
			rows := make([][]string, 0, vocab.Len())
			for i, pair := range vocab.Pairs() {
				rows = append(rows, []string{strconv.Itoa(i + 1), pair.Source, pair.Target})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Simplified", "Traditional"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	})

	vocabCmd.AddCommand(&cobra.Command{
		Use:   "add <simplified> <traditional>",
		Short: "Add or replace a vocabulary term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ctx.updateVocabulary(func(v *convert.Vocabulary) error {
				return v.Set(args[0], args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s → %s\n", args[0], args[1])
			return nil
		},
	})

	vocabCmd.AddCommand(&cobra.Command{
		Use:   "remove <simplified>",
		Short: "Remove a vocabulary term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ctx.updateVocabulary(func(v *convert.Vocabulary) error {
				if !v.Delete(args[0]) {
					return fmt.Errorf("term %q not found", args[0])
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	})

	return vocabCmd
}

func (c *commandContext) updateVocabulary(fn func(*convert.Vocabulary) error) error {
	vocab, err := c.vocabulary()
	if err != nil {
		return err
	}
	if vocab == nil {
		return errors.New("vocabulary unavailable")
	}
	if err := fn(vocab); err != nil {
		return err
	}
	return convert.SaveVocabulary(c.configValue().Paths.VocabularyFile, vocab)
}
