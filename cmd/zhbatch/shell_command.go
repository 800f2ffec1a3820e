package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zhbatch/internal/config"
	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/task"
	"zhbatch/internal/workspace"
)

const shellHelp = `Lists are "content" (c) and "filename" (f). Items may be given by number.
  add <list> <paths...>     add files or directories
  ls <list>                 show items, checkboxes, and statuses
  toggle <list> <items...>  flip checkboxes
  all <list>                check all, or uncheck all when all are checked
  uncheck <list> <items...> clear checkboxes
  rm <list> <items...>      remove items
  prune <list>              remove unchecked items
  clear <list>              remove every item
  undo <list>               revert the last change to a list
  run <list>                process checked items with the configured defaults
  text <input...>           set the text input
  convert [s2t|t2s]         convert the text input
  undo-text                 revert the last text change
  clear-text                empty the text input and output
  quit                      leave the shell`

type shell struct {
	ctx   *commandContext
	cmd   *cobra.Command
	cfg   *config.Config
	ws    *workspace.Workspace
	out   io.Writer
	vocab *convert.Vocabulary
}

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit content and filename lists interactively with undo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, dispatcher, err := ctx.newRunner()
			if err != nil {
				return err
			}
			vocab, err := ctx.vocabulary()
			if err != nil {
				return err
			}
			sh := &shell{
				ctx:   ctx,
				cmd:   cmd,
				cfg:   cfg,
				ws:    workspace.New(runner, dispatcher, workspace.WithLogger(ctx.loggerValue())),
				out:   cmd.OutOrStdout(),
				vocab: vocab,
			}
			return sh.loop(cmd.InOrStdin(), isTerminal(cmd.InOrStdin()))
		},
	}
}

func (s *shell) loop(in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(s.out, "zhbatch> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		args := splitArgs(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if err := s.exec(args[0], args[1:]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *shell) exec(name string, args []string) error {
	switch name {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "text":
		s.ws.SetInput(strings.Join(args, " "))
		return nil
	case "convert":
		return s.convertText(args)
	case "undo-text":
		if err := s.ws.UndoText(); err != nil {
			return err
		}
		s.printText()
		return nil
	case "clear-text":
		s.ws.ClearText()
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("%s needs a list name; try help", name)
	}
	id, err := parseListID(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]

	switch name {
	case "add":
		paths, err := s.inputs(id, rest)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added %d items\n", s.ws.Add(id, paths...))
	case "ls":
		s.printList(id)
	case "toggle":
		paths, err := s.resolveItems(id, rest)
		if err != nil {
			return err
		}
		for _, path := range paths {
			s.ws.Toggle(id, path)
		}
	case "all":
		s.ws.ToggleAll(id)
	case "uncheck":
		paths, err := s.resolveItems(id, rest)
		if err != nil {
			return err
		}
		s.ws.UncheckSelected(id, paths...)
	case "rm":
		paths, err := s.resolveItems(id, rest)
		if err != nil {
			return err
		}
		s.ws.RemoveSelected(id, paths...)
	case "prune":
		s.ws.RemoveUnchecked(id)
	case "clear":
		s.ws.Clear(id)
	case "undo":
		if err := s.ws.Undo(id); err != nil {
			return err
		}
		s.printList(id)
	case "run":
		return s.run(id)
	default:
		return fmt.Errorf("unknown command %q; try help", name)
	}
	return nil
}

func (s *shell) inputs(id filelist.ID, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("add needs at least one path")
	}
	if id == filelist.Filename {
		return renameInputs(args, false)
	}
	return expandInputs(args, false)
}

func (s *shell) resolveItems(id filelist.ID, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no items given")
	}
	paths := s.ws.List(id).Paths()
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(paths) {
				return nil, fmt.Errorf("item %d out of range (list has %d)", n, len(paths))
			}
			out = append(out, paths[n-1])
			continue
		}
		path, err := expandPathArg(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}

func (s *shell) printList(id filelist.ID) {
	list := s.ws.List(id)
	if list.Len() == 0 {
		fmt.Fprintf(s.out, "%s list is empty\n", id)
		return
	}
	rows := make([][]string, 0, list.Len())
	for i, item := range list.Items() {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), mark, item.Path, item.Status.Label()})
	}
	fmt.Fprintln(s.out, renderTable([]string{"#", "✓", "Path", "Status"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
}

func (s *shell) run(id filelist.ID) error {
	ctx := commandCtx(s.cmd)
	output, err := outputFolder(s.cfg, "")
	if err != nil {
		return err
	}

	var h *task.Handle
	if id == filelist.Content {
		direction, err := convert.ParseDirection(s.cfg.Content.Direction)
		if err != nil {
			return err
		}
		h, err = s.ws.StartContent(ctx, task.ContentParams{
			Direction:         direction,
			Vocabulary:        s.vocab,
			VocabularyEnabled: s.cfg.Content.VocabularyEnabled,
			OutputFolder:      output,
			Encoding:          s.cfg.Content.Encoding,
			NamePattern:       s.cfg.Content.NamePattern,
			AcceptedExtension: s.cfg.Content.AcceptedExtension,
			DetectLanguage:    s.cfg.Content.DetectLanguage,
		})
		if err != nil {
			return err
		}
	} else {
		direction, err := convert.ParseDirection(s.cfg.Filename.Direction)
		if err != nil {
			return err
		}
		op, err := task.ParseOperation(s.cfg.Filename.Operation)
		if err != nil {
			return err
		}
		h, err = s.ws.StartFilename(ctx, task.FilenameParams{
			Direction:      direction,
			OutputFolder:   output,
			Operation:      op,
			DetectLanguage: s.cfg.Filename.DetectLanguage,
		})
		if err != nil {
			return err
		}
	}

	stop := watchSignals(h)
	ev := awaitFinish(ctx, s.ws, newProgressPrinter(s.cmd.ErrOrStderr(), false))
	stop()

	total := len(h.Items())
	switch {
	case ev.ContentFinish != nil:
		s.ctx.recordRun(ctx, contentRun(*ev.ContentFinish))
		printSummary(s.out, ev.ContentFinish.Summary, total, ev.ContentFinish.Cancelled, false)
	case ev.FilenameFinish != nil:
		s.ctx.recordRun(ctx, filenameRun(*ev.FilenameFinish))
		printSummary(s.out, ev.FilenameFinish.Summary, total, ev.FilenameFinish.Cancelled, false)
	}
	return nil
}

func (s *shell) convertText(args []string) error {
	value := s.cfg.Content.Direction
	if len(args) > 0 {
		value = args[0]
	}
	direction, err := convert.ParseDirection(value)
	if err != nil {
		return err
	}
	_, err = s.ws.ConvertText(direction, s.vocab, s.cfg.Content.VocabularyEnabled)
	s.printText()
	return err
}

func (s *shell) printText() {
	pair := s.ws.Text()
	fmt.Fprintf(s.out, "input:  %s\noutput: %s\n", pair.Input, pair.Output)
}

func parseListID(value string) (filelist.ID, error) {
	switch strings.ToLower(value) {
	case "content", "c":
		return filelist.Content, nil
	case "filename", "f", "names":
		return filelist.Filename, nil
	default:
		return "", fmt.Errorf("unknown list %q (want content or filename)", value)
	}
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}
