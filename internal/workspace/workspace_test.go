package workspace_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/task"
	"zhbatch/internal/testsupport"
	"zhbatch/internal/undo"
	"zhbatch/internal/workspace"
)

var s2t = strings.NewReplacer("简", "簡", "体", "體", "书", "書")

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	dispatcher := convert.NewDispatcher(convert.Providers{
		convert.S2T: convert.ProviderFunc(func(s string) (string, error) { return s2t.Replace(s), nil }),
		convert.T2S: convert.ProviderFunc(func(string) (string, error) { return "", errors.New("dictionary missing") }),
	})
	runner := task.NewRunner(dispatcher, task.WithLockDir(filepath.Join(t.TempDir(), "locks")))
	return workspace.New(runner, dispatcher)
}

// drain dispatches events until the list's task finishes.
func drain(t *testing.T, ws *workspace.Workspace) workspace.Event {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev := <-ws.Events():
			ws.Dispatch(ev)
			if ev.Finished() {
				return ev
			}
		case <-timeout:
			t.Fatal("task did not finish")
		}
	}
}

func TestMutationsAreUndoable(t *testing.T) {
	ws := newWorkspace(t)
	if added := ws.Add(filelist.Content, "a", "b", "c"); added != 3 {
		t.Fatalf("expected 3 added, got %d", added)
	}
	ws.Toggle(filelist.Content, "b")
	ws.RemoveUnchecked(filelist.Content)
	if got := ws.List(filelist.Content).Paths(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected paths %v", got)
	}

	if err := ws.Undo(filelist.Content); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := ws.List(filelist.Content).Unchecked(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected b back and unchecked, got %v", got)
	}
	if err := ws.Undo(filelist.Content); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := ws.Undo(filelist.Content); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if ws.List(filelist.Content).Len() != 0 {
		t.Fatal("expected empty list after undoing add")
	}
	if err := ws.Undo(filelist.Content); !errors.Is(err, undo.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestListsHaveIndependentHistories(t *testing.T) {
	ws := newWorkspace(t)
	ws.Add(filelist.Content, "a")
	ws.Add(filelist.Filename, "x")
	ws.Clear(filelist.Filename)

	if err := ws.Undo(filelist.Content); err != nil {
		t.Fatalf("undo content: %v", err)
	}
	if ws.List(filelist.Filename).Len() != 0 {
		t.Fatal("content undo touched filename list")
	}
	if ws.UndoDepth(filelist.Filename) != 2 {
		t.Fatalf("expected 2 filename undo steps, got %d", ws.UndoDepth(filelist.Filename))
	}
}

func TestUndoHistoryIsBounded(t *testing.T) {
	ws := newWorkspace(t)
	for i := 0; i < undo.DefaultCapacity+5; i++ {
		ws.ToggleAll(filelist.Content)
	}
	if ws.UndoDepth(filelist.Content) != undo.DefaultCapacity {
		t.Fatalf("expected depth %d, got %d", undo.DefaultCapacity, ws.UndoDepth(filelist.Content))
	}
}

func TestContentTaskWritesStatusesBack(t *testing.T) {
	ws := newWorkspace(t)
	cfg := testsupport.NewConfig(t)
	in := filepath.Join(testsupport.BaseDir(cfg), "in")
	good := testsupport.WriteText(t, filepath.Join(in, "简体.txt"), "简体书")
	skipped := testsupport.WriteText(t, filepath.Join(in, "notes.md"), "简体")
	unchecked := testsupport.WriteText(t, filepath.Join(in, "later.txt"), "书")

	ws.Add(filelist.Content, good, skipped, unchecked)
	ws.UncheckSelected(filelist.Content, unchecked)
	depth := ws.UndoDepth(filelist.Content)

	h, err := ws.StartContent(context.Background(), task.ContentParams{
		Direction:    convert.S2T,
		OutputFolder: cfg.Paths.OutputDir,
		Encoding:     "auto",
	})
	if err != nil {
		t.Fatalf("StartContent: %v", err)
	}
	if ws.Active(filelist.Content) != h {
		t.Fatal("expected active handle")
	}
	if _, err := ws.StartContent(context.Background(), task.ContentParams{OutputFolder: cfg.Paths.OutputDir}); !errors.Is(err, workspace.ErrTaskActive) {
		t.Fatalf("expected ErrTaskActive, got %v", err)
	}

	ev := drain(t, ws)
	if ev.ContentFinish == nil || ev.ContentFinish.Summary.Success != 1 {
		t.Fatalf("unexpected finish %+v", ev)
	}
	if ws.Active(filelist.Content) != nil {
		t.Fatal("expected no active task after finish")
	}
	list := ws.List(filelist.Content)
	if item, _ := list.Get(good); item.Status != filelist.StatusConverted {
		t.Fatalf("expected converted, got %q", item.Status)
	}
	if item, _ := list.Get(skipped); item.Status != filelist.StatusSkippedExtension {
		t.Fatalf("expected skipped extension, got %q", item.Status)
	}
	if item, _ := list.Get(unchecked); item.Status != filelist.StatusPending {
		t.Fatalf("unchecked item must stay pending, got %q", item.Status)
	}
	if ws.UndoDepth(filelist.Content) != depth+1 {
		t.Fatalf("expected one undo step for writeback, depth %d", ws.UndoDepth(filelist.Content))
	}
	if got := testsupport.ReadText(t, filepath.Join(cfg.Paths.OutputDir, "簡體.txt")); got != "簡體書" {
		t.Fatalf("unexpected output %q", got)
	}

	if err := ws.Undo(filelist.Content); err != nil {
		t.Fatalf("undo writeback: %v", err)
	}
	if item, _ := ws.List(filelist.Content).Get(good); item.Status != filelist.StatusPending {
		t.Fatalf("expected status restored to pending, got %q", item.Status)
	}
}

func TestFilenameMoveRekeysItems(t *testing.T) {
	ws := newWorkspace(t)
	cfg := testsupport.NewConfig(t, testsupport.WithOperation("move"))
	in := filepath.Join(testsupport.BaseDir(cfg), "in")
	moved := testsupport.WriteText(t, filepath.Join(in, "简体.txt"), "x")
	same := testsupport.WriteText(t, filepath.Join(in, "plain.txt"), "x")
	ws.Add(filelist.Filename, moved, same)

	op, err := task.ParseOperation(cfg.Filename.Operation)
	if err != nil {
		t.Fatalf("ParseOperation: %v", err)
	}
	if _, err := ws.StartFilename(context.Background(), task.FilenameParams{
		Direction:    convert.S2T,
		OutputFolder: cfg.Paths.OutputDir,
		Operation:    op,
	}); err != nil {
		t.Fatalf("StartFilename: %v", err)
	}
	drain(t, ws)

	target := filepath.Join(cfg.Paths.OutputDir, "簡體.txt")
	list := ws.List(filelist.Filename)
	if got := list.Paths(); !reflect.DeepEqual(got, []string{target, same}) {
		t.Fatalf("unexpected paths %v", got)
	}
	if item, _ := list.Get(target); item.Status != filelist.StatusConverted {
		t.Fatalf("expected converted, got %q", item.Status)
	}
	if item, _ := list.Get(same); item.Status != filelist.StatusSkippedUnchanged {
		t.Fatalf("expected skipped unchanged, got %q", item.Status)
	}
}

func TestStartRequiresCheckedItems(t *testing.T) {
	ws := newWorkspace(t)
	ws.Add(filelist.Filename, "a")
	ws.ToggleAll(filelist.Filename)
	if _, err := ws.StartFilename(context.Background(), task.FilenameParams{}); !errors.Is(err, workspace.ErrNothingChecked) {
		t.Fatalf("expected ErrNothingChecked, got %v", err)
	}
}

func TestTextPairConvertAndUndo(t *testing.T) {
	ws := newWorkspace(t)
	ws.SetInput("简体书")
	out, err := ws.ConvertText(convert.S2T, convert.NewVocabulary(convert.Pair{Source: "书", Target: "冊"}), true)
	if err != nil {
		t.Fatalf("ConvertText: %v", err)
	}
	if out != "簡體冊" || ws.Text().Output != out {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := ws.ConvertText(convert.T2S, nil, false); !errors.Is(err, convert.ErrTransform) {
		t.Fatalf("expected ErrTransform, got %v", err)
	}
	if !strings.HasPrefix(ws.Text().Output, "Conversion error: ") {
		t.Fatalf("expected error text in output, got %q", ws.Text().Output)
	}

	if err := ws.UndoText(); err != nil {
		t.Fatalf("UndoText: %v", err)
	}
	if ws.Text().Output != "簡體冊" {
		t.Fatalf("expected previous output restored, got %q", ws.Text().Output)
	}
	ws.ClearText()
	if ws.Text() != (workspace.TextPair{}) {
		t.Fatalf("expected cleared pair, got %+v", ws.Text())
	}
	if err := ws.UndoText(); err != nil || ws.Text().Input != "简体书" {
		t.Fatalf("expected clear undone, got %+v (%v)", ws.Text(), err)
	}
}
