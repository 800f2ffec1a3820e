package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/logging"
	"zhbatch/internal/task"
	"zhbatch/internal/undo"
)

// ErrTaskActive reports a start request for a list that already has a
// running task.
var ErrTaskActive = errors.New("a task is already running for this list")

// ErrNothingChecked reports a start request with no checked items.
var ErrNothingChecked = errors.New("no checked items")

// Event carries one task callback to the owning goroutine. Exactly one of
// Progress, ContentFinish and FilenameFinish is set.
type Event struct {
	List           filelist.ID
	Progress       *task.Progress
	ContentFinish  *task.ContentFinish
	FilenameFinish *task.FilenameFinish
}

// Finished reports whether the event ends a task.
func (e Event) Finished() bool {
	return e.ContentFinish != nil || e.FilenameFinish != nil
}

// Workspace is the session state. Its methods must be called from the
// owning goroutine only.
type Workspace struct {
	runner     *task.Runner
	dispatcher *convert.Dispatcher
	logger     *slog.Logger

	lists   map[filelist.ID]filelist.List
	history *undo.Manager[filelist.ID, filelist.List]
	active  map[filelist.ID]*task.Handle

	text     TextPair
	textUndo *undo.History[TextPair]

	events chan Event
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) { w.logger = logger }
}

// WithEventBuffer sets the event channel capacity.
func WithEventBuffer(n int) Option {
	return func(w *Workspace) { w.events = make(chan Event, n) }
}

// New returns an empty workspace.
func New(runner *task.Runner, dispatcher *convert.Dispatcher, opts ...Option) *Workspace {
	w := &Workspace{
		runner:     runner,
		dispatcher: dispatcher,
		lists: map[filelist.ID]filelist.List{
			filelist.Content:  filelist.New(),
			filelist.Filename: filelist.New(),
		},
		history:  undo.NewManager[filelist.ID, filelist.List](undo.DefaultCapacity),
		active:   make(map[filelist.ID]*task.Handle),
		textUndo: undo.New[TextPair](undo.DefaultCapacity),
		events:   make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "workspace")
	return w
}

// List returns the current state of a list.
func (w *Workspace) List(id filelist.ID) filelist.List {
	return w.lists[id]
}

// UndoDepth returns how many undo steps a list has.
func (w *Workspace) UndoDepth(id filelist.ID) int {
	return w.history.Len(id)
}

func (w *Workspace) mutate(id filelist.ID, fn func(filelist.List) filelist.List) {
	current := w.lists[id]
	w.history.Push(id, current)
	w.lists[id] = fn(current)
}

// Add appends paths, skipping ones already listed, and returns how many
// were added.
func (w *Workspace) Add(id filelist.ID, paths ...string) int {
	var added int
	w.mutate(id, func(l filelist.List) filelist.List {
		var next filelist.List
		next, added = l.Add(paths...)
		return next
	})
	return added
}

// Clear removes every item.
func (w *Workspace) Clear(id filelist.ID) {
	w.mutate(id, filelist.List.Clear)
}

// RemoveUnchecked removes items whose checkbox is off.
func (w *Workspace) RemoveUnchecked(id filelist.ID) {
	w.mutate(id, filelist.List.RemoveUnchecked)
}

// RemoveSelected removes the given paths.
func (w *Workspace) RemoveSelected(id filelist.ID, paths ...string) {
	w.mutate(id, func(l filelist.List) filelist.List { return l.Remove(paths...) })
}

// SetChecked sets the checkbox of the given paths.
func (w *Workspace) SetChecked(id filelist.ID, checked bool, paths ...string) {
	w.mutate(id, func(l filelist.List) filelist.List { return l.SetChecked(checked, paths...) })
}

// UncheckSelected clears the checkbox of the given paths.
func (w *Workspace) UncheckSelected(id filelist.ID, paths ...string) {
	w.SetChecked(id, false, paths...)
}

// Toggle flips one item's checkbox.
func (w *Workspace) Toggle(id filelist.ID, path string) {
	w.mutate(id, func(l filelist.List) filelist.List { return l.Toggle(path) })
}

// ToggleAll checks everything unless everything is already checked.
func (w *Workspace) ToggleAll(id filelist.ID) {
	w.mutate(id, filelist.List.ToggleAll)
}

// Undo restores the list state before the last mutation.
func (w *Workspace) Undo(id filelist.ID) error {
	prev, err := w.history.Pop(id)
	if err != nil {
		return err
	}
	w.lists[id] = prev
	return nil
}

// Active returns the running task for a list, or nil.
func (w *Workspace) Active(id filelist.ID) *task.Handle {
	return w.active[id]
}

// Events delivers task callbacks in order. The owner passes each one to
// Dispatch.
func (w *Workspace) Events() <-chan Event {
	return w.events
}

func (w *Workspace) prepareStart(id filelist.ID) ([]string, error) {
	if h := w.active[id]; h != nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskActive, h.ID())
	}
	items := w.lists[id].Checked()
	if len(items) == 0 {
		return nil, ErrNothingChecked
	}
	return items, nil
}

// StartContent converts the contents of the checked content items.
func (w *Workspace) StartContent(ctx context.Context, params task.ContentParams) (*task.Handle, error) {
	items, err := w.prepareStart(filelist.Content)
	if err != nil {
		return nil, err
	}
	h, err := w.runner.StartContent(ctx, items, params, task.ContentCallbacks{
		OnProgress: func(p task.Progress) {
			w.events <- Event{List: filelist.Content, Progress: &p}
		},
		OnFinish: func(f task.ContentFinish) {
			w.events <- Event{List: filelist.Content, ContentFinish: &f}
		},
	})
	if err != nil {
		return nil, err
	}
	w.lists[filelist.Content] = w.lists[filelist.Content].ResetStatus(items...)
	w.active[filelist.Content] = h
	return h, nil
}

// StartFilename converts the names of the checked filename items.
func (w *Workspace) StartFilename(ctx context.Context, params task.FilenameParams) (*task.Handle, error) {
	items, err := w.prepareStart(filelist.Filename)
	if err != nil {
		return nil, err
	}
	h, err := w.runner.StartFilename(ctx, items, params, task.FilenameCallbacks{
		OnProgress: func(p task.Progress) {
			w.events <- Event{List: filelist.Filename, Progress: &p}
		},
		OnFinish: func(f task.FilenameFinish) {
			w.events <- Event{List: filelist.Filename, FilenameFinish: &f}
		},
	})
	if err != nil {
		return nil, err
	}
	w.lists[filelist.Filename] = w.lists[filelist.Filename].ResetStatus(items...)
	w.active[filelist.Filename] = h
	return h, nil
}

// Dispatch applies an event on the owning goroutine. Finish events write
// the results back into the list as one undoable step.
func (w *Workspace) Dispatch(ev Event) {
	switch {
	case ev.ContentFinish != nil:
		f := ev.ContentFinish
		w.mutate(ev.List, func(l filelist.List) filelist.List {
			return l.ApplyStatuses(f.Summary.Statuses)
		})
		w.finished(ev.List, f.TaskID)
	case ev.FilenameFinish != nil:
		f := ev.FilenameFinish
		w.mutate(ev.List, func(l filelist.List) filelist.List {
			return applyFilenameResults(l, f)
		})
		w.finished(ev.List, f.TaskID)
	case ev.Progress != nil:
		w.logger.Debug("progress",
			logging.String(logging.FieldTaskID, ev.Progress.TaskID),
			logging.Int(logging.FieldItemIndex, ev.Progress.Index),
			logging.String(logging.FieldItemPath, ev.Progress.Path))
	}
}

func (w *Workspace) finished(id filelist.ID, taskID string) {
	if h := w.active[id]; h != nil && h.ID() == taskID {
		delete(w.active, id)
	}
}

func applyFilenameResults(l filelist.List, f *task.FilenameFinish) filelist.List {
	statuses := make(map[string]filelist.Status, len(f.Summary.Outcomes))
	for _, path := range f.Summary.Order {
		outcome := f.Summary.Outcomes[path]
		if outcome.Status == filelist.StatusConverted && f.Operation == task.OpMove && outcome.NewPath != "" {
			l = l.Rekey(path, outcome.NewPath, filelist.StatusConverted)
			continue
		}
		statuses[path] = outcome.Status
	}
	return l.ApplyStatuses(statuses)
}
