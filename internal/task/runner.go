package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/fileutil"
	"zhbatch/internal/logging"
	"zhbatch/internal/preflight"
	"zhbatch/internal/textenc"
)

// ContentCallbacks receive content task events. Either may be nil.
type ContentCallbacks struct {
	OnProgress func(Progress)
	OnFinish   func(ContentFinish)
}

// FilenameCallbacks receive filename task events. Either may be nil.
type FilenameCallbacks struct {
	OnProgress func(Progress)
	OnFinish   func(FilenameFinish)
}

// Runner starts content and filename tasks.
//
// Concurrent tasks over the same items interleave unpredictably; callers
// run at most one task per list. Two tasks writing to the same output folder
// are prevented by the folder lock when a lock directory is configured.
type Runner struct {
	dispatcher *convert.Dispatcher
	fs         fileutil.FS
	resolver   *textenc.Resolver
	classifier convert.Classifier
	lockDir    string
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithFS replaces the filesystem used by processors.
func WithFS(fs fileutil.FS) Option {
	return func(r *Runner) { r.fs = fs }
}

// WithResolver replaces the encoding resolver.
func WithResolver(resolver *textenc.Resolver) Option {
	return func(r *Runner) { r.resolver = resolver }
}

// WithClassifier replaces the classifier used when language detection is on.
func WithClassifier(c convert.Classifier) Option {
	return func(r *Runner) { r.classifier = c }
}

// WithLockDir enables per-output-folder locking with lock files under dir.
func WithLockDir(dir string) Option {
	return func(r *Runner) { r.lockDir = dir }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner returns a runner converting text with dispatcher.
func NewRunner(dispatcher *convert.Dispatcher, opts ...Option) *Runner {
	r := &Runner{
		dispatcher: dispatcher,
		fs:         fileutil.OS{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = textenc.NewResolver(nil)
	}
	r.logger = logging.NewComponentLogger(r.logger, "runner")
	return r
}

func (r *Runner) classifierFor(detect bool) convert.Classifier {
	if detect && r.classifier != nil {
		return r.classifier
	}
	return convert.ClassifierFor(detect)
}

// StartContent validates params and starts converting the contents of items.
func (r *Runner) StartContent(ctx context.Context, items []string, params ContentParams, cb ContentCallbacks) (*Handle, error) {
	params = params.snapshot()
	if !params.Direction.Valid() {
		return nil, precondition("invalid direction %q", params.Direction)
	}
	if params.Encoding != "" && params.Encoding != textenc.Auto {
		if _, err := textenc.Lookup(params.Encoding); err != nil {
			return nil, preconditionErr(err)
		}
	}
	lock, err := r.checkCommon(items, params.OutputFolder)
	if err != nil {
		return nil, err
	}

	proc := &contentProcessor{
		params:     params,
		fs:         r.fs,
		resolver:   r.resolver,
		dispatcher: r.dispatcher,
		classifier: r.classifierFor(params.DetectLanguage),
	}
	h := newHandle(r.newID(), KindContent, cloneStrings(items), r.now())
	logger := r.taskLogger(ctx, h)
	proc.logger = logger
	logger.Info("content task started",
		logging.Int("items", len(items)),
		logging.String("direction", string(params.Direction)),
		logging.String("output_folder", params.OutputFolder),
		logging.String("encoding", params.Encoding),
		logging.Int("vocabulary_terms", params.Vocabulary.Len()),
	)

	r.launch(ctx, h, lock, logger, proc.process, cb.OnProgress, func(summary Summary, cancelled bool) {
		finish := ContentFinish{
			TaskID:       h.id,
			Summary:      summary,
			OutputFolder: params.OutputFolder,
			Preview:      proc.preview,
			Cancelled:    cancelled,
			StartedAt:    h.createdAt,
			FinishedAt:   r.now(),
			Params:       params,
		}
		if cb.OnFinish != nil {
			cb.OnFinish(finish)
		}
	})
	return h, nil
}

// StartFilename validates params and starts converting the names of items.
func (r *Runner) StartFilename(ctx context.Context, items []string, params FilenameParams, cb FilenameCallbacks) (*Handle, error) {
	params = params.snapshot()
	if !params.Direction.Valid() {
		return nil, precondition("invalid direction %q", params.Direction)
	}
	if _, err := ParseOperation(string(params.Operation)); err != nil {
		return nil, preconditionErr(err)
	}
	lock, err := r.checkCommon(items, params.OutputFolder)
	if err != nil {
		return nil, err
	}

	proc := &filenameProcessor{
		params:     params,
		fs:         r.fs,
		dispatcher: r.dispatcher,
		classifier: r.classifierFor(params.DetectLanguage),
	}
	h := newHandle(r.newID(), KindFilename, cloneStrings(items), r.now())
	logger := r.taskLogger(ctx, h)
	proc.logger = logger
	logger.Info("filename task started",
		logging.Int("items", len(items)),
		logging.String("direction", string(params.Direction)),
		logging.String("operation", string(params.Operation)),
		logging.String("output_folder", params.OutputFolder),
	)

	r.launch(ctx, h, lock, logger, proc.process, cb.OnProgress, func(summary Summary, cancelled bool) {
		finish := FilenameFinish{
			TaskID:       h.id,
			Summary:      summary,
			OutputFolder: params.OutputFolder,
			Cancelled:    cancelled,
			Operation:    params.Operation,
			StartedAt:    h.createdAt,
			FinishedAt:   r.now(),
			Params:       params,
		}
		if cb.OnFinish != nil {
			cb.OnFinish(finish)
		}
	})
	return h, nil
}

func (r *Runner) checkCommon(items []string, outputFolder string) (*fileutil.FolderLock, error) {
	if len(items) == 0 {
		return nil, precondition("no items to process")
	}
	if outputFolder == "" {
		return nil, precondition("output folder not set")
	}
	seen := make(map[string]struct{}, len(items))
	for _, p := range items {
		if _, dup := seen[p]; dup {
			return nil, precondition("duplicate item %q", p)
		}
		seen[p] = struct{}{}
	}
	if result := preflight.CheckDirectoryAccess("Output folder", outputFolder); !result.Passed {
		return nil, precondition("output folder unusable: %s", result.Detail)
	}
	if r.lockDir == "" {
		return nil, nil
	}
	lock, err := fileutil.TryLockFolder(r.lockDir, outputFolder)
	if err != nil {
		return nil, preconditionErr(err)
	}
	return lock, nil
}

func (r *Runner) taskLogger(ctx context.Context, h *Handle) *slog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithContext(logging.WithTask(ctx, h.id, string(h.kind)), r.logger)
}

func (r *Runner) launch(
	ctx context.Context,
	h *Handle,
	lock *fileutil.FolderLock,
	logger *slog.Logger,
	process func(int, string) Outcome,
	onProgress func(Progress),
	onFinish func(Summary, bool),
) {
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		select {
		case <-ctx.Done():
			h.Cancel()
		case <-h.done:
		}
	}()

	go func() {
		agg := NewAggregator()
		completed := false
		defer close(h.done)
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("release output lock", logging.Error(err))
			}
			cancelled := h.finish(completed)
			summary := agg.Summary()
			logger.Info("task finished",
				logging.Bool("cancelled", cancelled),
				logging.Int("success", summary.Success),
				logging.Int("fail", summary.Fail),
				logging.Int("processed", summary.Processed),
				logging.Duration("elapsed", r.now().Sub(h.createdAt)),
			)
			deliverFinish(logger, func() { onFinish(summary, cancelled) })
		}()
		completed = r.loop(h, logger, agg, process, onProgress)
	}()
}

// loop reports whether every item was processed.
func (r *Runner) loop(h *Handle, logger *slog.Logger, agg *Aggregator, process func(int, string) Outcome, onProgress func(Progress)) (completed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorWithContext(logger, "task loop aborted", "task_panic",
				logging.String("panic", fmt.Sprint(rec)),
				logging.String("stack", string(debug.Stack())))
		}
	}()

	total := len(h.items)
	for i, path := range h.items {
		if !h.proceed() {
			logger.Info("task cancelled before item", logging.Int(logging.FieldItemIndex, i+1))
			return false
		}
		index := i + 1
		outcome := processItem(logger, process, index, path)
		agg.Add(path, outcome)
		logger.Debug("item processed",
			logging.Int(logging.FieldItemIndex, index),
			logging.String(logging.FieldItemPath, path),
			logging.String(logging.FieldStatus, string(outcome.Status)),
		)
		if onProgress != nil {
			onProgress(Progress{
				TaskID: h.id,
				Kind:   h.kind,
				Index:  index,
				Total:  total,
				Path:   path,
				Status: outcome.Status,
			})
		}
	}
	return true
}

// processItem turns a panicking processor into a failed item.
func processItem(logger *slog.Logger, process func(int, string) Outcome, index int, path string) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.WarnWithContext(logger, "item processing panicked", "item_panic",
				logging.Int(logging.FieldItemIndex, index),
				logging.String(logging.FieldItemPath, path),
				logging.String("panic", fmt.Sprint(rec)))
			outcome = Outcome{Status: filelist.StatusFailedException, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	return process(index, path)
}

func deliverFinish(logger *slog.Logger, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorWithContext(logger, "finish callback panicked", "task_finish_panic",
				logging.String("panic", fmt.Sprint(rec)))
		}
	}()
	fn()
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
