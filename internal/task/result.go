package task

import (
	"time"

	"zhbatch/internal/filelist"
)

// Outcome is the terminal result of one item. NewPath is set when a
// filename task moved or copied the item.
type Outcome struct {
	Status  filelist.Status
	NewPath string
	Err     error
}

// Progress is reported after each processed item.
type Progress struct {
	TaskID string
	Kind   Kind
	Index  int // 1-based
	Total  int
	Path   string
	Status filelist.Status
}

// PreviewPair holds the original and converted text of the first converted
// item of a content task.
type PreviewPair struct {
	Path      string
	Original  string
	Converted string
}

// Summary aggregates the outcomes of a task.
type Summary struct {
	Success   int
	Fail      int
	Processed int
	Counts    map[filelist.Status]int
	Statuses  map[string]filelist.Status
	Outcomes  map[string]Outcome
	// Order lists processed paths in processing order.
	Order []string
}

// ContentFinish is delivered once when a content task ends.
type ContentFinish struct {
	TaskID       string
	Summary      Summary
	OutputFolder string
	Preview      *PreviewPair
	Cancelled    bool
	StartedAt    time.Time
	FinishedAt   time.Time
	Params       ContentParams
}

// FilenameFinish is delivered once when a filename task ends.
type FilenameFinish struct {
	TaskID       string
	Summary      Summary
	OutputFolder string
	Cancelled    bool
	Operation    Operation
	StartedAt    time.Time
	FinishedAt   time.Time
	Params       FilenameParams
}

// Results returns the per-item outcome map.
func (f FilenameFinish) Results() map[string]Outcome {
	return f.Summary.Outcomes
}

// Aggregator collects item outcomes. It is used from a single goroutine.
type Aggregator struct {
	summary Summary
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{summary: Summary{
		Counts:   make(map[filelist.Status]int),
		Statuses: make(map[string]filelist.Status),
		Outcomes: make(map[string]Outcome),
	}}
}

// Add records the outcome for path. Converted items count as success and
// every other terminal status, skips included, counts as failure. Paths are
// unique within a task.
func (a *Aggregator) Add(path string, outcome Outcome) {
	s := &a.summary
	s.Order = append(s.Order, path)
	s.Outcomes[path] = outcome
	s.Statuses[path] = outcome.Status
	s.Counts[outcome.Status]++
	s.Processed++
	if outcome.Status == filelist.StatusConverted {
		s.Success++
	} else {
		s.Fail++
	}
}

// Summary returns the collected totals.
func (a *Aggregator) Summary() Summary {
	return a.summary
}
