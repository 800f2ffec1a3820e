package task

import (
	"testing"
	"time"

	"zhbatch/internal/filelist"
)

func TestAggregatorCountsSkipsAsFailures(t *testing.T) {
	agg := NewAggregator()
	agg.Add("a", Outcome{Status: filelist.StatusConverted})
	agg.Add("b", Outcome{Status: filelist.StatusSkippedUnchanged})
	agg.Add("c", Outcome{Status: filelist.StatusFailedRead})
	agg.Add("d", Outcome{Status: filelist.StatusConverted, NewPath: "D"})

	s := agg.Summary()
	if s.Success != 2 || s.Fail != 2 || s.Processed != 4 {
		t.Fatalf("unexpected totals %+v", s)
	}
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	if total != s.Processed {
		t.Fatalf("counts sum %d != processed %d", total, s.Processed)
	}
	if len(s.Order) != 4 || s.Order[1] != "b" || s.Outcomes["d"].NewPath != "D" {
		t.Fatalf("unexpected order/outcomes %v %v", s.Order, s.Outcomes)
	}
}

func TestHandleStateTransitions(t *testing.T) {
	h := newHandle("id", KindContent, []string{"a"}, time.Time{})
	h.Resume()
	if h.State() != StateRunning {
		t.Fatalf("resume while running should be a no-op, got %s", h.State())
	}
	h.Pause()
	h.Pause()
	if h.State() != StatePaused {
		t.Fatalf("expected paused, got %s", h.State())
	}
	released := make(chan bool)
	go func() { released <- h.proceed() }()
	h.Resume()
	if ok := <-released; !ok {
		t.Fatal("resume should release the worker to continue")
	}
	h.Cancel()
	if h.proceed() {
		t.Fatal("proceed must stop after cancel")
	}
	if cancelled := h.finish(false); !cancelled || h.State() != StateCancelled {
		t.Fatalf("expected cancelled finish, got %s", h.State())
	}
}

func TestLateCancelDoesNotUndoCompletedRun(t *testing.T) {
	h := newHandle("id", KindContent, []string{"a"}, time.Time{})
	if !h.proceed() {
		t.Fatal("expected to proceed")
	}
	// Cancel lands after the last item but before the worker finalizes.
	h.Cancel()
	if cancelled := h.finish(true); cancelled {
		t.Fatal("a run that processed every item must not report cancelled")
	}
	if h.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", h.State())
	}
}

func TestParseOperation(t *testing.T) {
	if op, err := ParseOperation(" MOVE "); err != nil || op != OpMove {
		t.Fatalf("unexpected %q (%v)", op, err)
	}
	if _, err := ParseOperation("write"); err == nil {
		t.Fatal("expected error")
	}
}
