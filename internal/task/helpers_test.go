package task_test

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"zhbatch/internal/convert"
	"zhbatch/internal/fileutil"
	"zhbatch/internal/task"
	"zhbatch/internal/textenc"
)

var (
	s2tReplacer = strings.NewReplacer("简", "簡", "体", "體", "书", "書", "录", "錄", "汉", "漢")
	t2sReplacer = strings.NewReplacer("簡", "简", "體", "体", "書", "书", "錄", "录", "漢", "汉")
)

func testDispatcher() *convert.Dispatcher {
	return convert.NewDispatcher(convert.Providers{
		convert.S2T: convert.ProviderFunc(func(s string) (string, error) { return s2tReplacer.Replace(s), nil }),
		convert.T2S: convert.ProviderFunc(func(s string) (string, error) { return t2sReplacer.Replace(s), nil }),
	})
}

type noDetector struct{}

func (noDetector) Detect([]byte) (string, int, error) { return "", 0, errors.New("no guess") }

// rejectLatin treats text without any rune above ASCII as non-Chinese.
type rejectLatin struct{}

func (rejectLatin) IsEligible(text string) bool {
	for _, r := range text {
		if r > 0x7f {
			return true
		}
	}
	return text == ""
}

var errInjected = errors.New("injected i/o failure")

// recordingFS wraps the OS filesystem, counting mutations. It can panic on a
// chosen read, fail a write to a chosen destination, or fail a move or copy
// of a chosen source.
type recordingFS struct {
	fileutil.OS
	mu           sync.Mutex
	mutations    []string
	panicOn      string
	failWrite    string
	failTransfer string
}

func (f *recordingFS) record(op, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations = append(f.mutations, op+" "+path)
}

func (f *recordingFS) Mutations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mutations...)
}

func (f *recordingFS) ReadPrefix(path string, n int) ([]byte, error) {
	if f.panicOn != "" && path == f.panicOn {
		panic("injected failure")
	}
	return f.OS.ReadPrefix(path, n)
}

func (f *recordingFS) WriteFile(path string, data []byte) error {
	f.record("write", path)
	if f.failWrite != "" && path == f.failWrite {
		return errInjected
	}
	return f.OS.WriteFile(path, data)
}

func (f *recordingFS) Move(src, dst string) error {
	f.record("move", dst)
	if f.failTransfer != "" && src == f.failTransfer {
		return errInjected
	}
	return f.OS.Move(src, dst)
}

func (f *recordingFS) Copy(src, dst string) error {
	f.record("copy", dst)
	if f.failTransfer != "" && src == f.failTransfer {
		return errInjected
	}
	return f.OS.Copy(src, dst)
}

func newTestRunner(t *testing.T, opts ...task.Option) *task.Runner {
	t.Helper()
	base := []task.Option{
		task.WithResolver(textenc.NewResolver(noDetector{})),
		task.WithClassifier(rejectLatin{}),
		task.WithLockDir(filepath.Join(t.TempDir(), "locks")),
	}
	return task.NewRunner(testDispatcher(), append(base, opts...)...)
}

// progressLog collects progress events from the task goroutine.
type progressLog struct {
	mu     sync.Mutex
	events []task.Progress
}

func (p *progressLog) add(ev task.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *progressLog) indices() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Index
	}
	return out
}

func waitDone(t *testing.T, h *task.Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("task did not finish")
	}
}

func seq(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
