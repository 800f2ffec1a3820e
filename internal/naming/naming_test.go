package naming_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"zhbatch/internal/naming"
)

func existsIn(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestResolveAppendsCounter(t *testing.T) {
	dir := "/out"
	if got := naming.Resolve(existsIn(), dir, "章节", ".txt"); got != "/out/章节.txt" {
		t.Fatalf("free slot should be used as-is, got %q", got)
	}

	taken := []string{"/out/a.txt"}
	for n := 1; n <= 5; n++ {
		got := naming.Resolve(existsIn(taken...), dir, "a", ".txt")
		want := filepath.Join(dir, "a("+strconv.Itoa(n)+").txt")
		if got != want {
			t.Fatalf("with %d collisions got %q want %q", n, got, want)
		}
		taken = append(taken, got)
	}
}

func TestResolveAgainstFilesystem(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc", "doc(1)"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	exists := func(p string) bool {
		_, err := os.Lstat(p)
		return err == nil
	}
	if got := naming.Resolve(exists, dir, "doc", ""); got != filepath.Join(dir, "doc(2)") {
		t.Fatalf("unexpected directory slot %q", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		path  string
		isDir bool
		base  string
		ext   string
	}{
		{"/a/小说.txt", false, "小说", ".txt"},
		{"/a/archive.tar.gz", false, "archive.tar", ".gz"},
		{"/a/folder.v2", true, "folder.v2", ""},
		{"/a/.profile", false, ".profile", ""},
		{"/a/README", false, "README", ""},
	}
	for _, tc := range tests {
		base, ext := naming.Split(tc.path, tc.isDir)
		if base != tc.base || ext != tc.ext {
			t.Errorf("Split(%q, %v) = %q, %q", tc.path, tc.isDir, base, ext)
		}
	}
}

func TestFormatPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		wantErr bool
	}{
		{"{original_name}_{index}", "书_7", false},
		{"{index:03d}-{original_name}", "007-书", false},
		{"{index:3}", "  7", false},
		{"{{literal}}", "{literal}", false},
		{"{title}", "", true},
		{"{original_name", "", true},
		{"oops}", "", true},
		{"{index:xd}", "", true},
	}
	for _, tc := range tests {
		got, err := naming.FormatPattern(tc.pattern, "书", 7)
		if tc.wantErr {
			if !errors.Is(err, naming.ErrNamingFormat) {
				t.Errorf("FormatPattern(%q) expected ErrNamingFormat, got %q, %v", tc.pattern, got, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("FormatPattern(%q) = %q, %v; want %q", tc.pattern, got, err, tc.want)
		}
	}
}

func TestOutputBaseFallsBack(t *testing.T) {
	if got, err := naming.OutputBase("", "原名", 1); got != "原名" || err != nil {
		t.Fatalf("empty pattern should keep name, got %q (%v)", got, err)
	}
	got, err := naming.OutputBase("{missing}", "原名", 1)
	if got != "原名_naming_error" || !errors.Is(err, naming.ErrNamingFormat) {
		t.Fatalf("unexpected fallback %q (%v)", got, err)
	}
	if got, _ := naming.OutputBase("{original_name}/{index}", "a", 2); got != "a-2" {
		t.Fatalf("expected separators sanitized, got %q", got)
	}
}
