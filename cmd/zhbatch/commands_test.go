package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConvertCommandWritesOutputAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeInput(t, "简体.txt", "简体中文")
	env.writeInput(t, "notes.md", "简体")

	out := env.mustRun(t, "convert", "--items", env.inputDir)
	if !strings.Contains(out, "Success: 1  Failed: 1") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if got := readFile(t, filepath.Join(env.cfg.Paths.OutputDir, "簡體.txt")); got != "簡體中文" {
		t.Fatalf("unexpected converted content %q", got)
	}

	history := env.mustRun(t, "history")
	if !strings.Contains(history, "content") || !strings.Contains(history, "s2t") {
		t.Fatalf("expected run in history:\n%s", history)
	}
}

func TestConvertCommandPatternFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeInput(t, "a.txt", "书")
	env.writeInput(t, "b.txt", "书")

	env.mustRun(t, "convert", "--pattern", "第{index:02d}章", env.inputDir)
	for _, name := range []string{"第01章.txt", "第02章.txt"} {
		if got := readFile(t, filepath.Join(env.cfg.Paths.OutputDir, name)); got != "書" {
			t.Fatalf("unexpected content of %s: %q", name, got)
		}
	}
}

func TestRenameCommandCopiesWithConvertedName(t *testing.T) {
	env := setupCLITestEnv(t)
	src := env.writeInput(t, "简体.txt", "x")

	out := env.mustRun(t, "rename", "--operation", "copy", src)
	if !strings.Contains(out, "Success: 1") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "簡體.txt")); err != nil {
		t.Fatalf("expected copied file: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy must keep the source: %v", err)
	}
}

func TestTextCommandAppliesVocabulary(t *testing.T) {
	env := setupCLITestEnv(t)
	if got := strings.TrimSpace(env.mustRun(t, "text", "软件")); got != "軟件" {
		t.Fatalf("unexpected dictionary conversion %q", got)
	}
	if got := strings.TrimSpace(env.mustRun(t, "text", "--reverse", "軟件")); got != "软件" {
		t.Fatalf("expected --reverse to convert t2s, got %q", got)
	}

	env.mustRun(t, "vocab", "add", "软件", "軟體")
	if got := strings.TrimSpace(env.mustRun(t, "text", "软件")); got != "軟體" {
		t.Fatalf("expected vocabulary override, got %q", got)
	}
	if got := strings.TrimSpace(env.mustRun(t, "text", "--no-vocab", "软件")); got != "軟件" {
		t.Fatalf("expected plain conversion with --no-vocab, got %q", got)
	}

	out, err := env.run(t, "軟體\n", "text", "-d", "t2s")
	if err != nil {
		t.Fatalf("text from stdin: %v", err)
	}
	if got := strings.TrimSpace(out); got != "软件" {
		t.Fatalf("expected reverse vocabulary applied, got %q", got)
	}
}

func TestConvertEncodingHelpListsNames(t *testing.T) {
	env := setupCLITestEnv(t)
	out := env.mustRun(t, "convert", "--help")
	for _, name := range []string{"gb18030", "big5", "utf-16le"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected --encoding help to list %s:\n%s", name, out)
		}
	}
}

func TestVocabListAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	if out := env.mustRun(t, "vocab", "list"); !strings.Contains(out, "Vocabulary is empty") {
		t.Fatalf("expected empty vocabulary, got %q", out)
	}
	env.mustRun(t, "vocab", "add", "内存", "記憶體")
	if out := env.mustRun(t, "vocab", "list"); !strings.Contains(out, "記憶體") {
		t.Fatalf("expected term listed:\n%s", out)
	}
	env.mustRun(t, "vocab", "remove", "内存")
	if _, err := env.run(t, "", "vocab", "remove", "内存"); err == nil {
		t.Fatal("expected error removing a missing term")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "new", "config.toml")
	env.mustRun(t, "config", "init", "--path", target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}
	if _, err := env.run(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
}

func TestShellEditsListsWithUndo(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeInput(t, "a.txt", "简体")
	env.writeInput(t, "b.txt", "简体")

	script := strings.Join([]string{
		"add c " + env.inputDir,
		"uncheck c 2",
		"prune c",
		"ls c",
		"undo c",
		"text 简体",
		"convert s2t",
		"bogus c",
		"quit",
	}, "\n")
	out, err := env.run(t, script, "shell")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	if !strings.Contains(out, "Added 2 items") {
		t.Fatalf("expected add confirmation:\n%s", out)
	}
	if strings.Count(out, "b.txt") != 1 {
		t.Fatalf("expected b.txt listed once after undo restores it:\n%s", out)
	}
	if !strings.Contains(out, "output: 簡體") {
		t.Fatalf("expected converted text:\n%s", out)
	}
	if !strings.Contains(out, `error: unknown command "bogus"`) {
		t.Fatalf("expected error for unknown command:\n%s", out)
	}
}

func TestSplitArgs(t *testing.T) {
	got := splitArgs(`add c "my file.txt"  other ""`)
	want := []string{"add", "c", "my file.txt", "other", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitArgs = %q, want %q", got, want)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", filepath.Join("sub", "c.txt")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	missing := filepath.Join(dir, "missing.txt")

	flat, err := expandInputs([]string{dir, missing}, false)
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), missing}
	if !reflect.DeepEqual(flat, want) {
		t.Fatalf("flat = %v, want %v", flat, want)
	}

	deep, err := expandInputs([]string{dir}, true)
	if err != nil {
		t.Fatalf("expandInputs recursive: %v", err)
	}
	if len(deep) != 3 || deep[2] != filepath.Join(dir, "sub", "c.txt") {
		t.Fatalf("unexpected recursive result %v", deep)
	}

	overlap, err := expandInputs([]string{filepath.Join(dir, "b.txt"), dir}, false)
	if err != nil {
		t.Fatalf("expandInputs overlap: %v", err)
	}
	want = []string{filepath.Join(dir, "b.txt"), filepath.Join(dir, "a.txt")}
	if !reflect.DeepEqual(overlap, want) {
		t.Fatalf("overlap = %v, want %v", overlap, want)
	}
}
