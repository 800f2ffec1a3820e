package preflight

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/sys/unix"

	"zhbatch/internal/convert"
	"zhbatch/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckVocabulary verifies the vocabulary file parses. A missing file passes.
func CheckVocabulary(path string) Result {
	const name = "Vocabulary"
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}
	vocab, err := convert.LoadVocabulary(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d terms)", path, vocab.Len())}
}

// CheckDictionaries verifies the conversion dictionaries load.
func CheckDictionaries() Result {
	const name = "OpenCC dictionaries"
	providers, err := convert.NewOpenCC()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	out, err := convert.NewDispatcher(providers).Name("汉字", convert.S2T)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("s2t and t2s loaded (汉字 → %s)", out)}
}

// CheckClipboard reports whether clipboard access is available.
func CheckClipboard() Result {
	const name = "Clipboard"
	if !clipboard.Unsupported {
		return Result{Name: name, Passed: true, Detail: "available"}
	}
	status := deps.CheckBinaries([]deps.Requirement{deps.ClipboardHelpers()})[0]
	if status.Available {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("using %s", status.Command)}
	}
	return Result{Name: name, Detail: status.Detail}
}
