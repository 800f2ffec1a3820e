package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"zhbatch/internal/config"
)

// expandInputs turns arguments into item paths. Directories contribute
// their regular files, sorted by name; recursive descends into
// subdirectories. Missing paths are kept so the task reports them. A path
// named more than once is kept at its first position.
func expandInputs(args []string, recursive bool) ([]string, error) {
	var out []string
	for _, arg := range args {
		path, err := expandPathArg(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				out = append(out, path)
				continue
			}
			return nil, fmt.Errorf("inspect %q: %w", path, err)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		files, err := listDir(path, recursive)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return dedupePaths(out), nil
}

func dedupePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func listDir(root string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func expandPathArg(arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", arg, err)
	}
	return path, nil
}
