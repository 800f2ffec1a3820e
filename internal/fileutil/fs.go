package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FS is the set of filesystem primitives item processing needs.
type FS interface {
	ReadPrefix(path string, n int) ([]byte, error)
	ReadFile(path string) ([]byte, error)
	// WriteFile creates path with data and fails if it already exists.
	WriteFile(path string, data []byte) error
	Exists(path string) bool
	IsDir(path string) (bool, error)
	Move(src, dst string) error
	Copy(src, dst string) error
}

// OS implements FS on the local filesystem.
type OS struct{}

var _ FS = OS{}

// ReadPrefix returns up to n leading bytes of path.
func (OS) ReadPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// ReadFile returns the full contents of path.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile creates path exclusively with mode 0644.
func (OS) WriteFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Exists reports whether anything, including a dangling symlink, is at path.
func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is a directory.
func (OS) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Move renames src to dst with a cross-device fallback.
func (OS) Move(src, dst string) error {
	return MoveTree(src, dst)
}

// Copy duplicates a file or directory tree preserving metadata.
func (OS) Copy(src, dst string) error {
	return CopyTree(src, dst)
}
