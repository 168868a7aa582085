package io

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/danjacques/gofslock/fslock"
	"github.com/djherbis/times"
	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/zeebo/xxh3"
)

var LogUFS = base.NewLogCategory("UFS")

/***************************************
 * Content hashing
 ***************************************/

type ContentHash uint64

func MakeContentHash(content []byte) ContentHash {
	return ContentHash(xxh3.Hash(content))
}
func (x ContentHash) String() string {
	return fmt.Sprintf("%016x", uint64(x))
}
func (x ContentHash) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *ContentHash) UnmarshalText(data []byte) error {
	value, err := strconv.ParseUint(string(data), 16, 64)
	if err != nil {
		return fmt.Errorf("content hash: invalid value %q: %w", data, err)
	}
	*x = ContentHash(value)
	return nil
}

func FileContentHash(filename string) (ContentHash, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return 0, err
	}
	return MakeContentHash(content), nil
}

/***************************************
 * Write-if-different
 ***************************************/

// Returns false without touching the file when its content is already identical
func IsContentDifferent(filename string, content []byte) bool {
	existing, err := os.ReadFile(filename)
	if err != nil {
		return true
	}
	if len(existing) != len(content) || MakeContentHash(existing) != MakeContentHash(content) {
		return true
	}
	return !bytes.Equal(existing, content)
}

func WriteIfDifferent(filename string, content []byte) (written bool, err error) {
	if !IsContentDifferent(filename, content) {
		base.LogVerbose(LogUFS, "skip writing %q: content is up-to-date", filename)
		return false, nil
	}

	if err = SafeCreate(filename, content); err != nil {
		return false, fmt.Errorf("failed to write %q: %w", filename, err)
	}

	base.LogVerbose(LogUFS, "wrote %d bytes to %q", len(content), filename)
	return true, nil
}

const DefaultFileMode os.FileMode = 0o644

// Writes to a temporary file first, then renames it over the destination.
// The destination keeps its permissions, new files get DefaultFileMode.
func SafeCreate(filename string, content []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}

	mode := DefaultFileMode
	if info, statErr := os.Stat(filename); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err = tmp.Chmod(mode); err == nil {
		_, err = tmp.Write(content)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filename)
	}
	if err != nil {
		os.Remove(tmp.Name())
	}
	return err
}

func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func ModificationTime(filename string) (time.Time, error) {
	ts, err := times.Stat(filename)
	if err != nil {
		return time.Time{}, err
	}
	return ts.ModTime(), nil
}

/***************************************
 * Directory lock
 ***************************************/

var ErrDirectoryLocked = errors.New("directory is already locked by another process")

type DirectoryLock struct {
	path   string
	handle fslock.Handle
}

func LockDirectory(dir string) (*DirectoryLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ".vsexport.lock")
	handle, err := fslock.Lock(path)
	switch err {
	case nil:
		base.LogDebug(LogUFS, "locked %q", path)
		return &DirectoryLock{path: path, handle: handle}, nil
	case fslock.ErrLockHeld:
		return nil, fmt.Errorf("%w: %q", ErrDirectoryLocked, dir)
	default:
		return nil, err
	}
}

func (x *DirectoryLock) Unlock() error {
	if err := x.handle.Unlock(); err != nil {
		return err
	}
	base.LogDebug(LogUFS, "unlocked %q", x.path)
	return os.Remove(x.path)
}
