package io

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfDifferent(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "Builds", "VisualStudio2015", "resources.rc")

	written, err := WriteIfDifferent(filename, []byte("first"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.True(t, FileExists(filename))

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(filename, past, past))

	written, err = WriteIfDifferent(filename, []byte("first"))
	require.NoError(t, err)
	assert.False(t, written)

	mtime, err := ModificationTime(filename)
	require.NoError(t, err)
	assert.True(t, mtime.Equal(past), "mtime changed: %v != %v", mtime, past)

	written, err = WriteIfDifferent(filename, []byte("second"))
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	entries, err := os.ReadDir(filepath.Dir(filename))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestSafeCreatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()

	created := filepath.Join(dir, "Demo.sln")
	require.NoError(t, SafeCreate(created, []byte("sln")))
	info, err := os.Stat(created)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())

	replaced := filepath.Join(dir, "resources.rc")
	require.NoError(t, os.WriteFile(replaced, []byte("old"), 0o640))
	require.NoError(t, os.Chmod(replaced, 0o640))
	written, err := WriteIfDifferent(replaced, []byte("new"))
	require.NoError(t, err)
	assert.True(t, written)
	info, err = os.Stat(replaced)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestContentHashText(t *testing.T) {
	hash := MakeContentHash([]byte("content"))
	text, err := hash.MarshalText()
	require.NoError(t, err)
	assert.Len(t, text, 16)

	var parsed ContentHash
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, hash, parsed)
	assert.Error(t, parsed.UnmarshalText([]byte("not-hex")))
}

func TestLockDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	lock, err := LockDirectory(dir)
	require.NoError(t, err)

	_, err = LockDirectory(dir)
	assert.ErrorIs(t, err, ErrDirectoryLocked)

	require.NoError(t, lock.Unlock())

	lock, err = LockDirectory(dir)
	require.NoError(t, err)
	require.NoError(t, lock.Unlock())
}
