package io

import (
	"path/filepath"
	"testing"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestSaveLoad(t *testing.T) {
	for _, format := range base.GetCompressionFormats() {
		filename := filepath.Join(t.TempDir(), "Demo.vsexport")

		manifest := &Manifest{Exporter: "VS2015"}
		manifest.Add("Demo.sln", []byte("solution"))
		manifest.Add("Demo (App).vcxproj", []byte("project"))
		manifest.Add("Demo.sln", []byte("solution v2"))

		assert.Equal(t, []string{"Demo (App).vcxproj", "Demo.sln"},
			base.Map(func(e ManifestEntry) string { return e.Path }, manifest.Entries...))

		written, err := SaveManifest(filename, manifest, format)
		require.NoError(t, err)
		assert.True(t, written)

		written, err = SaveManifest(filename, manifest, format)
		require.NoError(t, err)
		assert.False(t, written, "%v: saving the same manifest twice should be a no-op", format)

		loaded, err := LoadManifest(filename)
		require.NoError(t, err)
		assert.Equal(t, manifest, loaded)

		entry, ok := loaded.Find("Demo.sln")
		require.True(t, ok)
		assert.Equal(t, MakeContentHash([]byte("solution v2")), entry.Hash)
		assert.Equal(t, len("solution v2"), entry.Size)

		_, ok = loaded.Find("icon.ico")
		assert.False(t, ok)
	}
}

func TestLoadManifestRejectsGarbage(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "garbage.vsexport")
	require.NoError(t, SafeCreate(filename, []byte("not a manifest")))

	_, err := LoadManifest(filename)
	assert.Error(t, err)
}
