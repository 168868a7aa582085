package io

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * Output manifest
 ***************************************/

type ManifestEntry struct {
	Path string      `json:"path"`
	Hash ContentHash `json:"hash"`
	Size int         `json:"size"`
}

// Records every file produced by one export, paths are relative to the output folder
type Manifest struct {
	Exporter string          `json:"exporter"`
	Entries  []ManifestEntry `json:"entries"`
}

func (x *Manifest) Add(path string, content []byte) {
	entry := ManifestEntry{Path: path, Hash: MakeContentHash(content), Size: len(content)}
	if i, ok := x.indexOf(path); ok {
		x.Entries[i] = entry
		return
	}
	x.Entries = append(x.Entries, entry)
	sort.Slice(x.Entries, func(i, j int) bool { return x.Entries[i].Path < x.Entries[j].Path })
}
func (x *Manifest) Find(path string) (ManifestEntry, bool) {
	if i, ok := x.indexOf(path); ok {
		return x.Entries[i], true
	}
	return ManifestEntry{}, false
}
func (x *Manifest) indexOf(path string) (int, bool) {
	i := sort.Search(len(x.Entries), func(i int) bool { return x.Entries[i].Path >= path })
	return i, i < len(x.Entries) && x.Entries[i].Path == path
}

// Compressed payload stays deterministic, so saving an unchanged manifest is a no-op
func (x *Manifest) Bytes(format base.CompressionFormat) ([]byte, error) {
	buf := bytes.Buffer{}
	w, err := base.NewCompressedWriter(&buf,
		base.CompressionOptionFormat(format),
		base.CompressionOptionLevel(base.COMPRESSION_LEVEL_BEST))
	if err != nil {
		return nil, err
	}
	if err = base.JsonSerialize(x, w); err != nil {
		w.Close()
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func SaveManifest(filename string, manifest *Manifest, format base.CompressionFormat) (bool, error) {
	content, err := manifest.Bytes(format)
	if err != nil {
		return false, fmt.Errorf("failed to encode manifest %q: %w", filename, err)
	}
	return WriteIfDifferent(filename, content)
}

const (
	lz4FrameMagic  uint32 = 0x184D2204
	zstdFrameMagic uint32 = 0xFD2FB528
)

func detectCompressionFormat(content []byte) (base.CompressionFormat, error) {
	if len(content) >= 4 {
		switch binary.LittleEndian.Uint32(content) {
		case lz4FrameMagic:
			return base.COMPRESSION_FORMAT_LZ4, nil
		case zstdFrameMagic:
			return base.COMPRESSION_FORMAT_ZSTD, nil
		}
	}
	return base.COMPRESSION_FORMAT_LZ4, fmt.Errorf("unknown compression format")
}

func LoadManifest(filename string) (*Manifest, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	format, err := detectCompressionFormat(content)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", filename, err)
	}

	r, err := base.NewCompressedReader(bytes.NewReader(content), base.CompressionOptionFormat(format))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	manifest := &Manifest{}
	if err = base.JsonDeserialize(manifest, r); err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", filename, err)
	}
	return manifest, nil
}
