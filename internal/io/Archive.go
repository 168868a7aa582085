package io

import (
	"fmt"
	"strings"

	"github.com/mholt/archiver/v3"
	"github.com/poppolopoppo/vsexport/internal/base"
)

var LogArchive = base.NewLogCategory("Archive")

func newArchiver(destination string) (archiver.Archiver, error) {
	switch lower := strings.ToLower(destination); {
	case strings.HasSuffix(lower, ".zip"):
		z := archiver.NewZip()
		z.OverwriteExisting = true
		return z, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		t := archiver.NewTarGz()
		t.OverwriteExisting = true
		return t, nil
	case strings.HasSuffix(lower, ".tar.zst"):
		t := archiver.NewTarZstd()
		t.OverwriteExisting = true
		return t, nil
	case strings.HasSuffix(lower, ".tar.lz4"):
		t := archiver.NewTarLz4()
		t.OverwriteExisting = true
		return t, nil
	default:
		return nil, fmt.Errorf("archive: unsupported format for %q", destination)
	}
}

// Archive format is deduced from destination extension
func ArchiveFiles(destination string, sources ...string) error {
	writer, err := newArchiver(destination)
	if err != nil {
		return err
	}

	base.LogVerbose(LogArchive, "archiving %d files in %q", len(sources), destination)
	return writer.Archive(sources, destination)
}
