package msvc

import (
	"fmt"
	"path/filepath"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
)

const MANIFEST_EXTENSION = ".vsexport"

/***************************************
 * Generation
 ***************************************/

// Builds every document in memory: resources first, then targets in parallel, the solution last
func (x *Exporter) Generate() ([]GeneratedFile, error) {
	resources, err := x.EmitResources()
	if err != nil {
		return nil, fmt.Errorf("%v: failed to emit resources: %w", x.Version, err)
	}

	documents, err := base.ParallelMap(func(t *Target) ([]GeneratedFile, error) {
		vcxproj, err := t.GenerateVcxproj(resources)
		if err != nil {
			return nil, fmt.Errorf("%v: target %q: %w", x.Version, t.Name(), err)
		}
		filters, err := t.GenerateFilters()
		if err != nil {
			return nil, fmt.Errorf("%v: target %q: %w", x.Version, t.Name(), err)
		}
		return []GeneratedFile{vcxproj, filters}, nil
	}, x.Targets...)
	if err != nil {
		return nil, err
	}

	files := resources.Files()
	for _, it := range documents {
		files = append(files, it...)
	}

	sln, err := x.GenerateSolution()
	if err != nil {
		return nil, fmt.Errorf("%v: failed to generate solution: %w", x.Version, err)
	}
	return append(files, sln), nil
}

/***************************************
 * Create
 ***************************************/

type CreateOptions struct {
	WriteManifest       bool
	ManifestCompression base.CompressionFormat
	DryRun              bool
}

type CreateResult struct {
	Written   []string
	Unchanged []string
}

func (x *Exporter) ManifestFile() string {
	return filepath.Join(x.TargetFolder, x.ProjectFilenameRoot()+MANIFEST_EXTENSION)
}

// Path of a generated file inside the manifest, relative to the build folder
func (x *Exporter) ManifestPath(filename string) string {
	if rel, err := filepath.Rel(x.TargetFolder, filename); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(filename)
}

// Inverse of ManifestPath
func (x *Exporter) ManifestFilename(path string) string {
	return filepath.Join(x.TargetFolder, filepath.FromSlash(path))
}

func (x *Exporter) MakeManifest(files []GeneratedFile) *io.Manifest {
	manifest := &io.Manifest{Exporter: x.Version.String()}
	for _, it := range files {
		manifest.Add(x.ManifestPath(it.Path), it.Content)
	}
	return manifest
}

// Nothing reaches the disk unless every document was generated, files are then written
// sequentially and only when their content changed
func (x *Exporter) Create(options CreateOptions) (result CreateResult, err error) {
	files, err := x.Generate()
	if err != nil {
		return result, err
	}

	if options.DryRun {
		for _, it := range files {
			if io.IsContentDifferent(it.Path, it.Content) {
				result.Written = append(result.Written, it.Path)
			} else {
				result.Unchanged = append(result.Unchanged, it.Path)
			}
		}
		return result, nil
	}

	lock, err := io.LockDirectory(x.TargetFolder)
	if err != nil {
		return result, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); err == nil {
			err = unlockErr
		}
	}()

	for _, it := range files {
		written, err := io.WriteIfDifferent(it.Path, it.Content)
		if err != nil {
			return result, err
		}
		if written {
			base.LogInfo(LogMsvc, "%v: updated %q", x.Version, it.FileName())
			result.Written = append(result.Written, it.Path)
		} else {
			result.Unchanged = append(result.Unchanged, it.Path)
		}
	}

	if options.WriteManifest {
		if _, err := io.SaveManifest(x.ManifestFile(), x.MakeManifest(files), options.ManifestCompression); err != nil {
			return result, err
		}
	}

	base.LogClaim(LogMsvc, "%v: %d files written, %d up-to-date in %q",
		x.Version, len(result.Written), len(result.Unchanged), x.TargetFolder)
	return result, nil
}
