package msvc

import (
	"path"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * PathRoot
 ***************************************/

type PathRoot byte

const (
	PATHROOT_UNKNOWN PathRoot = iota
	PATHROOT_PROJECT_FOLDER
	PATHROOT_BUILD_TARGET_FOLDER
)

func (x PathRoot) String() string {
	switch x {
	case PATHROOT_UNKNOWN:
		return "unknown"
	case PATHROOT_PROJECT_FOLDER:
		return "projectFolder"
	case PATHROOT_BUILD_TARGET_FOLDER:
		return "buildTargetFolder"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * RelativePath
 ***************************************/

// Path stored with forward slashes, anchored to one of the export roots.
// Absolute and macro paths ("$(...)" or "${...}") are opaque and never rebased.
type RelativePath struct {
	path string
	root PathRoot
}

func MakeRelativePath(p string, root PathRoot) RelativePath {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if len(p) > 0 && !IsAbsolutePath(p) {
		p = path.Clean(p)
		if p == "." {
			p = ""
		}
	}
	return RelativePath{path: p, root: root}
}

// Expresses an absolute file relative to an absolute folder
func MakeRelativePathFrom(file, folder string, root PathRoot) RelativePath {
	return MakeRelativePath(relativePathFrom(toSlash(file), toSlash(folder)), root)
}

func (x RelativePath) Root() PathRoot   { return x.root }
func (x RelativePath) IsEmpty() bool    { return len(x.path) == 0 }
func (x RelativePath) IsAbsolute() bool { return IsAbsolutePath(x.path) }
func (x RelativePath) String() string   { return x.path }

func (x RelativePath) FileName() string {
	if i := strings.LastIndexByte(x.path, '/'); i >= 0 {
		return x.path[i+1:]
	}
	return x.path
}
func (x RelativePath) HasFileExtension(extensions ...string) bool {
	name := x.FileName()
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	for _, ext := range extensions {
		if strings.EqualFold(name[i+1:], strings.TrimPrefix(ext, ".")) {
			return true
		}
	}
	return false
}

func (x RelativePath) ChildFile(name string) RelativePath {
	if x.IsEmpty() {
		return MakeRelativePath(name, x.root)
	}
	return MakeRelativePath(x.path+"/"+name, x.root)
}

// Resolves the path against its parent folder, then expresses it from the new parent folder
func (x RelativePath) Rebased(originalParent, newParent string, newRoot PathRoot) RelativePath {
	if x.IsAbsolute() {
		return RelativePath{path: x.path, root: newRoot}
	}
	absolute := path.Join(toSlash(originalParent), x.path)
	return MakeRelativePath(relativePathFrom(absolute, toSlash(newParent)), newRoot)
}

func (x RelativePath) ToWindowsStyle() string {
	return strings.ReplaceAll(x.path, "/", "\\")
}
/***************************************
 * PathRebaser
 ***************************************/

// Knows where both export roots live on disk
type PathRebaser struct {
	ProjectFolder     string
	BuildTargetFolder string
}

func (x PathRebaser) Folder(root PathRoot) string {
	switch root {
	case PATHROOT_PROJECT_FOLDER:
		return x.ProjectFolder
	case PATHROOT_BUILD_TARGET_FOLDER:
		return x.BuildTargetFolder
	default:
		base.UnexpectedValue(root)
		return ""
	}
}

// The path must already be anchored to the source root
func (x PathRebaser) Rebase(p RelativePath, from, to PathRoot) RelativePath {
	if p.root != from {
		base.Panicf("rebase: path %q is anchored to %v, not %v", p.path, p.root, from)
	}
	if from == to {
		return p
	}
	return p.Rebased(x.Folder(from), x.Folder(to), to)
}

func (x PathRebaser) ToBuildTarget(p RelativePath) RelativePath {
	return x.Rebase(p, PATHROOT_PROJECT_FOLDER, PATHROOT_BUILD_TARGET_FOLDER)
}
func (x PathRebaser) ToProject(p RelativePath) RelativePath {
	return x.Rebase(p, PATHROOT_BUILD_TARGET_FOLDER, PATHROOT_PROJECT_FOLDER)
}

// Project-relative string to a build-target-relative Windows path
func (x PathRebaser) RebaseProjectFile(p string) string {
	return x.ToBuildTarget(MakeRelativePath(p, PATHROOT_PROJECT_FOLDER)).ToWindowsStyle()
}

/***************************************
 * Path helpers
 ***************************************/

// Rooted paths, drive letters, home folders and build macros are all considered absolute
func IsAbsolutePath(p string) bool {
	if len(p) == 0 {
		return false
	}
	switch p[0] {
	case '/', '\\', '~', '$':
		return true
	}
	if len(p) >= 2 && p[1] == ':' && isAsciiLetter(p[0]) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(p), "smb:")
}

func isAsciiLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func splitPathElements(p string) []string {
	return base.RemoveUnless(func(s string) bool { return len(s) > 0 }, strings.Split(p, "/")...)
}

// Both inputs are absolute slash-separated paths, the result climbs with ".." when needed
func relativePathFrom(target, folder string) string {
	target = path.Clean(target)
	folder = path.Clean(folder)

	targetVolume, targetElts := splitVolume(target)
	folderVolume, folderElts := splitVolume(folder)
	if !strings.EqualFold(targetVolume, folderVolume) {
		return target
	}

	common := 0
	for common < len(targetElts) && common < len(folderElts) && targetElts[common] == folderElts[common] {
		common++
	}

	elts := make([]string, 0, len(folderElts)-common+len(targetElts)-common)
	for i := common; i < len(folderElts); i++ {
		elts = append(elts, "..")
	}
	elts = append(elts, targetElts[common:]...)
	return strings.Join(elts, "/")
}

func splitVolume(p string) (string, []string) {
	if len(p) >= 2 && p[1] == ':' && isAsciiLetter(p[0]) {
		return p[:2], splitPathElements(p[2:])
	}
	return "", splitPathElements(p)
}

// Quotes a path for a preprocessor define value, older toolchains escape the quotes themselves
func EscapeRebasedPath(p string, escapeQuotes bool) string {
	if escapeQuotes {
		return addEscapeChars(quoted(p))
	}
	return quoted(addEscapeChars(p))
}

func quoted(s string) string {
	return "\"" + s + "\""
}

var cStringEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\t", "\\t",
	"\r", "\\r",
	"\n", "\\n")

func addEscapeChars(s string) string {
	return cStringEscaper.Replace(s)
}
