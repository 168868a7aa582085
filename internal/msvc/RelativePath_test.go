package msvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRebaser = PathRebaser{
	ProjectFolder:     "/work/Demo",
	BuildTargetFolder: "/work/Demo/Builds/VisualStudio2015",
}

func TestMakeRelativePathNormalizes(t *testing.T) {
	p := MakeRelativePath(" Source\\Plugin\\..\\Main.cpp ", PATHROOT_PROJECT_FOLDER)
	assert.Equal(t, "Source/Main.cpp", p.String())
	assert.Equal(t, PATHROOT_PROJECT_FOLDER, p.Root())
	assert.Equal(t, "Main.cpp", p.FileName())
	assert.True(t, p.HasFileExtension("h", ".CPP"))
	assert.Equal(t, `Source\Main.cpp`, p.ToWindowsStyle())

	assert.True(t, MakeRelativePath(".", PATHROOT_PROJECT_FOLDER).IsEmpty())
}

func TestRebaseToBuildTarget(t *testing.T) {
	p := testRebaser.ToBuildTarget(MakeRelativePath("Source/Main.cpp", PATHROOT_PROJECT_FOLDER))
	assert.Equal(t, PATHROOT_BUILD_TARGET_FOLDER, p.Root())
	assert.Equal(t, "../../Source/Main.cpp", p.String())
	assert.Equal(t, `..\..\Source\Main.cpp`, p.ToWindowsStyle())
}

func TestRebaseRoundTrip(t *testing.T) {
	rebasers := []PathRebaser{
		testRebaser,
		{ProjectFolder: "/work/Demo", BuildTargetFolder: "/tmp/out/vs"},
		{ProjectFolder: "C:/Projects/Demo", BuildTargetFolder: "C:/Projects/Demo/Builds/VS2019"},
	}
	for _, rebaser := range rebasers {
		for _, file := range []string{"Source/Main.cpp", "Main.cpp", "../Shared/juce/modules", "a/b/c/d.h"} {
			original := MakeRelativePath(file, PATHROOT_PROJECT_FOLDER)
			rebased := rebaser.ToBuildTarget(original)
			assert.Equal(t, original, rebaser.ToProject(rebased), "%v -> %v", original, rebased)
		}
	}
}

func TestRebaseOutsideOfProject(t *testing.T) {
	rebaser := PathRebaser{ProjectFolder: "/work/Demo", BuildTargetFolder: "/tmp/out"}
	p := rebaser.ToBuildTarget(MakeRelativePath("Source/Main.cpp", PATHROOT_PROJECT_FOLDER))
	assert.Equal(t, "../../work/Demo/Source/Main.cpp", p.String())
}

func TestRebaseKeepsOpaquePaths(t *testing.T) {
	for _, it := range []string{"C:/SDKs/VST3", "/opt/sdk", "$(SolutionDir)Bin", "~/SDKs/AAX"} {
		p := testRebaser.ToBuildTarget(MakeRelativePath(it, PATHROOT_PROJECT_FOLDER))
		assert.Equal(t, it, p.String())
		assert.Equal(t, PATHROOT_BUILD_TARGET_FOLDER, p.Root())
	}
}

func TestRebaseAssertsSourceRoot(t *testing.T) {
	p := MakeRelativePath("Main.cpp", PATHROOT_BUILD_TARGET_FOLDER)
	assert.Panics(t, func() {
		testRebaser.ToBuildTarget(p)
	})
}

func TestIsAbsolutePath(t *testing.T) {
	assert.True(t, IsAbsolutePath("/usr/include"))
	assert.True(t, IsAbsolutePath(`\\server\share`))
	assert.True(t, IsAbsolutePath("c:\\sdk"))
	assert.True(t, IsAbsolutePath("$(VCTargetsPath)"))
	assert.True(t, IsAbsolutePath("smb://nas/sdk"))
	assert.False(t, IsAbsolutePath("Source/Main.cpp"))
	assert.False(t, IsAbsolutePath(""))
}

func TestEscapeRebasedPath(t *testing.T) {
	assert.Equal(t, `"..\\SDK\\a \"b\""`, EscapeRebasedPath(`..\SDK\a "b"`, false))
	assert.Equal(t, `\"..\\SDK\"`, EscapeRebasedPath(`..\SDK`, true))
}

func TestMakeRelativePathFrom(t *testing.T) {
	p := MakeRelativePathFrom("/work/Demo/Builds/icon.ico", "/work/Demo/Source", PATHROOT_UNKNOWN)
	assert.Equal(t, "../Builds/icon.ico", p.String())
}
