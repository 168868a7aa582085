package hal

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * Windows SDK discovery
 ***************************************/

type WindowsSDK struct {
	MajorVer         string
	Version          string
	RootDir          string
	ResourceCompiler string
}

func newWindowsSDK(majorVer, rootDir, version string) WindowsSDK {
	return WindowsSDK{
		MajorVer:         majorVer,
		Version:          version,
		RootDir:          rootDir,
		ResourceCompiler: filepath.Join(rootDir, "bin", version, "x64", "rc.exe"),
	}
}

func (x *WindowsSDK) HasResourceCompiler() bool {
	info, err := os.Stat(x.ResourceCompiler)
	return err == nil && !info.IsDir()
}

type windowsSDKInstall struct {
	MajorVer   string
	SearchGlob *regexp.Regexp
}

var windowsSDKInstalls = []windowsSDKInstall{
	{MajorVer: "10", SearchGlob: regexp.MustCompile(`^10\..*`)},
	{MajorVer: "8.1", SearchGlob: regexp.MustCompile(`^8\..*`)},
}

// Lists the SDKs found under <kitsRoot>/<major>/Lib, newest first
func FindWindowsSDKs(kitsRoot string) (result []WindowsSDK, err error) {
	if len(kitsRoot) == 0 {
		return nil, nil
	}

	for _, install := range windowsSDKInstalls {
		rootDir := filepath.Join(kitsRoot, install.MajorVer)
		entries, err := os.ReadDir(filepath.Join(rootDir, "Lib"))
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, err
		}

		var versions []string
		for _, it := range entries {
			if it.IsDir() && install.SearchGlob.MatchString(it.Name()) {
				versions = append(versions, it.Name())
			}
		}
		sort.Slice(versions, func(i, j int) bool { return compareVersions(versions[i], versions[j]) > 0 })

		for _, version := range versions {
			base.LogDebug(LogHAL, "found WindowsSDK@%v %v in %q", install.MajorVer, version, rootDir)
			result = append(result, newWindowsSDK(install.MajorVer, rootDir, version))
		}
	}
	return result, nil
}

func LatestWindowsSDK(kitsRoot string) (WindowsSDK, bool) {
	if sdks, err := FindWindowsSDKs(kitsRoot); err == nil && len(sdks) > 0 {
		return sdks[0], true
	}
	return WindowsSDK{}, false
}

// Dotted versions compare numerically segment by segment, missing segments count as zero
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
