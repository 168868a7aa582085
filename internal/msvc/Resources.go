package msvc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/poppolopoppo/vsexport/internal/base"
)

const (
	ICON_FILENAME      = "icon.ico"
	RESOURCES_FILENAME = "resources.rc"
)

var IconSizes = []int{16, 32, 48, 256}

/***************************************
 * GeneratedFile
 ***************************************/

// In-memory output, written to disk only once the whole export succeeded
type GeneratedFile struct {
	Path    string
	Content []byte
}

func (x GeneratedFile) FileName() string {
	return filepath.Base(x.Path)
}

/***************************************
 * ResourceBundle
 ***************************************/

// Native resources produced for the build folder, consumed by the project documents
type ResourceBundle struct {
	Icon *GeneratedFile
	Rc   *GeneratedFile
}

func (x *ResourceBundle) HasIcon() bool   { return x.Icon != nil }
func (x *ResourceBundle) HasRcFile() bool { return x.Rc != nil }

func (x *ResourceBundle) IconFileName() string {
	if x.Icon == nil {
		return ""
	}
	return x.Icon.FileName()
}
func (x *ResourceBundle) RcFileName() string {
	if x.Rc == nil {
		return ""
	}
	return x.Rc.FileName()
}

func (x *ResourceBundle) Files() (result []GeneratedFile) {
	if x.Icon != nil {
		result = append(result, *x.Icon)
	}
	if x.Rc != nil {
		result = append(result, *x.Rc)
	}
	return
}

// Static libraries have no native resources, other projects always get a resource script
func (x *Exporter) EmitResources() (*ResourceBundle, error) {
	bundle := &ResourceBundle{}
	if !x.HasResourceFile() {
		return bundle, nil
	}

	small, big := x.LoadIconSources()

	var images []image.Image
	for _, size := range IconSizes {
		if img := BestIconForSize(small, big, size); img != nil {
			images = append(images, img)
		}
	}

	if len(images) > 0 {
		content, err := EncodeIcon(images...)
		if err != nil {
			return nil, err
		}
		bundle.Icon = &GeneratedFile{
			Path:    filepath.Join(x.TargetFolder, ICON_FILENAME),
			Content: content,
		}
	}

	bundle.Rc = &GeneratedFile{
		Path:    filepath.Join(x.TargetFolder, RESOURCES_FILENAME),
		Content: []byte(x.ResourceScript(bundle)),
	}
	return bundle, nil
}

/***************************************
 * Icon sources
 ***************************************/

// Unreadable icons are reported and ignored, the export goes on without them
func (x *Exporter) LoadIconSources() (small, big image.Image) {
	load := func(file string) image.Image {
		if len(strings.TrimSpace(file)) == 0 {
			return nil
		}
		img, err := loadImage(filepath.Join(x.Project.Folder, filepath.FromSlash(file)))
		if err != nil {
			base.LogWarning(LogMsvc, "%v: ignoring icon %q: %v", x.Version, file, err)
			return nil
		}
		return img
	}
	return load(x.Project.Icons.Small), load(x.Project.Icons.Big)
}

type decodedImageKey struct {
	Filename string
	ModTime  time.Time
	Size     int64
}

// Several exporters of the same project share the same icon sources
var decodedImages = sync.OnceValue(func() *lru.Cache[decodedImageKey, image.Image] {
	cache, err := lru.New[decodedImageKey, image.Image](16)
	base.LogPanicIfFailed(LogMsvc, err)
	return cache
})

func loadImage(filename string) (image.Image, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	key := decodedImageKey{Filename: filename, ModTime: info.ModTime(), Size: info.Size()}
	if img, ok := decodedImages().Get(key); ok {
		return img, nil
	}

	rd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	img, _, err := image.Decode(rd)
	if err != nil {
		return nil, err
	}
	decodedImages().Add(key, img)
	return img, nil
}

// Smallest source which is large enough, or nothing when no source can fill the requested size
func BestIconForSize(small, big image.Image, size int) image.Image {
	var im image.Image
	switch {
	case small != nil && big != nil:
		smallWidth, bigWidth := small.Bounds().Dx(), big.Bounds().Dx()
		switch {
		case smallWidth >= size && bigWidth >= size:
			im = base.Blend(big, small, smallWidth < bigWidth)
		case smallWidth >= size:
			im = small
		case bigWidth >= size:
			im = big
		}
	case small != nil:
		im = small
	default:
		im = big
	}

	if im == nil {
		return nil
	}
	if bounds := im.Bounds(); bounds.Dx() < size && bounds.Dy() < size {
		return nil
	}
	return RescaleImageForIcon(im, size)
}

// Square canvas with the source centred, images are reduced to fit but never enlarged
func RescaleImageForIcon(src image.Image, size int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == size && h == size {
		return src
	}

	if w > size || h > size {
		if w >= h {
			w, h = size, max(1, h*size/w)
		} else {
			w, h = max(1, w*size/h), size
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	x0, y0 := (size-w)/2, (size-h)/2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, bounds, draw.Src, nil)
	return dst
}

/***************************************
 * Resource script
 ***************************************/

const rcNewLine = "\r\n"

func (x *Exporter) ResourceScript(bundle *ResourceBundle) string {
	version := x.ProjectVersion()
	title := x.Project.Title()

	sb := strings.Builder{}
	line := func(text string) {
		sb.WriteString(text)
		sb.WriteString(rcNewLine)
	}
	value := func(name, text string) {
		if len(text) > 0 {
			line(fmt.Sprintf("      VALUE \"%s\",  \"%s\\0\"", name, addEscapeChars(text)))
		}
	}

	line("#ifdef JUCE_USER_DEFINED_RC_FILE")
	line(" #include JUCE_USER_DEFINED_RC_FILE")
	line("#else")
	line("")
	line("#undef  WIN32_LEAN_AND_MEAN")
	line("#define WIN32_LEAN_AND_MEAN")
	line("#include <windows.h>")
	line("")
	line("VS_VERSION_INFO VERSIONINFO")
	line("FILEVERSION  " + CommaSeparatedVersionNumber(version))
	line("BEGIN")
	line("  BLOCK \"StringFileInfo\"")
	line("  BEGIN")
	line("    BLOCK \"040904E4\"")
	line("    BEGIN")

	value("CompanyName", x.Project.Company)
	value("FileDescription", title)
	value("FileVersion", version)
	value("ProductName", title)
	value("ProductVersion", version)

	line("    END")
	line("  END")
	line("")
	line("  BLOCK \"VarFileInfo\"")
	line("  BEGIN")
	line("    VALUE \"Translation\", 0x409, 1252")
	line("  END")
	line("END")
	line("")
	line("#endif")

	if bundle != nil && bundle.HasIcon() {
		icon := quoted(bundle.IconFileName())
		line("")
		line("IDI_ICON1 ICON DISCARDABLE " + icon)
		sb.WriteString("IDI_ICON2 ICON DISCARDABLE " + icon)
	}
	return sb.String()
}

// Pads with zeros up to four components, longer versions are kept whole
func CommaSeparatedVersionNumber(version string) string {
	parts := base.SplitAndTrim(version, ",.")
	for len(parts) < 4 {
		parts = append(parts, "0")
	}
	return strings.Join(parts, ",")
}
