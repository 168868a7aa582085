package msvc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * Windows icon container
 ***************************************/

const (
	ICON_HEADER_SIZE          = 6
	ICON_DIRECTORY_ENTRY_SIZE = 16
	ICON_BITMAP_HEADER_SIZE   = 40
	// images at least this large are stored as PNG
	ICON_PNG_THRESHOLD        = 256
	// pixels with this alpha or less are fully transparent
	ICON_ALPHA_THRESHOLD      = 5
)

type IconDirectoryEntry struct {
	Width  int
	Height int
	Size   uint32
	Offset uint32
}

// Encodes a multi-resolution .ico: every header entry points into the data blob following the directory
func EncodeIcon(images ...image.Image) ([]byte, error) {
	dataBlockStart := ICON_HEADER_SIZE + len(images)*ICON_DIRECTORY_ENTRY_SIZE

	out := bytes.Buffer{}
	writeUint16(&out, 0) // reserved
	writeUint16(&out, 1) // .ico tag
	writeUint16(&out, uint16(len(images)))

	dataBlock := bytes.Buffer{}
	for _, img := range images {
		oldDataSize := dataBlock.Len()

		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()

		if w >= ICON_PNG_THRESHOLD || h >= ICON_PNG_THRESHOLD {
			if err := png.Encode(&dataBlock, img); err != nil {
				return nil, fmt.Errorf("failed to encode %dx%d icon: %w", w, h, err)
			}
		} else {
			writeBitmapImage(&dataBlock, img)
		}

		out.WriteByte(byte(w))
		out.WriteByte(byte(h))
		out.WriteByte(0)     // palette
		out.WriteByte(0)     // reserved
		writeUint16(&out, 1) // colour planes
		writeUint16(&out, 32)
		writeUint32(&out, uint32(dataBlock.Len()-oldDataSize))
		writeUint32(&out, uint32(dataBlockStart+oldDataSize))
	}

	base.Assert(func() bool { return out.Len() == dataBlockStart })
	out.Write(dataBlock.Bytes())
	return out.Bytes(), nil
}

// One bit per pixel, rows padded to 32 bits
func iconMaskStride(w int) int {
	return ((w + 31) / 32) * 4
}

// 32bpp BGRA bottom-up bitmap with doubled height, followed by the transparency mask
func writeBitmapImage(out *bytes.Buffer, img image.Image) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	maskStride := iconMaskStride(w)

	writeUint32(out, ICON_BITMAP_HEADER_SIZE)
	writeUint32(out, uint32(w))
	writeUint32(out, uint32(h*2))
	writeUint16(out, 1)  // planes
	writeUint16(out, 32) // bits
	writeUint32(out, 0)  // compression
	writeUint32(out, uint32(h*w*4+h*maskStride))
	writeUint32(out, 0) // x pixels per meter
	writeUint32(out, 0) // y pixels per meter
	writeUint32(out, 0) // colours used
	writeUint32(out, 0) // important colours

	pixel := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
	}

	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			if c := pixel(x, y); c.A <= ICON_ALPHA_THRESHOLD {
				writeUint32(out, 0)
			} else {
				out.Write([]byte{c.B, c.G, c.R, c.A})
			}
		}
	}

	row := make([]byte, maskStride)
	for y := h - 1; y >= 0; y-- {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < w; x++ {
			if pixel(x, y).A <= ICON_ALPHA_THRESHOLD {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		out.Write(row)
	}
}

func ParseIconDirectory(data []byte) ([]IconDirectoryEntry, error) {
	if len(data) < ICON_HEADER_SIZE {
		return nil, fmt.Errorf("icon header truncated: %d bytes", len(data))
	}
	if binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, fmt.Errorf("not an icon container")
	}

	count := int(binary.LittleEndian.Uint16(data[4:]))
	if len(data) < ICON_HEADER_SIZE+count*ICON_DIRECTORY_ENTRY_SIZE {
		return nil, fmt.Errorf("icon directory truncated: %d entries in %d bytes", count, len(data))
	}

	entries := make([]IconDirectoryEntry, count)
	for i := range entries {
		entry := data[ICON_HEADER_SIZE+i*ICON_DIRECTORY_ENTRY_SIZE:]
		entries[i] = IconDirectoryEntry{
			Width:  iconDimension(entry[0]),
			Height: iconDimension(entry[1]),
			Size:   binary.LittleEndian.Uint32(entry[8:]),
			Offset: binary.LittleEndian.Uint32(entry[12:]),
		}
	}
	return entries, nil
}

// 0 stands for 256 pixels
func iconDimension(b byte) int {
	if b == 0 {
		return 256
	}
	return int(b)
}

func writeUint16(out *bytes.Buffer, value uint16) {
	var raw [2]byte
	binary.LittleEndian.PutUint16(raw[:], value)
	out.Write(raw[:])
}
func writeUint32(out *bytes.Buffer, value uint32) {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], value)
	out.Write(raw[:])
}
