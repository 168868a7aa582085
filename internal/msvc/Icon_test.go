package msvc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSolidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeIconDirectory(t *testing.T) {
	opaque := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	images := []image.Image{
		makeSolidImage(16, 16, opaque),
		makeSolidImage(32, 32, opaque),
		makeSolidImage(256, 256, opaque),
	}

	data, err := EncodeIcon(images...)
	require.NoError(t, err)

	entries, err := ParseIconDirectory(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	offset := uint32(ICON_HEADER_SIZE + len(images)*ICON_DIRECTORY_ENTRY_SIZE)
	for i, it := range entries {
		assert.Equal(t, images[i].Bounds().Dx(), it.Width)
		assert.Equal(t, images[i].Bounds().Dy(), it.Height)
		assert.Equal(t, offset, it.Offset, "entry %d", i)
		offset += it.Size
	}
	assert.Equal(t, uint32(len(data)), offset)

	assert.Equal(t, uint32(40+16*16*4+16*4), entries[0].Size)
	assert.Equal(t, uint32(40+32*32*4+32*4), entries[1].Size)

	bitmap := data[entries[0].Offset:]
	assert.Equal(t, uint32(ICON_BITMAP_HEADER_SIZE), binary.LittleEndian.Uint32(bitmap))
	assert.Equal(t, uint32(32), binary.LittleEndian.Uint32(bitmap[8:]))
	assert.Equal(t, []byte{50, 100, 200, 255}, bitmap[ICON_BITMAP_HEADER_SIZE:ICON_BITMAP_HEADER_SIZE+4])

	large := data[entries[2].Offset : entries[2].Offset+entries[2].Size]
	decoded, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)
	assert.Equal(t, 256, decoded.Bounds().Dx())
}

func TestEncodeIconTransparencyMask(t *testing.T) {
	data, err := EncodeIcon(makeSolidImage(16, 16, color.NRGBA{R: 255, A: 3}))
	require.NoError(t, err)

	entries, err := ParseIconDirectory(data)
	require.NoError(t, err)

	bitmap := data[entries[0].Offset : entries[0].Offset+entries[0].Size]
	pixels := bitmap[ICON_BITMAP_HEADER_SIZE : ICON_BITMAP_HEADER_SIZE+16*16*4]
	assert.Equal(t, make([]byte, len(pixels)), pixels)

	mask := bitmap[ICON_BITMAP_HEADER_SIZE+16*16*4:]
	require.Len(t, mask, 16*4)
	assert.Equal(t, []byte{0xFF, 0xFF, 0, 0}, mask[:4])
}

func TestParseIconDirectoryErrors(t *testing.T) {
	_, err := ParseIconDirectory([]byte{0, 0})
	assert.Error(t, err)

	_, err = ParseIconDirectory([]byte{0, 0, 2, 0, 0, 0})
	assert.Error(t, err)

	_, err = ParseIconDirectory([]byte{0, 0, 1, 0, 3, 0})
	assert.Error(t, err)
}

func TestIconMaskStride(t *testing.T) {
	assert.Equal(t, 4, iconMaskStride(16))
	assert.Equal(t, 4, iconMaskStride(32))
	assert.Equal(t, 8, iconMaskStride(48))
}
