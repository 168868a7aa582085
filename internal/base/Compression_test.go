package base

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestCompressionRoundtrip(t *testing.T) {
	input := strings.Repeat("Microsoft Visual Studio Solution File\r\n", 64)
	for _, format := range GetCompressionFormats() {
		buf := bytes.Buffer{}
		w, err := NewCompressedWriter(&buf, CompressionOptionFormat(format), CompressionOptionLevel(COMPRESSION_LEVEL_BEST))
		if err != nil {
			t.Fatalf("%v: NewCompressedWriter failed: %v", format, err)
		}
		if _, err = io.WriteString(w, input); err != nil {
			t.Fatalf("%v: write failed: %v", format, err)
		}
		if err = w.Close(); err != nil {
			t.Fatalf("%v: close failed: %v", format, err)
		}
		if buf.Len() >= len(input) {
			t.Errorf("%v: compression did not shrink input (%d >= %d)", format, buf.Len(), len(input))
		}

		r, err := NewCompressedReader(&buf, CompressionOptionFormat(format))
		if err != nil {
			t.Fatalf("%v: NewCompressedReader failed: %v", format, err)
		}
		output, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("%v: read failed: %v", format, err)
		}
		r.Close()
		if string(output) != input {
			t.Errorf("%v: roundtrip failed", format)
		}
	}
}

func TestCompressionFormatSet(t *testing.T) {
	var format CompressionFormat
	if err := format.Set("zstd"); err != nil || format != COMPRESSION_FORMAT_ZSTD {
		t.Errorf("Set failed: got %v, %v", format, err)
	}
	if err := format.Set("gzip"); err == nil {
		t.Errorf("Set should reject unknown formats")
	}
}
