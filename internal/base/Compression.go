package base

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var LogCompression = NewLogCategory("Compression")

type CompressedReader interface {
	io.ReadCloser
}
type CompressedWriter interface {
	Flush() error
	io.WriteCloser
}

type CompressionOptions struct {
	Format CompressionFormat
	Level  CompressionLevel
}

type CompressionOptionFunc func(*CompressionOptions)

func CompressionOptionFormat(fmt CompressionFormat) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		co.Format = fmt
	}
}
func CompressionOptionLevel(lvl CompressionLevel) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		co.Level = lvl
	}
}

func NewCompressionOptions(options ...CompressionOptionFunc) (result CompressionOptions) {
	result.Format = COMPRESSION_FORMAT_LZ4
	result.Level = COMPRESSION_LEVEL_FAST

	for _, opt := range options {
		opt(&result)
	}
	return
}

func NewCompressedReader(reader io.Reader, options ...CompressionOptionFunc) (CompressedReader, error) {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_LZ4:
		return NewLz4Reader(reader), nil
	case COMPRESSION_FORMAT_ZSTD:
		return NewZStdReader(reader)
	default:
		return nil, MakeUnexpectedValueError(co.Format, co.Format)
	}
}

func NewCompressedWriter(writer io.Writer, options ...CompressionOptionFunc) (CompressedWriter, error) {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_LZ4:
		return NewLz4Writer(writer, co.Level), nil
	case COMPRESSION_FORMAT_ZSTD:
		return NewZStdWriter(writer, co.Level)
	default:
		return nil, MakeUnexpectedValueError(co.Format, co.Format)
	}
}

/***************************************
 * LZ4 Compression
 ***************************************/

type lz4Reader struct {
	*lz4.Reader
}

func (x lz4Reader) Close() error { return nil }

func applyLz4Options(lz interface {
	Apply(...lz4.Option) error
}, options ...lz4.Option) {
	options = append(options, lz4.ConcurrencyOption(1))
	err := lz.Apply(options...)
	LogPanicIfFailed(LogCompression, err)
}

func NewLz4Reader(reader io.Reader) CompressedReader {
	r := lz4.NewReader(reader)
	applyLz4Options(r)
	return lz4Reader{r}
}
func NewLz4Writer(writer io.Writer, lvl CompressionLevel) CompressedWriter {
	w := lz4.NewWriter(writer)
	switch lvl {
	case COMPRESSION_LEVEL_FAST:
		applyLz4Options(w, lz4.CompressionLevelOption(lz4.Fast))
	case COMPRESSION_LEVEL_BALANCED:
		applyLz4Options(w, lz4.CompressionLevelOption(lz4.Level3))
	case COMPRESSION_LEVEL_BEST:
		applyLz4Options(w, lz4.CompressionLevelOption(lz4.Level7))
	}
	return w
}

/***************************************
 * ZSTD Compression
 ***************************************/

type zstdReader struct {
	*zstd.Decoder
}

func (x zstdReader) Close() error {
	x.Decoder.Close()
	return nil
}

func getZStdCompressionLevel(lvl CompressionLevel) zstd.EncoderLevel {
	switch lvl {
	case COMPRESSION_LEVEL_FAST:
		return zstd.SpeedFastest
	case COMPRESSION_LEVEL_BEST:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

func NewZStdReader(reader io.Reader) (CompressedReader, error) {
	r, err := zstd.NewReader(reader, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return zstdReader{r}, nil
}
func NewZStdWriter(writer io.Writer, lvl CompressionLevel) (CompressedWriter, error) {
	w, err := zstd.NewWriter(writer,
		zstd.WithEncoderLevel(getZStdCompressionLevel(lvl)),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return w, nil
}

/***************************************
 * CompressionFormat
 ***************************************/

type CompressionFormat int32

const (
	COMPRESSION_FORMAT_LZ4 CompressionFormat = iota
	COMPRESSION_FORMAT_ZSTD
)

func GetCompressionFormats() []CompressionFormat {
	return []CompressionFormat{
		COMPRESSION_FORMAT_LZ4,
		COMPRESSION_FORMAT_ZSTD,
	}
}
func (x CompressionFormat) String() string {
	switch x {
	case COMPRESSION_FORMAT_LZ4:
		return "LZ4"
	case COMPRESSION_FORMAT_ZSTD:
		return "ZSTD"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *CompressionFormat) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case COMPRESSION_FORMAT_LZ4.String():
		*x = COMPRESSION_FORMAT_LZ4
	case COMPRESSION_FORMAT_ZSTD.String():
		*x = COMPRESSION_FORMAT_ZSTD
	default:
		err = MakeUnexpectedValueError(x, in)
	}
	return err
}
func (x CompressionFormat) MarshalText() ([]byte, error) {
	return UnsafeBytesFromString(x.String()), nil
}
func (x *CompressionFormat) UnmarshalText(data []byte) error {
	return x.Set(UnsafeStringFromBytes(data))
}

/***************************************
 * CompressionLevel
 ***************************************/

type CompressionLevel int32

const (
	COMPRESSION_LEVEL_INHERIT CompressionLevel = iota
	COMPRESSION_LEVEL_FAST
	COMPRESSION_LEVEL_BALANCED
	COMPRESSION_LEVEL_BEST
)

func (x CompressionLevel) String() string {
	switch x {
	case COMPRESSION_LEVEL_INHERIT:
		return "INHERIT"
	case COMPRESSION_LEVEL_FAST:
		return "FAST"
	case COMPRESSION_LEVEL_BALANCED:
		return "BALANCED"
	case COMPRESSION_LEVEL_BEST:
		return "BEST"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *CompressionLevel) Set(in string) (err error) {
	switch strings.ToUpper(in) {
	case COMPRESSION_LEVEL_INHERIT.String():
		*x = COMPRESSION_LEVEL_INHERIT
	case COMPRESSION_LEVEL_FAST.String():
		*x = COMPRESSION_LEVEL_FAST
	case COMPRESSION_LEVEL_BALANCED.String():
		*x = COMPRESSION_LEVEL_BALANCED
	case COMPRESSION_LEVEL_BEST.String():
		*x = COMPRESSION_LEVEL_BEST
	default:
		err = MakeUnexpectedValueError(x, in)
	}
	return err
}
