package base

import (
	"fmt"
	"strings"
	"unsafe"
)

/***************************************
 * Unsafe string <-> bytes conversions
 ***************************************/

// returned slice must not be modified
func UnsafeBytesFromString(in string) []byte {
	return unsafe.Slice(unsafe.StringData(in), len(in))
}
func UnsafeStringFromBytes(raw []byte) string {
	return unsafe.String(unsafe.SliceData(raw), len(raw))
}

/***************************************
 * Stringer helpers
 ***************************************/

type StringerString struct {
	Value string
}

func (x StringerString) String() string {
	return x.Value
}

func MakeStringer(fn func() string) fmt.Stringer {
	return lambdaStringer(fn)
}

type lambdaStringer func() string

func (x lambdaStringer) String() string {
	return x()
}

func JoinString[T fmt.Stringer](delim string, it ...T) string {
	sb := strings.Builder{}
	for i, x := range it {
		if i > 0 {
			sb.WriteString(delim)
		}
		sb.WriteString(x.String())
	}
	return sb.String()
}

// Split on any rune of separators, trimming each part and dropping empty ones
func SplitAndTrim(in string, separators string) (result []string) {
	for _, it := range strings.FieldsFunc(in, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	}) {
		if it = strings.TrimSpace(it); len(it) > 0 {
			result = append(result, it)
		}
	}
	return
}
