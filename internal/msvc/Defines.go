package msvc

import (
	"strings"
)

/***************************************
 * Defines
 ***************************************/

type Define struct {
	Key   string
	Value string
}

func (x Define) String() string {
	if len(x.Value) > 0 {
		return x.Key + "=" + x.Value
	}
	return x.Key
}

// Ordered preprocessor definitions: setting an existing key replaces its value
// but keeps the position where the key was first seen.
type Defines []Define

func NewDefines(keys ...string) (result Defines) {
	for _, key := range keys {
		result.Set(key, "")
	}
	return
}

func (x Defines) Len() int { return len(x) }

func (x Defines) IndexOf(key string) (int, bool) {
	for i, it := range x {
		if it.Key == key {
			return i, true
		}
	}
	return -1, false
}
func (x Defines) Get(key string) (string, bool) {
	if i, ok := x.IndexOf(key); ok {
		return x[i].Value, true
	}
	return "", false
}
func (x Defines) Keys() []string {
	result := make([]string, len(x))
	for i, it := range x {
		result[i] = it.Key
	}
	return result
}

func (x *Defines) Set(key, value string) *Defines {
	if i, ok := x.IndexOf(key); ok {
		(*x)[i].Value = value
	} else {
		*x = append(*x, Define{Key: key, Value: value})
	}
	return x
}
func (x *Defines) Remove(key string) bool {
	if i, ok := x.IndexOf(key); ok {
		*x = append((*x)[:i], (*x)[i+1:]...)
		return true
	}
	return false
}

// Last writer wins on collision
func (x *Defines) Merge(others ...Defines) *Defines {
	for _, defines := range others {
		for _, it := range defines {
			x.Set(it.Key, it.Value)
		}
	}
	return x
}

func (x Defines) Clone() Defines {
	return append(Defines(nil), x...)
}

func (x Defines) Join(delim string) string {
	sb := strings.Builder{}
	for i, it := range x {
		if i > 0 {
			sb.WriteString(delim)
		}
		sb.WriteString(it.String())
	}
	return sb.String()
}
func (x Defines) String() string {
	return x.Join(";")
}

// Parses "A=1 B C = 2,D=\"quoted value\"" style definitions: whitespace separates entries,
// spaces may surround '=' and a comma also ends a value. "\ " and "\," escape a separator
// in an unquoted value.
func ParsePreprocessorDefs(in string) (result Defines) {
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
	skipSpaces := func(i int) int {
		for i < len(in) && isSpace(in[i]) {
			i++
		}
		return i
	}

	for i := skipSpaces(0); i < len(in); i = skipSpaces(i) {
		start := i
		for i < len(in) && in[i] != '=' && !isSpace(in[i]) {
			i++
		}
		key := in[start:i]

		value := strings.Builder{}
		if i = skipSpaces(i); i < len(in) && in[i] == '=' {
			for i++; i < len(in) && in[i] == ' '; i++ {
			}
			i = scanDefineValue(in, i, &value, isSpace)
		}

		if len(key) > 0 {
			result.Set(key, value.String())
		}
	}
	return
}

func scanDefineValue(in string, i int, value *strings.Builder, isSpace func(byte) bool) int {
	inQuotes := false
	for ; i < len(in); i++ {
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in) && inQuotes:
			value.WriteByte(c)
			value.WriteByte(in[i+1])
			i++
		case c == '\\' && i+1 < len(in) && (in[i+1] == ' ' || in[i+1] == ','):
			value.WriteByte(in[i+1])
			i++
		case c == '"':
			inQuotes = !inQuotes
			value.WriteByte(c)
		case inQuotes:
			value.WriteByte(c)
		case c == ',':
			return i + 1
		case isSpace(c):
			return i
		default:
			value.WriteByte(c)
		}
	}
	return i
}
