package msvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A key defined again is updated in place, only new keys are appended
func TestDefinesMergeKeepsFirstPosition(t *testing.T) {
	global := NewDefines("A", "WIN32")
	module := ParsePreprocessorDefs("A=1 B")

	global.Merge(module)
	assert.Equal(t, "A=1;WIN32;B", global.String())

	ordered := ParsePreprocessorDefs("A=1 B")
	ordered.Merge(NewDefines("WIN32"))
	assert.Equal(t, "A=1;B;WIN32", ordered.String())
}

func TestDefinesMergeLastWriterWins(t *testing.T) {
	defines := ParsePreprocessorDefs("X=1 Y=2")
	defines.Merge(ParsePreprocessorDefs("X=3"), ParsePreprocessorDefs("X=4 Z"))

	value, ok := defines.Get("X")
	assert.True(t, ok)
	assert.Equal(t, "4", value)
	assert.Equal(t, []string{"X", "Y", "Z"}, defines.Keys())
}

func TestDefinesSetAndRemove(t *testing.T) {
	defines := NewDefines("A", "B", "C")
	defines.Set("B", "2")
	assert.Equal(t, "A;B=2;C", defines.Join(";"))

	assert.True(t, defines.Remove("A"))
	assert.False(t, defines.Remove("A"))
	assert.Equal(t, "B=2 C", defines.Join(" "))

	clone := defines.Clone()
	clone.Set("D", "")
	assert.Equal(t, 2, defines.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestParsePreprocessorDefs(t *testing.T) {
	defines := ParsePreprocessorDefs("  NAME=\"hello world\"\r\nFLAG\tESCAPED=\"a\\\"b\"  =ignored ")

	assert.Equal(t, []string{"NAME", "FLAG", "ESCAPED"}, defines.Keys())

	value, _ := defines.Get("NAME")
	assert.Equal(t, "\"hello world\"", value)
	value, _ = defines.Get("ESCAPED")
	assert.Equal(t, "\"a\\\"b\"", value)

	index, ok := defines.IndexOf("FLAG")
	assert.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestParsePreprocessorDefsSeparators(t *testing.T) {
	assert.Equal(t, "A=1", ParsePreprocessorDefs("A = 1").String())
	assert.Equal(t, "A=1;B=2", ParsePreprocessorDefs("A=1,B=2").String())
	assert.Equal(t, "A=1;B;C=3", ParsePreprocessorDefs("A =1, B\nC= 3").String())
	assert.Equal(t, "PATH=a b,c", ParsePreprocessorDefs("PATH=a\\ b\\,c").String())
	assert.Equal(t, "LIST=\"x,y\";N=2", ParsePreprocessorDefs("LIST=\"x,y\",N=2").String())
	assert.Equal(t, "EMPTY", ParsePreprocessorDefs("EMPTY= ").String())
}
