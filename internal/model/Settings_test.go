package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsCoercion(t *testing.T) {
	settings := Settings{
		"fromJson":   float64(3),
		"fromToml":   int64(2),
		"fromYaml":   4,
		"fractional": 2.5,
		"text":       " 7 ",
		"flag":       "yes",
		"malformed":  []any{"a"},
	}

	for key, want := range map[string]int{"fromJson": 3, "fromToml": 2, "fromYaml": 4, "text": 7} {
		got, ok := settings.GetInt(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := settings.GetInt("fractional")
	assert.False(t, ok)
	assert.Equal(t, 4, settings.Int("missing", 4))

	flag, ok := settings.GetBool("flag")
	assert.True(t, ok)
	assert.True(t, flag)
	assert.True(t, settings.Bool("fromToml", false))
	assert.False(t, settings.Bool("malformed", false))

	_, ok = settings.GetString("malformed")
	assert.False(t, ok)
	assert.Equal(t, "3", settings.String("fromJson"))
	assert.Equal(t, "7", settings.TrimmedString("text"))
}

func TestSettingsStringList(t *testing.T) {
	settings := Settings{"headerPath": "../../JuceLibraryCode\n  ;C:\\SDKs\\ASIO\r\n\n"}
	assert.Equal(t, []string{"../../JuceLibraryCode", "C:\\SDKs\\ASIO"}, settings.StringList("headerPath"))
	assert.Empty(t, settings.StringList("libraryPath"))
}

func TestSettingsRemove(t *testing.T) {
	settings := Settings{"a": 1}
	assert.True(t, settings.Remove("a"))
	assert.False(t, settings.Remove("a"))
	assert.False(t, settings.Has("a"))
}
