package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key/value settings as decoded from JSON, TOML or YAML: numbers may come as
// int, int64, uint64 or float64 depending on the decoder.
type Settings map[string]any

func (x Settings) Has(key string) bool {
	_, ok := x[key]
	return ok
}
func (x Settings) Get(key string) (any, bool) {
	value, ok := x[key]
	return value, ok
}

// Strings are returned verbatim, scalars are formatted, anything else is treated as absent
func (x Settings) GetString(key string) (string, bool) {
	switch value := x[key].(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(value), true
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64), true
	default:
		return "", false
	}
}
func (x Settings) String(key string) string {
	value, _ := x.GetString(key)
	return value
}
func (x Settings) TrimmedString(key string) string {
	return strings.TrimSpace(x.String(key))
}

func (x Settings) GetBool(key string) (bool, bool) {
	switch value := x[key].(type) {
	case bool:
		return value, true
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "on", "1":
			return true, true
		case "false", "no", "off", "0":
			return false, true
		}
		return false, false
	default:
		if i, ok := x.GetInt(key); ok {
			return i != 0, true
		}
		return false, false
	}
}
func (x Settings) Bool(key string, defaultValue bool) bool {
	if value, ok := x.GetBool(key); ok {
		return value
	}
	return defaultValue
}

func (x Settings) GetInt(key string) (int, bool) {
	switch value := x[key].(type) {
	case int:
		return value, true
	case int8:
		return int(value), true
	case int16:
		return int(value), true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case uint:
		return int(value), true
	case uint8:
		return int(value), true
	case uint16:
		return int(value), true
	case uint32:
		return int(value), true
	case uint64:
		return int(value), true
	case float32:
		if f := float64(value); f == math.Trunc(f) {
			return int(f), true
		}
	case float64:
		if value == math.Trunc(value) {
			return int(value), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func (x Settings) Int(key string, defaultValue int) int {
	if value, ok := x.GetInt(key); ok {
		return value
	}
	return defaultValue
}

// Splits a multi-line (or semicolon separated) setting, dropping blanks
func (x Settings) StringList(key string) (result []string) {
	for _, line := range strings.FieldsFunc(x.String(key), func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';'
	}) {
		if line = strings.TrimSpace(line); len(line) > 0 {
			result = append(result, line)
		}
	}
	return
}

func (x Settings) Set(key string, value any) {
	x[key] = value
}
func (x Settings) Remove(key string) bool {
	if _, ok := x[key]; ok {
		delete(x, key)
		return true
	}
	return false
}
