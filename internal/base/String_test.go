package base

import (
	"reflect"
	"testing"
)

func TestUnsafeBytesFromStringAndUnsafeStringFromBytes(t *testing.T) {
	s := "hello"
	b := UnsafeBytesFromString(s)
	if string(b) != s {
		t.Errorf("UnsafeBytesFromString failed: got %q, want %q", string(b), s)
	}
	s2 := UnsafeStringFromBytes(b)
	if s2 != s {
		t.Errorf("UnsafeStringFromBytes failed: got %q, want %q", s2, s)
	}
}

func TestMakeStringer(t *testing.T) {
	s := MakeStringer(func() string { return "lambda" })
	if s.String() != "lambda" {
		t.Errorf("MakeStringer failed: got %q", s.String())
	}
}

func TestJoinString(t *testing.T) {
	joined := JoinString("-", StringerString{"a"}, StringerString{"b"}, StringerString{"c"})
	if joined != "a-b-c" {
		t.Errorf("JoinString failed: got %q", joined)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" 1. 2,,3 .", ",.")
	if !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("SplitAndTrim failed: got %q", got)
	}
	if got := SplitAndTrim("", ",."); len(got) != 0 {
		t.Errorf("SplitAndTrim failed on empty input: got %q", got)
	}
}
