package base

import (
	"strings"
	"testing"
)

func TestStructuredFileIndent(t *testing.T) {
	buf := strings.Builder{}
	sf := NewStructuredFile(&buf, "\t", false)
	sf.Println("Global")
	sf.ScopeIndent(func() {
		sf.Println("GlobalSection(%s) = preSolution", "SolutionProperties")
		sf.ScopeIndent(func() {
			sf.Println("HideSolutionNode = FALSE")
		})
		sf.Println("EndGlobalSection")
	})
	sf.Println("EndGlobal")

	want := "Global\n\tGlobalSection(SolutionProperties) = preSolution\n\t\tHideSolutionNode = FALSE\n\tEndGlobalSection\nEndGlobal\n"
	if buf.String() != want {
		t.Errorf("StructuredFile failed: got %q, want %q", buf.String(), want)
	}
	if sf.Err() != nil {
		t.Errorf("StructuredFile unexpected error: %v", sf.Err())
	}
}

func TestStructuredFileNewLine(t *testing.T) {
	buf := strings.Builder{}
	sf := NewStructuredFile(&buf, STRUCTUREDFILE_DEFAULT_TAB, false)
	sf.SetNewLine("\r\n")
	sf.Println("a")
	sf.EmptyLine()
	sf.Print("b")
	sf.LineBreak()

	if want := "a\r\n\r\nb\r\n"; buf.String() != want {
		t.Errorf("StructuredFile failed: got %q, want %q", buf.String(), want)
	}
	if sf.Site().Line != 4 {
		t.Errorf("StructuredFile site failed: got line %d", sf.Site().Line)
	}
}

func TestStructuredFileWriteLineVerbatim(t *testing.T) {
	buf := strings.Builder{}
	sf := NewStructuredFile(&buf, STRUCTUREDFILE_DEFAULT_TAB, false)
	sf.WriteLine("%(AdditionalIncludeDirectories)")
	sf.ScopeIndent(func() {
		sf.WriteLine("100%")
	})
	if want := "%(AdditionalIncludeDirectories)\n" + STRUCTUREDFILE_DEFAULT_TAB + "100%\n"; buf.String() != want {
		t.Errorf("StructuredFile failed: got %q, want %q", buf.String(), want)
	}
}
