package base

import (
	"fmt"
	"io"
)

const STRUCTUREDFILE_DEFAULT_TAB = "  "

type StructuredFileFlags int32

const (
	STRUCTUREDFILE_NONE   StructuredFileFlags = 0
	STRUCTUREDFILE_MINIFY StructuredFileFlags = 1 << 0
)

type FileSite struct {
	Line   int
	Column int
}

func (si *FileSite) LineBreak() {
	si.Line++
	si.Column = 1
}

type StructuredFile struct {
	indent  string
	tab     string
	newLine string
	flags   StructuredFileFlags
	site    FileSite
	writer  io.Writer
	err     error
}

func NewStructuredFile(writer io.Writer, tab string, minify bool) *StructuredFile {
	flags := STRUCTUREDFILE_NONE
	if minify {
		flags |= STRUCTUREDFILE_MINIFY
	}
	return &StructuredFile{
		indent:  "",
		tab:     tab,
		newLine: "\n",
		flags:   flags,
		site: FileSite{
			Line:   1,
			Column: 1,
		},
		writer: writer,
	}
}

func (sf *StructuredFile) Minify() bool {
	return (sf.flags & STRUCTUREDFILE_MINIFY) == STRUCTUREDFILE_MINIFY
}
func (sf *StructuredFile) Site() FileSite { return sf.site }

// first write error is retained, later writes become no-ops
func (sf *StructuredFile) Err() error { return sf.err }

func (sf *StructuredFile) SetNewLine(eol string) {
	sf.newLine = eol
}

func (sf *StructuredFile) IndentIFN() {
	if sf.site.Column == 1 && len(sf.indent) > 0 {
		sf.site.Column += len(sf.indent)
		sf.write(sf.indent)
	}
}
func (sf *StructuredFile) BeginIndent() {
	sf.indent += sf.tab
}
func (sf *StructuredFile) EndIndent() {
	sf.indent = sf.indent[:len(sf.indent)-len(sf.tab)]
}
func (sf *StructuredFile) ScopeIndent(infix func()) {
	if infix != nil {
		sf.LineBreak()
		sf.BeginIndent()
		infix()
		sf.LineBreak()
		sf.EndIndent()
	}
}

func (sf *StructuredFile) Print(format string, args ...interface{}) {
	sf.IndentIFN()
	sf.Print_NoIndent(format, args...)
}
func (sf *StructuredFile) Println(format string, args ...interface{}) {
	sf.IndentIFN()
	sf.Println_NoIndent(format, args...)
}
// Writes txt verbatim, '%' is never interpreted
func (sf *StructuredFile) WriteLine(txt string) {
	sf.IndentIFN()
	sf.site.LineBreak()
	sf.write(txt)
	sf.write(sf.newLine)
}
func (sf *StructuredFile) LineBreak() {
	if sf.site.Column > 1 {
		sf.site.LineBreak()
		sf.write(sf.newLine)
	}
}
func (sf *StructuredFile) EmptyLine() {
	sf.LineBreak()
	sf.site.Line++
	sf.write(sf.newLine)
}

func (sf *StructuredFile) Print_NoIndent(format string, args ...interface{}) {
	txt := format
	if len(args) > 0 {
		txt = fmt.Sprintf(format, args...)
	}
	sf.site.Column += len(txt)
	sf.write(txt)
}
func (sf *StructuredFile) Println_NoIndent(format string, args ...interface{}) {
	txt := format
	if len(args) > 0 {
		txt = fmt.Sprintf(format, args...)
	}
	sf.site.LineBreak()
	sf.write(txt)
	sf.write(sf.newLine)
}

func (sf *StructuredFile) write(txt string) {
	if sf.err == nil {
		_, sf.err = io.WriteString(sf.writer, txt)
	}
}
