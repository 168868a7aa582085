package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

var xmlAttributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"\r", "&#13;",
	"\n", "&#10;",
	"\t", "&#9;")

var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;")

func EscapeXmlText(in string) string      { return xmlTextEscaper.Replace(in) }
func EscapeXmlAttribute(in string) string { return xmlAttributeEscaper.Replace(in) }

type XmlAttr struct {
	Name  string
	Value string
}

func (x XmlAttr) String() string {
	return fmt.Sprint(x.Name, "=\"", EscapeXmlAttribute(x.Value), "\"")
}

/***************************************
 * XmlElement
 ***************************************/

// In-memory document tree, children and attributes keep insertion order
type XmlElement struct {
	Name       string
	Attributes []XmlAttr
	Text       string
	Children   []*XmlElement
}

func NewXmlElement(name string, attributes ...XmlAttr) *XmlElement {
	return &XmlElement{Name: name, Attributes: attributes}
}

func (x *XmlElement) GetAttr(name string) (string, bool) {
	for _, it := range x.Attributes {
		if it.Name == name {
			return it.Value, true
		}
	}
	return "", false
}
func (x *XmlElement) SetAttr(name, value string) *XmlElement {
	for i, it := range x.Attributes {
		if it.Name == name {
			x.Attributes[i].Value = value
			return x
		}
	}
	x.Attributes = append(x.Attributes, XmlAttr{Name: name, Value: value})
	return x
}

// Appends a new child and returns it
func (x *XmlElement) Child(name string, attributes ...XmlAttr) *XmlElement {
	child := NewXmlElement(name, attributes...)
	x.Children = append(x.Children, child)
	return child
}

// Appends a new child holding text, even when empty
func (x *XmlElement) Element(name, text string, attributes ...XmlAttr) *XmlElement {
	child := x.Child(name, attributes...)
	child.Text = text
	return child
}

// Appends a new child holding text only when text is not empty
func (x *XmlElement) InnerString(name, text string, attributes ...XmlAttr) *XmlElement {
	if len(text) > 0 {
		x.Element(name, text, attributes...)
	}
	return x
}

func (x *XmlElement) FindChild(name string) *XmlElement {
	for _, it := range x.Children {
		if it.Name == name {
			return it
		}
	}
	return nil
}
func (x *XmlElement) ChildrenNamed(name string) (result []*XmlElement) {
	for _, it := range x.Children {
		if it.Name == name {
			result = append(result, it)
		}
	}
	return
}

/***************************************
 * XmlFile
 ***************************************/

type XmlFile struct {
	*base.StructuredFile
}

func NewXmlFile(dst io.Writer, minify bool) *XmlFile {
	return &XmlFile{
		StructuredFile: base.NewStructuredFile(dst, base.STRUCTUREDFILE_DEFAULT_TAB, minify),
	}
}

func (xml *XmlFile) Declaration(version, encoding string) *XmlFile {
	xml.Println("<?xml version=%q encoding=%q?>", version, encoding)
	return xml
}
func (xml *XmlFile) Tag(name string, closure func(), attributes ...XmlAttr) *XmlFile {
	if len(attributes) > 0 {
		xml.Print("<%s %s", name, base.JoinString(" ", attributes...))
	} else {
		xml.Print("<%s", name)
	}
	if closure != nil {
		xml.Println(">")
		xml.ScopeIndent(closure)
		xml.Println("</%s>", name)
	} else {
		xml.Println("/>")
	}
	return xml
}
func (xml *XmlFile) InnerString(name, value string, attributes ...XmlAttr) *XmlFile {
	if len(attributes) > 0 {
		xml.Println("<%s %s>%s</%s>", name, base.JoinString(" ", attributes...), EscapeXmlText(value), name)
	} else {
		xml.Println("<%s>%s</%s>", name, EscapeXmlText(value), name)
	}
	return xml
}
func (xml *XmlFile) Element(e *XmlElement) *XmlFile {
	switch {
	case len(e.Children) > 0:
		xml.Tag(e.Name, func() {
			for _, child := range e.Children {
				xml.Element(child)
			}
		}, e.Attributes...)
	case len(e.Text) > 0:
		xml.InnerString(e.Name, e.Text, e.Attributes...)
	default:
		xml.Tag(e.Name, nil, e.Attributes...)
	}
	return xml
}

// Serializes a whole document with CRLF line endings
func WriteXmlDocument(dst io.Writer, root *XmlElement) error {
	xml := NewXmlFile(dst, false)
	xml.SetNewLine("\r\n")
	xml.Declaration("1.0", "UTF-8")
	xml.Element(root)
	return xml.Err()
}
