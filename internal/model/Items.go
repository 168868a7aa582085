package model

import (
	"errors"
	"strings"
)

/***************************************
 * File group tree
 ***************************************/

// Groups have no file and may have children, files are leaves
type Item struct {
	ID       string  `json:"id" toml:"id" yaml:"id"`
	Name     string  `json:"name" toml:"name" yaml:"name"`
	File     string  `json:"file,omitempty" toml:"file,omitempty" yaml:"file,omitempty"`
	Compile  bool    `json:"compile,omitempty" toml:"compile,omitempty" yaml:"compile,omitempty"`
	Target   string  `json:"target,omitempty" toml:"target,omitempty" yaml:"target,omitempty"`
	Children []*Item `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

func (x *Item) IsGroup() bool { return len(x.File) == 0 }
func (x *Item) IsFile() bool  { return !x.IsGroup() }

func (x *Item) ShouldBeCompiled() bool {
	return x.IsFile() && x.Compile
}

// Explicit target tag wins, otherwise the target is deduced from the file name
func (x *Item) TargetType() TargetType {
	if len(x.Target) > 0 {
		var target TargetType
		if err := target.Set(x.Target); err == nil {
			return target
		}
	}
	return TargetTypeFromFilePath(x.File)
}

func (x *Item) HasFileExtension(extensions ...string) bool {
	name := x.File
	i := strings.LastIndexByte(name, '.')
	if i < 0 || strings.ContainsAny(name[i:], "/\\") {
		return false
	}
	ext := strings.ToLower(name[i+1:])
	for _, it := range extensions {
		if ext == strings.ToLower(it) {
			return true
		}
	}
	return false
}

var errStopWalk = errors.New("stop walking")

// Depth-first, parents before children, with the chain of enclosing groups
func WalkItems(items []*Item, each func(item *Item, parents []*Item) error) error {
	return walkItemsRec(items, nil, each)
}

func walkItemsRec(items []*Item, parents []*Item, each func(*Item, []*Item) error) error {
	for _, it := range items {
		if err := each(it, parents); err != nil {
			return err
		}
		if len(it.Children) > 0 {
			if err := walkItemsRec(it.Children, append(parents[:len(parents):len(parents)], it), each); err != nil {
				return err
			}
		}
	}
	return nil
}

func FindItem(items []*Item, id string) (result *Item) {
	WalkItems(items, func(item *Item, _ []*Item) error {
		if item.ID == id {
			result = item
			return errStopWalk
		}
		return nil
	})
	return
}

var (
	CppFileExtensions    = []string{"cpp", "cc", "cxx", "c"}
	AsmFileExtensions    = []string{"s", "S", "asm"}
	HeaderFileExtensions = []string{"h", "hpp", "hxx", "hh", "inl"}
)

func IsSourceFile(item *Item) bool {
	return item.HasFileExtension(CppFileExtensions...) || item.HasFileExtension(AsmFileExtensions...)
}
func IsHeaderFile(item *Item) bool {
	return item.HasFileExtension(HeaderFileExtensions...)
}
