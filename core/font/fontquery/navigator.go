package fontquery

import (
	"errors"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/fontmacros/core/font"
)

// NodeNavigator is an xpath.NodeNavigator for font documents.
type NodeNavigator struct {
	root, current *element
	attr          int // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for a font.
func NewNavigator(f *font.Font) *NodeNavigator {
	root := buildTree(f)
	return &NodeNavigator{
		current: root,
		root:    root,
		attr:    -1,
	}
}

// CurrentGlyph returns the glyph owning the current node of a navigator.
// Nodes outside of glyphs return nil.
func CurrentGlyph(nav xpath.NodeNavigator) (*font.Glyph, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type fontquery.NodeNavigator")
	}
	if mynav.current == nil {
		return nil, nil
	}
	return mynav.current.glyph, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.current == nav.root {
		return xpath.RootNode
	}
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.attrs[nav.attr].key
	}
	return nav.current.name
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.current.attrs[nav.attr].val
	}
	return ""
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current.parent == nil {
		return false
	}
	nav.current = nav.current.parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= len(nav.current.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 || len(nav.current.children) == 0 {
		return false
	}
	nav.current = nav.current.children[0]
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current.parent == nil || nav.current.index == 0 {
		return false
	}
	nav.current = nav.current.parent.children[0]
	return true
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.current.parent == nil {
		return false
	}
	siblings := nav.current.parent.children
	if nav.current.index+1 >= len(siblings) {
		return false
	}
	nav.current = siblings[nav.current.index+1]
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.current.parent == nil || nav.current.index == 0 {
		return false
	}
	nav.current = nav.current.parent.children[nav.current.index-1]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

func (nav *NodeNavigator) String() string {
	if nav.attr != -1 {
		return "@" + nav.LocalName() + "=" + nav.Value()
	}
	return nav.current.name
}

var _ xpath.NodeNavigator = &NodeNavigator{}
