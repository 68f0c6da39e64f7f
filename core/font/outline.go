package font

import (
	"fmt"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/funit"
)

// NodeType is the type of a node of a path.
type NodeType string

// Node types, following the usual font editor conventions.
const (
	Line     NodeType = "line"     // on-curve, reached by a straight line
	Curve    NodeType = "curve"    // on-curve, reached by a cubic Bézier
	QCurve   NodeType = "qcurve"   // on-curve, reached by a quadratic Bézier
	OffCurve NodeType = "offcurve" // control point
)

// Path is a (usually closed) sequence of nodes.
type Path struct {
	Closed bool    `yaml:"closed"`
	Nodes  []*Node `yaml:"nodes"`
}

// Node is an on-curve or off-curve point of a path.
type Node struct {
	funit.Point `yaml:",inline"`
	Type        NodeType `yaml:"type"`
	Smooth      bool     `yaml:"smooth,omitempty"`
	Selected    bool     `yaml:"selected,omitempty"`
}

// IsOnCurve is a predicate.
func (n *Node) IsOnCurve() bool {
	return n.Type != OffCurve
}

func (n *Node) String() string {
	return fmt.Sprintf("%s%s", n.Type, n.Point)
}

// --- Selection -------------------------------------------------------------

// Selection returns the positions of all selected nodes and anchors of a
// layer. Manipulating the points will move the nodes/anchors.
// The result may be empty.
func (l *Layer) Selection() []*funit.Point {
	var sel []*funit.Point
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			if n.Selected {
				sel = append(sel, &n.Point)
			}
		}
	}
	for _, a := range l.Anchors {
		if a.Selected {
			sel = append(sel, &a.Point)
		}
	}
	return sel
}

// SelectedNodes returns the selected nodes of all paths of a layer.
func (l *Layer) SelectedNodes() []*Node {
	var sel []*Node
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			if n.Selected {
				sel = append(sel, n)
			}
		}
	}
	return sel
}

// SelectAll selects all nodes and anchors of a layer.
func (l *Layer) SelectAll() {
	l.setSelection(true)
}

// DeselectAll clears the selection of a layer.
func (l *Layer) DeselectAll() {
	l.setSelection(false)
}

func (l *Layer) setSelection(sel bool) {
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			n.Selected = sel
		}
	}
	for _, a := range l.Anchors {
		a.Selected = sel
	}
}

// SelectNode adds node number nodeInx of path number pathInx to the selection.
func (l *Layer) SelectNode(pathInx, nodeInx int) error {
	if pathInx < 0 || pathInx >= len(l.Paths) {
		return core.Error(core.EMISSING, "%s has no path #%d", l.Name(), pathInx)
	}
	p := l.Paths[pathInx]
	if nodeInx < 0 || nodeInx >= len(p.Nodes) {
		return core.Error(core.EMISSING, "path #%d of %s has no node #%d", pathInx, l.Name(), nodeInx)
	}
	p.Nodes[nodeInx].Selected = true
	return nil
}

// SelectAnchors adds all anchors with the given names to the selection and
// returns the number of anchors found.
func (l *Layer) SelectAnchors(names ...string) int {
	cnt := 0
	for _, a := range l.Anchors {
		for _, name := range names {
			if a.Name == name {
				a.Selected = true
				cnt++
			}
		}
	}
	return cnt
}
