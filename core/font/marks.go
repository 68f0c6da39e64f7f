package font

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontmacros/core/funit"
)

// Anchor is a named attachment point, used for positioning marks or for
// cursive attachment.
type Anchor struct {
	Name        string `yaml:"name"`
	funit.Point `yaml:",inline"`
	Selected    bool `yaml:"selected,omitempty"`
}

func (a *Anchor) String() string {
	return fmt.Sprintf("anchor %s%s", a.Name, a.Point)
}

// HintType is a type tag for hints and corner components.
type HintType string

// Hint types. PostScript stems and ghosts, corner components, and TrueType
// instructions.
const (
	Stem          HintType = "stem"
	Ghost         HintType = "ghost"
	Corner        HintType = "corner"
	Cap           HintType = "cap"
	Brush         HintType = "brush"
	Segment       HintType = "segment"
	TTStem        HintType = "ttstem"
	TTAlign       HintType = "ttalign"
	TTInterpolate HintType = "ttinterpolate"
	TTDelta       HintType = "ttdelta"
)

// Hint is a rendering instruction attached to a layer.
type Hint struct {
	Type       HintType    `yaml:"type"`
	Horizontal bool        `yaml:"horizontal,omitempty"`
	Origin     funit.Point `yaml:"origin"`
	Width      float64     `yaml:"width,omitempty"`
	Name       string      `yaml:"name,omitempty"` // corner components only
}

func (h *Hint) String() string {
	dir := "v"
	if h.Horizontal {
		dir = "h"
	}
	return fmt.Sprintf("%s-%s%s", dir, h.Type, h.Origin)
}

// Guide is a guide line, either local to a layer or global to a master.
type Guide struct {
	Name        string `yaml:"name,omitempty"`
	funit.Point `yaml:",inline"`
	Angle       float64 `yaml:"angle,omitempty"`
	Locked      bool    `yaml:"locked,omitempty"`
}

// Component is a reference to another glyph, placed at an offset.
type Component struct {
	Glyph  string      `yaml:"glyph"`
	Offset funit.Point `yaml:"offset"`
}

// --- Predicates ------------------------------------------------------------

// AnchorPredicate selects anchors.
type AnchorPredicate func(*Anchor) bool

// AnyAnchor matches every anchor.
func AnyAnchor(*Anchor) bool { return true }

// AnchorNamed matches anchors named name.
func AnchorNamed(name string) AnchorPredicate {
	return func(a *Anchor) bool { return a.Name == name }
}

// AnchorPrefixed matches anchors with names starting with prefix.
func AnchorPrefixed(prefix string) AnchorPredicate {
	return func(a *Anchor) bool { return strings.HasPrefix(a.Name, prefix) }
}

// HintPredicate selects hints.
type HintPredicate func(*Hint) bool

// AnyHint matches every hint.
func AnyHint(*Hint) bool { return true }

// HintOfType matches hints with one of the given type tags.
func HintOfType(types ...HintType) HintPredicate {
	return func(h *Hint) bool {
		for _, t := range types {
			if h.Type == t {
				return true
			}
		}
		return false
	}
}

// StemHints matches PostScript and TrueType stems of a given orientation.
func StemHints(horizontal bool) HintPredicate {
	return func(h *Hint) bool {
		return (h.Type == Stem || h.Type == TTStem) && h.Horizontal == horizontal
	}
}

// GuidePredicate selects guides.
type GuidePredicate func(*Guide) bool

// AnyGuide matches every guide.
func AnyGuide(*Guide) bool { return true }

// UnlockedGuide matches guides which are not locked.
func UnlockedGuide(g *Guide) bool { return !g.Locked }

// --- Deletion --------------------------------------------------------------

// DeleteAnchors removes all anchors of l matching pred and returns the number
// of anchors removed.
func (l *Layer) DeleteAnchors(pred AnchorPredicate) int {
	var n int
	l.Anchors, n = deleteBackwards(l.Anchors, pred)
	return n
}

// DeleteHints removes all hints of l matching pred and returns the number
// of hints removed.
func (l *Layer) DeleteHints(pred HintPredicate) int {
	var n int
	l.Hints, n = deleteBackwards(l.Hints, pred)
	return n
}

// DeleteGuides removes all local guides of l matching pred and returns the
// number of guides removed.
func (l *Layer) DeleteGuides(pred GuidePredicate) int {
	var n int
	l.Guides, n = deleteBackwards(l.Guides, pred)
	return n
}

// DeleteGuides removes all global guides of m matching pred and returns the
// number of guides removed.
func (m *Master) DeleteGuides(pred GuidePredicate) int {
	var n int
	m.Guides, n = deleteBackwards(m.Guides, pred)
	return n
}

// deleteBackwards removes matching elements, iterating from the end of the
// slice to the front. Non-matching elements keep their relative order.
func deleteBackwards[T any, P ~func(T) bool](s []T, pred P) ([]T, int) {
	cnt := 0
	for i := len(s) - 1; i >= 0; i-- {
		if pred(s[i]) {
			s = append(s[:i], s[i+1:]...)
			cnt++
		}
	}
	if len(s) == 0 {
		return nil, cnt
	}
	return s, cnt
}
