package edit

import (
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/parameters"
)

// Batch groups a sequence of mutations. While a batch is open, redraw is
// suspended. A batch which has been marked as changed becomes a single undo
// step when it ends.
//
// Batches may be nested. Inner batches add their glyphs and changes to the
// outermost batch.
type Batch struct {
	sess    *Session
	outer   *Batch
	group   *undoGroup
	changed bool
	ended   bool
}

// Begin opens a batch titled title, taking snapshots of the given glyphs.
// Clients must call End on the returned batch, usually with defer.
func (s *Session) Begin(title string, glyphs ...*font.Glyph) *Batch {
	b := &Batch{sess: s, outer: s.batch}
	if b.outer == nil {
		b.group = &undoGroup{title: title}
		s.batch = b
		tracer().Debugf("begin batch %q", title)
	}
	s.Settings.Begingroup()
	s.Settings.Push(parameters.P_REDRAW, false)
	s.Display.SuspendRedraw()
	b.Include(glyphs...)
	return b
}

func (b *Batch) root() *Batch {
	for b.outer != nil {
		b = b.outer
	}
	return b
}

// Include takes snapshots of glyphs, if they are not already part of the batch.
// Glyphs must be included before they are modified.
func (b *Batch) Include(glyphs ...*font.Glyph) {
	g := b.root().group
	for _, glyph := range glyphs {
		g.addGlyph(glyph)
	}
}

// IncludeMasters takes snapshots of masters, if they are not already part of
// the batch.
func (b *Batch) IncludeMasters(masters ...*font.Master) {
	g := b.root().group
	for _, m := range masters {
		g.addMaster(m)
	}
}

// Changed marks a batch as having modified the document.
func (b *Batch) Changed() {
	b.root().changed = true
}

// Title returns the title of the outermost batch.
func (b *Batch) Title() string {
	return b.root().group.title
}

// End closes a batch. It is safe to call End more than once.
func (b *Batch) End() {
	if b.ended {
		return
	}
	b.ended = true
	s := b.sess
	s.Settings.Endgroup()
	s.Display.ResumeRedraw()
	if b.outer != nil {
		return
	}
	s.batch = nil
	if !b.changed {
		tracer().Debugf("end batch %q: no changes", b.group.title)
		return
	}
	b.group.seal()
	s.undo.Push(b.group)
	s.redo.Clear()
	tracer().Debugf("end batch %q: %d glyphs, %d masters", b.group.title,
		len(b.group.glyphs), len(b.group.masters))
	if s.Settings.B(parameters.P_REDRAW) {
		s.Display.Redraw()
	}
}

// --- Undo ------------------------------------------------------------------

type glyphState struct {
	glyph, before, after *font.Glyph
}

type masterState struct {
	master, before, after *font.Master
}

type undoGroup struct {
	title   string
	glyphs  []glyphState
	masters []masterState
}

func (g *undoGroup) addGlyph(glyph *font.Glyph) {
	for _, st := range g.glyphs {
		if st.glyph == glyph {
			return
		}
	}
	g.glyphs = append(g.glyphs, glyphState{glyph: glyph, before: glyph.Clone()})
}

func (g *undoGroup) addMaster(m *font.Master) {
	for _, st := range g.masters {
		if st.master == m {
			return
		}
	}
	g.masters = append(g.masters, masterState{master: m, before: m.Clone()})
}

// seal records the state after the changes.
func (g *undoGroup) seal() {
	for i := range g.glyphs {
		g.glyphs[i].after = g.glyphs[i].glyph.Clone()
	}
	for i := range g.masters {
		g.masters[i].after = g.masters[i].master.Clone()
	}
}

func (g *undoGroup) restore(undo bool) {
	for _, st := range g.glyphs {
		if undo {
			st.glyph.Restore(st.before)
		} else {
			st.glyph.Restore(st.after)
		}
	}
	for _, st := range g.masters {
		if undo {
			st.master.Restore(st.before)
		} else {
			st.master.Restore(st.after)
		}
	}
}

// Undo reverts the most recent undo group and returns its title.
func (s *Session) Undo() (string, error) {
	return s.replay(s.undo, s.redo, true)
}

// Redo re-applies the most recently undone group and returns its title.
func (s *Session) Redo() (string, error) {
	return s.replay(s.redo, s.undo, false)
}

func (s *Session) replay(from, to stack, undo bool) (string, error) {
	if s.batch != nil {
		return "", core.Error(core.EINVALID, "cannot undo or redo during %q", s.batch.Title())
	}
	v, ok := from.Pop()
	if !ok {
		what := "redo"
		if undo {
			what = "undo"
		}
		return "", core.Error(core.EUNCHANGED, "nothing to %s", what)
	}
	g := v.(*undoGroup)
	g.restore(undo)
	to.Push(g)
	tracer().Infof("undo=%v: %s", undo, g.title)
	if s.Settings.B(parameters.P_REDRAW) {
		s.Display.Redraw()
	}
	return g.title, nil
}

// UndoDepth returns the number of undo groups.
func (s *Session) UndoDepth() int {
	return s.undo.Size()
}

// RedoDepth returns the number of redo groups.
func (s *Session) RedoDepth() int {
	return s.redo.Size()
}

type stack interface {
	Push(interface{})
	Pop() (interface{}, bool)
}
