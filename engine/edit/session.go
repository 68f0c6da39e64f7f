package edit

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/parameters"
	"github.com/npillmayer/fontmacros/engine/tabs"
	"github.com/npillmayer/schuko"
)

// Session is an editing session on a font document.
//
// A session is not safe for concurrent use. Front ends are expected to
// run commands from a single goroutine.
type Session struct {
	Settings *parameters.Registers
	Display  Display
	Console  Console
	conf     schuko.Configuration
	font     *font.Font
	master   *font.Master
	selected []*font.Glyph
	tabs     []*tabs.Tab
	tab      int               // index of current tab, -1 if none
	undo     *arraystack.Stack // of *undoGroup
	redo     *arraystack.Stack // of *undoGroup
	batch    *Batch            // outermost open batch
}

// NewSession creates a session for font f, which may be nil. conf may be nil as
// well, in which case defaults are used for every configuration key.
func NewSession(f *font.Font, conf schuko.Configuration) *Session {
	s := &Session{
		Settings: parameters.NewRegisters(conf),
		Display:  &NullDisplay{},
		Console:  TraceConsole{},
		conf:     conf,
		tab:      -1,
		undo:     arraystack.New(),
		redo:     arraystack.New(),
	}
	s.Open(f)
	return s
}

// Open makes f the font of the session. Selection, tabs and undo history are
// cleared and the first master becomes active.
func (s *Session) Open(f *font.Font) {
	if s.batch != nil {
		panic("edit: cannot switch fonts during a batch")
	}
	s.font, s.master = f, nil
	s.selected, s.tabs, s.tab = nil, nil, -1
	s.undo.Clear()
	s.redo.Clear()
	if f != nil && len(f.Masters) > 0 {
		s.master = f.Masters[0]
		tracer().Infof("session opened font %s, master %s", f.Family, s.master.Name)
	}
}

// Font returns the font of a session. It is nil if no font has been opened.
func (s *Session) Font() *font.Font {
	return s.font
}

// RequireFont returns the font of a session or an error, if no font is open.
func (s *Session) RequireFont() (*font.Font, error) {
	if s.font == nil {
		return nil, core.Error(core.EMISSING, "no font open")
	}
	return s.font, nil
}

// Master returns the active master.
func (s *Session) Master() *font.Master {
	return s.master
}

// SetMaster activates a master, given by ID or by name.
func (s *Session) SetMaster(idOrName string) error {
	f, err := s.RequireFont()
	if err != nil {
		return err
	}
	m, err := f.Master(idOrName)
	if err != nil {
		return err
	}
	s.master = m
	tracer().Debugf("active master is %s", m)
	return nil
}

// Config returns the configuration of a session. It may be nil.
func (s *Session) Config() schuko.Configuration {
	return s.conf
}

// ConfigString returns the configuration value for key, or def if key is not
// configured.
func (s *Session) ConfigString(key, def string) string {
	if s.conf == nil || !s.conf.IsSet(key) {
		return def
	}
	if v := strings.TrimSpace(s.conf.GetString(key)); v != "" {
		return v
	}
	return def
}

// --- Glyph selection -------------------------------------------------------

// Select replaces the glyph selection by the glyphs with the given names.
// If any name does not denote a glyph, the selection is left unchanged and
// an error is returned.
func (s *Session) Select(names ...string) error {
	f, err := s.RequireFont()
	if err != nil {
		return err
	}
	sel := make([]*font.Glyph, 0, len(names))
	for _, name := range names {
		g, err := f.LookupGlyph(name)
		if err != nil {
			return err
		}
		sel = append(sel, g)
	}
	s.SelectGlyphs(sel...)
	return nil
}

// SelectGlyphs replaces the glyph selection. Duplicates are removed.
func (s *Session) SelectGlyphs(glyphs ...*font.Glyph) {
	s.selected = s.selected[:0]
	seen := make(map[*font.Glyph]bool, len(glyphs))
	for _, g := range glyphs {
		if g != nil && !seen[g] {
			seen[g] = true
			s.selected = append(s.selected, g)
		}
	}
	tracer().Debugf("%d glyphs selected", len(s.selected))
}

// SelectAllGlyphs selects every glyph of the font.
func (s *Session) SelectAllGlyphs() {
	if s.font != nil {
		s.SelectGlyphs(s.font.Glyphs...)
	}
}

// Selected returns the selected glyphs, in selection order.
func (s *Session) Selected() []*font.Glyph {
	return append([]*font.Glyph(nil), s.selected...)
}

// Layer returns the layer of g for the active master. Glyphs without such a
// layer fall back to their first layer. The result is nil for glyphs without
// layers.
func (s *Session) Layer(g *font.Glyph) *font.Layer {
	if s.master == nil {
		if len(g.Layers) == 0 {
			return nil
		}
		return g.Layers[0]
	}
	l, _ := g.LayerOrFirst(s.master.ID)
	return l
}

// Layers returns the layers of the selected glyphs for the active master.
// The result is nil if no glyph is selected.
func (s *Session) Layers() []*font.Layer {
	var layers []*font.Layer
	for _, g := range s.selected {
		if l := s.Layer(g); l != nil {
			layers = append(layers, l)
		}
	}
	return layers
}

// --- Tabs ------------------------------------------------------------------

// OpenTab adds a tab to the session and makes it the current one. It returns
// the index of the new tab.
func (s *Session) OpenTab(t *tabs.Tab) int {
	s.tabs = append(s.tabs, t)
	s.tab = len(s.tabs) - 1
	tracer().Debugf("opened %s", t)
	return s.tab
}

// Tabs returns all open tabs.
func (s *Session) Tabs() []*tabs.Tab {
	return append([]*tabs.Tab(nil), s.tabs...)
}

// CurrentTab returns the current tab, if any.
func (s *Session) CurrentTab() (*tabs.Tab, bool) {
	if s.tab < 0 {
		return nil, false
	}
	return s.tabs[s.tab], true
}

// SwitchTab makes tab number i the current one.
func (s *Session) SwitchTab(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return core.Error(core.EMISSING, "no tab #%d", i)
	}
	s.tab = i
	return nil
}

// CloseTab closes tab number i.
func (s *Session) CloseTab(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return core.Error(core.EMISSING, "no tab #%d", i)
	}
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	if i < s.tab {
		s.tab--
	} else if s.tab >= len(s.tabs) {
		s.tab = len(s.tabs) - 1
	}
	return nil
}

// --- Errors ----------------------------------------------------------------

// Report handles the outcome of a command. Recoverable errors are reported
// to the console as a notice and swallowed. Other errors are traced and
// returned.
func (s *Session) Report(err error) error {
	if err == nil {
		return nil
	}
	if core.IsRecoverable(err) {
		tracer().Infof("%v", err)
		s.Console.Notify(core.UserMessage(err))
		return nil
	}
	tracer().Errorf("%v", err)
	return err
}
