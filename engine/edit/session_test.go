package edit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/parameters"
	"github.com/npillmayer/fontmacros/engine/tabs"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type SessionTestEnviron struct {
	suite.Suite
	sess    *Session
	display *NullDisplay
	console *BufferConsole
}

func TestSessionFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.edit")
	defer teardown()
	suite.Run(t, new(SessionTestEnviron))
}

func (env *SessionTestEnviron) SetupTest() {
	tracing.Select("fontmacros.edit").SetTraceLevel(tracing.LevelError)
	f, err := font.Load(filepath.Join("..", "..", "core", "font", "testdata", "demo.yaml"))
	env.Require().NoError(err)
	conf := testconfig.Conf{"macros.anchor": "bottom", "macros.markprefix": " "}
	env.sess = NewSession(f, conf)
	env.display = &NullDisplay{}
	env.console = &BufferConsole{}
	env.sess.Display = env.display
	env.sess.Console = env.console
	tracing.Select("fontmacros.edit").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *SessionTestEnviron) TestMasterAndLayers() {
	env.Equal("m01", env.sess.Master().ID)
	env.Require().NoError(env.sess.Select("A", "n", "A"))
	env.Len(env.sess.Selected(), 2)
	env.Require().NoError(env.sess.SetMaster("Bold"))
	layers := env.sess.Layers()
	env.Require().Len(layers, 2)
	env.Equal("m02", layers[0].Master)
	env.Equal("m01", layers[1].Master, "n has no bold layer and falls back")
	env.Equal(core.EMISSING, core.Code(env.sess.SetMaster("Black")))
	err := env.sess.Select("A", "B")
	env.Equal(core.EMISSING, core.Code(err))
	env.Len(env.sess.Selected(), 2, "failed selection must not change the selection")
}

func (env *SessionTestEnviron) TestConfig() {
	env.Equal("bottom", env.sess.ConfigString("macros.anchor", "top"))
	env.Equal("_", env.sess.ConfigString("macros.markprefix", "_"), "blank values use the default")
	env.Equal("x", env.sess.ConfigString("unknown", "x"))
	s := NewSession(nil, nil)
	env.Equal("top", s.ConfigString("macros.anchor", "top"))
	_, err := s.RequireFont()
	env.Equal(core.EMISSING, core.Code(err))
	env.Nil(s.Layers())
}

func (env *SessionTestEnviron) TestBatchUndoRedo() {
	g, _ := env.sess.Font().Glyph("A")
	l := env.sess.Layer(g)
	func() {
		b := env.sess.Begin("shift", g)
		defer b.End()
		env.Equal(1, env.display.Suspended)
		env.False(env.sess.Settings.B(parameters.P_REDRAW))
		l.Shift(10, 0)
		b.Changed()
	}()
	env.Equal(0, env.display.Suspended)
	env.Equal(1, env.display.Redraws)
	env.True(env.sess.Settings.B(parameters.P_REDRAW))
	env.Equal(20.0, env.sess.Layer(g).Paths[0].Nodes[0].X)
	env.Equal(1, env.sess.UndoDepth())
	title, err := env.sess.Undo()
	env.Require().NoError(err)
	env.Equal("shift", title)
	env.Equal(10.0, env.sess.Layer(g).Paths[0].Nodes[0].X)
	env.Equal(1, env.sess.RedoDepth())
	_, err = env.sess.Redo()
	env.Require().NoError(err)
	env.Equal(20.0, env.sess.Layer(g).Paths[0].Nodes[0].X)
	_, err = env.sess.Redo()
	env.Equal(core.EUNCHANGED, core.Code(err))
}

func (env *SessionTestEnviron) TestUnchangedBatchLeavesNoUndo() {
	g, _ := env.sess.Font().Glyph("A")
	b := env.sess.Begin("noop", g)
	b.End()
	b.End()
	env.Equal(0, env.sess.UndoDepth())
	env.Equal(0, env.display.Suspended)
	env.Equal(0, env.display.Redraws)
	_, err := env.sess.Undo()
	env.Equal(core.EUNCHANGED, core.Code(err))
}

func (env *SessionTestEnviron) TestBatchBalancedOnError() {
	g, _ := env.sess.Font().Glyph("A")
	failing := func() (err error) {
		b := env.sess.Begin("failing", g)
		defer b.End()
		env.sess.Layer(g).Width = 1
		b.Changed()
		return errors.New("boom")
	}
	env.Error(failing())
	env.Equal(0, env.display.Suspended)
	env.Equal(0, env.sess.Settings.Level())
	_, err := env.sess.Undo()
	env.NoError(err)
	env.Equal(600.0, env.sess.Layer(g).Width)
}

func (env *SessionTestEnviron) TestNestedBatches() {
	a, _ := env.sess.Font().Glyph("A")
	n, _ := env.sess.Font().Glyph("n")
	m := env.sess.Master()
	outer := env.sess.Begin("outer", a)
	inner := env.sess.Begin("inner", n)
	inner.IncludeMasters(m)
	env.Equal("outer", inner.Title())
	env.Equal(2, env.display.Suspended)
	env.sess.Layer(n).Width = 1
	m.XHeight = 1
	inner.Changed()
	inner.End()
	env.Equal(0, env.sess.UndoDepth(), "inner batch must not push a group")
	_, err := env.sess.Undo()
	env.Equal(core.EINVALID, core.Code(err), "no undo inside a batch")
	outer.End()
	env.Equal(1, env.sess.UndoDepth())
	_, err = env.sess.Undo()
	env.Require().NoError(err)
	env.Equal(560.0, env.sess.Layer(n).Width)
	env.Equal(500.0, m.XHeight)
}

func (env *SessionTestEnviron) TestNewBatchClearsRedo() {
	g, _ := env.sess.Font().Glyph("A")
	for i := 0; i < 2; i++ {
		b := env.sess.Begin("w", g)
		env.sess.Layer(g).Width += 10
		b.Changed()
		b.End()
	}
	_, _ = env.sess.Undo()
	env.Equal(1, env.sess.RedoDepth())
	b := env.sess.Begin("w2", g)
	b.Changed()
	b.End()
	env.Equal(0, env.sess.RedoDepth())
}

func (env *SessionTestEnviron) TestTabs() {
	_, ok := env.sess.CurrentTab()
	env.False(ok)
	i := env.sess.OpenTab(tabs.NewBuilder().Glyph("A").Tab("one"))
	env.Equal(0, i)
	env.sess.OpenTab(tabs.NewBuilder().Glyph("n").Tab("two"))
	t, _ := env.sess.CurrentTab()
	env.Equal("two", t.Title)
	env.NoError(env.sess.SwitchTab(0))
	t, _ = env.sess.CurrentTab()
	env.Equal("one", t.Title)
	env.Equal(core.EMISSING, core.Code(env.sess.SwitchTab(2)))
	env.NoError(env.sess.CloseTab(1))
	env.Len(env.sess.Tabs(), 1)
	env.NoError(env.sess.CloseTab(0))
	_, ok = env.sess.CurrentTab()
	env.False(ok)
}

func (env *SessionTestEnviron) TestCloseTabKeepsCurrent() {
	for _, title := range []string{"t0", "t1", "t2"} {
		env.sess.OpenTab(tabs.NewBuilder().Glyph("A").Tab(title))
	}
	env.NoError(env.sess.SwitchTab(1))
	env.NoError(env.sess.CloseTab(0))
	t, ok := env.sess.CurrentTab()
	env.Require().True(ok)
	env.Equal("t1", t.Title, "closing a tab before the current one must keep it current")
	env.NoError(env.sess.CloseTab(1))
	t, _ = env.sess.CurrentTab()
	env.Equal("t1", t.Title, "closing a tab after the current one must keep it current")
	env.Len(env.sess.Tabs(), 1)
	env.Equal(core.EMISSING, core.Code(env.sess.CloseTab(1)))
}

func (env *SessionTestEnviron) TestReport() {
	env.NoError(env.sess.Report(core.Error(core.ENOSELECTION, "nothing selected")))
	env.Equal([]string{"nothing selected"}, env.console.Notices)
	err := env.sess.Report(core.Error(core.EINVALID, "bad"))
	env.Equal(core.EINVALID, core.Code(err))
	env.NoError(env.sess.Report(nil))
}
