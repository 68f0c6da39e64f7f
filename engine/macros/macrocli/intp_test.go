package main

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font/fontregistry"
	"github.com/npillmayer/fontmacros/engine/macros"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demo = filepath.Join("..", "..", "..", "core", "font", "testdata", "demo.yaml")

func newTestIntp(t *testing.T) *Intp {
	pterm.DisableOutput()
	return NewIntp(testconfig.Conf{}, macros.Standard(), fontregistry.NewRegistry())
}

func (intp *Intp) exec(t *testing.T, line string) error {
	cmd, err := intp.parseCommand(line)
	require.NoError(t, err, line)
	quit, err := intp.execute(cmd)
	assert.False(t, quit)
	return err
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.macros")
	defer teardown()
	//
	intp := newTestIntp(t)
	cmd, err := intp.parseCommand("run Delete Anchors Named : top  bottom")
	require.NoError(t, err)
	assert.Equal(t, RUN, cmd.code)
	assert.Equal(t, []string{"Delete Anchors Named", "top", "bottom"}, cmd.args)
	cmd, err = intp.parseCommand("sel //glyph[@category = 'Mark']")
	require.NoError(t, err)
	assert.Equal(t, SELECT, cmd.code)
	assert.Equal(t, []string{"//glyph[@category = 'Mark']"}, cmd.args)
	cmd, err = intp.parseCommand("SELECT A  n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "n"}, cmd.args)
	cmd, err = intp.parseCommand("tab 1")
	require.NoError(t, err)
	assert.Equal(t, TAB, cmd.code)
	_, err = intp.parseCommand("s")
	assert.Equal(t, core.EINVALID, core.Code(err), "'s' is ambiguous")
	_, err = intp.parseCommand("frobnicate")
	assert.Equal(t, core.EINVALID, core.Code(err))
	cmd, err = intp.parseCommand("quit")
	require.NoError(t, err)
	quit, err := intp.execute(cmd)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestSessionCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.macros")
	defer teardown()
	//
	intp := newTestIntp(t)
	require.NoError(t, intp.exec(t, "run Toggle Hints"), "toggles work without a font")
	require.NoError(t, intp.exec(t, "open "+demo))
	assert.Equal(t, []string{"demo_sans"}, intp.fonts.List())
	require.NoError(t, intp.exec(t, "select A n"))
	require.NoError(t, intp.exec(t, "nodes none 0:0"))
	require.NoError(t, intp.exec(t, "run align selection to x"))
	a, _ := intp.sess.Font().Glyph("A")
	l := intp.sess.Layer(a)
	assert.Equal(t, 500.0, l.Paths[0].Nodes[0].Y)
	assert.Equal(t, 0.0, l.Paths[0].Nodes[2].Y, "deselected node must stay")
	require.NoError(t, intp.exec(t, "undo"))
	l = intp.sess.Layer(a)
	assert.Equal(t, 0.0, l.Paths[0].Nodes[0].Y)
	require.NoError(t, intp.exec(t, "redo"))
	require.NoError(t, intp.exec(t, "undo"))
	require.NoError(t, intp.exec(t, "undo"), "nothing to undo is reported, not returned")
	require.NoError(t, intp.exec(t, "select //glyph[@category='Mark']"))
	require.Len(t, intp.sess.Selected(), 1)
	assert.Equal(t, "dieresiscomb", intp.sess.Selected()[0].Name)
	require.NoError(t, intp.exec(t, "master Bold"))
	assert.Equal(t, "m02", intp.sess.Master().ID)
	require.NoError(t, intp.exec(t, "run Open Tab from Text : HO/A.sc"))
	require.NoError(t, intp.exec(t, "tab 0"))
	require.NoError(t, intp.exec(t, "tab close 0"))
	assert.Empty(t, intp.sess.Tabs())
	require.NoError(t, intp.exec(t, "query count(//glyph)"))
	err := intp.exec(t, "nodes 7:7")
	assert.Equal(t, core.EMISSING, core.Code(err))
	err = intp.exec(t, "nodes x")
	assert.Equal(t, core.EINVALID, core.Code(err))
	err = intp.exec(t, "open "+demo)
	assert.Equal(t, core.EINVALID, core.Code(err), "font is already open")
	require.NoError(t, intp.exec(t, "use demo"))
	require.NoError(t, intp.exec(t, "settings"))
	require.NoError(t, intp.exec(t, "macros delete"))
	err = intp.exec(t, "macros nonsense")
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestImportGoSans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.macros")
	defer teardown()
	//
	intp := newTestIntp(t)
	require.NoError(t, intp.exec(t, "import gosans"))
	require.NotNil(t, intp.sess.Font())
	assert.Equal(t, "Go Sans", intp.sess.Font().Family)
	require.NoError(t, intp.exec(t, "select A"))
	require.NoError(t, intp.exec(t, "run Report Glyph Info"))
	err := intp.exec(t, "import no-such-font-4711.otf")
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestCompletion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.macros")
	defer teardown()
	//
	intp := newTestIntp(t)
	line := []rune("ta")
	cands, n := intp.Do(line, len(line))
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, [][]rune{[]rune("b "), []rune("bs ")}, cands)
	line = []rune("run toggle n")
	cands, n = intp.Do(line, len(line))
	assert.Equal(t, len("toggle n"), n)
	assert.Equal(t, [][]rune{[]rune("odes")}, cands)
	line = []rune("open tog")
	cands, _ = intp.Do(line, len(line))
	assert.Empty(t, cands)
}
