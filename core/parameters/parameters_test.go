package parameters

import (
	"testing"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	regs := NewRegisters(nil)
	assert.True(t, regs.B(P_REDRAW))
	regs.Begingroup()
	regs.Push(P_REDRAW, false)
	assert.False(t, regs.B(P_REDRAW))
	regs.Begingroup()
	assert.False(t, regs.B(P_REDRAW), "inner group should see outer value")
	assert.True(t, regs.Toggle(P_REDRAW))
	regs.Endgroup()
	assert.False(t, regs.B(P_REDRAW))
	regs.Endgroup()
	assert.True(t, regs.B(P_REDRAW))
	assert.Equal(t, 0, regs.Level())
	regs.Endgroup() // unbalanced end is ignored
	assert.Equal(t, 0, regs.Level())
}

func TestEmptyGroupDecrementsLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	regs := NewRegisters(nil)
	regs.Begingroup()
	regs.Push(P_PREVIEW, true)
	regs.Begingroup()
	regs.Endgroup()
	assert.Equal(t, 1, regs.Level())
	assert.True(t, regs.B(P_PREVIEW))
	regs.Endgroup()
	assert.False(t, regs.B(P_PREVIEW))
}

func TestToggleAtBaseLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	regs := NewRegisters(nil)
	before := regs.B(P_SHOWANCHORS)
	assert.Equal(t, !before, regs.Toggle(P_SHOWANCHORS))
	assert.Equal(t, before, regs.Toggle(P_SHOWANCHORS), "toggling twice restores the value")
}

func TestConfiguredDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	conf := testconfig.Conf{
		"display.hints":  true,
		"display.redraw": false,
	}
	regs := NewRegisters(conf)
	assert.True(t, regs.B(P_SHOWHINTS))
	assert.True(t, regs.B(P_REDRAW), "redraw is not configurable")
}

func TestParameterByName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	p, err := ParameterByName(" Anchors ")
	assert.NoError(t, err)
	assert.Equal(t, P_SHOWANCHORS, p)
	assert.Equal(t, "anchors", p.String())
	_, err = ParameterByName("colors")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Len(t, Parameters(), int(P_STOPPER)-1)
}
