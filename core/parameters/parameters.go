/*
Package parameters holds the view settings of an editing session.

Settings are kept in registers which support grouping: values pushed inside
a group are dropped at the end of the group, restoring the outer values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/schuko"
)

// EditorParameter is a key for a view setting.
type EditorParameter int

const (
	none EditorParameter = iota
	P_SHOWNODES
	P_SHOWANCHORS
	P_SHOWHINTS
	P_SHOWGUIDES
	P_SHOWMETRICS
	P_PREVIEW
	P_REDRAW
	P_STOPPER
)

var parameterNames = [P_STOPPER]string{
	"", "nodes", "anchors", "hints", "guides", "metrics", "preview", "redraw",
}

func (p EditorParameter) String() string {
	if p <= none || p >= P_STOPPER {
		return fmt.Sprintf("EditorParameter(%d)", int(p))
	}
	return parameterNames[p]
}

// ParameterByName finds a parameter by its name, e.g. "anchors".
func ParameterByName(name string) (EditorParameter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p := P_SHOWNODES; p < P_STOPPER; p++ {
		if parameterNames[p] == name {
			return p, nil
		}
	}
	return none, core.Error(core.EMISSING, "no setting named %q", name)
}

// Parameters returns all parameter keys.
func Parameters() []EditorParameter {
	ps := make([]EditorParameter, 0, P_STOPPER-1)
	for p := P_SHOWNODES; p < P_STOPPER; p++ {
		ps = append(ps, p)
	}
	return ps
}

type ParameterGroup struct {
	params map[EditorParameter]interface{}
	level  int
	next   *ParameterGroup
}

// Registers holds parameter values, organized in nested groups.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates registers with default values. If conf is non-nil,
// keys "display.<name>" override the defaults.
func NewRegisters(conf schuko.Configuration) *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	if conf != nil {
		for _, p := range Parameters() {
			if p == P_REDRAW {
				continue
			}
			if key := "display." + p.String(); conf.IsSet(key) {
				regs.base[p] = conf.GetBool(key)
			}
		}
	}
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_SHOWNODES] = true
	p[P_SHOWANCHORS] = true
	p[P_SHOWHINTS] = false
	p[P_SHOWGUIDES] = true
	p[P_SHOWMETRICS] = true
	p[P_PREVIEW] = false
	p[P_REDRAW] = true
}

// Begingroup opens a new group.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group, dropping all values pushed in it.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Level returns the current group nesting level.
func (regs *Registers) Level() int {
	return regs.grouplevel
}

// Push sets a parameter value in the current group.
func (regs *Registers) Push(key EditorParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[EditorParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the value of a parameter, searching the groups from the
// innermost outwards.
func (regs *Registers) Get(key EditorParameter) interface{} {
	checkKey(key)
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

// B returns the value of a boolean parameter.
func (regs *Registers) B(key EditorParameter) bool {
	b, _ := regs.Get(key).(bool)
	return b
}

// Toggle flips a boolean parameter in the current group and returns the
// new value.
func (regs *Registers) Toggle(key EditorParameter) bool {
	v := !regs.B(key)
	regs.Push(key, v)
	return v
}

func checkKey(key EditorParameter) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of editor parameters")
	}
}
