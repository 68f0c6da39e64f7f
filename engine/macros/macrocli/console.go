package main

import (
	"strings"

	"github.com/npillmayer/fontmacros/core/parameters"
	"github.com/pterm/pterm"
)

// ptermDisplay stands in for a glyph view. Instead of redrawing glyphs, it
// prints a status line for the current selection.
type ptermDisplay struct {
	intp      *Intp
	suspended int
}

func (d *ptermDisplay) SuspendRedraw() {
	d.suspended++
}

func (d *ptermDisplay) ResumeRedraw() {
	if d.suspended > 0 {
		d.suspended--
	}
}

func (d *ptermDisplay) Redraw() {
	if d.suspended > 0 {
		return
	}
	sess := d.intp.sess
	if sess.Font() == nil {
		return
	}
	var status []string
	for _, l := range sess.Layers() {
		s := l.Name()
		if sess.Settings.B(parameters.P_SHOWNODES) {
			s += " " + pterm.Gray(len(l.Selection()), " sel")
		}
		if sess.Settings.B(parameters.P_SHOWANCHORS) {
			s += " " + pterm.Gray(len(l.Anchors), " anchors")
		}
		if sess.Settings.B(parameters.P_SHOWHINTS) {
			s += " " + pterm.Gray(len(l.Hints), " hints")
		}
		if sess.Settings.B(parameters.P_SHOWGUIDES) {
			s += " " + pterm.Gray(len(l.Guides), " guides")
		}
		status = append(status, s)
	}
	if len(status) > 0 {
		pterm.Info.Println(strings.Join(status, " | "))
	}
}

// ptermConsole is the macro output window.
type ptermConsole struct{}

func (ptermConsole) Logf(format string, v ...interface{}) {
	pterm.Printfln(format, v...)
}

func (ptermConsole) Notify(msg string) {
	pterm.Warning.Println(msg)
}
