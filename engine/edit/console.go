package edit

import (
	"fmt"
	"strings"
)

// Display is the view of a session's font.
type Display interface {
	SuspendRedraw() // stop redrawing on changes
	ResumeRedraw()  // undo a SuspendRedraw
	Redraw()        // redraw now
}

// Console is where a session reports to the user.
type Console interface {
	Logf(format string, v ...interface{}) // output of macros
	Notify(msg string)                    // a notice to be acknowledged by the user
}

// --- Default implementations -----------------------------------------------

// NullDisplay is a display which just keeps track of redraw suspension.
type NullDisplay struct {
	Suspended int // current suspension depth
	Redraws   int // number of redraws requested
}

// SuspendRedraw is part of interface Display.
func (d *NullDisplay) SuspendRedraw() {
	d.Suspended++
}

// ResumeRedraw is part of interface Display.
func (d *NullDisplay) ResumeRedraw() {
	if d.Suspended == 0 {
		tracer().Errorf("display: unbalanced resume of redraw")
		return
	}
	d.Suspended--
}

// Redraw is part of interface Display.
func (d *NullDisplay) Redraw() {
	if d.Suspended > 0 {
		tracer().Debugf("display: redraw while suspended")
		return
	}
	d.Redraws++
}

var _ Display = &NullDisplay{}

// TraceConsole is a console writing to the trace.
type TraceConsole struct{}

// Logf is part of interface Console.
func (TraceConsole) Logf(format string, v ...interface{}) {
	tracer().Infof(format, v...)
}

// Notify is part of interface Console.
func (TraceConsole) Notify(msg string) {
	tracer().Infof("NOTICE: %s", msg)
}

var _ Console = TraceConsole{}

// BufferConsole is a console collecting its output in memory.
type BufferConsole struct {
	Lines   []string
	Notices []string
}

// Logf is part of interface Console.
func (c *BufferConsole) Logf(format string, v ...interface{}) {
	c.Lines = append(c.Lines, fmt.Sprintf(format, v...))
}

// Notify is part of interface Console.
func (c *BufferConsole) Notify(msg string) {
	c.Notices = append(c.Notices, msg)
}

// Reset clears all output.
func (c *BufferConsole) Reset() {
	c.Lines, c.Notices = nil, nil
}

// Contains is a predicate: has any log line or notice s as a substring?
func (c *BufferConsole) Contains(s string) bool {
	for _, l := range append(append([]string(nil), c.Lines...), c.Notices...) {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func (c *BufferConsole) String() string {
	return strings.Join(c.Lines, "\n")
}

var _ Console = &BufferConsole{}
