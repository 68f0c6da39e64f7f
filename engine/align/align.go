package align

import (
	"math"
	"sort"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/funit"
)

// ErrEmptySelection is returned by every transform when called without points.
var ErrEmptySelection = core.Error(core.ENOSELECTION, "nothing selected")

// Extreme selects which coordinate of a selection is moved onto a reference.
type Extreme int8

// Lower references (baseline, descender, LSB) align the minimum, upper
// references (ascender, cap height, x-height, RSB) the maximum.
// Centering aligns the midpoint of minimum and maximum.
const (
	Min Extreme = iota
	Max
	Mid
)

func (e Extreme) String() string {
	switch e {
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return "mid"
}

// Of returns the extreme value of points on axis a.
func (e Extreme) Of(points []*funit.Point, a funit.Axis) (float64, error) {
	if len(points) == 0 {
		return 0, ErrEmptySelection
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		v := p.Get(a)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	switch e {
	case Min:
		return lo, nil
	case Max:
		return hi, nil
	}
	return (lo + hi) / 2, nil
}

// Delta computes the translation which moves the extreme of points on axis a
// onto ref. Points are not modified.
func Delta(points []*funit.Point, a funit.Axis, e Extreme, ref float64) (float64, error) {
	x, err := e.Of(points, a)
	if err != nil {
		return 0, err
	}
	return ref - x, nil
}

// Translate moves every point by d along axis a. The other coordinate is
// left untouched.
func Translate(points []*funit.Point, a funit.Axis, d float64) {
	if d == 0 {
		return
	}
	for _, p := range points {
		p.Set(a, p.Get(a)+d)
	}
}

// Align moves points so that their extreme on axis a equals ref, and
// returns the delta applied.
func Align(points []*funit.Point, a funit.Axis, e Extreme, ref float64) (float64, error) {
	d, err := Delta(points, a, e, ref)
	if err != nil {
		return 0, err
	}
	tracer().Debugf("align %d points: %s(%s) -> %s, delta=%s", len(points), e, a,
		funit.Format(ref), funit.Format(d))
	Translate(points, a, d)
	return d, nil
}

// Distribute spaces points uniformly along axis a, keeping the outermost
// points in place. A single point is left unchanged.
func Distribute(points []*funit.Point, a funit.Axis) error {
	if len(points) == 0 {
		return ErrEmptySelection
	}
	if len(points) < 2 {
		return nil
	}
	sorted := make([]*funit.Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Get(a) < sorted[j].Get(a)
	})
	lo, hi := sorted[0].Get(a), sorted[len(sorted)-1].Get(a)
	step := (hi - lo) / float64(len(sorted)-1)
	for i, p := range sorted {
		p.Set(a, lo+float64(i)*step)
	}
	sorted[len(sorted)-1].Set(a, hi) // avoid accumulated rounding at the far end
	return nil
}

// --- Metric lines ----------------------------------------------------------

// Direction is a vertical direction for bumping a selection.
type Direction int8

// Up and Down
const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// NextLine finds the metric line following y in direction dir. Only lines
// strictly beyond y are considered. If there is none, the outermost line in
// direction dir is returned and beyond is false.
func NextLine(lines []font.MetricLine, y float64, dir Direction) (line font.MetricLine, beyond bool) {
	if len(lines) == 0 {
		return font.MetricLine{Name: "baseline"}, false
	}
	sorted := make([]font.MetricLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })
	if dir == Up {
		for _, l := range sorted {
			if l.Y > y {
				return l, true
			}
		}
		return sorted[len(sorted)-1], false
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Y < y {
			return sorted[i], true
		}
	}
	return sorted[0], false
}

// Bump moves a selection vertically onto the next metric line in direction
// dir. Moving up aligns the top of the selection, moving down the bottom.
// Bump returns the target line and the distance the selection moved, which is
// 0 if the selection already sits on the outermost line.
func Bump(points []*funit.Point, lines []font.MetricLine, dir Direction) (font.MetricLine, float64, error) {
	e := Max
	if dir == Down {
		e = Min
	}
	y, err := e.Of(points, funit.Vertical)
	if err != nil {
		return font.MetricLine{}, 0, err
	}
	line, beyond := NextLine(lines, y, dir)
	if !beyond {
		tracer().Infof("no metric line %s of %s, using %s", dir, funit.Format(y), line.Name)
	}
	d, err := Align(points, funit.Vertical, e, line.Y)
	return line, d, err
}

// --- Advance width ---------------------------------------------------------

// WidthCenter returns the horizontal center of an advance width, rounded
// down to whole units.
func WidthCenter(width float64) float64 {
	return funit.FloorDiv2(width)
}

// CenterInWidth returns the horizontal shift which balances the sidebearings
// of a glyph, keeping its width constant. The new LSB is floor((lsb+rsb)/2).
func CenterInWidth(lsb, rsb float64) float64 {
	return funit.FloorDiv2(lsb+rsb) - lsb
}
