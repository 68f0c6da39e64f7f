// Package funit implements coordinates and extents in font units.
//
/*
BSD License

Copyright (c) 2017–22, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package funit

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Point is a position in a glyph's design space, in font units.
// The y-axis points upwards, the baseline is at y=0.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Get returns the coordinate of p on axis a.
func (p Point) Get(a Axis) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Set changes the coordinate of p on axis a, leaving the other one untouched.
func (p *Point) Set(a Axis, v float64) {
	if a == Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)", Format(p.X), Format(p.Y))
}

// Axis selects one of the two coordinates of a point.
type Axis int8

// Horizontal refers to x-coordinates, Vertical to y-coordinates.
const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "x"
	}
	return "y"
}

// Rect is a bounding box.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent of a rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of a rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Low returns the minimum of r on axis a.
func (r Rect) Low(a Axis) float64 {
	return r.Min.Get(a)
}

// High returns the maximum of r on axis a.
func (r Rect) High(a Axis) float64 {
	return r.Max.Get(a)
}

// Union extends r to include point p.
func (r Rect) Union(p Point) Rect {
	r.Min.X, r.Max.X = math.Min(r.Min.X, p.X), math.Max(r.Max.X, p.X)
	r.Min.Y, r.Max.Y = math.Min(r.Min.Y, p.Y), math.Max(r.Max.Y, p.Y)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s–%s]", r.Min, r.Max)
}

// Bounds returns the bounding box of a set of points. If no points are
// given, ok will be false.
func Bounds(points ...Point) (r Rect, ok bool) {
	if len(points) == 0 {
		return
	}
	r = Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Union(p)
	}
	return r, true
}

// ---------------------------------------------------------------------------

var valuePattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|u|U)?$`)

// ParseValue parses a string to return a value in font units. A value may
// carry an optional unit suffix `u`.
// If a percentage value is given (`80%`), the second return value will be true
// and the numeric value is returned unscaled.
//
func ParseValue(s string) (float64, bool, error) {
	v := valuePattern.FindStringSubmatch(s)
	if len(v) < 2 {
		return 0, false, errors.New("format error parsing value")
	}
	n, err := strconv.ParseFloat(v[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing value")
	}
	return n, len(v) > 2 && v[2] == "%", nil
}

// Format formats a font unit value without trailing zeros.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FloorDiv2 halves v, rounding towards negative infinity.
// This is the convention used for midpoints of advance widths.
func FloorDiv2(v float64) float64 {
	return math.Floor(v / 2)
}
