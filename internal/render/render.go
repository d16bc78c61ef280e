// Package render draws piano rolls.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/divVerent/midiroll/internal/roll"
)

// MaxHeight is the tallest roll image we produce.
const MaxHeight = 32767

const headerHeight = 16

// Layout sizes the roll image.
type Layout struct {
	HoleWidth     int     `yaml:"hole_width,omitempty"`
	HoleGap       int     `yaml:"hole_gap,omitempty"`
	PixelsPerBeat float64 `yaml:"pixels_per_beat,omitempty"`
	Margin        int     `yaml:"margin,omitempty"`
}

// DefaultLayout is used for all fields left zero.
var DefaultLayout = Layout{
	HoleWidth:     6,
	HoleGap:       3,
	PixelsPerBeat: 32,
	Margin:        16,
}

var (
	paperColor = colornames.Wheat
	laneColor  = colornames.Burlywood
	pedalColor = colornames.Tan
	holeColor  = colornames.Black
	labelColor = colornames.Saddlebrown
)

func (l Layout) withDefaults() Layout {
	if l.HoleWidth <= 0 {
		l.HoleWidth = DefaultLayout.HoleWidth
	}
	if l.HoleGap <= 0 {
		l.HoleGap = DefaultLayout.HoleGap
	}
	if l.PixelsPerBeat <= 0 {
		l.PixelsPerBeat = DefaultLayout.PixelsPerBeat
	}
	if l.Margin <= 0 {
		l.Margin = DefaultLayout.Margin
	}
	return l
}

func (l Layout) holeX(hole int) int {
	return l.Margin + hole*(l.HoleWidth+l.HoleGap)
}

// Roll renders intervals with time running downwards. A beat is
// PixelsPerBeat/timeDivisor pixels long.
func Roll(intervals []roll.Interval, timeBase uint16, timeDivisor float64, layout Layout) (*image.RGBA, error) {
	if timeBase == 0 {
		return nil, fmt.Errorf("time base must be positive")
	}
	if !(timeDivisor > 0) || math.IsInf(timeDivisor, 1) {
		return nil, fmt.Errorf("time divisor must be positive and finite, got %v", timeDivisor)
	}
	l := layout.withDefaults()
	if math.IsNaN(l.PixelsPerBeat) || math.IsInf(l.PixelsPerBeat, 1) {
		return nil, fmt.Errorf("pixels per beat must be finite, got %v", l.PixelsPerBeat)
	}
	scale := l.PixelsPerBeat / float64(timeBase) / timeDivisor
	y := func(tick int64) int {
		return l.Margin + headerHeight + int(math.Round(float64(tick)*scale))
	}

	var end int64
	for _, iv := range intervals {
		end = max(end, iv.End())
	}
	width := l.holeX(roll.NumHoles) - l.HoleGap + l.Margin
	if length := float64(end)*scale + float64(2*l.Margin+headerHeight); length > MaxHeight {
		return nil, fmt.Errorf("roll too long: %.0f pixels, at most %d allowed; increase the time divisor", length, MaxHeight)
	}
	height := y(end) + l.Margin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := func(r image.Rectangle, c color.Color) {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	fill(img.Bounds(), paperColor)

	top := l.Margin + headerHeight
	lane := func(hole int, c color.Color) {
		x := l.holeX(hole)
		fill(image.Rect(x, top, x+l.HoleWidth, height-l.Margin), c)
	}
	for _, hole := range []int{roll.HoleSustain, roll.HoleSoft, roll.NumHoles - 2, roll.NumHoles - 1} {
		lane(hole, pedalColor)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	for p := roll.LowestPitch; p <= roll.HighestPitch; p++ {
		if p%12 != 0 {
			continue
		}
		hole, _ := p.Hole()
		x := l.holeX(hole)
		fill(image.Rect(x+l.HoleWidth/2, top, x+l.HoleWidth/2+1, height-l.Margin), laneColor)
		d.Dot = fixed.P(x, l.Margin+headerHeight-4)
		d.DrawString(p.String())
	}

	for _, iv := range intervals {
		hole, ok := iv.Pitch.Hole()
		if !ok {
			continue
		}
		x := l.holeX(hole)
		y0, y1 := y(iv.Start), y(iv.End())
		if y1 <= y0 {
			y1 = y0 + 1
		}
		fill(image.Rect(x, y0, x+l.HoleWidth, y1), holeColor)
	}
	return img, nil
}
