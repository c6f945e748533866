package heatmap

import (
	"image/color"
	"math"
	"sort"
)

// Stop pairs a density threshold in [0, 1] with the color rendered at exactly
// that threshold.
type Stop struct {
	Threshold float64
	Color     color.NRGBA
}

// Gradient is an ordered list of stops spanning [0, 1]. Lookups between stops
// interpolate each channel linearly; lookups at 0 and 1 return the first and
// last stop verbatim.
type Gradient []Stop

// DefaultGradient is the cold-to-hot ramp used for pitch location heatmaps.
// The zero stop is fully transparent so empty areas show the background.
func DefaultGradient() Gradient {
	return Gradient{
		{Threshold: 0, Color: color.NRGBA{R: 30, G: 64, B: 175, A: 0}},
		{Threshold: 0.25, Color: color.NRGBA{R: 59, G: 130, B: 246, A: 140}},
		{Threshold: 0.5, Color: color.NRGBA{R: 34, G: 197, B: 94, A: 190}},
		{Threshold: 0.75, Color: color.NRGBA{R: 250, G: 204, B: 21, A: 220}},
		{Threshold: 1, Color: color.NRGBA{R: 239, G: 68, B: 68, A: 255}},
	}
}

func (g Gradient) sorted() Gradient {
	out := append(Gradient(nil), g...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold < out[j].Threshold
	})
	return out
}

// ColorAt maps a density value to a color. Values outside [0, 1] clamp to the
// endpoint stops.
func (g Gradient) ColorAt(v float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	if len(g) == 1 {
		return g[0].Color
	}

	if v <= g[0].Threshold {
		return g[0].Color
	}
	last := g[len(g)-1]
	if v >= last.Threshold {
		return last.Color
	}

	for i := 0; i < len(g)-1; i++ {
		lo, hi := g[i], g[i+1]
		if v < lo.Threshold || v > hi.Threshold {
			continue
		}
		span := hi.Threshold - lo.Threshold
		if span <= 0 {
			return hi.Color
		}
		t := (v - lo.Threshold) / span
		return color.NRGBA{
			R: lerpChannel(lo.Color.R, hi.Color.R, t),
			G: lerpChannel(lo.Color.G, hi.Color.G, t),
			B: lerpChannel(lo.Color.B, hi.Color.B, t),
			A: lerpChannel(lo.Color.A, hi.Color.A, t),
		}
	}

	return last.Color
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
