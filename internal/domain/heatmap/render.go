package heatmap

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

// RenderOptions control the raster output. Rendering is a pure mapping from
// grid + options to pixels: identical inputs produce bit-identical output.
type RenderOptions struct {
	SizePx       int
	Gamma        float64
	Gradient     Gradient
	Background   color.NRGBA
	OverlayColor color.NRGBA
	OverlayWidth float64
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		SizePx:       320,
		Gamma:        0.8,
		Gradient:     DefaultGradient(),
		Background:   color.NRGBA{R: 15, G: 23, B: 42, A: 255},
		OverlayColor: color.NRGBA{R: 226, G: 232, B: 240, A: 255},
		OverlayWidth: 2,
	}
}

const minRenderSizePx = 32

// Render rasterizes a density grid: bilinear interpolation of the grid per
// output pixel, gamma correction, gradient lookup, then the zone outline and
// its 3x3 subdivision as a fixed overlay. An all-zero grid renders the
// outline over the plain background, with no gradient fill.
func Render(g *Grid, opts RenderOptions) (*image.RGBA, error) {
	if g == nil {
		return nil, errors.New("density grid is required")
	}
	if opts.SizePx < minRenderSizePx {
		return nil, errors.Newf("render size %dpx is below the %dpx minimum", opts.SizePx, minRenderSizePx)
	}
	if len(opts.Gradient) == 0 {
		opts.Gradient = DefaultGradient()
	}
	opts.Gradient = opts.Gradient.sorted()
	if opts.Gamma <= 0 {
		opts.Gamma = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.SizePx, opts.SizePx))
	fill(img, opts.Background)

	if !g.IsEmpty() {
		paintDensity(img, g, opts)
	}
	drawZoneOverlay(img, opts)

	return img, nil
}

func paintDensity(img *image.RGBA, g *Grid, opts RenderOptions) {
	size := opts.SizePx
	scale := float64(g.Size-1) / float64(size-1)

	for py := 0; py < size; py++ {
		gridRow := float64(py) * scale
		for px := 0; px < size; px++ {
			gridCol := float64(px) * scale

			v := bilinear(g, gridRow, gridCol)
			if v <= 0 {
				continue
			}
			v = math.Pow(v, opts.Gamma)

			blendPixel(img, px, py, opts.Gradient.ColorAt(v))
		}
	}
}

// bilinear samples the grid at fractional (row, col) from the four nearest
// cells.
func bilinear(g *Grid, row, col float64) float64 {
	r0 := int(math.Floor(row))
	c0 := int(math.Floor(col))
	r1 := minInt(r0+1, g.Size-1)
	c1 := minInt(c0+1, g.Size-1)
	fr := row - float64(r0)
	fc := col - float64(c0)

	top := g.At(r0, c0)*(1-fc) + g.At(r0, c1)*fc
	bottom := g.At(r1, c0)*(1-fc) + g.At(r1, c1)*fc

	return top*(1-fr) + bottom*fr
}

// blendPixel composites an NRGBA color over the existing pixel (src-over).
func blendPixel(img *image.RGBA, x, y int, c color.NRGBA) {
	if c.A == 0 {
		return
	}

	base := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a

	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(base.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(base.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(base.B)*inv) / 255),
		A: 255,
	})
}

// drawZoneOverlay strokes the strike-zone rectangle and its 3x3 internal
// subdivision. The overlay never depends on the density data.
func drawZoneOverlay(img *image.RGBA, opts RenderOptions) {
	dc := gg.NewContextForRGBA(img)
	dc.SetColor(opts.OverlayColor)
	dc.SetLineWidth(opts.OverlayWidth)

	size := float64(opts.SizePx - 1)
	toPx := func(x, y float64) (float64, float64) {
		return (x + 1) / 2 * size, (1 - y) / 2 * size
	}

	left, top := toPx(pitch.ZoneLeft, pitch.ZoneTop)
	right, bottom := toPx(pitch.ZoneRight, pitch.ZoneBottom)
	dc.DrawRectangle(left, top, right-left, bottom-top)
	dc.Stroke()

	thirdW := (pitch.ZoneRight - pitch.ZoneLeft) / 3
	thirdH := (pitch.ZoneTop - pitch.ZoneBottom) / 3
	for i := 1; i <= 2; i++ {
		x0, y0 := toPx(pitch.ZoneLeft+thirdW*float64(i), pitch.ZoneTop)
		x1, y1 := toPx(pitch.ZoneLeft+thirdW*float64(i), pitch.ZoneBottom)
		dc.DrawLine(x0, y0, x1, y1)

		x2, y2 := toPx(pitch.ZoneLeft, pitch.ZoneBottom+thirdH*float64(i))
		x3, y3 := toPx(pitch.ZoneRight, pitch.ZoneBottom+thirdH*float64(i))
		dc.DrawLine(x2, y2, x3, y3)
	}
	dc.Stroke()
}

func fill(img *image.RGBA, c color.NRGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

// ScaleTo resamples a rendered heatmap to the requested square size.
func ScaleTo(img image.Image, sizePx int) image.Image {
	bounds := img.Bounds()
	if sizePx <= 0 || (bounds.Dx() == sizePx && bounds.Dy() == sizePx) {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)

	return dst
}

// EncodePNG writes the raster as PNG.
func EncodePNG(img image.Image, w io.Writer) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encode heatmap png")
	}
	return nil
}
