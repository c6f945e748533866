package heatmap

import "testing"

func TestBuildDensity_EmptyInput(t *testing.T) {
	g := BuildDensity(nil, DefaultParams())

	if !g.IsEmpty() {
		t.Fatalf("expected all-zero grid for no pitches")
	}
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.At(row, col) != 0 {
				t.Fatalf("cell (%d,%d) is %f, want 0", row, col, g.At(row, col))
			}
		}
	}
}

func TestBuildDensity_SinglePointNormalizesToOne(t *testing.T) {
	g := BuildDensity([]Point{{X: 0, Y: 0}}, DefaultParams())

	if g.IsEmpty() {
		t.Fatalf("grid must not be empty with one pitch")
	}

	max := 0.0
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			v := g.At(row, col)
			if v < 0 {
				t.Fatalf("negative density at (%d,%d): %f", row, col, v)
			}
			if v > max {
				max = v
			}
		}
	}
	if max != 1.0 {
		t.Fatalf("post-normalization max = %f, want exactly 1.0", max)
	}
}

func TestBuildDensity_HotspotAtPointLocation(t *testing.T) {
	params := DefaultParams()
	g := BuildDensity([]Point{{X: 0, Y: 0}}, params)

	center := (g.Size - 1) / 2
	if g.At(center, center) < 0.9 {
		t.Fatalf("expected hotspot near grid center, got %f", g.At(center, center))
	}
	if g.At(0, 0) > 0.01 {
		t.Fatalf("far corner should hold almost no density, got %f", g.At(0, 0))
	}
}

func TestBuildDensity_YAxisInverted(t *testing.T) {
	// y=+1 is the top of the zone and must land in row 0.
	g := BuildDensity([]Point{{X: 0, Y: 1}}, DefaultParams())

	topMax, bottomMax := 0.0, 0.0
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			v := g.At(row, col)
			if row < g.Size/2 && v > topMax {
				topMax = v
			}
			if row >= g.Size/2 && v > bottomMax {
				bottomMax = v
			}
		}
	}

	if topMax <= bottomMax {
		t.Fatalf("high pitch accumulated below the midline: top=%f bottom=%f", topMax, bottomMax)
	}
}

func TestBuildDensity_CoincidentPointsStayNormalized(t *testing.T) {
	points := make([]Point, 40)
	for i := range points {
		points[i] = Point{X: -0.25, Y: 0.3}
	}

	g := BuildDensity(points, DefaultParams())
	if g.Max != 1 {
		t.Fatalf("stacked identical pitches must still normalize, max=%f", g.Max)
	}
}

func TestBuildDensity_Deterministic(t *testing.T) {
	points := []Point{{X: 0.1, Y: -0.2}, {X: -0.4, Y: 0.45}, {X: 0.33, Y: 0.1}}

	a := BuildDensity(points, DefaultParams())
	b := BuildDensity(points, DefaultParams())

	for row := 0; row < a.Size; row++ {
		for col := 0; col < a.Size; col++ {
			if a.At(row, col) != b.At(row, col) {
				t.Fatalf("rebuild differs at (%d,%d)", row, col)
			}
		}
	}
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	def := DefaultParams()

	if p.GridSize != def.GridSize || p.InfluenceRadius != def.InfluenceRadius || p.BlurPasses != def.BlurPasses {
		t.Fatalf("zero params must fall back to defaults: %+v", p)
	}
	if p.Sigma <= 0 {
		t.Fatalf("sigma must be derived from the radius, got %f", p.Sigma)
	}
}
