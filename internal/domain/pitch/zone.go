package pitch

// Strike-zone geometry in normalized plate-crossing coordinates. The zone is a
// fixed axis-aligned rectangle centered at the origin; pitch locations live in
// [-1, 1] on both axes.
const (
	ZoneLeft   = -0.4
	ZoneRight  = 0.4
	ZoneBottom = -0.45
	ZoneTop    = 0.45

	// BallRadius is the normalized ball radius. A pitch counts as a strike when
	// any part of the ball touches the zone, not just its center.
	BallRadius = 0.07

	// shadowInnerScale is the width/height of the inner "command" rectangle;
	// the shadow zone is the band between it and the zone edge.
	shadowInnerScale = 0.75
)

// IsStrike reports whether the ball circle at (x, y) intersects the zone
// rectangle. The test is closed-form and total: out-of-range inputs are simply
// classified, never rejected.
func IsStrike(x, y float64) bool {
	cx := clamp(x, ZoneLeft, ZoneRight)
	cy := clamp(y, ZoneBottom, ZoneTop)

	dx := x - cx
	dy := y - cy

	return dx*dx+dy*dy <= BallRadius*BallRadius
}

// InShadowZone reports whether the pitch center lands in the outer 25% band of
// the zone on either axis. The zone center is not shadow zone.
func InShadowZone(x, y float64) bool {
	if !inZoneRect(x, y) {
		return false
	}

	innerHalfW := (ZoneRight - ZoneLeft) / 2 * shadowInnerScale
	innerHalfH := (ZoneTop - ZoneBottom) / 2 * shadowInnerScale
	inInner := x >= -innerHalfW && x <= innerHalfW && y >= -innerHalfH && y <= innerHalfH

	return !inInner
}

// InBottomThird reports whether the pitch center lands in the lowest of three
// equal horizontal bands of the zone.
func InBottomThird(x, y float64) bool {
	return inZoneRect(x, y) && y < ZoneBottom+zoneBandHeight()
}

// InTopThird reports whether the pitch center lands in the highest of three
// equal horizontal bands of the zone.
func InTopThird(x, y float64) bool {
	return inZoneRect(x, y) && y > ZoneTop-zoneBandHeight()
}

func inZoneRect(x, y float64) bool {
	return x >= ZoneLeft && x <= ZoneRight && y >= ZoneBottom && y <= ZoneTop
}

func zoneBandHeight() float64 {
	return (ZoneTop - ZoneBottom) / 3
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
