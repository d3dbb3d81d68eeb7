package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// OutOfBounds reports whether the body touches the top or bottom of the world.
func OutOfBounds(body core.RectF, worldH float64) bool {
	return body.Y <= 0 || body.Bottom() >= worldH
}

// HitsGate reports whether the body collides with an obstacle: the spans
// overlap horizontally and the body is not fully inside the gap.
func HitsGate(body core.RectF, o Obstacle, width, gapHeight float64) bool {
	if !body.OverlapsX(o.Column(width, 0)) {
		return false
	}
	return !body.WithinY(o.GapTop, o.GapBottom(gapHeight))
}
