package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pipe pair with a safe gap. GapTop is fixed at creation;
// the gap height is a simulation constant.
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64 // Y where the gap starts
	Passed bool    // Scored already
}

// Column returns the obstacle's full-height footprint.
func (o Obstacle) Column(width, worldH float64) core.RectF {
	return core.NewRectF(o.X, 0, width, worldH)
}

// GapBottom returns the exclusive bottom of the gap.
func (o Obstacle) GapBottom(gapHeight float64) float64 {
	return o.GapTop + gapHeight
}

// advanceObstacles scrolls every obstacle left by dx.
func advanceObstacles(obs []Obstacle, dx float64) {
	for i := range obs {
		obs[i].X -= dx
	}
}

// recycleObstacles drops obstacles whose right edge has left the screen,
// preserving the order of the rest. It returns how many dropped obstacles
// had been scored.
func recycleObstacles(obs []Obstacle, width float64) ([]Obstacle, int) {
	cleared := 0
	kept := obs[:0]
	for _, o := range obs {
		if o.X > -width {
			kept = append(kept, o)
			continue
		}
		if o.Passed {
			cleared++
		}
	}
	return kept, cleared
}

// shouldSpawn reports whether a new obstacle is due: none are active, or
// the newest has scrolled past the spawn threshold.
func shouldSpawn(obs []Obstacle, p Params) bool {
	if len(obs) == 0 {
		return true
	}
	return obs[len(obs)-1].X < p.WorldW-p.SpawnThreshold
}

// gapRange returns the inclusive range of valid gap tops.
// A config too small for its gap collapses the range to the top margin.
func gapRange(p Params) (lo, hi float64) {
	lo = p.GapMargin
	hi = p.WorldH - p.GapHeight - p.GapMargin
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// spawnObstacle creates an obstacle at the right edge with a gap top drawn
// uniformly from whole units in gapRange.
func spawnObstacle(rng RandSource, p Params) Obstacle {
	lo, hi := gapRange(p)
	span := int(math.Floor(hi - lo))
	gapTop := lo
	if span > 0 {
		gapTop += float64(rng.Intn(span + 1))
	}
	return Obstacle{
		X:      p.WorldW,
		GapTop: gapTop,
	}
}
