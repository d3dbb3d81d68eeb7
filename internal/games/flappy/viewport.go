package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// viewport maps world units onto a cols x rows terminal field.
type viewport struct {
	sx, sy float64
}

func newViewport(p Params, cols, rows int) viewport {
	return viewport{
		sx: float64(cols) / p.WorldW,
		sy: float64(rows) / p.WorldH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// rect converts a world box into cells, never smaller than one cell.
func (v viewport) rect(r core.RectF) core.Rect {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1 := core.Max(v.col(r.Right()), x0+1)
	y1 := core.Max(v.row(r.Bottom()), y0+1)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
