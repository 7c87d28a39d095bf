package sediment

import (
	"math"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/tem"
)

// Divergence decomposes the scalar capacity field into directional
// components along the flow aspect and fills div with their spatial
// divergence, positive where flux leaves a cell (net erosion), negative
// where it converges (net deposition). tx and ty are scratch fields of
// grid size, overwritten.
func Divergence(gd grid.Definition, capacity, aspect, tx, ty, div grid.Field) {
	for i := range capacity {
		t, a := float64(capacity[i]), float64(aspect[i])
		tx[i] = float32(t * math.Cos(a))
		ty[i] = float32(t * math.Sin(a))
	}
	tem.GradX(gd, tx, div)
	tem.GradY(gd, ty, tx) // tx already consumed, reuse as scratch
	for i := range div {
		div[i] += tx[i]
	}
}
