package tem

import (
	"math"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
)

// minGradMag floors the gradient magnitude to keep downstream terms away
// from division by zero on flat terrain.
const minGradMag = 1e-6

// SlopeAspect fills slope (radians, >=0) and aspect (radians, signed) from
// the gradient pair. Aspect is the flow direction, i.e. the direction of
// steepest descent.
func SlopeAspect(dx, dy, slope, aspect grid.Field) {
	for i := range dx {
		gx, gy := float64(dx[i]), float64(dy[i])
		slope[i] = float32(math.Atan(math.Hypot(gx, gy)))
		aspect[i] = float32(math.Atan2(-gy, -gx))
	}
}

// FlowAccumulation fills flow with a contributing-area proxy derived from
// gradient magnitude: mag + 1, with mag floored at minGradMag. This is a
// deliberate simplification, not a drainage-network router; flat cells
// receive the floor value of ~1, never zero.
func FlowAccumulation(dx, dy, flow grid.Field) {
	for i := range dx {
		m := math.Hypot(float64(dx[i]), float64(dy[i]))
		if m < minGradMag {
			m = minGradMag
		}
		flow[i] = float32(m + 1)
	}
}
