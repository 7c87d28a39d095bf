// Package sediment evaluates sediment transport capacity over a terrain
// raster and applies the continuity equation to the elevation surface.
package sediment

import (
	"math"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
)

// Capacity fills dst with the power-law transport capacity
//
//	T = rainfall * flow^m * sin(max(slope,0))^n
//
// Slope of exactly zero yields zero capacity regardless of flow: flat
// terrain transports no sediment. Non-finite results are left in place for
// the caller to detect; nothing is clamped here.
func Capacity(flow, slope grid.Field, rainfall, m, n float64, dst grid.Field) {
	for i := range flow {
		s := float64(slope[i])
		if s < 0 {
			s = 0
		}
		dst[i] = float32(rainfall * math.Pow(float64(flow[i]), m) * math.Pow(math.Sin(s), n))
	}
}
