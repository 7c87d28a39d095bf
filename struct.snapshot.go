package terrasim

import (
	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Snapshot records simulation state at the end of one completed timestep.
// All fields are copies; a snapshot is never mutated after creation.
type Snapshot struct {
	Step int     // 0-based timestep index
	Time float64 // elapsed simulated years, Step*dt

	Elevation         grid.Field
	ErosionRate       grid.Field // damped, pre-clamp dz for the step
	CumulativeErosion grid.Field // running sum of per-step deltas
	Flux              grid.Field // transport capacity T

	MinElevation, MaxElevation, MeanElevation float64

	// TotalVolumeChange is the signed step volume, Σ dz · cellWidth²;
	// negative when the surface loses material net.
	TotalVolumeChange float64
}

func newSnapshot(gd grid.Definition, step int, dt float64, z, dz, cum, flux grid.Field) Snapshot {
	z64 := z.Float64s()
	vol := 0.
	for _, d := range dz {
		vol += float64(d)
	}
	return Snapshot{
		Step:              step,
		Time:              float64(step) * dt,
		Elevation:         z.Copy(),
		ErosionRate:       dz.Copy(),
		CumulativeErosion: cum.Copy(),
		Flux:              flux.Copy(),
		MinElevation:      floats.Min(z64),
		MaxElevation:      floats.Max(z64),
		MeanElevation:     stat.Mean(z64, nil),
		TotalVolumeChange: vol * gd.CellArea(),
	}
}

// MeanErodedDepth summarizes a cumulative-erosion field as the average
// eroded depth over the grid, counting only cells with net loss. Used as
// the scalar response by the analysis wrappers.
func MeanErodedDepth(cum grid.Field) float64 {
	if len(cum) == 0 {
		return 0
	}
	s := 0.
	for _, v := range cum {
		if v < 0 {
			s -= float64(v)
		}
	}
	return s / float64(len(cum))
}
