package terrasim

import (
	"context"
	"math"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/sediment"
	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/tem"
)

// Run executes one simulation: validate, reset to the original surface,
// then NumSteps of gradient → slope/aspect → flow → capacity → divergence →
// update. One snapshot is appended per completed step; on failure the
// snapshots already produced are returned alongside the error and no
// partial snapshot exists for the failing step. Cancellation (ctx or the
// progress callback) surfaces as an error satisfying
// errors.Is(err, ErrRunCanceled).
func (s *Simulator) Run(ctx context.Context, p Parameters) ([]Snapshot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gd := s.GD
	z := s.original.Copy()
	cum := grid.NewField(gd)

	// per-run scratch, reused across steps
	dx, dy := grid.NewField(gd), grid.NewField(gd)
	slope, aspect := grid.NewField(gd), grid.NewField(gd)
	flow, capac := grid.NewField(gd), grid.NewField(gd)
	tx, ty, div := grid.NewField(gd), grid.NewField(gd), grid.NewField(gd)
	dz := grid.NewField(gd)

	snaps := make([]Snapshot, 0, p.NumSteps)
	for step := 0; step < p.NumSteps; step++ {
		t := float64(step) * p.Dt
		if err := ctx.Err(); err != nil {
			return snaps, &StepError{Step: step, Time: t, Err: ErrRunCanceled}
		}
		if s.Progress != nil {
			if err := s.Progress(step, p.NumSteps); err != nil {
				return snaps, &StepError{Step: step, Time: t, Err: err}
			}
		}

		tem.Gradient(gd, z, dx, dy)
		tem.SlopeAspect(dx, dy, slope, aspect)
		tem.FlowAccumulation(dx, dy, flow)
		sediment.Capacity(flow, slope, p.RainfallFactor, p.FlowExponent, p.SlopeExponent, capac)
		sediment.Divergence(gd, capac, aspect, tx, ty, div)
		sediment.Update(z, div, p.Dt, p.BulkDensity, p.DampingFactor, p.MinElevation, p.MaxElevation, dz)

		if !allFinite(dz) {
			return snaps, &StepError{Step: step, Time: t, Err: ErrNonFinite}
		}
		for i := range cum {
			cum[i] += dz[i]
		}
		snaps = append(snaps, newSnapshot(gd, step, p.Dt, z, dz, cum, capac))
	}
	return snaps, nil
}

func allFinite(f grid.Field) bool {
	for _, v := range f {
		v64 := float64(v)
		if math.IsNaN(v64) || math.IsInf(v64, 0) {
			return false
		}
	}
	return true
}
