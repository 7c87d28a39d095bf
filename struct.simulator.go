// Package terrasim advances a raster elevation model through time under a
// sediment-continuity equation: per step, slope/aspect and a flow proxy are
// derived from the surface, a power-law transport capacity field is
// evaluated, its flux divergence determines where sediment leaves or
// accumulates, and the surface is updated with damping and hard clamps.
// Analysis wrappers drive many independent runs for sensitivity, scenario
// and uncertainty studies.
package terrasim

import (
	"fmt"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
)

// ProgressFunc is invoked before each step with the 0-based step index and
// the total step count. A non-nil return aborts the run; return
// ErrRunCanceled (or an error wrapping it) to signal deliberate
// cancellation rather than failure.
type ProgressFunc func(step, total int) error

// Simulator owns one elevation grid for the lifetime of a run sequence.
// Run always restarts from the original surface captured at construction,
// so one Simulator is reusable across parameterizations. A Simulator must
// not be shared across concurrent runs; independent instances are fully
// isolated and safe to run in parallel.
type Simulator struct {
	GD       grid.Definition
	Progress ProgressFunc

	original grid.Field
}

// NewSimulator copies elev (length gd.Ncells()) as the immutable original
// surface.
func NewSimulator(gd grid.Definition, elev grid.Field) (*Simulator, error) {
	if len(elev) != gd.Ncells() {
		return nil, fmt.Errorf("terrasim.NewSimulator: elevation field has %d cells, grid needs %d", len(elev), gd.Ncells())
	}
	if gd.Cw <= 0 {
		return nil, fmt.Errorf("terrasim.NewSimulator: cell width must be positive, got %g", gd.Cw)
	}
	return &Simulator{GD: gd, original: elev.Copy()}, nil
}

// Original returns a copy of the pre-run surface.
func (s *Simulator) Original() grid.Field { return s.original.Copy() }
