package terrasim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
)

func flatSurface(gd grid.Definition, v float32) grid.Field {
	f := grid.NewField(gd)
	f.Fill(v)
	return f
}

func roughSurface(gd grid.Definition) grid.Field {
	f := grid.NewField(gd)
	for r := 0; r < gd.NR; r++ {
		for c := 0; c < gd.NC; c++ {
			f[gd.CellIndex(r, c)] = float32(1000 + 40*math.Sin(float64(r)*0.7) + 25*math.Cos(float64(c)*0.9))
		}
	}
	return f
}

func testParams(steps int) Parameters {
	p := DefaultParameters()
	p.NumSteps = steps
	return p
}

func TestFlatTerrainIdempotence(t *testing.T) {
	gd := grid.Definition{NR: 20, NC: 20, Cw: 10}
	sim, err := NewSimulator(gd, flatSurface(gd, 500))
	if err != nil {
		t.Fatal(err)
	}
	snaps, err := sim.Run(context.Background(), testParams(10))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range snaps {
		for i := range s.Elevation {
			if s.Elevation[i] != 500 {
				t.Fatalf("step %d cell %d: elevation %g, want 500 bit-for-bit", s.Step, i, s.Elevation[i])
			}
			if s.Flux[i] != 0 || s.ErosionRate[i] != 0 {
				t.Fatalf("step %d cell %d: flux %g erosion %g, want 0 on flat terrain", s.Step, i, s.Flux[i], s.ErosionRate[i])
			}
		}
	}
}

func TestSnapshotCountAndMonotoneTime(t *testing.T) {
	gd := grid.Definition{NR: 15, NC: 12, Cw: 10}
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	p := testParams(25)
	p.Dt = 0.5
	snaps, err := sim.Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != p.NumSteps {
		t.Fatalf("len(snaps) = %d, want %d", len(snaps), p.NumSteps)
	}
	for i, s := range snaps {
		if s.Step != i {
			t.Errorf("snaps[%d].Step = %d", i, s.Step)
		}
		if s.Time != float64(i)*p.Dt {
			t.Errorf("snaps[%d].Time = %g, want %g", i, s.Time, float64(i)*p.Dt)
		}
	}
}

func TestDeterminism(t *testing.T) {
	gd := grid.Definition{NR: 18, NC: 18, Cw: 10}
	elev := roughSurface(gd)
	run := func() []Snapshot {
		sim, err := NewSimulator(gd, elev)
		if err != nil {
			t.Fatal(err)
		}
		snaps, err := sim.Run(context.Background(), testParams(15))
		if err != nil {
			t.Fatal(err)
		}
		return snaps
	}
	a, b := run(), run()
	for i := range a {
		for j := range a[i].Elevation {
			if a[i].Elevation[j] != b[i].Elevation[j] || a[i].ErosionRate[j] != b[i].ErosionRate[j] {
				t.Fatalf("step %d cell %d: runs differ", i, j)
			}
		}
	}
}

func TestSimulatorReusableAcrossRuns(t *testing.T) {
	gd := grid.Definition{NR: 16, NC: 16, Cw: 10}
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	fast, err := ModeFast.Parameters()
	if err != nil {
		t.Fatal(err)
	}
	fast.NumSteps = 5
	if _, err := sim.Run(context.Background(), fast); err != nil {
		t.Fatal(err)
	}
	// a second run with different parameters restarts from the original
	a, err := sim.Run(context.Background(), testParams(8))
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fresh.Run(context.Background(), testParams(8))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		for j := range a[i].Elevation {
			if a[i].Elevation[j] != b[i].Elevation[j] {
				t.Fatalf("step %d cell %d: reused simulator diverged from fresh one", i, j)
			}
		}
	}
}

func TestBoundsInvariant(t *testing.T) {
	gd := grid.Definition{NR: 20, NC: 20, Cw: 5}
	p := testParams(30)
	p.RainfallFactor = 5000 // force clamping
	p.MinElevation, p.MaxElevation = 960, 1040
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	snaps, err := sim.Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range snaps {
		for i, z := range s.Elevation {
			if float64(z) < p.MinElevation || float64(z) > p.MaxElevation {
				t.Fatalf("step %d cell %d: elevation %g outside [%g, %g]", s.Step, i, z, p.MinElevation, p.MaxElevation)
			}
		}
	}
}

func TestValidationFailures(t *testing.T) {
	gd := grid.Definition{NR: 5, NC: 5, Cw: 10}
	sim, err := NewSimulator(gd, flatSurface(gd, 100))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero dt", func(p *Parameters) { p.Dt = 0 }},
		{"negative dt", func(p *Parameters) { p.Dt = -1 }},
		{"zero steps", func(p *Parameters) { p.NumSteps = 0 }},
		{"zero bulk density", func(p *Parameters) { p.BulkDensity = 0 }},
		{"vertical transport above 1", func(p *Parameters) { p.VerticalTransportCoeff = 1.5 }},
		{"NaN flow exponent", func(p *Parameters) { p.FlowExponent = math.NaN() }},
		{"Inf rainfall", func(p *Parameters) { p.RainfallFactor = math.Inf(1) }},
		{"inverted clamps", func(p *Parameters) { p.MinElevation, p.MaxElevation = 10, 10 }},
		{"damping too low", func(p *Parameters) { p.DampingFactor = 0.4 }},
		{"damping too high", func(p *Parameters) { p.DampingFactor = 1.1 }},
	} {
		p := DefaultParameters()
		tc.mutate(&p)
		snaps, err := sim.Run(context.Background(), p)
		if !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: err = %v, want ErrInvalidParameters", tc.name, err)
		}
		if len(snaps) != 0 {
			t.Errorf("%s: %d snapshots produced before validation failure", tc.name, len(snaps))
		}
	}
}

func TestCallbackAbortKeepsPriorSnapshots(t *testing.T) {
	gd := grid.Definition{NR: 10, NC: 10, Cw: 10}
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	boom := fmt.Errorf("collaborator failed")
	sim.Progress = func(step, total int) error {
		if step == 3 {
			return boom
		}
		return nil
	}
	snaps, err := sim.Run(context.Background(), testParams(10))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the callback error", err)
	}
	if errors.Is(err, ErrRunCanceled) {
		t.Fatal("a generic callback failure must not read as cancellation")
	}
	var se *StepError
	if !errors.As(err, &se) || se.Step != 3 {
		t.Fatalf("err = %v, want StepError at step 3", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("len(snaps) = %d, want 3 completed steps before the failure", len(snaps))
	}
}

func TestCallbackCancellation(t *testing.T) {
	gd := grid.Definition{NR: 10, NC: 10, Cw: 10}
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	sim.Progress = func(step, total int) error {
		if step == 2 {
			return ErrRunCanceled
		}
		return nil
	}
	snaps, err := sim.Run(context.Background(), testParams(10))
	if !errors.Is(err, ErrRunCanceled) {
		t.Fatalf("err = %v, want ErrRunCanceled", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("len(snaps) = %d, want 2", len(snaps))
	}
}

func TestContextCancellation(t *testing.T) {
	gd := grid.Definition{NR: 10, NC: 10, Cw: 10}
	sim, err := NewSimulator(gd, roughSurface(gd))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snaps, err := sim.Run(ctx, testParams(10))
	if !errors.Is(err, ErrRunCanceled) {
		t.Fatalf("err = %v, want ErrRunCanceled", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("len(snaps) = %d, want 0", len(snaps))
	}
}

func TestNonFiniteFailure(t *testing.T) {
	// steep ramp: gradient magnitudes in the thousands, so flow^500
	// overflows on the first step
	gd := grid.Definition{NR: 12, NC: 12, Cw: 1}
	elev := grid.NewField(gd)
	for r := 0; r < gd.NR; r++ {
		for c := 0; c < gd.NC; c++ {
			elev[gd.CellIndex(r, c)] = float32(1000 * r)
		}
	}
	sim, err := NewSimulator(gd, elev)
	if err != nil {
		t.Fatal(err)
	}
	p := testParams(5)
	p.FlowExponent = 500 // finite, passes validation, overflows flow^m
	snaps, err := sim.Run(context.Background(), p)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("err = %v, want ErrNonFinite", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("len(snaps) = %d, want no snapshot for the failing step", len(snaps))
	}
}

func TestNewSimulatorShapeMismatch(t *testing.T) {
	gd := grid.Definition{NR: 5, NC: 5, Cw: 10}
	if _, err := NewSimulator(gd, make(grid.Field, 10)); err == nil {
		t.Fatal("want error for mismatched field length")
	}
	if _, err := NewSimulator(grid.Definition{NR: 5, NC: 5}, make(grid.Field, 25)); err == nil {
		t.Fatal("want error for zero cell width")
	}
}
