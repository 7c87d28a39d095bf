package terrasim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"github.com/maseology/mmaths"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Range maps a unit hypercube coordinate onto one perturbable field,
// linearly or log-linearly.
type Range struct {
	Field    ParamField
	Min, Max float64
	Log      bool
}

func (r Range) value(u float64) float64 {
	if r.Log {
		return mmaths.LogLinearTransform(r.Min, r.Max, u)
	}
	return mmaths.LinearTransform(r.Min, r.Max, u)
}

// SampleRun is one realization of a parameter-space survey.
type SampleRun struct {
	U               []float64 // unit hypercube coordinates, one per range
	Params          Parameters
	MeanErodedDepth float64
}

// GenerateSamples surveys the parameter hypercube with a Latin hypercube
// plan of n realizations, running an independent Simulator per sample on
// nwrkrs workers. Useful for calibration-style response surveys ahead of a
// full uncertainty quantification.
func GenerateSamples(ctx context.Context, gd grid.Definition, elev grid.Field, base Parameters, ranges []Range, n int, seed int64, nwrkrs int) ([]SampleRun, error) {
	if n < 1 || len(ranges) == 0 {
		return nil, fmt.Errorf("terrasim: sample survey needs n >= 1 and at least one range")
	}
	if nwrkrs <= 0 {
		nwrkrs = runtime.GOMAXPROCS(0)
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	sp := smpln.NewLHC(rng, n, len(ranges), false)

	out := make([]SampleRun, n)
	for k := 0; k < n; k++ {
		u := make([]float64, len(ranges))
		p := base
		for j, r := range ranges {
			u[j] = sp.U[j][k]
			p = p.With(r.Field, r.value(u[j]))
		}
		out[k] = SampleRun{U: u, Params: p}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		rerr error
		jobs = make(chan int)
	)
	for w := 0; w < nwrkrs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				sim, err := NewSimulator(gd, elev)
				if err == nil {
					var snaps []Snapshot
					snaps, err = sim.Run(ctx, out[k].Params)
					if err == nil {
						out[k].MeanErodedDepth = MeanErodedDepth(snaps[len(snaps)-1].CumulativeErosion)
						continue
					}
				}
				mu.Lock()
				if rerr == nil {
					rerr = fmt.Errorf("sample %d: %w", k, err)
				}
				mu.Unlock()
			}
		}()
	}
	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	if rerr != nil {
		return nil, rerr
	}
	return out, nil
}
