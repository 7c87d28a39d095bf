package terrasim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"gonum.org/v1/gonum/stat"
)

// Distribution specifies a Gaussian marginal for one perturbable field.
// A zero Stdev degenerates to the mean exactly, adding no variance.
type Distribution struct {
	Field ParamField
	Mean  float64
	Stdev float64
}

// UncertaintyResult aggregates the mean-eroded-depth response over all
// Monte Carlo realizations.
type UncertaintyResult struct {
	N       int
	Samples []float64 // response per realization, indexed by sample number

	Mean, Stdev             float64
	P05, P25, P50, P75, P95 float64
}

// QuantifyUncertainty draws n parameter samples via a Latin hypercube over
// the supplied marginals, runs an independent Simulator per sample on
// nwrkrs workers (GOMAXPROCS when <=0), and summarizes the response
// distribution. Realizations share no state; aggregation is
// order-independent.
func QuantifyUncertainty(ctx context.Context, gd grid.Definition, elev grid.Field, base Parameters, dists []Distribution, n int, seed int64, nwrkrs int) (UncertaintyResult, error) {
	if n < 1 {
		return UncertaintyResult{}, fmt.Errorf("terrasim: monte carlo needs at least 1 sample, got %d", n)
	}
	if len(dists) == 0 {
		return UncertaintyResult{}, fmt.Errorf("terrasim: monte carlo needs at least one distribution")
	}
	for _, d := range dists {
		if d.Stdev < 0 {
			return UncertaintyResult{}, fmt.Errorf("terrasim: %s: standard deviation must be non-negative, got %g", d.Field, d.Stdev)
		}
	}
	if nwrkrs <= 0 {
		nwrkrs = runtime.GOMAXPROCS(0)
	}

	// stratified unit samples mapped through the inverse normal CDF
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	sp := smpln.NewLHC(rng, n, len(dists), false)
	params := make([]Parameters, n)
	for k := 0; k < n; k++ {
		p := base
		for j, d := range dists {
			if d.Stdev == 0 { // degenerate marginal, no spurious variance
				p = p.With(d.Field, d.Mean)
				continue
			}
			u := sp.U[j][k]
			p = p.With(d.Field, d.Mean+d.Stdev*math.Sqrt2*math.Erfinv(2*u-1))
		}
		params[k] = p
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		rerr    error
		samples = make([]float64, n)
		jobs    = make(chan int)
	)
	for w := 0; w < nwrkrs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				sim, err := NewSimulator(gd, elev)
				if err == nil {
					var snaps []Snapshot
					snaps, err = sim.Run(ctx, params[k])
					if err == nil {
						samples[k] = MeanErodedDepth(snaps[len(snaps)-1].CumulativeErosion)
						continue
					}
				}
				mu.Lock()
				if rerr == nil {
					rerr = fmt.Errorf("realization %d: %w", k, err)
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
		return UncertaintyResult{}, rerr
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	q := func(p float64) float64 { return stat.Quantile(p, stat.Empirical, sorted, nil) }
	sd := 0.
	if n > 1 {
		sd = stat.StdDev(samples, nil)
	}
	return UncertaintyResult{
		N:       n,
		Samples: samples,
		Mean:    stat.Mean(samples, nil),
		Stdev:   sd,
		P05:     q(.05),
		P25:     q(.25),
		P50:     q(.50),
		P75:     q(.75),
		P95:     q(.95),
	}, nil
}
