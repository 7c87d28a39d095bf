package terrasim

import (
	"context"
	"fmt"
	"sync"

	"github.com/jiankarlocallejas-cpu/TerraSim-sub001/grid"
	"github.com/maseology/objfunc"
)

// ScenarioResult summarizes one named run plus a comparison of the final
// surface against the unmodified initial surface.
type ScenarioResult struct {
	Name   string
	Params Parameters

	MinElevation, MaxElevation, MeanElevation float64
	MeanErodedDepth                           float64
	TotalVolumeChange                         float64 // final step, signed

	// Final surface vs initial surface.
	RMSE, Bias, NSE float64
}

// ModeScenarios bundles the four presets for comparison.
func ModeScenarios() (map[string]Parameters, error) {
	out := make(map[string]Parameters, len(Modes()))
	for _, m := range Modes() {
		p, err := m.Parameters()
		if err != nil {
			return nil, err
		}
		out[string(m)] = p
	}
	return out, nil
}

// CompareScenarios runs each parameter bundle on a fresh Simulator over the
// same original surface, concurrently; scenario runs share no state and the
// result map is independent of completion order.
func CompareScenarios(ctx context.Context, gd grid.Definition, elev grid.Field, scenarios map[string]Parameters) (map[string]ScenarioResult, error) {
	init64 := elev.Float64s()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		out  = make(map[string]ScenarioResult, len(scenarios))
		rerr error
	)
	for name, p := range scenarios {
		wg.Add(1)
		go func(name string, p Parameters) {
			defer wg.Done()
			sim, err := NewSimulator(gd, elev)
			if err == nil {
				var snaps []Snapshot
				snaps, err = sim.Run(ctx, p)
				if err == nil {
					last := snaps[len(snaps)-1]
					fin64 := last.Elevation.Float64s()
					mu.Lock()
					out[name] = ScenarioResult{
						Name:              name,
						Params:            p,
						MinElevation:      last.MinElevation,
						MaxElevation:      last.MaxElevation,
						MeanElevation:     last.MeanElevation,
						MeanErodedDepth:   MeanErodedDepth(last.CumulativeErosion),
						TotalVolumeChange: last.TotalVolumeChange,
						RMSE:              objfunc.RMSE(init64, fin64),
						Bias:              objfunc.Bias(init64, fin64),
						NSE:               objfunc.NSE(init64, fin64),
					}
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			if rerr == nil {
				rerr = fmt.Errorf("scenario %q: %w", name, err)
			}
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	if rerr != nil {
		return nil, rerr
	}
	return out, nil
}
