package terrasim

import "fmt"

// Mode names a canonical parameter bundle. Presets are pure data,
// constructed on demand and never mutated.
type Mode string

const (
	ModeSlow    Mode = "slow"
	ModeMedium  Mode = "medium"
	ModeFast    Mode = "fast"
	ModeExtreme Mode = "extreme"
)

// Modes lists the closed preset set.
func Modes() []Mode { return []Mode{ModeSlow, ModeMedium, ModeFast, ModeExtreme} }

// Parameters materializes the preset bundle for the mode.
func (m Mode) Parameters() (Parameters, error) {
	p := DefaultParameters()
	switch m {
	case ModeSlow:
		p.Dt, p.NumSteps, p.RainfallFactor, p.DampingFactor = 0.5, 200, 100, 0.85
	case ModeMedium:
		p.Dt, p.NumSteps, p.RainfallFactor, p.DampingFactor = 1, 100, 270, 0.95
	case ModeFast:
		p.Dt, p.NumSteps, p.RainfallFactor, p.DampingFactor = 2, 50, 400, 0.9
	case ModeExtreme:
		p.Dt, p.NumSteps, p.RainfallFactor, p.DampingFactor = 2.5, 25, 600, 0.8
	default:
		return Parameters{}, fmt.Errorf("terrasim: unknown simulation mode %q", m)
	}
	return p, nil
}
