package terrasim

import (
	"fmt"
	"math"
)

// Parameters configures one simulation run. Treated as an immutable value:
// validation happens once, before any step executes.
type Parameters struct {
	Dt          float64 // years per step
	NumSteps    int
	BulkDensity float64 // kg/m³

	// VerticalTransportCoeff is reserved for a future vertical-exchange
	// term; validated to [0,1] but not consumed by the divergence formula.
	VerticalTransportCoeff float64

	FlowExponent   float64 // m in T = R·flow^m·sin(slope)^n
	SlopeExponent  float64 // n
	RainfallFactor float64 // R

	MinElevation, MaxElevation float64 // hard clamps [m]
	DampingFactor              float64 // stability multiplier, 0.5–1.0
}

// DefaultParameters returns the reference parameterization. The regime is
// numerically stable for moderate relief at decametre cell widths.
func DefaultParameters() Parameters {
	return Parameters{
		Dt:                     1,
		NumSteps:               100,
		BulkDensity:            1600,
		VerticalTransportCoeff: 0.5,
		FlowExponent:           1.3,
		SlopeExponent:          1.2,
		RainfallFactor:         270,
		MinElevation:           0,
		MaxElevation:           2000,
		DampingFactor:          0.95,
	}
}

// Validate fails fast on the first violated constraint.
func (p Parameters) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
	}
	switch {
	case !(p.Dt > 0):
		return bad("dt must be positive, got %g", p.Dt)
	case p.NumSteps < 1:
		return bad("num steps must be at least 1, got %d", p.NumSteps)
	case !(p.BulkDensity > 0):
		return bad("bulk density must be positive, got %g", p.BulkDensity)
	case p.VerticalTransportCoeff < 0 || p.VerticalTransportCoeff > 1:
		return bad("vertical transport coefficient must be within [0,1], got %g", p.VerticalTransportCoeff)
	case math.IsNaN(p.FlowExponent) || math.IsInf(p.FlowExponent, 0):
		return bad("flow exponent must be finite")
	case math.IsNaN(p.SlopeExponent) || math.IsInf(p.SlopeExponent, 0):
		return bad("slope exponent must be finite")
	case math.IsNaN(p.RainfallFactor) || math.IsInf(p.RainfallFactor, 0):
		return bad("rainfall factor must be finite")
	case !(p.MinElevation < p.MaxElevation):
		return bad("elevation clamps must satisfy min < max, got [%g, %g]", p.MinElevation, p.MaxElevation)
	case p.DampingFactor < 0.5 || p.DampingFactor > 1:
		return bad("damping factor must be within [0.5, 1.0], got %g", p.DampingFactor)
	}
	return nil
}

// ParamField selects a perturbable scalar of Parameters. The closed set
// keeps perturbation logic exhaustively checked rather than keyed by name.
type ParamField int

const (
	FieldRainfallFactor ParamField = iota
	FieldFlowExponent
	FieldSlopeExponent
	FieldBulkDensity
	FieldDampingFactor
	FieldDt
)

func (f ParamField) String() string {
	switch f {
	case FieldRainfallFactor:
		return "rainfall_factor"
	case FieldFlowExponent:
		return "flow_exponent"
	case FieldSlopeExponent:
		return "slope_exponent"
	case FieldBulkDensity:
		return "bulk_density"
	case FieldDampingFactor:
		return "damping_factor"
	case FieldDt:
		return "dt"
	}
	return fmt.Sprintf("ParamField(%d)", int(f))
}

// PerturbableFields lists every selector, in declaration order.
func PerturbableFields() []ParamField {
	return []ParamField{FieldRainfallFactor, FieldFlowExponent, FieldSlopeExponent, FieldBulkDensity, FieldDampingFactor, FieldDt}
}

// Value reads the selected scalar.
func (p Parameters) Value(f ParamField) float64 {
	switch f {
	case FieldRainfallFactor:
		return p.RainfallFactor
	case FieldFlowExponent:
		return p.FlowExponent
	case FieldSlopeExponent:
		return p.SlopeExponent
	case FieldBulkDensity:
		return p.BulkDensity
	case FieldDampingFactor:
		return p.DampingFactor
	case FieldDt:
		return p.Dt
	}
	panic("terrasim: unknown ParamField " + f.String())
}

// With returns a copy of p with the selected scalar replaced.
func (p Parameters) With(f ParamField, v float64) Parameters {
	switch f {
	case FieldRainfallFactor:
		p.RainfallFactor = v
	case FieldFlowExponent:
		p.FlowExponent = v
	case FieldSlopeExponent:
		p.SlopeExponent = v
	case FieldBulkDensity:
		p.BulkDensity = v
	case FieldDampingFactor:
		p.DampingFactor = v
	case FieldDt:
		p.Dt = v
	default:
		panic("terrasim: unknown ParamField " + f.String())
	}
	return p
}
