package coords

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// InitialConditionError reports launch conditions that have no real
// geodesic through them.
type InitialConditionError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InitialConditionError) Error() string {
	return fmt.Sprintf("initial conditions: %s = %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InitialConditionError) Unwrap() error {
	return dynamo.ErrInvalidInitialConditions
}

// InitialSlope returns du/dφ at r0 for a null geodesic with impact
// parameter b around mass M:
//
//	dir · sqrt(1/b² - u0²(1 - 2M/r0))
//
// It fails when the square-root argument is negative, i.e. r0 lies in the
// forbidden region for that b.
func InitialSlope(r0, b, mass float64, dir Direction) (float64, error) {
	if err := checkLaunch(r0, b); err != nil {
		return 0, err
	}
	u0 := 1 / r0
	arg := 1/(b*b) - u0*u0*(1-2*mass/r0)
	if arg < 0 {
		return 0, &InitialConditionError{
			Field:  "b",
			Value:  b,
			Reason: fmt.Sprintf("1/b² < u0²(1-2M/r0) at r0 = %v, no real slope", r0),
		}
	}
	return float64(dir) * math.Sqrt(arg), nil
}

// GeodesicStart builds the polar launch state of a ray with unit energy.
// RDot and PhiDot are the affine rates, so ToCartesian gives the launch
// direction.
func GeodesicStart(r0, phi0, b, mass float64, dir Direction) (PolarState, error) {
	du, err := InitialSlope(r0, b, mass, dir)
	if err != nil {
		return PolarState{}, err
	}
	phiDot := b / (r0 * r0)
	return PolarState{
		R:      r0,
		Phi:    phi0,
		U:      1 / r0,
		DU:     du,
		RDot:   -du * b,
		PhiDot: phiDot,
	}, nil
}

// KerrStart builds (r, φ, p_r, p_φ) for [physics.KerrEquatorial] with
// p_φ = b and p_r = -dir·sqrt(1/b² - 1/r0²).
func KerrStart(r0, phi0, b float64, dir Direction) (dynamo.State, error) {
	if err := checkLaunch(r0, b); err != nil {
		return nil, err
	}
	arg := 1/(b*b) - 1/(r0*r0)
	if arg < 0 {
		return nil, &InitialConditionError{
			Field:  "b",
			Value:  b,
			Reason: fmt.Sprintf("b exceeds r0 = %v, no real radial momentum", r0),
		}
	}
	return dynamo.State{r0, phi0, -float64(dir) * math.Sqrt(arg), b}, nil
}

func checkLaunch(r0, b float64) error {
	if !(r0 > 0) || math.IsInf(r0, 0) {
		return &InitialConditionError{Field: "r0", Value: r0, Reason: "must be positive and finite"}
	}
	if !(b > 0) || math.IsInf(b, 0) {
		return &InitialConditionError{Field: "b", Value: b, Reason: "must be positive and finite"}
	}
	return nil
}
