package dose

import (
	"errors"
	"fmt"
)

// Kind names a pattern family.
type Kind string

const (
	KindNone     Kind = "none"
	KindConstant Kind = "constant"
	KindLinear   Kind = "linear"
	KindPeriodic Kind = "periodic"
)

// ErrPattern indicates a pattern parameter outside its valid range.
var ErrPattern = errors.New("dose: invalid pattern parameter")

// Pattern is a deterministic intake rate u(t) in mg per hour.
type Pattern interface {
	// Rate returns the intake rate at time t (hours).
	Rate(t float64) float64
	Kind() Kind
	String() string
}

// ParseKind maps a user-facing name to a pattern kind. "single" is an
// alias for "none": a single dose enters through the initial state, not
// through the rate function.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "none", "single":
		return KindNone, nil
	case "constant":
		return KindConstant, nil
	case "linear":
		return KindLinear, nil
	case "periodic":
		return KindPeriodic, nil
	default:
		return "", fmt.Errorf("%w: unknown pattern %q", ErrPattern, name)
	}
}

// Kinds lists the pattern families in menu order.
func Kinds() []Kind {
	return []Kind{KindNone, KindConstant, KindLinear, KindPeriodic}
}
