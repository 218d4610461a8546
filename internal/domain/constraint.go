package domain

import (
	"fmt"

	m "github.com/mouse-blink/tangle/internal/model"
)

// mutateWithinConstraint perturbs a specifier around a constraint baseline
// while keeping the baseline's major version fixed. The result always
// targets a clean release line: no prerelease suffix is carried.
func (mu *mutator) mutateWithinConstraint(base Specifier, aggression int) string {
	scaled := float64(aggression) / float64(m.MaxAggression)

	modifier, minor, patch := base.Modifier, base.Minor, base.Patch

	if mu.rng.Float64() < scaled*0.8 {
		modifier = mu.tightenModifier(modifier)

		if mu.rng.Float64() < 0.6 {
			minor = mu.offset(minor, 5)
		} else {
			patch = mu.offset(patch, 10)
		}
	}

	return fmt.Sprintf("%s%d.%d.%d", modifier, base.Major, minor, patch)
}

// tightenModifier narrows the range a modifier allows, so the mutated
// specifier stays nominally inside the constraint while disagreeing with
// its neighbors.
func (mu *mutator) tightenModifier(modifier string) string {
	switch modifier {
	case "^":
		if mu.rng.Float64() < 0.6 {
			return "~"
		}

		return ""
	case "~":
		if mu.rng.Float64() < 0.7 {
			return ""
		}

		return "^"
	default:
		if mu.rng.Float64() < 0.3 {
			return "="
		}

		return ""
	}
}
