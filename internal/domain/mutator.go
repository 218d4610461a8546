package domain

import (
	"strings"

	m "github.com/mouse-blink/tangle/internal/model"
)

// Hints carry per-entry context into a mutation: the conflict mode of the
// run, the package being mutated, the run's version constraints, and
// whether major versions are off limits.
type Hints struct {
	Mode         m.ConflictMode
	PackageName  string
	Constraints  map[string]string
	RespectMajor bool
}

// Mutator transforms one version specifier into another. Opaque specifiers
// (tags, URLs, anything outside the grammar) come back unchanged; nothing
// guarantees a mutable specifier actually changes on a given call.
type Mutator interface {
	Mutate(specifier string, aggression int, hints Hints) string
}

type mutator struct {
	rng Rand
}

// NewMutator creates a Mutator drawing randomness from rng.
func NewMutator(rng Rand) Mutator {
	return &mutator{rng: rng}
}

// rangeModifiers are the candidates for free modifier replacement.
var rangeModifiers = []string{"^", "~", ">=", ">", "=", "<", "<=", ""}

func (mu *mutator) Mutate(specifier string, aggression int, hints Hints) string {
	sp, ok := ParseSpecifier(specifier)
	if !ok {
		return specifier
	}

	// A valid per-package constraint takes precedence over free mutation:
	// the constraint's parts become the baseline and the major version is
	// kept fixed.
	if ref, ok := constraintFor(hints.Constraints, hints.PackageName); ok {
		if base, ok := ParseSpecifier(ref); ok {
			return mu.mutateWithinConstraint(base, aggression)
		}
	}

	scaled := float64(aggression) / float64(m.MaxAggression)

	if mu.rng.Float64() < scaled*0.8 {
		sp.Modifier = mu.pickModifier(hints.Mode)
	}

	if mu.rng.Float64() < scaled*0.7 {
		mu.mutateComponent(&sp, hints)
	}

	// Realistic mode additionally favors a slightly-off exact pin, the
	// hardest conflict to spot in a review.
	if hints.Mode == m.ModeRealistic && mu.rng.Float64() < 0.4*scaled {
		sp.Modifier = ""

		if mu.rng.Float64() < 0.5 {
			sp.Patch += 1 + mu.rng.IntN(3)
		}
	}

	return sp.String()
}

func (mu *mutator) pickModifier(mode m.ConflictMode) string {
	if mode == m.ModeRealistic {
		if mu.rng.Float64() < 0.6 {
			return ""
		}

		if mu.rng.Float64() < 0.7 {
			return "~"
		}

		return "^"
	}

	return rangeModifiers[mu.rng.IntN(len(rangeModifiers))]
}

// mutateComponent perturbs exactly one numeric component. Major is only
// eligible when major versions are not protected and the mode is not
// realistic; an ineligible major draw falls through to minor.
func (mu *mutator) mutateComponent(sp *Specifier, hints Hints) {
	draw := mu.rng.Float64()

	switch {
	case draw < 0.3 && !hints.RespectMajor && hints.Mode != m.ModeRealistic:
		sp.Major = mu.offset(sp.Major, 3)
	case draw < 0.7:
		sp.Minor = mu.offset(sp.Minor, 5)
	default:
		sp.Patch = mu.offset(sp.Patch, 10)
	}
}

// offset shifts v by a uniform 1..limit step in a random direction, floored
// at zero.
func (mu *mutator) offset(v, limit int) int {
	step := 1 + mu.rng.IntN(limit)
	if mu.rng.Float64() < 0.5 {
		step = -step
	}

	v += step
	if v < 0 {
		return 0
	}

	return v
}

// constraintFor looks up the constraint for a package: an exact name match
// wins, otherwise a key that is a scope prefix of the name (key "@babel"
// matches "@babel/core").
func constraintFor(constraints map[string]string, name string) (string, bool) {
	if name == "" || len(constraints) == 0 {
		return "", false
	}

	if spec, ok := constraints[name]; ok {
		return spec, true
	}

	for key, spec := range constraints {
		if strings.HasPrefix(name, key+"/") {
			return spec, true
		}
	}

	return "", false
}
