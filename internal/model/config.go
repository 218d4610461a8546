package model

import "fmt"

// ConflictMode selects which conflict strategies a scramble run applies.
type ConflictMode string

const (
	// ModeSimple perturbs specifiers without targeted conflict injection.
	ModeSimple ConflictMode = "simple"
	// ModeRealistic additionally injects transitive and sibling-family
	// conflicts and biases mutations toward hard-to-spot pins.
	ModeRealistic ConflictMode = "realistic"
	// ModePeerConflict additionally forces peer-vs-regular mismatches.
	ModePeerConflict ConflictMode = "peer-conflict"
)

// ParseConflictMode converts a string into a ConflictMode.
func ParseConflictMode(s string) (ConflictMode, error) {
	switch ConflictMode(s) {
	case ModeSimple, ModeRealistic, ModePeerConflict:
		return ConflictMode(s), nil
	}

	return "", fmt.Errorf("unknown conflict mode: %q", s)
}

// Aggression bounds and the percentage range accepted by a scramble run.
const (
	MinAggression = 1
	MaxAggression = 10
)

// ScrambleConfig describes one scramble run.
type ScrambleConfig struct {
	TargetPath          Path
	CreateBackup        bool
	DependencyTypes     []DependencyType
	ScramblePercentage  int
	AggressionLevel     int
	ConflictMode        ConflictMode
	RespectMajorVersion bool

	// VersionConstraints maps a package name, or a scope prefix such as
	// "@babel", to a reference specifier whose major version mutations
	// must keep.
	VersionConstraints map[string]string
}

// Normalized returns a copy with the percentage clamped to [0,100], the
// aggression level clamped to [1,10], and defaults filled in for the mode
// and category list.
func (c ScrambleConfig) Normalized() ScrambleConfig {
	c.ScramblePercentage = clamp(c.ScramblePercentage, 0, 100)
	c.AggressionLevel = clamp(c.AggressionLevel, MinAggression, MaxAggression)

	if c.ConflictMode == "" {
		c.ConflictMode = ModeSimple
	}

	if len(c.DependencyTypes) == 0 {
		c.DependencyTypes = []DependencyType{Dependencies, DevDependencies}
	}

	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
