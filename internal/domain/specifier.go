package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// specifierPattern is the strict grammar a specifier must match to be
// mutable: an optional range modifier, a major.minor.patch triple, and an
// optional prerelease suffix. Anything else (tags, URLs, workspace
// protocols, wildcard ranges) is opaque and must pass through unchanged.
var specifierPattern = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)?(\d+)\.(\d+)\.(\d+)(-[0-9A-Za-z][0-9A-Za-z.\-]*)?$`)

// coercePattern extracts a best-effort version triple from a loosely
// formatted string; missing minor/patch positions read as zero.
var coercePattern = regexp.MustCompile(`(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Specifier is a parsed version specifier.
type Specifier struct {
	Modifier   string
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseSpecifier parses a specifier against the strict grammar. The second
// return value is false for opaque specifiers.
func ParseSpecifier(s string) (Specifier, bool) {
	groups := specifierPattern.FindStringSubmatch(s)
	if groups == nil {
		return Specifier{}, false
	}

	major, err := strconv.Atoi(groups[2])
	if err != nil {
		return Specifier{}, false
	}

	minor, err := strconv.Atoi(groups[3])
	if err != nil {
		return Specifier{}, false
	}

	patch, err := strconv.Atoi(groups[4])
	if err != nil {
		return Specifier{}, false
	}

	return Specifier{
		Modifier:   groups[1],
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: groups[5],
	}, true
}

// Coerce extracts a best-effort version triple from a loosely formatted
// string, e.g. ">=4.17" coerces to 4.17.0. Returns false when the string
// carries no version digits at all.
func Coerce(s string) (Specifier, bool) {
	groups := coercePattern.FindStringSubmatch(s)
	if groups == nil {
		return Specifier{}, false
	}

	major, err := strconv.Atoi(groups[1])
	if err != nil {
		return Specifier{}, false
	}

	sp := Specifier{Major: major}

	if groups[2] != "" {
		minor, err := strconv.Atoi(groups[2])
		if err != nil {
			return Specifier{}, false
		}

		sp.Minor = minor
	}

	if groups[3] != "" {
		patch, err := strconv.Atoi(groups[3])
		if err != nil {
			return Specifier{}, false
		}

		sp.Patch = patch
	}

	return sp, true
}

// String reassembles the specifier, preserving any prerelease suffix.
func (sp Specifier) String() string {
	return fmt.Sprintf("%s%d.%d.%d%s", sp.Modifier, sp.Major, sp.Minor, sp.Patch, sp.Prerelease)
}
