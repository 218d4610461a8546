package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/tangle/internal/model"
)

// popularPackages flag dependencies likely to sit at the center of a dense
// transitive graph, where a version shift breaks unrelated packages.
var popularPackages = []string{
	"react",
	"react-dom",
	"angular",
	"@angular/core",
	"vue",
	"express",
	"next",
	"gatsby",
	"webpack",
}

// conflictPairs couple a package with a counterpart whose peer expectation
// breaks when the package's version is forced backwards.
var conflictPairs = [][2]string{
	{"@babel/core", "@babel/preset-env"},
	{"webpack", "html-webpack-plugin"},
	{"react", "react-router-dom"},
	{"typescript", "tslib"},
}

// Strategist post-processes a scrambled category, injecting targeted
// conflicts: peer-vs-regular mismatches, simulated transitive conflicts,
// and sibling-family mismatches. Reference values always come from the
// session's original manifest; writes go to the modified one. Missing or
// invalid reference versions silently skip a strategy, never error.
type Strategist interface {
	Apply(session *Session, category m.DependencyType)
}

type strategist struct {
	rng Rand
}

// NewStrategist creates a Strategist drawing randomness from rng.
func NewStrategist(rng Rand) Strategist {
	return &strategist{rng: rng}
}

func (st *strategist) Apply(session *Session, category m.DependencyType) {
	st.createPeerConflict(session, category)
	st.createTransitiveConflicts(session)
	st.createSiblingMismatches(session, category)
}

// createPeerConflict rewrites a peer-dependency specifier so its range no
// longer intersects what the regular dependency on the same package pins.
func (st *strategist) createPeerConflict(session *Session, category m.DependencyType) {
	if category != m.PeerDependencies {
		if session.Config.ConflictMode != m.ModePeerConflict || st.rng.Float64() >= 0.8 {
			return
		}
	}

	peers := session.Original.PeerDependencies
	regular := session.Original.Dependencies

	if len(peers) == 0 || len(regular) == 0 {
		return
	}

	shared := sharedKeys(peers, regular)
	if len(shared) == 0 {
		return
	}

	// react is the most recognizable peer-conflict victim, so prefer it.
	var name string
	if containsName(shared, "react") && st.rng.Float64() < 0.7 {
		name = "react"
	} else {
		name = shared[st.rng.IntN(len(shared))]
	}

	ver, ok := Coerce(regular[name])
	if !ok {
		return
	}

	var conflict string

	draw := st.rng.Float64()

	switch {
	case draw < 0.4:
		conflict = fmt.Sprintf("^%d.0.0", ver.Major+1+st.rng.IntN(2))
	case draw < 0.7:
		conflict = fmt.Sprintf("%d.%d.%d", ver.Major, ver.Minor, ver.Patch+1)
	default:
		start := ver.Minor + 2 + st.rng.IntN(4)
		conflict = fmt.Sprintf(">=%d.%d.0 <%d.%d.0", ver.Major, start, ver.Major, start+3)
	}

	// Never invent a category the manifest didn't declare.
	modified := session.Modified.PeerDependencies
	if modified == nil {
		return
	}

	before := modified[name]
	modified[name] = conflict
	session.MarkScrambled(m.PeerDependencies, name)
	session.AddIssue("Created peer conflict for %s: dependencies wants %s, peerDependencies now %s (was %s)",
		name, regular[name], conflict, before)
}

// createTransitiveConflicts simulates "changing one package's version
// breaks an unrelated package's peer expectation": when a popular package
// is present, known conflict-prone packages are forced to a low-minor
// version derived from it.
func (st *strategist) createTransitiveConflicts(session *Session) {
	if session.Config.ConflictMode != m.ModeRealistic {
		return
	}

	if st.rng.Float64() >= session.ScaledAggression()*0.6 {
		return
	}

	regular := session.Original.Dependencies
	if len(regular) == 0 {
		return
	}

	var anchor string

	for _, name := range sortedKeys(regular) {
		if isPopular(name) {
			anchor = name

			break
		}
	}

	if anchor == "" {
		return
	}

	ver, ok := Coerce(regular[anchor])
	if !ok {
		return
	}

	minor := ver.Minor - (1 + st.rng.IntN(3))
	if minor < 0 {
		minor = 0
	}

	forced := fmt.Sprintf("%d.%d.0", ver.Major, minor)

	modified := session.Modified.Dependencies
	if modified == nil {
		return
	}

	for _, pair := range conflictPairs {
		pkg, counterpart := pair[0], pair[1]

		if _, ok := regular[pkg]; !ok {
			continue
		}

		if session.AlreadyScrambled(m.Dependencies, pkg) {
			continue
		}

		before := modified[pkg]
		modified[pkg] = forced
		session.MarkScrambled(m.Dependencies, pkg)
		session.AddIssue("Forced %s from %s to %s, breaking %s's transitive expectations",
			pkg, before, forced, counterpart)
	}
}

// createSiblingMismatches makes one package of a name family (a scope or a
// hyphenated prefix) lag its siblings by a few patch versions.
func (st *strategist) createSiblingMismatches(session *Session, category m.DependencyType) {
	if session.Config.ConflictMode != m.ModeRealistic || category != m.Dependencies {
		return
	}

	regular := session.Original.Dependencies
	if len(regular) < 2 {
		return
	}

	modified := session.Modified.Dependencies
	if modified == nil {
		return
	}

	for _, family := range familyGroups(sortedKeys(regular)) {
		if st.rng.Float64() >= session.ScaledAggression()*0.7 {
			continue
		}

		baseline, ok := ParseSpecifier(regular[family[0]])
		if !ok {
			continue
		}

		for _, name := range family[1:] {
			if st.rng.Float64() >= 0.7 {
				continue
			}

			forced := fmt.Sprintf("%s%d.%d.%d",
				baseline.Modifier, baseline.Major, baseline.Minor, baseline.Patch+1+st.rng.IntN(3))

			before := modified[name]
			modified[name] = forced
			session.MarkScrambled(category, name)
			session.AddIssue("Family mismatch for %s: %s -> %s (baseline %s is %s)",
				name, before, forced, family[0], regular[family[0]])
		}
	}
}

// familyGroups groups sorted package names by shared prefix: a scope
// ("@scope/") or a hyphenated family ("word-"). Only groups with at least
// two members are returned, in prefix order.
func familyGroups(names []string) [][]string {
	byPrefix := make(map[string][]string)

	var prefixes []string

	for _, name := range names {
		prefix, ok := familyPrefix(name)
		if !ok {
			continue
		}

		if _, seen := byPrefix[prefix]; !seen {
			prefixes = append(prefixes, prefix)
		}

		byPrefix[prefix] = append(byPrefix[prefix], name)
	}

	var groups [][]string

	for _, prefix := range prefixes {
		if len(byPrefix[prefix]) >= 2 {
			groups = append(groups, byPrefix[prefix])
		}
	}

	return groups
}

func familyPrefix(name string) (string, bool) {
	if strings.HasPrefix(name, "@") {
		if slash := strings.Index(name, "/"); slash > 1 {
			return name[:slash+1], true
		}

		return "", false
	}

	if dash := strings.Index(name, "-"); dash > 0 && dash < len(name)-1 {
		return name[:dash+1], true
	}

	return "", false
}

func isPopular(name string) bool {
	for _, pop := range popularPackages {
		if name == pop || strings.HasPrefix(name, "@"+pop+"/") {
			return true
		}
	}

	return false
}

func sharedKeys(a, b map[string]string) []string {
	var shared []string

	for _, name := range sortedKeys(a) {
		if _, ok := b[name]; ok {
			shared = append(shared, name)
		}
	}

	return shared
}

func containsName(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}

	return false
}
