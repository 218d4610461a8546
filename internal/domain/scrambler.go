package domain

import (
	"fmt"
	"sort"

	m "github.com/mouse-blink/tangle/internal/model"
)

// Session owns the mutable state of one scramble run: the untouched
// original, the modified copy under construction, the scrambled-name lists
// and the issue log. It is handed by exclusive ownership from the
// Scrambler to the Strategist within a single-threaded run; nothing ever
// shares it across goroutines.
type Session struct {
	Config    m.ScrambleConfig
	Original  *m.Manifest
	Modified  *m.Manifest
	Scrambled map[m.DependencyType][]string
	Issues    []string
}

// NewSession normalizes the configuration and deep-copies the manifest so
// the caller's value is never mutated.
func NewSession(cfg m.ScrambleConfig, manifest *m.Manifest) *Session {
	return &Session{
		Config:    cfg.Normalized(),
		Original:  manifest,
		Modified:  manifest.Clone(),
		Scrambled: make(map[m.DependencyType][]string),
	}
}

// MarkScrambled records a package as altered in the given category. A
// package is recorded at most once per category.
func (s *Session) MarkScrambled(t m.DependencyType, name string) {
	if s.AlreadyScrambled(t, name) {
		return
	}

	s.Scrambled[t] = append(s.Scrambled[t], name)
}

// AlreadyScrambled reports whether a package was altered in this run.
func (s *Session) AlreadyScrambled(t m.DependencyType, name string) bool {
	for _, scrambled := range s.Scrambled[t] {
		if scrambled == name {
			return true
		}
	}

	return false
}

// AddIssue appends a human-readable description of one mutation or
// conflict event.
func (s *Session) AddIssue(format string, args ...any) {
	s.Issues = append(s.Issues, fmt.Sprintf(format, args...))
}

// ScaledAggression maps the 1..10 aggression level onto [0.1, 1.0].
func (s *Session) ScaledAggression() float64 {
	return float64(s.Config.AggressionLevel) / float64(m.MaxAggression)
}

// Result snapshots the session into the outward-facing record.
func (s *Session) Result() m.ScrambleResult {
	return m.ScrambleResult{
		Target:        s.Config.TargetPath,
		Original:      s.Original,
		Modified:      s.Modified,
		ScrambledDeps: s.Scrambled,
		Issues:        s.Issues,
	}
}

// Scrambler picks a subset of entries per configured category, mutates
// them, and lets the Strategist inject targeted conflicts afterwards.
type Scrambler interface {
	Scramble(session *Session)
}

type scrambler struct {
	rng        Rand
	mutator    Mutator
	strategist Strategist
}

// NewScrambler creates a Scrambler whose mutation decisions all draw from
// rng.
func NewScrambler(rng Rand) Scrambler {
	return &scrambler{
		rng:        rng,
		mutator:    NewMutator(rng),
		strategist: NewStrategist(rng),
	}
}

func (sc *scrambler) Scramble(session *Session) {
	mode := session.Config.ConflictMode

	for _, t := range session.Config.DependencyTypes {
		sc.scrambleCategory(session, t)

		if mode == m.ModeRealistic || mode == m.ModePeerConflict {
			sc.strategist.Apply(session, t)
		}
	}
}

// scrambleCategory selects ceil(entries * percentage / 100) entries via an
// unbiased shuffle and mutates each; only entries whose specifier actually
// changed are recorded.
func (sc *scrambler) scrambleCategory(session *Session, t m.DependencyType) {
	deps := session.Modified.Category(t)
	if len(deps) == 0 {
		return
	}

	count := (len(deps)*session.Config.ScramblePercentage + 99) / 100
	if count == 0 {
		return
	}

	names := sortedKeys(deps)
	sc.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	hints := Hints{
		Mode:         session.Config.ConflictMode,
		Constraints:  session.Config.VersionConstraints,
		RespectMajor: session.Config.RespectMajorVersion,
	}

	for _, name := range names[:count] {
		before := deps[name]

		hints.PackageName = name

		after := sc.mutator.Mutate(before, session.Config.AggressionLevel, hints)
		if after == before {
			continue
		}

		deps[name] = after
		session.MarkScrambled(t, name)
		session.AddIssue("Modified %s %s: %s -> %s", t, name, before, after)
	}
}

func sortedKeys(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
