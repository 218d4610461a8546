package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/tangle/internal/model"
)

func TestPeerConflictMajorAhead(t *testing.T) {
	manifest := &m.Manifest{
		Name:             "fixture",
		Version:          "1.0.0",
		Dependencies:     map[string]string{"react": "^17.0.2", "lodash": "~4.17.21"},
		PeerDependencies: map[string]string{"react": "^17.0.0"},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModePeerConflict,
	}, manifest)

	// Gate passes (0.5 < 0.8), the react bias triggers (0.5 < 0.7), the
	// shape draw lands on major-ahead (0.1 < 0.4) with IntN(2) = 0.
	rng := &scriptedRand{floats: []float64{0.5, 0.5, 0.1}, ints: []int{0}}
	NewStrategist(rng).Apply(session, m.Dependencies)

	assert.Equal(t, "^18.0.0", session.Modified.PeerDependencies["react"])
	assert.Equal(t, "^17.0.0", manifest.PeerDependencies["react"])
	assert.Equal(t, []string{"react"}, session.Scrambled[m.PeerDependencies])

	require.Len(t, session.Issues, 1)
	assert.Contains(t, session.Issues[0], "react")
	assert.Contains(t, session.Issues[0], "^17.0.2")
	assert.Contains(t, session.Issues[0], "^18.0.0")
}

func TestPeerConflictShapes(t *testing.T) {
	tests := []struct {
		name     string
		shape    float64
		ints     []int
		expected string
	}{
		{name: "major ahead", shape: 0.1, ints: []int{1}, expected: "^19.0.0"},
		{name: "patch ahead pin", shape: 0.5, ints: nil, expected: "17.0.3"},
		{name: "incompatible half-open range", shape: 0.9, ints: []int{2}, expected: ">=17.4.0 <17.7.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest := &m.Manifest{
				Name:             "fixture",
				Version:          "1.0.0",
				Dependencies:     map[string]string{"react": "^17.0.2"},
				PeerDependencies: map[string]string{"react": "^17.0.0"},
			}

			session := NewSession(m.ScrambleConfig{
				DependencyTypes: []m.DependencyType{m.PeerDependencies},
				AggressionLevel: m.MaxAggression,
				ConflictMode:    m.ModePeerConflict,
			}, manifest)

			// The peer category applies unconditionally, so the first
			// draws are the react bias and then the shape.
			rng := &scriptedRand{floats: []float64{0.5, tt.shape}, ints: tt.ints}
			st := &strategist{rng: rng}
			st.createPeerConflict(session, m.PeerDependencies)

			assert.Equal(t, tt.expected, session.Modified.PeerDependencies["react"])
		})
	}
}

func TestPeerConflictRequiresSharedKey(t *testing.T) {
	manifest := &m.Manifest{
		Name:             "fixture",
		Version:          "1.0.0",
		Dependencies:     map[string]string{"express": "^4.17.1"},
		PeerDependencies: map[string]string{"react": "^17.0.0"},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.PeerDependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModePeerConflict,
	}, manifest)

	rng := &scriptedRand{floats: []float64{0.0}}
	NewStrategist(rng).Apply(session, m.PeerDependencies)

	assert.Empty(t, session.Scrambled)
	assert.Empty(t, session.Issues)
	assert.Equal(t, "^17.0.0", session.Modified.PeerDependencies["react"])
}

func TestPeerConflictSkipsWhenModifiedHasNoPeerMap(t *testing.T) {
	// The modified manifest lacks the category, so the conflict is
	// dropped rather than the category invented.
	session := &Session{
		Config: m.ScrambleConfig{
			AggressionLevel: m.MaxAggression,
			ConflictMode:    m.ModePeerConflict,
		}.Normalized(),
		Original: &m.Manifest{
			Dependencies:     map[string]string{"react": "^17.0.2"},
			PeerDependencies: map[string]string{"react": "^17.0.0"},
		},
		Modified:  &m.Manifest{Dependencies: map[string]string{"react": "^17.0.2"}},
		Scrambled: make(map[m.DependencyType][]string),
	}

	rng := &scriptedRand{floats: []float64{0.0}}
	NewStrategist(rng).Apply(session, m.PeerDependencies)

	assert.Nil(t, session.Modified.PeerDependencies)
	assert.Empty(t, session.Scrambled)
}

func TestPeerConflictOpaqueRegularSpecifierSkips(t *testing.T) {
	manifest := &m.Manifest{
		Name:             "fixture",
		Version:          "1.0.0",
		Dependencies:     map[string]string{"react": "latest"},
		PeerDependencies: map[string]string{"react": "^17.0.0"},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.PeerDependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModePeerConflict,
	}, manifest)

	rng := &scriptedRand{floats: []float64{0.0}}
	NewStrategist(rng).Apply(session, m.PeerDependencies)

	assert.Empty(t, session.Scrambled)
	assert.Equal(t, "^17.0.0", session.Modified.PeerDependencies["react"])
}

func TestTransitiveConflicts(t *testing.T) {
	manifest := &m.Manifest{
		Name:    "fixture",
		Version: "1.0.0",
		Dependencies: map[string]string{
			"react":            "^17.3.0",
			"react-router-dom": "^5.2.0",
			"typescript":       "^4.5.2",
			"lodash":           "~4.17.21",
		},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeRealistic,
	}, manifest)

	// The probability gate passes (0.1 < 0.6); IntN(3) = 0 pulls the
	// anchor's minor back by one, deriving 17.2.0 from react ^17.3.0.
	rng := &scriptedRand{floats: []float64{0.1, 0.9, 0.9}, ints: []int{0}}
	st := &strategist{rng: rng}
	st.createTransitiveConflicts(session)

	assert.Equal(t, "17.2.0", session.Modified.Dependencies["react"])
	assert.Equal(t, "17.2.0", session.Modified.Dependencies["typescript"])
	assert.Equal(t, "^5.2.0", session.Modified.Dependencies["react-router-dom"])
	assert.Equal(t, "~4.17.21", session.Modified.Dependencies["lodash"])

	assert.ElementsMatch(t, []string{"react", "typescript"}, session.Scrambled[m.Dependencies])

	require.Len(t, session.Issues, 2)
	assert.True(t, strings.Contains(session.Issues[0], "react-router-dom") ||
		strings.Contains(session.Issues[1], "react-router-dom"))
	assert.True(t, strings.Contains(session.Issues[0], "tslib") ||
		strings.Contains(session.Issues[1], "tslib"))
}

func TestTransitiveConflictsSkipAlreadyScrambled(t *testing.T) {
	manifest := &m.Manifest{
		Name:    "fixture",
		Version: "1.0.0",
		Dependencies: map[string]string{
			"react":      "^17.3.0",
			"typescript": "^4.5.2",
		},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeRealistic,
	}, manifest)
	session.MarkScrambled(m.Dependencies, "typescript")

	rng := &scriptedRand{floats: []float64{0.1}, ints: []int{0}}
	st := &strategist{rng: rng}
	st.createTransitiveConflicts(session)

	// typescript was already scrambled this run, so only react moves.
	assert.Equal(t, "17.2.0", session.Modified.Dependencies["react"])
	assert.Equal(t, "^4.5.2", session.Modified.Dependencies["typescript"])
}

func TestTransitiveConflictsRequireRealisticMode(t *testing.T) {
	manifest := &m.Manifest{
		Name:         "fixture",
		Version:      "1.0.0",
		Dependencies: map[string]string{"react": "^17.3.0"},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeSimple,
	}, manifest)

	rng := &scriptedRand{floats: []float64{0.0}, ints: []int{0}}
	st := &strategist{rng: rng}
	st.createTransitiveConflicts(session)

	assert.Empty(t, session.Scrambled)
}

func TestSiblingFamilyMismatch(t *testing.T) {
	manifest := &m.Manifest{
		Name:    "fixture",
		Version: "1.0.0",
		Dependencies: map[string]string{
			"@scope/a": "1.2.3",
			"@scope/b": "1.2.3",
		},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeRealistic,
	}, manifest)

	// Transitive gate fails (0.9 >= 0.6); the family gate passes
	// (0.5 < 0.7) and the member draw passes (0.5 < 0.7) with a patch
	// offset of 1+1.
	rng := &scriptedRand{floats: []float64{0.9, 0.5, 0.5}, ints: []int{1}}
	NewStrategist(rng).Apply(session, m.Dependencies)

	assert.Equal(t, "1.2.3", session.Modified.Dependencies["@scope/a"])
	assert.Equal(t, "1.2.5", session.Modified.Dependencies["@scope/b"])
	assert.Equal(t, []string{"@scope/b"}, session.Scrambled[m.Dependencies])

	require.Len(t, session.Issues, 1)
	assert.Contains(t, session.Issues[0], "@scope/b")
	assert.Contains(t, session.Issues[0], "@scope/a")
}

func TestSiblingFamilyHyphenPrefix(t *testing.T) {
	manifest := &m.Manifest{
		Name:    "fixture",
		Version: "1.0.0",
		Dependencies: map[string]string{
			"eslint-plugin-import": "^2.25.0",
			"eslint-plugin-react":  "^2.25.0",
			"lodash":               "~4.17.21",
		},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.Dependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeRealistic,
	}, manifest)

	rng := &scriptedRand{floats: []float64{0.5, 0.5}, ints: []int{0}}
	st := &strategist{rng: rng}
	st.createSiblingMismatches(session, m.Dependencies)

	assert.Equal(t, "^2.25.0", session.Modified.Dependencies["eslint-plugin-import"])
	assert.Equal(t, "^2.25.1", session.Modified.Dependencies["eslint-plugin-react"])
	assert.Equal(t, "~4.17.21", session.Modified.Dependencies["lodash"])
}

func TestSiblingFamilyIgnoresOtherCategories(t *testing.T) {
	manifest := &m.Manifest{
		Name:    "fixture",
		Version: "1.0.0",
		DevDependencies: map[string]string{
			"@scope/a": "1.2.3",
			"@scope/b": "1.2.3",
		},
	}

	session := NewSession(m.ScrambleConfig{
		DependencyTypes: []m.DependencyType{m.DevDependencies},
		AggressionLevel: m.MaxAggression,
		ConflictMode:    m.ModeRealistic,
	}, manifest)

	rng := &scriptedRand{floats: []float64{0.0}, ints: []int{0}}
	st := &strategist{rng: rng}
	st.createSiblingMismatches(session, m.DevDependencies)

	assert.Empty(t, session.Scrambled)
}

func TestFamilyGroups(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected [][]string
	}{
		{
			name:     "scoped family",
			names:    []string{"@babel/core", "@babel/preset-env", "lodash"},
			expected: [][]string{{"@babel/core", "@babel/preset-env"}},
		},
		{
			name:     "hyphen family",
			names:    []string{"eslint-config", "eslint-plugin", "express"},
			expected: [][]string{{"eslint-config", "eslint-plugin"}},
		},
		{
			name:  "singletons form no group",
			names: []string{"@babel/core", "eslint-config", "react"},
		},
		{
			name:     "mixed families",
			names:    []string{"@scope/a", "@scope/b", "webpack-cli", "webpack-merge"},
			expected: [][]string{{"@scope/a", "@scope/b"}, {"webpack-cli", "webpack-merge"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, familyGroups(tt.names))
		})
	}
}

func TestIsPopular(t *testing.T) {
	assert.True(t, isPopular("react"))
	assert.True(t, isPopular("@angular/core"))
	assert.True(t, isPopular("@vue/cli"))
	assert.False(t, isPopular("left-pad"))
	assert.False(t, isPopular("reactive-x"))
}
