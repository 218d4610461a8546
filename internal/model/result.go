package model

import "sort"

// Change records one before/after specifier edit for reporting.
type Change struct {
	Category DependencyType `json:"category"`
	Package  string         `json:"package"`
	Before   string         `json:"before"`
	After    string         `json:"after"`
}

// ScrambleResult is the full before/after record of one scramble run.
type ScrambleResult struct {
	Target        Path                        `json:"target"`
	Original      *Manifest                   `json:"original"`
	Modified      *Manifest                   `json:"modified"`
	ScrambledDeps map[DependencyType][]string `json:"scrambledDeps"`
	BackupPath    Path                        `json:"backupPath,omitempty"`
	Issues        []string                    `json:"issues"`
}

// TotalScrambled counts the scrambled entries across all categories.
func (r *ScrambleResult) TotalScrambled() int {
	total := 0
	for _, names := range r.ScrambledDeps {
		total += len(names)
	}

	return total
}

// Changes flattens the scrambled entries into before/after rows, ordered by
// category (manifest order) then package name.
func (r *ScrambleResult) Changes() []Change {
	var changes []Change

	for _, t := range AllDependencyTypes {
		names := append([]string(nil), r.ScrambledDeps[t]...)
		sort.Strings(names)

		for _, name := range names {
			changes = append(changes, Change{
				Category: t,
				Package:  name,
				Before:   categoryValue(r.Original, t, name),
				After:    categoryValue(r.Modified, t, name),
			})
		}
	}

	return changes
}

func categoryValue(mf *Manifest, t DependencyType, name string) string {
	if mf == nil {
		return ""
	}

	return mf.Category(t)[name]
}
