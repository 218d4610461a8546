package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/mouse-blink/tangle/internal/model"
)

// DefaultReportName is where a scramble run leaves its report unless told
// otherwise.
const DefaultReportName = ".tangle-report.json"

// ReportStore persists and retrieves scramble results.
type ReportStore interface {
	SaveResults(path m.Path, results []m.ScrambleResult) error
	LoadResults(path m.Path) ([]m.ScrambleResult, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveResults(path m.Path, results []m.ScrambleResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report %s: %w", path, err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(string(path), data, manifestFileMode); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func (rs *reportStore) LoadResults(path m.Path) ([]m.ScrambleResult, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var results []m.ScrambleResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return results, nil
}
