package domain

import (
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/tangle/internal/adapter"
	"github.com/mouse-blink/tangle/internal/controller"
	m "github.com/mouse-blink/tangle/internal/model"
)

// ScrambleArgs holds the inputs for a scramble run over one or more
// manifest targets.
type ScrambleArgs struct {
	Targets []m.Path
	Config  m.ScrambleConfig
	Threads int
	Report  m.Path
	DryRun  bool
}

// RestoreArgs holds the inputs for restoring a manifest from a backup.
type RestoreArgs struct {
	Backup m.Path
	Target m.Path
}

// ViewArgs holds the inputs for re-rendering a persisted report.
type ViewArgs struct {
	Report m.Path
}

// Workflow defines the interface for manifest scrambling operations.
type Workflow interface {
	Scramble(args ScrambleArgs) error
	Restore(args RestoreArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	store   adapter.ManifestStore
	reports adapter.ReportStore
	ui      controller.UI

	// newRand supplies an independent randomness source per target, so
	// parallel targets never share one.
	newRand func() Rand
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(store adapter.ManifestStore, reports adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		store:   store,
		reports: reports,
		ui:      ui,
		newRand: NewRand,
	}
}

// Scramble loads each target, optionally backs it up, mutates a deep copy,
// persists it and reports every change. Targets are processed with at most
// args.Threads in flight; each target's load/backup/save sequence stays
// strictly ordered within itself.
func (w *workflow) Scramble(args ScrambleArgs) error {
	targets := args.Targets
	if len(targets) == 0 {
		targets = []m.Path{adapter.DefaultManifestName}
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	results := make([]m.ScrambleResult, len(targets))

	var g errgroup.Group

	g.SetLimit(threads)

	for i, target := range targets {
		g.Go(func() error {
			result, err := w.scrambleTarget(target, args)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if args.Report != "" && !args.DryRun {
		if err := w.reports.SaveResults(args.Report, results); err != nil {
			return err
		}
	}

	return w.ui.DisplayResults(results)
}

// Restore copies backup bytes verbatim onto the target manifest. An empty
// target restores the conventional manifest next to the backup.
func (w *workflow) Restore(args RestoreArgs) error {
	target := args.Target
	if target == "" {
		target = m.Path(filepath.Join(filepath.Dir(string(args.Backup)), adapter.DefaultManifestName))
	}

	if err := w.store.Restore(args.Backup, target); err != nil {
		return err
	}

	w.ui.DisplayRestore(args.Backup, target)

	return nil
}

// View re-renders a previously persisted scramble report.
func (w *workflow) View(args ViewArgs) error {
	results, err := w.reports.LoadResults(args.Report)
	if err != nil {
		return err
	}

	return w.ui.DisplayResults(results)
}

func (w *workflow) scrambleTarget(target m.Path, args ScrambleArgs) (m.ScrambleResult, error) {
	cfg := args.Config
	cfg.TargetPath = target

	manifest, err := w.store.Load(target)
	if err != nil {
		return m.ScrambleResult{}, err
	}

	var backup m.Path

	if cfg.CreateBackup && !args.DryRun {
		backup, err = w.store.Backup(target)
		if err != nil {
			return m.ScrambleResult{}, err
		}
	}

	session := NewSession(cfg, manifest)
	NewScrambler(w.newRand()).Scramble(session)

	result := session.Result()
	result.BackupPath = backup

	if !args.DryRun {
		if err := w.store.Save(target, result.Modified); err != nil {
			return m.ScrambleResult{}, err
		}
	}

	return result, nil
}
