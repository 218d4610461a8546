// Package cmd provides the root command and CLI setup for tangle.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/tangle/internal/adapter"
	"github.com/mouse-blink/tangle/internal/controller"
	"github.com/mouse-blink/tangle/internal/domain"
	m "github.com/mouse-blink/tangle/internal/model"
)

var manifestStore adapter.ManifestStore
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	manifestStore = adapter.NewLocalManifestStore()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(manifestStore, reportStore, ui)
}

var percentageFlag int
var aggressionFlag int
var modeFlag string
var typesFlags []string
var noBackupFlag bool
var respectMajorFlag bool
var constraintFlags []string
var dryRunFlag bool
var parallelFlag int
var reportOutputFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tangle [manifest...]",
		Short: "Dependency manifest scrambler",
		Long:  rootLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}

			return workflow.Scramble(domain.ScrambleArgs{
				Targets: parseTargets(args),
				Config:  cfg,
				Threads: parallelFlag,
				Report:  m.Path(reportOutputFlag),
				DryRun:  dryRunFlag,
			})
		},
	}

	cmd.Flags().IntVarP(&percentageFlag, "percentage", "p", 30, "percentage of entries to scramble per category (0-100)")
	cmd.Flags().IntVarP(&aggressionFlag, "aggression", "a", 5, "mutation aggression level (1-10)")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "simple", "conflict mode: simple, realistic or peer-conflict")
	cmd.Flags().StringArrayVarP(&typesFlags, "types", "t", nil, "dependency categories to scramble (can be repeated)")
	cmd.Flags().BoolVar(&noBackupFlag, "no-backup", false, "skip the manifest backup before scrambling")
	cmd.Flags().BoolVar(&respectMajorFlag, "respect-major", false, "never change major versions")
	cmd.Flags().StringArrayVarP(&constraintFlags, "constraint", "c", nil, "per-package constraint in the form name=specifier (can be repeated)")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "report what would change without writing anything")
	cmd.Flags().IntVar(&parallelFlag, "parallel", 1, "number of manifests to scramble in parallel")
	cmd.PersistentFlags().StringVarP(&reportOutputFlag, "report", "r", adapter.DefaultReportName, "where to persist the scramble report")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func buildConfig() (m.ScrambleConfig, error) {
	mode, err := m.ParseConflictMode(modeFlag)
	if err != nil {
		return m.ScrambleConfig{}, err
	}

	types, err := parseTypes(typesFlags)
	if err != nil {
		return m.ScrambleConfig{}, err
	}

	constraints, err := parseConstraints(constraintFlags)
	if err != nil {
		return m.ScrambleConfig{}, err
	}

	return m.ScrambleConfig{
		CreateBackup:        !noBackupFlag,
		DependencyTypes:     types,
		ScramblePercentage:  percentageFlag,
		AggressionLevel:     aggressionFlag,
		ConflictMode:        mode,
		RespectMajorVersion: respectMajorFlag,
		VersionConstraints:  constraints,
	}.Normalized(), nil
}

func parseTargets(args []string) []m.Path {
	targets := make([]m.Path, 0, len(args))
	for _, arg := range args {
		targets = append(targets, m.Path(arg))
	}

	return targets
}

func parseTypes(raw []string) ([]m.DependencyType, error) {
	var types []m.DependencyType

	for _, s := range raw {
		t, err := m.ParseDependencyType(s)
		if err != nil {
			return nil, err
		}

		types = append(types, t)
	}

	return types, nil
}

func parseConstraints(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	constraints := make(map[string]string, len(raw))

	for _, entry := range raw {
		name, spec, ok := strings.Cut(entry, "=")
		if !ok || name == "" || spec == "" {
			return nil, fmt.Errorf("invalid constraint %q, expected name=specifier", entry)
		}

		constraints[name] = spec
	}

	return constraints, nil
}
