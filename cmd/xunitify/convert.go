package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xunitify/internal/backup"
	"xunitify/internal/config"
	"xunitify/internal/fixture"
	"xunitify/internal/pipeline"
	"xunitify/internal/printer"
	"xunitify/internal/project"
	"xunitify/internal/rewrite"
)

type convertOptions struct {
	dryRun         bool
	noBackup       bool
	noRestore      bool
	verify         bool
	ui             string
	jobs           int
	fixtureScope   string
	duplicateRoles string
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions
	cmd := &cobra.Command{
		Use:   "convert [project-dir|file.csproj]",
		Short: "Convert the NUnit test files of a project to xUnit",
		Long: `Convert restores the previous backup (when there is one), finds the NUnit
files compiled by the project, backs the project up and rewrites each file
in place. A file that fails to parse is reported and left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			p, cfg, err := a.openProject(target)
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, &cfg, opts); err != nil {
				return err
			}
			return a.convert(cmd, p, cfg, opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", false, "compute the conversion without touching any file")
	f.BoolVar(&opts.noBackup, "no-backup", false, "do not back the project up before converting")
	f.BoolVar(&opts.noRestore, "no-restore", false, "do not restore the previous backup first")
	f.BoolVar(&opts.verify, "verify", true, "re-parse every converted file before writing it")
	f.StringVar(&opts.ui, "ui", "", "progress UI (auto|on|off); default from config")
	f.IntVar(&opts.jobs, "jobs", 0, "parallel file scans (0 = config or GOMAXPROCS)")
	f.StringVar(&opts.fixtureScope, "fixture-scope", "", "one-time fixture binding scope (run|file|class)")
	f.StringVar(&opts.duplicateRoles, "duplicate-roles", "", "duplicate setup/teardown policy (last-wins|first-wins)")
	return cmd
}

// applyOverrides copies explicitly set flags over the configuration.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, opts convertOptions) error {
	flags := cmd.Flags()
	if flags.Changed("fixture-scope") {
		cfg.Rewrite.FixtureScope = opts.fixtureScope
	}
	if flags.Changed("duplicate-roles") {
		cfg.Rewrite.DuplicateRoles = opts.duplicateRoles
	}
	if flags.Changed("jobs") {
		cfg.Project.Jobs = opts.jobs
	}
	if flags.Changed("ui") {
		cfg.Output.UI = opts.ui
	}
	return cfg.Validate()
}

func (a *app) convert(cmd *cobra.Command, p *project.Project, cfg config.Config, opts convertOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	store := backup.New(p.Dir, cfg.BackupRoot(p.Dir), a.log)

	if cfg.Project.RestoreBeforeRun && !opts.noRestore && !opts.dryRun {
		done := a.timer.Track("restore")
		res, ok, err := store.Restore(ctx)
		done("")
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		if ok {
			fmt.Fprintf(out, "Restored %d file(s) from %s\n", res.Files+res.External, store.Dir)
		}
	}

	done := a.timer.Track("detect")
	cands, err := p.Candidates(ctx, cfg.Project.Jobs, a.log)
	done("")
	if err != nil {
		return err
	}
	if len(cands) == 0 {
		fmt.Fprintf(out, "No NUnit test files found in %s\n", p.Path)
		return nil
	}

	if !opts.noBackup && !opts.dryRun {
		done := a.timer.Track("backup")
		_, err := store.Create(ctx, externalPaths(cands))
		done("")
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		fmt.Fprintf(out, "Backed up %s to %s\n", p.Name, store.Dir)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	popts := pipeline.Options{
		DryRun:  opts.dryRun,
		Verify:  opts.verify,
		Printer: printer.Options{IndentWidth: cfg.Output.Indent},
		Logger:  a.log,
		Timer:   a.timer,
	}
	paths := project.Paths(cands)
	mode, err := readUIMode(cfg.Output.UI)
	if err != nil {
		return err
	}

	var report pipeline.Report
	if shouldUseTUI(mode) {
		report, err = runWithUI(ctx, "Converting "+p.Name, paths, engine, popts)
	} else {
		popts.Progress = textSink{w: out, base: p.Dir}
		report, err = pipeline.New(nil, engine, popts).Run(ctx, paths)
	}
	if err != nil {
		return err
	}

	printReport(out, report, p.Dir, opts.dryRun)
	if failed := len(report.Failed()); failed > 0 {
		a.log.Warn("conversion incomplete", zap.Int("failed", failed))
		return fmt.Errorf("%d of %d file(s) failed to convert", failed, len(report.Results))
	}
	return nil
}

// buildEngine creates the rewrite engine for one run. The fixture binder
// lives as long as the engine, so the run scope spans every file.
func buildEngine(cfg config.Config) (*rewrite.Engine, error) {
	opts, err := cfg.RewriteOptions()
	if err != nil {
		return nil, err
	}
	scope, err := cfg.Scope()
	if err != nil {
		return nil, err
	}
	return rewrite.New(opts, fixture.NewBinder(scope)), nil
}

func externalPaths(cands []project.Candidate) []string {
	var out []string
	for _, c := range cands {
		if c.External {
			out = append(out, c.Path)
		}
	}
	return out
}

var errNoBackup = errors.New("no backup found")

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [project-dir|file.csproj]",
		Short: "Put back the C# sources saved by the last convert",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			p, cfg, err := a.openProject(target)
			if err != nil {
				return err
			}
			store := backup.New(p.Dir, cfg.BackupRoot(p.Dir), a.log)
			done := a.timer.Track("restore")
			res, ok, err := store.Restore(cmd.Context())
			done("")
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", store.Dir, errNoBackup)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d project file(s) and %d external file(s) from %s\n",
				res.Files, res.External, store.Dir)
			return nil
		},
	}
}
