package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xunitify/internal/config"
	"xunitify/internal/logging"
	"xunitify/internal/observ"
	"xunitify/internal/prof"
	"xunitify/internal/project"
	"xunitify/internal/version"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	timings    bool
	colorMode  string

	profile prof.Options

	log     *zap.Logger
	timer   *observ.Timer
	session *prof.Session
}

// newRootCmd builds the command tree. The caller runs a.close after Execute,
// also when the command failed.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "xunitify",
		Short: "Convert NUnit test projects to xUnit",
		Long: `xunitify rewrites the NUnit test files of a C# project in place:
attributes, assertions, setup and teardown methods and one-time fixtures
are migrated to their xUnit equivalents. The project is backed up first.`,
		Version:           version.Current(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to "+config.FileName+" (default: searched upwards from the project)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress details to stderr")
	pf.BoolVar(&a.timings, "timings", false, "show timing information")
	pf.StringVar(&a.colorMode, "color", "auto", "colorize output (auto|on|off)")
	pf.StringVar(&a.profile.CPU, "cpu-profile", "", "write a CPU profile to this file")
	pf.StringVar(&a.profile.Mem, "mem-profile", "", "write a heap profile to this file on exit")
	pf.StringVar(&a.profile.Trace, "runtime-trace", "", "write a runtime trace to this file")

	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newRestoreCmd(a))
	root.AddCommand(newDetectCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newVersionCmd())
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch strings.ToLower(a.colorMode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.colorMode)
	}
	log, err := logging.New(logging.Options{Verbose: a.verbose, Development: a.verbose})
	if err != nil {
		return err
	}
	a.log = log
	if a.timings {
		a.timer = observ.NewTimer()
	}
	if a.profile.Enabled() {
		a.session, err = prof.Start(a.profile)
		if err != nil {
			return err
		}
	}
	return nil
}

// close stops the profilers, prints timings and flushes the logger.
func (a *app) close(cmd *cobra.Command) {
	if err := a.session.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
	if a.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), a.timer.Summary())
	}
	if a.log != nil {
		// stderr не поддерживает fsync на части платформ
		_ = a.log.Sync()
	}
}

// loadConfig reads --config or discovers xunitify.toml from startDir upwards.
func (a *app) loadConfig(startDir string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.Discover(startDir)
	}
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		a.log.Debug("config loaded", zap.String("path", cfg.Path))
	}
	return cfg, nil
}

// openProject resolves target (a directory or a .csproj) to a loaded project
// and its configuration.
func (a *app) openProject(target string) (*project.Project, config.Config, error) {
	path, ok, err := project.FindProjectFile(target)
	if err != nil {
		return nil, config.Config{}, err
	}
	if !ok {
		return nil, config.Config{}, fmt.Errorf("no .csproj found in %s or its parents", target)
	}
	done := a.timer.Track("load")
	p, err := project.Load(path)
	done(filepath.Base(path))
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := a.loadConfig(p.Dir)
	if err != nil {
		return nil, config.Config{}, err
	}
	return p, cfg, nil
}

// targetArg returns the first positional argument or the working directory.
func targetArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

// relPath shortens path for display when it lies under base.
func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
