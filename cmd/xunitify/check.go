package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xunitify/internal/diag"
	"xunitify/internal/diagfmt"
	"xunitify/internal/pipeline"
	"xunitify/internal/printer"
)

type checkOptions struct {
	format string
	print  bool
	max    int
}

type checkFileJSON struct {
	File    string                    `json:"file"`
	Changed bool                      `json:"changed"`
	Error   string                    `json:"error,omitempty"`
	Output  diagfmt.DiagnosticsOutput `json:"output"`
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check <file.cs>...",
		Short: "Convert files in memory and report diagnostics without writing",
		Long: `Check parses and converts the given files without touching them. The
converted text is re-parsed to make sure it is well formed. With --print the
converted text is written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "pretty", "diagnostics format (pretty|json)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "write the converted text to stdout")
	cmd.Flags().IntVar(&opts.max, "max-diagnostics", 100, "maximum number of diagnostics per file (0 = all)")
	return cmd
}

func (a *app) check(cmd *cobra.Command, files []string, opts checkOptions) error {
	opts.format = strings.ToLower(opts.format)
	if opts.format != "pretty" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
	}
	start, err := filepath.Abs(filepath.Dir(files[0]))
	if err != nil {
		return err
	}
	cfg, err := a.loadConfig(start)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	pl := pipeline.New(nil, engine, pipeline.Options{
		DryRun:  true,
		Verify:  true,
		Printer: printer.Options{IndentWidth: cfg.Output.Indent},
		Logger:  a.log,
		Timer:   a.timer,
	})
	report, err := pl.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var printErr error
	switch {
	case opts.format == "json":
		printErr = writeCheckJSON(out, report, opts.max)
	default:
		printErr = writeCheckPretty(out, cmd.ErrOrStderr(), report, opts)
	}
	if printErr != nil {
		return printErr
	}
	if n := len(report.Failed()); n > 0 {
		return fmt.Errorf("%d of %d file(s) cannot be converted", n, len(files))
	}
	return nil
}

func resultBag(res pipeline.Result, limit int) *diag.Bag {
	bag := diag.NewBag(limit)
	for _, d := range res.Diagnostics {
		bag.Add(d)
	}
	bag.Sort()
	return bag
}

func writeCheckPretty(out, errOut io.Writer, report pipeline.Report, opts checkOptions) error {
	// с --print stdout занят текстом файлов, диагностики уходят в stderr
	diagOut := out
	if opts.print {
		diagOut = errOut
	}
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Fprintf(diagOut, "%s %s: %v\n", failColor.Sprint("error"), res.Path, res.Err)
		}
		if res.Sources != nil {
			popts := diagfmt.PrettyOpts{Color: !color.NoColor, Context: 1, ShowNotes: true}
			if err := diagfmt.Pretty(diagOut, resultBag(res, opts.max), res.Sources, popts); err != nil {
				return err
			}
		}
		if opts.print && res.Err == nil {
			if len(report.Results) > 1 {
				fmt.Fprintf(out, "// %s\n", res.Path)
			}
			if _, err := out.Write(res.Output); err != nil {
				return err
			}
		}
	}
	if !opts.print {
		fmt.Fprintf(out, "%d file(s) checked, %d would change, %d failed\n",
			len(report.Results), report.Converted(), len(report.Failed()))
	}
	return nil
}

func writeCheckJSON(out io.Writer, report pipeline.Report, limit int) error {
	files := make([]checkFileJSON, 0, len(report.Results))
	for _, res := range report.Results {
		entry := checkFileJSON{File: res.Path, Changed: res.Changed}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		entry.Output = diagfmt.BuildDiagnosticsOutput(resultBag(res, limit), res.Sources, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
		files = append(files, entry)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}
