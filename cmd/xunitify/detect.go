package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type detectEntry struct {
	File         string   `json:"file"`
	External     bool     `json:"external,omitempty"`
	ByText       bool     `json:"by_text"`
	OneTimeSetUp bool     `json:"one_time_setup,omitempty"`
	Attributes   []string `json:"attributes,omitempty"`
}

func newDetectCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "detect [project-dir|file.csproj]",
		Short: "List the NUnit files of a project in conversion order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be text or json)", format)
			}
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			p, cfg, err := a.openProject(target)
			if err != nil {
				return err
			}
			done := a.timer.Track("detect")
			cands, err := p.Candidates(cmd.Context(), cfg.Project.Jobs, a.log)
			done("")
			if err != nil {
				return err
			}

			entries := make([]detectEntry, 0, len(cands))
			for _, c := range cands {
				entries = append(entries, detectEntry{
					File:         relPath(p.Dir, c.Path),
					External:     c.External,
					ByText:       c.Detect.ByText,
					OneTimeSetUp: c.Detect.OneTimeSetUp,
					Attributes:   c.Detect.Attributes,
				})
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No NUnit test files found in %s\n", p.Path)
				return nil
			}
			for _, e := range entries {
				var tags []string
				if e.External {
					tags = append(tags, "external")
				}
				if e.OneTimeSetUp {
					tags = append(tags, "one-time setup")
				}
				line := e.File
				if len(e.Attributes) > 0 {
					line += "  [" + strings.Join(e.Attributes, ", ") + "]"
				}
				if len(tags) > 0 {
					line += "  (" + strings.Join(tags, ", ") + ")"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}
