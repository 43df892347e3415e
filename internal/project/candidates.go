package project

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xunitify/internal/detect"
	"xunitify/internal/logging"
)

// Candidate is a source file that uses NUnit.
type Candidate struct {
	Path string
	// External is true for files compiled by the project but stored
	// outside its directory.
	External bool
	Detect   detect.Result
}

// Candidates scans the project's source files in parallel and returns the
// NUnit ones, ordered for conversion.
func (p *Project) Candidates(ctx context.Context, jobs int, log *zap.Logger) ([]Candidate, error) {
	log = logging.OrNop(log)
	files, err := p.SourceFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]detect.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// #nosec G304 -- path comes from the project file
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			res, err := detect.Scan(gctx, content)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Candidate
	for i, path := range files {
		if !results[i].Candidate {
			log.Debug("not a test file", zap.String("file", path))
			continue
		}
		out = append(out, Candidate{Path: path, External: !p.Contains(path), Detect: results[i]})
	}
	Order(out)
	log.Info("candidates found", zap.String("project", p.Path), zap.Int("files", len(files)), zap.Int("candidates", len(out)))
	return out, nil
}

// Order sorts candidates by path. Files with one-time setup go last and
// keep their relative order.
func Order(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Detect.OneTimeSetUp != b.Detect.OneTimeSetUp {
			return !a.Detect.OneTimeSetUp
		}
		if a.Detect.OneTimeSetUp {
			return false
		}
		return a.Path < b.Path
	})
}

// Paths returns the candidate paths in order.
func Paths(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Path
	}
	return out
}
