// Package project reads .csproj files: which C# sources they compile and
// which of those are NUnit test files.
package project

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Project is a loaded .csproj.
type Project struct {
	Path string
	Dir  string
	// Name is the base name of the project directory.
	Name string
	// Properties are the values declared in PropertyGroup sections.
	Properties map[string]string
	Items      []CompileItem
}

// CompileItem is one <Compile> element.
type CompileItem struct {
	Include string
	Remove  string
}

// Load reads a .csproj file.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	// #nosec G304 -- project path is chosen by the user
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	p := &Project{
		Path:       abs,
		Dir:        filepath.Dir(abs),
		Properties: make(map[string]string),
	}
	p.Name = filepath.Base(p.Dir)
	if err := p.decode(f); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return p, nil
}

// decode collects Compile items at any depth and PropertyGroup values.
func (p *Project) decode(r io.Reader) error {
	dec := xml.NewDecoder(r)
	var stack []string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed project XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			text.Reset()
			if t.Name.Local == "Compile" {
				var item CompileItem
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "Include":
						item.Include = strings.TrimSpace(a.Value)
					case "Remove":
						item.Remove = strings.TrimSpace(a.Value)
					}
				}
				p.Items = append(p.Items, item)
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if n := len(stack); n >= 2 && stack[n-2] == "PropertyGroup" {
				p.Properties[t.Name.Local] = strings.TrimSpace(text.String())
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			text.Reset()
		}
	}
}

var propertyRef = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_.-]*)\)`)

// Expand substitutes $(Name) references. Well-known MSBuild properties win
// over declared ones; unknown references are kept verbatim.
func (p *Project) Expand(value string) string {
	sep := string(filepath.Separator)
	builtin := map[string]string{
		"MSBuildThisFileDirectory": p.Dir + sep,
		"ProjectDir":               p.Dir + sep,
		"MSBuildProjectDirectory":  p.Dir,
		"MSBuildProjectName":       p.Name,
		"MSBuildProjectFullPath":   p.Path,
	}
	for i := 0; i < 8 && strings.Contains(value, "$("); i++ {
		next := propertyRef.ReplaceAllStringFunc(value, func(ref string) string {
			name := ref[2 : len(ref)-1]
			if v, ok := builtin[name]; ok {
				return v
			}
			if v, ok := p.Properties[name]; ok {
				return v
			}
			return ref
		})
		if next == value {
			break
		}
		value = next
	}
	return value
}

// SourceFiles resolves the C# files the project compiles: Compile
// includes minus removes, or every .cs file under the project directory
// when nothing is included explicitly. Files under obj/ and missing files
// are dropped. Paths are absolute; order follows the items.
func (p *Project) SourceFiles() ([]string, error) {
	included := newPathSet()
	removed := newPathSet()
	for _, item := range p.Items {
		for _, pattern := range splitItems(p.Expand(item.Include)) {
			files, err := expandGlob(p.Dir, pattern)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if p.isCandidateFile(f) {
					included.add(f)
				}
			}
		}
		for _, pattern := range splitItems(p.Expand(item.Remove)) {
			files, err := expandGlob(p.Dir, pattern)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				removed.add(f)
			}
		}
	}

	if included.len() == 0 {
		err := filepath.WalkDir(p.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && p.isCandidateFile(path) {
				included.add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p.Dir, err)
		}
	}

	var out []string
	for _, f := range included.list {
		if removed.has(f) {
			continue
		}
		if info, err := os.Stat(f); err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// Contains reports whether path lies inside the project directory.
func (p *Project) Contains(path string) bool {
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (p *Project) isCandidateFile(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".cs") {
		return false
	}
	objDir := filepath.Join(p.Dir, "obj") + string(filepath.Separator)
	return !hasPrefixFold(path, objDir)
}

// splitItems splits an MSBuild item list on ';' and normalizes separators.
func splitItems(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, filepath.FromSlash(strings.ReplaceAll(part, `\`, "/")))
	}
	return out
}

// expandGlob resolves a pattern relative to baseDir. Without '*' it names
// one file; "**" searches the directory before it recursively for the
// pattern's base name; otherwise only the pattern's directory is listed.
func expandGlob(baseDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(baseDir, pattern)
	}
	pattern = filepath.Clean(pattern)
	if !strings.Contains(pattern, "*") {
		return []string{pattern}, nil
	}
	name := filepath.Base(pattern)
	if _, err := filepath.Match(name, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	if i := strings.Index(pattern, "**"); i >= 0 {
		searchDir := filepath.Clean(pattern[:i])
		var out []string
		err := filepath.WalkDir(searchDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == searchDir {
					return filepath.SkipDir
				}
				return err
			}
			if !d.IsDir() && matchName(name, d.Name()) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		return out, nil
	}

	entries, err := os.ReadDir(filepath.Dir(pattern))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && matchName(name, e.Name()) {
			out = append(out, filepath.Join(filepath.Dir(pattern), e.Name()))
		}
	}
	return out, nil
}

// matchName compares file names case-insensitively, as MSBuild does.
func matchName(pattern, name string) bool {
	ok, _ := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return ok
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// pathSet keeps insertion order and compares paths case-insensitively.
type pathSet struct {
	index map[string]struct{}
	list  []string
}

func newPathSet() *pathSet { return &pathSet{index: make(map[string]struct{})} }

func (s *pathSet) add(path string) {
	key := strings.ToLower(path)
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = struct{}{}
	s.list = append(s.list, path)
}

func (s *pathSet) has(path string) bool {
	_, ok := s.index[strings.ToLower(path)]
	return ok
}

func (s *pathSet) len() int { return len(s.list) }
