// Package backup copies a project aside before conversion and puts the
// sources back on request.
//
// Layout of a backup directory:
//
//	<root>/<project>/...            copy of the project directory
//	<root>/<project>/_ExternalFiles files compiled from outside the project
//	<root>/<project>/backup.mp      manifest (msgpack)
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xunitify/internal/logging"
)

// ExternalDir holds copies of files that live outside the project directory.
const ExternalDir = "_ExternalFiles"

// Store is the backup slot of one project.
type Store struct {
	ProjectDir string
	// Dir is the backup directory: the backup root joined with the
	// project directory's base name.
	Dir string

	log *zap.Logger
	now func() time.Time
}

// New returns the store for projectDir under root.
func New(projectDir, root string, log *zap.Logger) *Store {
	projectDir = filepath.Clean(projectDir)
	return &Store{
		ProjectDir: projectDir,
		Dir:        filepath.Join(root, filepath.Base(projectDir)),
		log:        logging.OrNop(log),
		now:        time.Now,
	}
}

// Exists reports whether a backup has been taken.
func (s *Store) Exists() bool {
	st, err := os.Stat(s.Dir)
	return err == nil && st.IsDir()
}

// Create replaces any previous backup with a copy of the project directory
// and of the given external files.
func (s *Store) Create(ctx context.Context, external []string) (*Manifest, error) {
	if err := os.RemoveAll(s.Dir); err != nil {
		return nil, fmt.Errorf("remove old backup: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	files := 0
	err := filepath.WalkDir(s.ProjectDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// бэкап внутри проекта не копируем сам в себя
		if d.IsDir() && p == s.Dir {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.ProjectDir, p)
		if err != nil {
			return err
		}
		files++
		return copyFile(p, filepath.Join(s.Dir, rel))
	})
	if err != nil {
		return nil, fmt.Errorf("copy project: %w", err)
	}

	m := &Manifest{
		Schema:     manifestSchema,
		RunID:      uuid.NewString(),
		Created:    s.now().UTC(),
		ProjectDir: s.ProjectDir,
	}
	for _, p := range external {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		stored := storedPath(abs)
		if err := copyFile(abs, filepath.Join(s.Dir, ExternalDir, filepath.FromSlash(stored))); err != nil {
			return nil, fmt.Errorf("copy external file: %w", err)
		}
		m.External = append(m.External, ExternalFile{Origin: abs, Stored: stored})
	}
	if err := writeManifest(s.Dir, m); err != nil {
		return nil, err
	}
	s.log.Info("backup created",
		zap.String("dir", s.Dir),
		zap.String("run", m.RunID),
		zap.Int("files", files),
		zap.Int("external", len(m.External)))
	return m, nil
}

// Restored counts what Restore copied back.
type Restored struct {
	Files    int
	External int
}

// Restore copies the backed-up C# sources over the project and puts external
// files back at their origin. ok is false when there is no backup.
func (s *Store) Restore(ctx context.Context) (res Restored, ok bool, err error) {
	if !s.Exists() {
		s.log.Debug("no backup to restore", zap.String("dir", s.Dir))
		return res, false, nil
	}

	extRoot := filepath.Join(s.Dir, ExternalDir)
	err = filepath.WalkDir(s.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p == extRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(p), ".cs") {
			return nil
		}
		rel, err := filepath.Rel(s.Dir, p)
		if err != nil {
			return err
		}
		res.Files++
		return copyFile(p, filepath.Join(s.ProjectDir, rel))
	})
	if err != nil {
		return res, true, fmt.Errorf("restore project files: %w", err)
	}

	entries, err := s.externalEntries()
	if err != nil {
		return res, true, err
	}
	for _, e := range entries {
		if err := copyFile(filepath.Join(extRoot, filepath.FromSlash(e.Stored)), e.Origin); err != nil {
			return res, true, fmt.Errorf("restore external file: %w", err)
		}
		res.External++
	}
	s.log.Info("restored",
		zap.String("dir", s.Dir),
		zap.Int("files", res.Files),
		zap.Int("external", res.External))
	return res, true, nil
}

// externalEntries lists the external files of the backup. Backups without a
// manifest fall back to decoding the origin from the stored path.
func (s *Store) externalEntries() ([]ExternalFile, error) {
	m, err := ReadManifest(s.Dir)
	if err == nil {
		return m.External, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	extRoot := filepath.Join(s.Dir, ExternalDir)
	var out []ExternalFile
	err = filepath.WalkDir(extRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && p == extRoot {
				return filepath.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(extRoot, p)
		if err != nil {
			return err
		}
		stored := filepath.ToSlash(rel)
		out = append(out, ExternalFile{Origin: legacyOrigin(stored), Stored: stored})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan external files: %w", err)
	}
	return out, nil
}

// storedPath turns an absolute path into a relative one: the volume name
// becomes the first segment with ':' and separators replaced by '_'.
func storedPath(abs string) string {
	vol := filepath.VolumeName(abs)
	rest := strings.TrimLeft(filepath.ToSlash(abs[len(vol):]), "/")
	if vol == "" {
		return rest
	}
	vol = strings.Trim(strings.NewReplacer(":", "_", `\`, "_", "/", "_").Replace(vol), "_")
	return path.Join(vol+"_", rest)
}

// legacyOrigin reverses storedPath for a drive-letter volume ("C_/x" -> "C:\x")
// and treats anything else as rooted at "/".
func legacyOrigin(stored string) string {
	first, rest, _ := strings.Cut(stored, "/")
	if len(first) == 2 && first[1] == '_' && isLetter(first[0]) {
		return first[:1] + `:\` + strings.ReplaceAll(rest, "/", `\`)
	}
	return filepath.FromSlash("/" + stored)
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// copyFile copies src to dst, creating parent directories and keeping the
// permission bits of src.
func copyFile(src, dst string) error {
	// #nosec G304 -- paths come from the project or the backup directory
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	st, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	// #nosec G304 -- see above
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, st.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
