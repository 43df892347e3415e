package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSystem is the text source and sink of the pipeline.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem reads and writes the local disk.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from the project scanner or the command line
	return os.ReadFile(path)
}

// WriteFile replaces the file, keeping its permission bits.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	perm := fs.FileMode(0o600)
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return os.WriteFile(path, data, perm)
}
