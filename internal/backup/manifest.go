package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ManifestName is the manifest file stored at the backup root.
const ManifestName = "backup.mp"

// Current schema version - increment when Manifest format changes
const manifestSchema uint16 = 1

// Manifest describes one backup run.
type Manifest struct {
	Schema  uint16
	RunID   string
	Created time.Time
	// ProjectDir is the absolute directory the backup was taken from.
	ProjectDir string
	External   []ExternalFile
}

// ExternalFile maps a file outside the project directory to its copy
// under ExternalDir.
type ExternalFile struct {
	Origin string
	// Stored is slash-separated and relative to ExternalDir.
	Stored string
}

func writeManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, ManifestName)
	// #nosec G304 -- path is inside the backup directory
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	return f.Close()
}

// ReadManifest loads the manifest of a backup directory.
// A missing manifest yields os.ErrNotExist.
func ReadManifest(dir string) (*Manifest, error) {
	// #nosec G304 -- path is inside the backup directory
	f, err := os.Open(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Manifest
	if err := msgpack.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Schema != manifestSchema {
		return nil, fmt.Errorf("manifest schema %d: %w", m.Schema, errSchema)
	}
	return &m, nil
}

var errSchema = errors.New("unsupported manifest schema")
