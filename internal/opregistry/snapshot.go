package opregistry

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Snapshot is the on-disk JSON form of a registry dump.
type Snapshot struct {
	// Framework and Version identify the native library the snapshot was
	// taken from. Informational only.
	Framework string `json:"framework"`
	Version   string `json:"version"`

	Operators []OperatorInfo `json:"operators"`
}

// Label describes the snapshot's origin, for generated file headers.
func (s *Snapshot) Label() string {
	switch {
	case s.Framework == "":
		return "native"
	case s.Version == "":
		return s.Framework
	}
	return s.Framework + " " + s.Version
}

// Registry returns the snapshot as an enumerable Registry. The snapshot must
// not contain duplicate operator names.
func (s *Snapshot) Registry() (Registry, error) {
	return NewInMemory(s.Operators...)
}

// LoadSnapshot reads a registry snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read registry snapshot %q", path)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to parse registry snapshot %q", path)
	}
	if _, err := snapshot.Registry(); err != nil {
		return nil, errors.Wrapf(err, "invalid registry snapshot %q", path)
	}
	return &snapshot, nil
}
