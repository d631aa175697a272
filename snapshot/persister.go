package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Persister saves and loads host snapshots by host ID.
type Persister interface {
	Save(ctx context.Context, snap HostSnapshot) error
	Load(ctx context.Context, hostID string) (HostSnapshot, error)
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snap HostSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.HostID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, hostID string) (HostSnapshot, error) {
	fn := filepath.Join(p.dir, hostID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return HostSnapshot{}, fmt.Errorf("host %q: %w", hostID, os.ErrNotExist)
		}
		return HostSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap HostSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return HostSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snap.HostID = hostID // Ensure ID

	return snap, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snap HostSnapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.HostID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, hostID string) (HostSnapshot, error) {
	fn := filepath.Join(p.dir, hostID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return HostSnapshot{}, fmt.Errorf("host %q: %w", hostID, os.ErrNotExist)
		}
		return HostSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap HostSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return HostSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snap.HostID = hostID // Ensure ID

	return snap, nil
}
