package forest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fitlens/backend/internal/domain"
)

// ArtifactPath returns the artifact file for a target inside dir
func ArtifactPath(dir, target string) string {
	return filepath.Join(dir, target+".json")
}

// Save writes the pipeline as JSON, replacing any existing file atomically
func (p *Pipeline) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pipeline: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write pipeline: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write pipeline: %w", err)
	}
	return nil
}

// Load reads a pipeline artifact
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("read pipeline: %w", err)
	}

	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pipeline %s: %w", path, err)
	}
	if p.Version != ArtifactVersion {
		return nil, fmt.Errorf("pipeline %s has version %d, want %d", path, p.Version, ArtifactVersion)
	}
	if p.Encoder == nil || p.Forest == nil || len(p.Forest.Trees) == 0 || len(p.Forest.Classes) == 0 {
		return nil, fmt.Errorf("pipeline %s is incomplete", path)
	}
	return &p, nil
}
