package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// stateFile is the manifest kept inside the output directory.
const stateFile = ".previewkit-state"

// State tracks which source files have been rendered and their content hashes.
type State struct {
	FileHashes  map[string]string `json:"file_hashes"`
	LastUpdated time.Time         `json:"last_updated"`
}

// LoadState reads the build manifest from the given output directory. A
// missing manifest yields an empty state.
func LoadState(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &State{FileHashes: make(map[string]string)}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.FileHashes == nil {
		state.FileHashes = make(map[string]string)
	}
	return &state, nil
}

// Save writes the manifest into dir.
func (s *State) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	s.LastUpdated = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, stateFile), data, 0o644)
}

// IsFileChanged returns true if the file's content hash differs from the stored hash.
func (s *State) IsFileChanged(relPath, contentHash string) bool {
	stored, ok := s.FileHashes[relPath]
	if !ok {
		return true
	}
	return stored != contentHash
}
