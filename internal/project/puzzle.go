// Package project persists puzzles and solved results as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/cubefit/internal/engine"
	"github.com/piwi3910/cubefit/internal/model"
)

// Result is the top-level structure written after a solve: the puzzle, the
// solutions in discovery order, and when the run happened.
type Result struct {
	Version   string            `json:"version"`
	CreatedAt string            `json:"created_at"`
	Puzzle    model.Puzzle      `json:"puzzle"`
	Solutions []engine.Solution `json:"solutions"`
}

// DefaultDir returns the default directory for stored puzzles.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cubefit"), nil
}

// SavePuzzle writes a puzzle to the specified JSON file, creating parent
// directories if they do not exist.
func SavePuzzle(path string, pz model.Puzzle) error {
	return writeJSON(path, pz)
}

// LoadPuzzle reads and validates a puzzle from a JSON file.
func LoadPuzzle(path string) (model.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Puzzle{}, err
	}
	var pz model.Puzzle
	if err := json.Unmarshal(data, &pz); err != nil {
		return model.Puzzle{}, fmt.Errorf("failed to parse puzzle file: %w", err)
	}
	// Re-normalize: hand-edited files may list cells unsorted or offset.
	for i, p := range pz.Pieces {
		pz.Pieces[i] = model.NewPiece(p.Kind, p.Points)
	}
	if err := pz.Validate(); err != nil {
		return model.Puzzle{}, err
	}
	return pz, nil
}

// SaveResult writes a solved result to the specified JSON file.
func SaveResult(path string, pz model.Puzzle, solutions []engine.Solution) error {
	return writeJSON(path, Result{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Puzzle:    pz,
		Solutions: solutions,
	})
}

// LoadResult reads a previously saved result.
func LoadResult(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	return res, nil
}

func writeJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
