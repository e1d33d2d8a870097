package model

// AppConfig holds application-wide preferences and default solve settings.
type AppConfig struct {
	// Default limits applied when the solve command is run without flags
	DefaultMaxSolutions int    `json:"default_max_solutions"` // 0 = unlimited
	DefaultTimeout      string `json:"default_timeout"`       // Go duration string, "" = none
	DefaultBox          Size   `json:"default_box"`

	// Application preferences
	OutputDir     string   `json:"output_dir"` // where exports land, "" = working directory
	RecentPuzzles []string `json:"recent_puzzles"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the built-in puzzle.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMaxSolutions: 0,
		DefaultTimeout:      "",
		DefaultBox:          BuiltinPuzzle().Box,
		OutputDir:           "",
		RecentPuzzles:       []string{},
	}
}

// RememberPuzzle records a puzzle path at the front of the recent list,
// dropping duplicates and keeping at most ten entries.
func (c *AppConfig) RememberPuzzle(path string) {
	recent := []string{path}
	for _, p := range c.RecentPuzzles {
		if p == path {
			continue
		}
		recent = append(recent, p)
		if len(recent) == 10 {
			break
		}
	}
	c.RecentPuzzles = recent
}
