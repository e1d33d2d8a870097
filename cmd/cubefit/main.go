// CubeFit — exhaustive 3D polycube packing solver
//
// Enumerates every exact-fit packing of a set of polycube pieces into a
// rectangular box.
//
// Build:
//   go build -o cubefit ./cmd/cubefit
//
// Usage:
//   cubefit solve                          # solve the built-in puzzle
//   cubefit solve --puzzle mypuzzle.json --pdf out.pdf
//   cubefit pieces --puzzle mypuzzle.json
//   cubefit import pieces.xlsx --box 4x4x2 --out mypuzzle.json

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cubefit/internal/engine"
	"github.com/piwi3910/cubefit/internal/export"
	"github.com/piwi3910/cubefit/internal/importer"
	"github.com/piwi3910/cubefit/internal/model"
	"github.com/piwi3910/cubefit/internal/project"
)

func main() {
	root := &cobra.Command{
		Use:   "cubefit",
		Short: "Exhaustive 3D polycube packing solver",
		Long: "CubeFit enumerates every exact-fit packing of a set of rigid polycube\n" +
			"pieces into a rectangular box, considering all distinct rotations of\n" +
			"each piece.",
		SilenceUsage: true,
	}
	root.AddCommand(solveCmd(), piecesCmd(), importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadPuzzle returns the puzzle at path, or the built-in puzzle when path
// is empty.
func loadPuzzle(path string) (model.Puzzle, error) {
	if path == "" {
		return model.BuiltinPuzzle(), nil
	}
	return project.LoadPuzzle(path)
}

// loadConfig reads the stored application config, falling back to defaults
// when missing or unreadable. The returned path is empty when no config
// location is available on this platform.
func loadConfig() (model.AppConfig, string) {
	path, err := project.DefaultConfigPath()
	if err != nil {
		return model.DefaultAppConfig(), ""
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring unreadable config %s: %v\n", path, err)
		return model.DefaultAppConfig(), path
	}
	return cfg, path
}

// resolveOutput places a relative export path under the configured output
// directory. Absolute paths are kept as given.
func resolveOutput(outputDir, path string) string {
	if outputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(outputDir, path)
}

func solveCmd() *cobra.Command {
	var (
		puzzlePath string
		maxSol     int
		timeout    time.Duration
		pdfPath    string
		xlsxPath   string
		outPath    string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find every packing of the puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath := loadConfig()
			if !cmd.Flags().Changed("max") && cfg.DefaultMaxSolutions > 0 {
				maxSol = cfg.DefaultMaxSolutions
			}
			if !cmd.Flags().Changed("timeout") && cfg.DefaultTimeout != "" {
				if d, err := time.ParseDuration(cfg.DefaultTimeout); err == nil {
					timeout = d
				}
			}

			pz, err := loadPuzzle(puzzlePath)
			if err != nil {
				return err
			}
			if puzzlePath != "" && cfgPath != "" {
				cfg.RememberPuzzle(puzzlePath)
				if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
					fmt.Fprintf(os.Stderr, "warning: could not update config: %v\n", err)
				}
			}
			if err := pz.Validate(); err != nil {
				return fmt.Errorf("invalid puzzle: %w", err)
			}
			if pz.CellCount() != pz.Box.Volume() {
				fmt.Fprintf(os.Stderr, "warning: pieces total %d cells but the box holds %d; no exact packing can exist\n",
					pz.CellCount(), pz.Box.Volume())
			}

			solver := engine.NewSolver(pz)
			var deadline time.Time
			if timeout > 0 {
				deadline = time.Now().Add(timeout)
			}
			if maxSol > 0 || timeout > 0 {
				solver.Continue = func() bool {
					if maxSol > 0 && solver.Found() >= maxSol {
						return false
					}
					return deadline.IsZero() || time.Now().Before(deadline)
				}
			}

			start := time.Now()
			solutions := solver.Solve()
			elapsed := time.Since(start)

			fmt.Printf("Found %d solution(s) in %s\n", len(solutions), elapsed.Round(time.Millisecond))
			if !quiet {
				for i, sol := range solutions {
					fmt.Println()
					if err := export.WriteSolution(os.Stdout, i+1, sol); err != nil {
						return err
					}
				}
			}

			if pdfPath != "" {
				dest := resolveOutput(cfg.OutputDir, pdfPath)
				if err := export.ExportPDF(dest, pz.Name, solutions); err != nil {
					return fmt.Errorf("PDF export failed: %w", err)
				}
				fmt.Printf("Wrote %s\n", dest)
			}
			if xlsxPath != "" {
				dest := resolveOutput(cfg.OutputDir, xlsxPath)
				if err := export.ExportXLSX(dest, solutions); err != nil {
					return fmt.Errorf("XLSX export failed: %w", err)
				}
				fmt.Printf("Wrote %s\n", dest)
			}
			if outPath != "" {
				dest := resolveOutput(cfg.OutputDir, outPath)
				if err := project.SaveResult(dest, pz, solutions); err != nil {
					return fmt.Errorf("result save failed: %w", err)
				}
				fmt.Printf("Wrote %s\n", dest)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&puzzlePath, "puzzle", "p", "", "puzzle JSON file (default: built-in 4x4x2 puzzle)")
	cmd.Flags().IntVarP(&maxSol, "max", "m", 0, "stop after this many solutions (0 = all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abandon the search after this duration")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write solution sheets to this PDF file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write placement workbook to this XLSX file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write puzzle and solutions to this JSON file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-solution output")
	return cmd
}

func piecesCmd() *cobra.Command {
	var puzzlePath string

	cmd := &cobra.Command{
		Use:   "pieces",
		Short: "List the puzzle's pieces and their orientation counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			pz, err := loadPuzzle(puzzlePath)
			if err != nil {
				return err
			}
			fmt.Printf("%s: box %dx%dx%d, %d pieces, %d cells\n",
				pz.Name, pz.Box.X, pz.Box.Y, pz.Box.Z, len(pz.Pieces), pz.CellCount())
			for _, p := range pz.Pieces {
				all := model.Orientations(p)
				fitting := all.FilterMaxHeight(pz.Box.Z)
				fmt.Printf("  %s  %d orientations (%d fit the box height)\n", p, all.Len(), fitting.Len())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&puzzlePath, "puzzle", "p", "", "puzzle JSON file (default: built-in 4x4x2 puzzle)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		boxSpec string
		outPath string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx|file.dxf>",
		Short: "Import a piece catalog and write it as a puzzle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var result importer.ImportResult
			switch {
			case strings.HasSuffix(strings.ToLower(path), ".dxf"):
				result = importer.ImportDXF(path)
			case strings.HasSuffix(strings.ToLower(path), ".xlsx"),
				strings.HasSuffix(strings.ToLower(path), ".xls"):
				result = importer.ImportExcel(path)
			default:
				result = importer.ImportCSV(path)
			}

			for _, w := range result.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					fmt.Fprintf(os.Stderr, "error: %s\n", e)
				}
				return fmt.Errorf("import failed with %d error(s)", len(result.Errors))
			}

			box, err := parseBoxSpec(boxSpec)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("box") {
				if cfg, _ := loadConfig(); cfg.DefaultBox.Volume() > 0 {
					box = cfg.DefaultBox
				}
			}
			pz := model.Puzzle{Name: name, Box: box, Pieces: result.Pieces}
			if err := pz.Validate(); err != nil {
				return fmt.Errorf("imported catalog is not a valid puzzle: %w", err)
			}

			if err := project.SavePuzzle(outPath, pz); err != nil {
				return err
			}
			fmt.Printf("Imported %d piece(s), wrote %s\n", len(result.Pieces), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&boxSpec, "box", "4x4x2", "box size as XxYxZ")
	cmd.Flags().StringVarP(&outPath, "out", "o", "puzzle.json", "output puzzle JSON file")
	cmd.Flags().StringVar(&name, "name", "Imported puzzle", "puzzle name")
	return cmd
}

// parseBoxSpec parses a box size written as "4x4x2".
func parseBoxSpec(spec string) (model.Size, error) {
	var s model.Size
	if _, err := fmt.Sscanf(strings.ToLower(spec), "%dx%dx%d", &s.X, &s.Y, &s.Z); err != nil {
		return model.Size{}, fmt.Errorf("box size must look like 4x4x2, got %q", spec)
	}
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return model.Size{}, fmt.Errorf("box size must be positive, got %q", spec)
	}
	return s, nil
}
