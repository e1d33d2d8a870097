// Package importer reads piece catalogs from CSV, Excel and DXF files.
// Tabular formats list one cell per row (label, x, y, z); rows sharing a
// label are collected into one piece. Problems are accumulated as Errors
// and Warnings rather than failing on the first bad row.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cubefit/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab and pipe. The delimiter producing the most
// consistent multi-column parse wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// ImportCSV imports pieces from a CSV file with automatic delimiter
// detection.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read file: %v", err))
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line")
}

// ImportExcel imports pieces from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for tabular data. Expected
// columns: label, x, y, z. A first row whose x column is not numeric is
// treated as a header and skipped.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	start := 0
	if len(rows) > 0 && looksLikeHeader(rows[0]) {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	type entry struct {
		kind  model.PieceKind
		cells []model.Point
		seen  map[model.Point]bool
	}
	var order []string
	byLabel := make(map[string]*entry)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		if isEmptyRow(row) {
			continue
		}
		if len(row) < 4 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: expected label, x, y, z", rowLabel))
			continue
		}

		label := strings.TrimSpace(row[0])
		if label == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: empty piece label", rowLabel))
			continue
		}
		if len(label) > 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: label %q truncated to %q", rowLabel, label, label[:1]))
			label = label[:1]
		}

		pt, err := parseCell(row[1:4])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}

		e, ok := byLabel[label]
		if !ok {
			e = &entry{kind: model.Kind(label[0]), seen: make(map[model.Point]bool)}
			byLabel[label] = e
			order = append(order, label)
		}
		if e.seen[pt] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: duplicate cell (%d,%d,%d) for piece %s", rowLabel, pt.X, pt.Y, pt.Z, label))
			continue
		}
		e.seen[pt] = true
		e.cells = append(e.cells, pt)
	}

	for _, label := range order {
		e := byLabel[label]
		result.Pieces = append(result.Pieces, model.NewPiece(e.kind, e.cells))
	}

	if len(result.Pieces) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No piece cells found")
	}
	return result
}

func parseCell(fields []string) (model.Point, error) {
	vals := make([]int, 3)
	names := []string{"x", "y", "z"}
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return model.Point{}, fmt.Errorf("%s coordinate %q is not an integer", names[i], field)
		}
		vals[i] = v
	}
	return model.Point{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// looksLikeHeader reports whether the x column of the row is non-numeric.
func looksLikeHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[1]))
	return err != nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
