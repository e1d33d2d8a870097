package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cubefit/internal/model"
)

func createTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pieces.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test CSV: %v", err)
	}
	return path
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pieces.xlsx")

	f := excelize.NewFile()
	for i, row := range rows {
		for j, val := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("bad cell coordinates: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cellRef, val); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save test Excel file: %v", err)
	}
	return path
}

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Piece,X,Y,Z\nA,0,0,0\nA,1,0,0\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Piece;X;Y;Z\nA;0;0;0\nA;1;0;0\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestImportCSV_WithHeader(t *testing.T) {
	path := createTestCSV(t, "Piece,X,Y,Z\nA,0,0,0\nA,1,0,0\nB,0,0,0\n")

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	if result.Pieces[0].Kind != model.Kind('A') {
		t.Errorf("expected kind A, got %s", result.Pieces[0].Kind)
	}
	if len(result.Pieces[0].Points) != 2 {
		t.Errorf("expected 2 cells for A, got %d", len(result.Pieces[0].Points))
	}
	if len(result.Pieces[1].Points) != 1 {
		t.Errorf("expected 1 cell for B, got %d", len(result.Pieces[1].Points))
	}
}

func TestImportCSV_WithoutHeader(t *testing.T) {
	path := createTestCSV(t, "A,0,0,0\nA,0,1,0\n")

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	for _, w := range result.Warnings {
		if w == "Detected header row, skipping" {
			t.Error("no header should be detected for numeric first row")
		}
	}
}

func TestImportCSV_NormalizesCells(t *testing.T) {
	// Cells given with an offset; the piece must come out canonical.
	path := createTestCSV(t, "A,5,5,5\nA,6,5,5\n")

	result := ImportCSV(path)

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d (errors: %v)", len(result.Pieces), result.Errors)
	}
	first := result.Pieces[0].Points[0]
	if first != (model.Point{X: 0, Y: 0, Z: 0}) {
		t.Errorf("expected normalized origin cell, got %v", first)
	}
}

func TestImportCSV_DuplicateCellWarns(t *testing.T) {
	path := createTestCSV(t, "A,0,0,0\nA,0,0,0\nA,1,0,0\n")

	result := ImportCSV(path)

	if len(result.Warnings) == 0 {
		t.Error("expected a duplicate-cell warning")
	}
	if len(result.Pieces) != 1 || len(result.Pieces[0].Points) != 2 {
		t.Errorf("duplicate cell should be dropped, got %v", result.Pieces)
	}
}

func TestImportCSV_BadCoordinate(t *testing.T) {
	path := createTestCSV(t, "A,0,zero,0\n")

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected an error for a non-integer coordinate")
	}
}

func TestImportCSV_LongLabelTruncated(t *testing.T) {
	path := createTestCSV(t, "Alpha,0,0,0\n")

	result := ImportCSV(path)

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	if result.Pieces[0].Kind != model.Kind('A') {
		t.Errorf("expected truncated kind A, got %s", result.Pieces[0].Kind)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a truncation warning")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := createTestCSV(t, "")

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected an error for an empty file")
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))

	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestImportExcel_WithHeader(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Piece", "X", "Y", "Z"},
		{"A", 0, 0, 0},
		{"A", 1, 0, 0},
		{"B", 0, 0, 0},
		{"B", 0, 1, 0},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	if result.Pieces[1].Kind != model.Kind('B') {
		t.Errorf("expected kind B second, got %s", result.Pieces[1].Kind)
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))

	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestImportExcel_PreservesPieceOrder(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"C", 0, 0, 0},
		{"A", 0, 0, 0},
		{"B", 0, 0, 0},
	})

	result := ImportExcel(path)

	if len(result.Pieces) != 3 {
		t.Fatalf("expected 3 pieces, got %d (errors: %v)", len(result.Pieces), result.Errors)
	}
	want := []model.PieceKind{model.Kind('C'), model.Kind('A'), model.Kind('B')}
	for i, k := range want {
		if result.Pieces[i].Kind != k {
			t.Errorf("piece %d: expected kind %s, got %s", i, k, result.Pieces[i].Kind)
		}
	}
}
