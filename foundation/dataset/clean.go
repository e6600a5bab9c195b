package dataset

import "strings"

// CleanReport describes the changes cleaning applied to a table.
type CleanReport struct {
	TrimmedCells  int `json:"trimmed_cells"`
	EmptyRows     int `json:"empty_rows"`
	DuplicateRows int `json:"duplicate_rows"`
}

// Clean applies the deterministic cleaning pass that runs before a dataset
// is hashed: surrounding whitespace is trimmed from headers and cells, rows
// with nothing but empty cells are dropped and exact duplicate rows are
// dropped keeping the first occurrence.
func Clean(t Table) (Table, CleanReport) {
	var report CleanReport

	cols := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		cols[i] = strings.TrimSpace(col)
		if cols[i] != col {
			report.TrimmedCells++
		}
	}

	// The separator byte cannot appear in a csv cell, so joining with it
	// gives a collision free row key for duplicate detection.
	const sep = "\x1f"

	seen := make(map[string]struct{}, len(t.Rows))
	rows := make([][]string, 0, len(t.Rows))

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		empty := true
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
			if cells[i] != cell {
				report.TrimmedCells++
			}
			if cells[i] != "" {
				empty = false
			}
		}

		if empty {
			report.EmptyRows++
			continue
		}

		key := strings.Join(cells, sep)
		if _, exists := seen[key]; exists {
			report.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}

		rows = append(rows, cells)
	}

	return Table{Cols: cols, Rows: rows}, report
}
