// Package dataset provides support for loading, cleaning and fingerprinting
// tabular datasets. The canonical digest produced here is the value anchored
// on chain, so every transformation in this package must be deterministic.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Set of known errors for dataset handling.
var (
	ErrNoHeader        = errors.New("dataset has no header row")
	ErrNoRows          = errors.New("dataset has no rows")
	ErrNoNumericColumn = errors.New("dataset has no numeric column")
)

// Table represents a tabular dataset parsed from CSV. Cells are kept as the
// strings they were parsed from. A table is always rectangular, the csv
// reader rejects ragged input.
type Table struct {
	Cols []string
	Rows [][]string
}

// ReadCSV parses the specified reader as a CSV document with a header row.
func ReadCSV(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing csv: %w", err)
	}

	if len(records) == 0 {
		return Table{}, ErrNoHeader
	}

	return Table{
		Cols: records[0],
		Rows: records[1:],
	}, nil
}

// Copy makes a deep copy of the table so callers can mutate the copy
// without affecting the registered dataset.
func (t Table) Copy() Table {
	cols := make([]string, len(t.Cols))
	copy(cols, t.Cols)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}

	return Table{Cols: cols, Rows: rows}
}

// Preview returns a table containing at most n leading rows. The original
// backing arrays are shared, previews are read-only by convention.
func (t Table) Preview(n int) Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	return Table{Cols: t.Cols, Rows: t.Rows[:n]}
}

// NumericColumns returns the indexes of the columns where every non-empty
// cell parses as a float and at least one cell holds a value.
func (t Table) NumericColumns() []int {
	var idxs []int

	for c := range t.Cols {
		values := 0
		numeric := true
		for _, row := range t.Rows {
			if row[c] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[c], 64); err != nil {
				numeric = false
				break
			}
			values++
		}

		if numeric && values > 0 {
			idxs = append(idxs, c)
		}
	}

	return idxs
}

// Tamper returns a copy of the table with the first numeric cell of the
// first row incremented by one. This is the demo mutation used to show a
// single changed value breaks verification.
func Tamper(t Table) (Table, error) {
	if len(t.Rows) == 0 {
		return Table{}, ErrNoRows
	}

	for _, c := range t.NumericColumns() {
		cell := t.Rows[0][c]
		if cell == "" {
			continue
		}

		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Table{}, fmt.Errorf("parsing cell %q: %w", cell, err)
		}

		cpy := t.Copy()
		cpy.Rows[0][c] = strconv.FormatFloat(f+1, 'g', -1, 64)
		return cpy, nil
	}

	return Table{}, ErrNoNumericColumn
}
