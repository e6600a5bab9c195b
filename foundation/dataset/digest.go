package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"sort"
)

// Canonical returns the canonical CSV encoding of the table. Columns are
// reordered into lexicographic order, rows are sorted by their cell strings
// column by column in that order, then everything is CSV encoded with the
// header row first. Two tables holding the same data in a different row or
// column order produce identical canonical bytes.
func Canonical(t Table) ([]byte, error) {

	// Determine the lexicographic column order. The sort is stable so
	// duplicate column names keep their relative position.
	order := make([]int, len(t.Cols))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return t.Cols[order[i]] < t.Cols[order[j]]
	})

	cols := make([]string, len(order))
	for i, idx := range order {
		cols[i] = t.Cols[idx]
	}

	// Project every row into the new column order.
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(order))
		for i, idx := range order {
			cells[i] = row[idx]
		}
		rows[r] = cells
	}

	// Sort the rows by cell value, first column first. Rows that compare
	// equal on every column are byte identical, so stability only matters
	// for keeping the sort deterministic.
	sort.SliceStable(rows, func(i, j int) bool {
		for c := range rows[i] {
			if rows[i][c] != rows[j][c] {
				return rows[i][c] < rows[j][c]
			}
		}
		return false
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing canonical csv: %w", err)
	}

	return buf.Bytes(), nil
}

// Digest returns the lowercase hex encoded SHA-256 of the canonical CSV
// encoding. No 0x prefix is applied, the digest is compared as a plain
// string against the value stored on chain.
func Digest(t Table) (string, error) {
	data, err := Canonical(t)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
