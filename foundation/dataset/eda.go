package dataset

import (
	"math"
	"sort"
	"strconv"
)

// maxChartValues caps the number of points returned for the dashboard bar
// chart so large datasets don't inflate the response payload.
const maxChartValues = 100

// NumericSummary holds the descriptive statistics for one numeric column.
// The quantiles use linear interpolation and the standard deviation is the
// sample deviation, matching what the usual EDA tooling reports.
type NumericSummary struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q25     float64 `json:"q25"`
	Median  float64 `json:"median"`
	Q75     float64 `json:"q75"`
	Max     float64 `json:"max"`
}

// CategoricalSummary holds the descriptive statistics for one non-numeric
// column.
type CategoricalSummary struct {
	Column  string `json:"column"`
	Count   int    `json:"count"`
	Missing int    `json:"missing"`
	Unique  int    `json:"unique"`
	Top     string `json:"top"`
	Freq    int    `json:"freq"`
}

// Series carries the values of a numeric column for charting.
type Series struct {
	Column string    `json:"column"`
	Values []float64 `json:"values"`
}

// Report is the exploratory data analysis summary for a table.
type Report struct {
	Rows        int                  `json:"rows"`
	Columns     int                  `json:"columns"`
	Numeric     []NumericSummary     `json:"numeric"`
	Categorical []CategoricalSummary `json:"categorical"`
	Chart       []Series             `json:"chart"`
}

// Describe computes the EDA report for the table: numeric columns get the
// count/mean/std/min/quartiles/max treatment, everything else gets a
// count/unique/top summary. The chart series carry the first two numeric
// columns for the dashboard bar chart.
func Describe(t Table) Report {
	report := Report{
		Rows:    len(t.Rows),
		Columns: len(t.Cols),
	}

	numeric := make(map[int]bool, len(t.Cols))
	for _, c := range t.NumericColumns() {
		numeric[c] = true
	}

	for c, col := range t.Cols {
		if numeric[c] {
			report.Numeric = append(report.Numeric, describeNumeric(t, c, col))
			continue
		}
		report.Categorical = append(report.Categorical, describeCategorical(t, c, col))
	}

	// Chart the first two numeric columns like the original mini EDA view.
	for _, ns := range report.Numeric {
		if len(report.Chart) == 2 {
			break
		}
		report.Chart = append(report.Chart, series(t, ns.Column))
	}

	return report
}

func describeNumeric(t Table, c int, col string) NumericSummary {
	var values []float64
	missing := 0

	for _, row := range t.Rows {
		if row[c] == "" {
			missing++
			continue
		}

		// NumericColumns already proved every non-empty cell parses.
		f, _ := strconv.ParseFloat(row[c], 64)
		values = append(values, f)
	}

	sort.Float64s(values)

	ns := NumericSummary{
		Column:  col,
		Count:   len(values),
		Missing: missing,
		Min:     values[0],
		Max:     values[len(values)-1],
		Q25:     quantile(values, 0.25),
		Median:  quantile(values, 0.50),
		Q75:     quantile(values, 0.75),
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	ns.Mean = sum / float64(len(values))

	// Sample standard deviation. A single observation has no spread to
	// report, leave it at zero rather than emitting NaN into JSON.
	if len(values) > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - ns.Mean
			ss += d * d
		}
		ns.Std = math.Sqrt(ss / float64(len(values)-1))
	}

	return ns
}

func describeCategorical(t Table, c int, col string) CategoricalSummary {
	counts := make(map[string]int)
	missing := 0

	for _, row := range t.Rows {
		if row[c] == "" {
			missing++
			continue
		}
		counts[row[c]]++
	}

	cs := CategoricalSummary{
		Column:  col,
		Count:   len(t.Rows) - missing,
		Missing: missing,
		Unique:  len(counts),
	}

	for value, n := range counts {
		if n > cs.Freq || (n == cs.Freq && value < cs.Top) {
			cs.Top = value
			cs.Freq = n
		}
	}

	return cs
}

// quantile computes the p-quantile of sorted values using linear
// interpolation between the two nearest ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)

	if lo+1 >= len(sorted) {
		return sorted[lo]
	}

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func series(t Table, col string) Series {
	c := 0
	for i, name := range t.Cols {
		if name == col {
			c = i
			break
		}
	}

	s := Series{Column: col}
	for _, row := range t.Rows {
		if len(s.Values) == maxChartValues {
			break
		}
		if row[c] == "" {
			continue
		}
		f, _ := strconv.ParseFloat(row[c], 64)
		s.Values = append(s.Values, f)
	}

	return s
}
