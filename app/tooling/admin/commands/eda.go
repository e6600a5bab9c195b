// Package commands contains the admin tool commands.
package commands

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
	"github.com/pterm/pterm"
)

// maxChartBars keeps the terminal bar chart readable for larger datasets.
const maxChartBars = 15

// EDA loads a CSV document and renders the exploratory analysis report.
// Unlike the dashboard this runs offline and is not verification gated, the
// canonical digest is printed so the result can be checked against the chain.
func EDA(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: admin eda <csv-file>")
	}

	f, err := os.Open(args[2])
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	tbl, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}
	tbl, clean := dataset.Clean(tbl)

	digest, err := dataset.Digest(tbl)
	if err != nil {
		return err
	}

	report := dataset.Describe(tbl)

	pterm.DefaultHeader.Println("EDA Report: " + args[2])
	pterm.Info.Printfln("%d rows, %d columns after cleaning (%d cells trimmed, %d empty rows, %d duplicates dropped)",
		report.Rows, report.Columns, clean.TrimmedCells, clean.EmptyRows, clean.DuplicateRows)
	pterm.Info.Printfln("canonical digest: %s", digest)

	if len(report.Numeric) > 0 {
		pterm.DefaultSection.Println("Numeric Columns")

		data := pterm.TableData{{"Column", "Count", "Missing", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}}
		for _, ns := range report.Numeric {
			data = append(data, []string{
				ns.Column,
				fmt.Sprintf("%d", ns.Count),
				fmt.Sprintf("%d", ns.Missing),
				fmt.Sprintf("%.2f", ns.Mean),
				fmt.Sprintf("%.2f", ns.Std),
				fmt.Sprintf("%.2f", ns.Min),
				fmt.Sprintf("%.2f", ns.Q25),
				fmt.Sprintf("%.2f", ns.Median),
				fmt.Sprintf("%.2f", ns.Q75),
				fmt.Sprintf("%.2f", ns.Max),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	if len(report.Categorical) > 0 {
		pterm.DefaultSection.Println("Other Columns")

		data := pterm.TableData{{"Column", "Count", "Missing", "Unique", "Top", "Freq"}}
		for _, cs := range report.Categorical {
			data = append(data, []string{
				cs.Column,
				fmt.Sprintf("%d", cs.Count),
				fmt.Sprintf("%d", cs.Missing),
				fmt.Sprintf("%d", cs.Unique),
				cs.Top,
				fmt.Sprintf("%d", cs.Freq),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	if len(report.Chart) > 0 {
		series := report.Chart[0]
		pterm.DefaultSection.Println("Chart: " + series.Column)

		var bars pterm.Bars
		for i, v := range series.Values {
			if i == maxChartBars {
				break
			}
			bars = append(bars, pterm.Bar{
				Label: fmt.Sprintf("%d", i),
				Value: int(math.Round(v)),
			})
		}
		if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render(); err != nil {
			return err
		}
	}

	return nil
}
