package dataset_test

import (
	"math"
	"testing"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
)

func Test_Describe(t *testing.T) {
	tbl := dataset.Table{
		Cols: []string{"region", "units", "price"},
		Rows: [][]string{
			{"north", "10", "5"},
			{"south", "20", ""},
			{"north", "30", "7"},
			{"east", "40", "9"},
		},
	}

	t.Log("Given the need to compute the EDA report for a table.")
	{
		t.Logf("\tTest 0:\tWhen describing the numeric columns.")
		{
			report := dataset.Describe(tbl)

			if report.Rows != 4 || report.Columns != 3 {
				t.Errorf("\t%s\tTest 0:\tShould report the table shape, got %d rows %d columns.", failed, report.Rows, report.Columns)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the table shape.", success)
			}

			if len(report.Numeric) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould find two numeric columns, got %d.", failed, len(report.Numeric))
			}
			t.Logf("\t%s\tTest 0:\tShould find two numeric columns.", success)

			units := report.Numeric[0]
			checks := []struct {
				field string
				got   float64
				want  float64
			}{
				{"mean", units.Mean, 25},
				{"std", units.Std, math.Sqrt(500.0 / 3.0)},
				{"min", units.Min, 10},
				{"q25", units.Q25, 17.5},
				{"median", units.Median, 25},
				{"q75", units.Q75, 32.5},
				{"max", units.Max, 40},
			}

			for _, check := range checks {
				if math.Abs(check.got-check.want) > 1e-12 {
					t.Errorf("\t%s\tTest 0:\tShould compute %s for units, got %v want %v.", failed, check.field, check.got, check.want)
				} else {
					t.Logf("\t%s\tTest 0:\tShould compute %s for units.", success, check.field)
				}
			}

			price := report.Numeric[1]
			if price.Count != 3 || price.Missing != 1 {
				t.Errorf("\t%s\tTest 0:\tShould count missing price cells, got count %d missing %d.", failed, price.Count, price.Missing)
			} else {
				t.Logf("\t%s\tTest 0:\tShould count missing price cells.", success)
			}
			if math.Abs(price.Mean-7) > 1e-12 || math.Abs(price.Std-2) > 1e-12 {
				t.Errorf("\t%s\tTest 0:\tShould compute price statistics, got mean %v std %v.", failed, price.Mean, price.Std)
			} else {
				t.Logf("\t%s\tTest 0:\tShould compute price statistics.", success)
			}
			if math.Abs(price.Q25-6) > 1e-12 || math.Abs(price.Median-7) > 1e-12 || math.Abs(price.Q75-8) > 1e-12 {
				t.Errorf("\t%s\tTest 0:\tShould interpolate price quantiles, got %v %v %v.", failed, price.Q25, price.Median, price.Q75)
			} else {
				t.Logf("\t%s\tTest 0:\tShould interpolate price quantiles.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen describing the categorical columns.")
		{
			report := dataset.Describe(tbl)

			if len(report.Categorical) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould find one categorical column, got %d.", failed, len(report.Categorical))
			}

			region := report.Categorical[0]
			if region.Count != 4 || region.Unique != 3 || region.Top != "north" || region.Freq != 2 {
				t.Errorf("\t%s\tTest 1:\tShould summarize the region column, got %+v.", failed, region)
			} else {
				t.Logf("\t%s\tTest 1:\tShould summarize the region column.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen collecting the chart series.")
		{
			report := dataset.Describe(tbl)

			if len(report.Chart) != 2 {
				t.Fatalf("\t%s\tTest 2:\tShould chart the first two numeric columns, got %d.", failed, len(report.Chart))
			}
			t.Logf("\t%s\tTest 2:\tShould chart the first two numeric columns.", success)

			if report.Chart[0].Column != "units" || len(report.Chart[0].Values) != 4 {
				t.Errorf("\t%s\tTest 2:\tShould carry the units values, got %+v.", failed, report.Chart[0])
			} else {
				t.Logf("\t%s\tTest 2:\tShould carry the units values.", success)
			}

			if report.Chart[1].Column != "price" || len(report.Chart[1].Values) != 3 {
				t.Errorf("\t%s\tTest 2:\tShould skip empty cells in the price values, got %+v.", failed, report.Chart[1])
			} else {
				t.Logf("\t%s\tTest 2:\tShould skip empty cells in the price values.", success)
			}
		}
	}
}
