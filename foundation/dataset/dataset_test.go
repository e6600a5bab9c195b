package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ReadCSV(t *testing.T) {
	type table struct {
		name string
		csv  string
		cols []string
		rows [][]string
	}

	tt := []table{
		{
			name: "basic",
			csv:  "product,units\nlaptop,5\nmonitor,12\n",
			cols: []string{"product", "units"},
			rows: [][]string{{"laptop", "5"}, {"monitor", "12"}},
		},
		{
			name: "quoted",
			csv:  "product,note\nlaptop,\"15\"\" screen\"\n",
			cols: []string{"product", "note"},
			rows: [][]string{{"laptop", `15" screen`}},
		},
	}

	t.Log("Given the need to parse CSV documents into tables.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s document.", testID, tst.name)
			{
				tbl, err := dataset.ReadCSV(strings.NewReader(tst.csv))
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to parse the document: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to parse the document.", success, testID)

				if diff := cmp.Diff(tst.cols, tbl.Cols); diff != "" {
					t.Errorf("\t%s\tTest %d:\tShould have the expected columns. Diff:\n%s", failed, testID, diff)
				} else {
					t.Logf("\t%s\tTest %d:\tShould have the expected columns.", success, testID)
				}

				if diff := cmp.Diff(tst.rows, tbl.Rows); diff != "" {
					t.Errorf("\t%s\tTest %d:\tShould have the expected rows. Diff:\n%s", failed, testID, diff)
				} else {
					t.Logf("\t%s\tTest %d:\tShould have the expected rows.", success, testID)
				}
			}
		}

		t.Logf("\tTest %d:\tWhen handling a ragged document.", len(tt))
		{
			if _, err := dataset.ReadCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
				t.Errorf("\t%s\tTest %d:\tShould reject ragged rows.", failed, len(tt))
			} else {
				t.Logf("\t%s\tTest %d:\tShould reject ragged rows.", success, len(tt))
			}
		}

		t.Logf("\tTest %d:\tWhen handling an empty document.", len(tt)+1)
		{
			if _, err := dataset.ReadCSV(strings.NewReader("")); !errors.Is(err, dataset.ErrNoHeader) {
				t.Errorf("\t%s\tTest %d:\tShould reject a document with no header: %v", failed, len(tt)+1, err)
			} else {
				t.Logf("\t%s\tTest %d:\tShould reject a document with no header.", success, len(tt)+1)
			}
		}
	}
}

func Test_Clean(t *testing.T) {
	type table struct {
		name       string
		input      dataset.Table
		want       dataset.Table
		trimmed    int
		empties    int
		duplicates int
	}

	tt := []table{
		{
			name: "trim",
			input: dataset.Table{
				Cols: []string{" product ", "units"},
				Rows: [][]string{{" laptop", " 5 "}},
			},
			want: dataset.Table{
				Cols: []string{"product", "units"},
				Rows: [][]string{{"laptop", "5"}},
			},
			trimmed: 3,
		},
		{
			name: "empty rows",
			input: dataset.Table{
				Cols: []string{"product", "units"},
				Rows: [][]string{{"laptop", "5"}, {"", ""}, {"  ", ""}, {"monitor", "12"}},
			},
			want: dataset.Table{
				Cols: []string{"product", "units"},
				Rows: [][]string{{"laptop", "5"}, {"monitor", "12"}},
			},
			trimmed: 1,
			empties: 2,
		},
		{
			name: "duplicates keep first",
			input: dataset.Table{
				Cols: []string{"product", "units"},
				Rows: [][]string{{"laptop", "5"}, {"monitor", "12"}, {"laptop", "5"}},
			},
			want: dataset.Table{
				Cols: []string{"product", "units"},
				Rows: [][]string{{"laptop", "5"}, {"monitor", "12"}},
			},
			duplicates: 1,
		},
	}

	t.Log("Given the need to clean tables before hashing.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s case.", testID, tst.name)
			{
				got, report := dataset.Clean(tst.input)

				if diff := cmp.Diff(tst.want, got); diff != "" {
					t.Errorf("\t%s\tTest %d:\tShould produce the cleaned table. Diff:\n%s", failed, testID, diff)
				} else {
					t.Logf("\t%s\tTest %d:\tShould produce the cleaned table.", success, testID)
				}

				if report.TrimmedCells != tst.trimmed || report.EmptyRows != tst.empties || report.DuplicateRows != tst.duplicates {
					t.Errorf("\t%s\tTest %d:\tShould report the cleaning counts, got %+v.", failed, testID, report)
				} else {
					t.Logf("\t%s\tTest %d:\tShould report the cleaning counts.", success, testID)
				}
			}
		}
	}
}

func Test_Tamper(t *testing.T) {
	t.Log("Given the need to mutate a single cell for the tamper demo.")
	{
		t.Logf("\tTest 0:\tWhen the table has a numeric column.")
		{
			tbl := dataset.Table{
				Cols: []string{"product", "units", "price"},
				Rows: [][]string{{"laptop", "5", "999.5"}, {"monitor", "12", "150"}},
			}

			got, err := dataset.Tamper(tbl)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to tamper the table: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to tamper the table.", success)

			if got.Rows[0][1] != "6" {
				t.Errorf("\t%s\tTest 0:\tShould increment the first numeric cell of row 0, got %q.", failed, got.Rows[0][1])
			} else {
				t.Logf("\t%s\tTest 0:\tShould increment the first numeric cell of row 0.", success)
			}

			if tbl.Rows[0][1] != "5" {
				t.Errorf("\t%s\tTest 0:\tShould leave the original table untouched, got %q.", failed, tbl.Rows[0][1])
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave the original table untouched.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the table has no numeric column.")
		{
			tbl := dataset.Table{
				Cols: []string{"product", "region"},
				Rows: [][]string{{"laptop", "north"}},
			}

			if _, err := dataset.Tamper(tbl); !errors.Is(err, dataset.ErrNoNumericColumn) {
				t.Errorf("\t%s\tTest 1:\tShould return ErrNoNumericColumn: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould return ErrNoNumericColumn.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen the table has no rows.")
		{
			tbl := dataset.Table{
				Cols: []string{"product", "units"},
			}

			if _, err := dataset.Tamper(tbl); !errors.Is(err, dataset.ErrNoRows) {
				t.Errorf("\t%s\tTest 2:\tShould return ErrNoRows: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 2:\tShould return ErrNoRows.", success)
			}
		}
	}
}
