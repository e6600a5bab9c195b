package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash <csv-file>",
	Short: "Print the canonical digest of a CSV dataset.",
	Args:  cobra.ExactArgs(1),
	Run:   hashRun,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func hashRun(cmd *cobra.Command, args []string) {
	digest, tbl, err := digestFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("dataset: %s (%d rows, %d columns after cleaning)\n", args[0], len(tbl.Rows), len(tbl.Cols))
	fmt.Println("digest:", digest)
}
