package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <csv-file>",
	Short: "Verify a CSV dataset against the digest stored on Sepolia.",
	Args:  cobra.ExactArgs(1),
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&datasetName, "name", "n", "sales_data", "Dataset name the digest is stored under.")
	verifyCmd.Flags().StringVarP(&rpcURL, "url", "u", "", "Url of the Sepolia RPC endpoint.")
	verifyCmd.Flags().StringVarP(&contract, "contract", "c", "", "Address of the integrity contract.")
}

func verifyRun(cmd *cobra.Command, args []string) {
	digest, _, err := digestFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := dialClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	onChain, err := client.GetHash(ctx, datasetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("local digest:   ", digest)
	fmt.Println("on-chain digest:", onChain)

	switch {
	case onChain == "":
		fmt.Printf("nothing anchored under %q\n", datasetName)
		os.Exit(1)

	case onChain != digest:
		fmt.Println("MISMATCH: dataset does not match the anchored digest")
		os.Exit(1)
	}

	fmt.Println("verified: dataset matches the anchored digest")
}
