package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var datasetName string

var anchorCmd = &cobra.Command{
	Use:   "anchor <csv-file>",
	Short: "Anchor the digest of a CSV dataset on Sepolia. Spends testnet ETH.",
	Args:  cobra.ExactArgs(1),
	Run:   anchorRun,
}

func init() {
	rootCmd.AddCommand(anchorCmd)
	anchorCmd.Flags().StringVarP(&datasetName, "name", "n", "sales_data", "Dataset name the digest is stored under.")
	anchorCmd.Flags().StringVarP(&rpcURL, "url", "u", "", "Url of the Sepolia RPC endpoint.")
	anchorCmd.Flags().StringVarP(&contract, "contract", "c", "", "Address of the integrity contract.")
}

func anchorRun(cmd *cobra.Command, args []string) {
	digest, _, err := digestFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	// Mining a Sepolia block can take half a minute, leave room for retries.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	client, err := dialClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	fmt.Printf("anchoring %s as %q from account %s\n", digest, datasetName, client.Account())
	fmt.Println("waiting for the transaction to mine...")

	receipt, err := client.StoreHash(ctx, datasetName, digest)
	if err != nil {
		log.Fatal(err)
	}

	status := "success"
	if !receipt.Success {
		status = "reverted"
	}

	fmt.Println("tx:", receipt.TxHash)
	fmt.Println("block:", receipt.BlockNumber)
	fmt.Println("gas used:", receipt.GasUsed)
	fmt.Println("status:", status)
	fmt.Println("explorer: https://sepolia.etherscan.io/tx/" + receipt.TxHash)
}
