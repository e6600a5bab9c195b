package cmd

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the Sepolia balance of the wallet.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&rpcURL, "url", "u", "", "Url of the Sepolia RPC endpoint.")
	balanceCmd.Flags().StringVarP(&contract, "contract", "c", "", "Address of the integrity contract.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := dialClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	balance, err := client.Balance(ctx)
	if err != nil {
		log.Fatal(err)
	}

	eth := new(big.Float).Quo(new(big.Float).SetInt(balance), big.NewFloat(params.Ether))

	fmt.Println("account:", client.Account())
	fmt.Printf("balance: %s ETH (%s wei)\n", eth.Text('f', 6), balance)
}
