// Package cmd contains the wallet commands for anchoring and verifying
// dataset digests on Sepolia.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/ethereum"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	rpcURL      string
	contract    string
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zdata/accounts/", "Path to the directory with private keys.")
}

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet for anchoring dataset digests on Sepolia",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	if !strings.HasSuffix(accountName, keyExtension) {
		accountName += keyExtension
	}

	return filepath.Join(accountPath, accountName)
}

// loadPrivateKeyHex reads the hex private key from the configured key file,
// falling back to the PRIVATE_KEY secret when no key file exists.
func loadPrivateKeyHex() (string, error) {
	data, err := os.ReadFile(getPrivateKeyPath())
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}

	if key := os.Getenv("PRIVATE_KEY"); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("reading key file: %w", err)
}

// dialClient loads the secrets and connects to the configured Sepolia RPC
// endpoint. Flags win over secrets.env values.
func dialClient(ctx context.Context) (*ethereum.Client, error) {
	if err := godotenv.Load("secrets.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading secrets.env: %w", err)
	}

	if rpcURL == "" {
		rpcURL = os.Getenv("RPC_URL")
	}
	if contract == "" {
		contract = os.Getenv("CONTRACT_ADDRESS")
	}

	privateKey, err := loadPrivateKeyHex()
	if err != nil {
		return nil, err
	}

	return ethereum.DialContext(ctx, ethereum.Config{
		RPCURL:     rpcURL,
		PrivateKey: privateKey,
		Contract:   contract,
	})
}

// digestFile loads the CSV document, runs the cleaning pass and returns the
// canonical digest with the cleaned table.
func digestFile(path string) (string, dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", dataset.Table{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	tbl, err := dataset.ReadCSV(f)
	if err != nil {
		return "", dataset.Table{}, err
	}
	tbl, _ = dataset.Clean(tbl)

	digest, err := dataset.Digest(tbl)
	if err != nil {
		return "", dataset.Table{}, err
	}

	return digest, tbl, nil
}
