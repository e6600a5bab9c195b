// This program creates an encrypted keystore account for the anchoring
// wallet. The plain .ecdsa files in zdata/accounts are fine for testnet
// demos, use a keystore when the key guards anything real.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"golang.org/x/term"
)

func main() {
	keystorePath := flag.String("path", "zdata/accounts/keystore", "directory for the encrypted keystore")
	flag.Parse()

	password, err := getPassPhrase("Please enter a password to encrypt the wallet: ")
	if err != nil {
		log.Fatalln(err)
	}

	confirm, err := getPassPhrase("Repeat the password: ")
	if err != nil {
		log.Fatalln(err)
	}
	if password != confirm {
		log.Fatalln("passwords do not match")
	}

	ks := keystore.NewKeyStore(*keystorePath, keystore.StandardScryptN, keystore.StandardScryptP)
	acc, err := ks.NewAccount(password)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Printf("New account created: %s\n", acc.Address.Hex())
	fmt.Printf("Keystore file: %s\n", acc.URL.Path)
}

func getPassPhrase(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	return string(password), nil
}
