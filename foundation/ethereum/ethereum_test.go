package ethereum

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// Key used only inside the tests, never funded.
const (
	testKey      = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	testContract = "0x531130464929826c57BBBF989e44085a02eeB120"
	testRPCURL   = "http://localhost:8545"
)

func Test_DialConfig(t *testing.T) {
	t.Log("Given the need to validate client construction from configuration.")
	{
		t.Logf("\tTest 0:\tWhen handling a complete configuration.")
		{
			privateKey, err := crypto.HexToECDSA(testKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the test key: %v", failed, err)
			}
			account := crypto.PubkeyToAddress(privateKey.PublicKey)

			cfg := Config{
				RPCURL:        testRPCURL,
				PrivateKey:    testKey,
				WalletAddress: account.Hex(),
				Contract:      testContract,
			}

			clt, err := DialContext(context.Background(), cfg)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the client: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the client.", success)
			defer clt.Close()

			if clt.Account() != account {
				t.Errorf("\t%s\tTest 0:\tShould derive the wallet account from the key.", failed)
				t.Logf("\t\tTest 0:\tGot: %s", clt.Account())
				t.Logf("\t\tTest 0:\tExp: %s", account)
			} else {
				t.Logf("\t%s\tTest 0:\tShould derive the wallet account from the key.", success)
			}

			if clt.ChainID().Uint64() != SepoliaChainID {
				t.Errorf("\t%s\tTest 0:\tShould default the chain id to Sepolia, got %d.", failed, clt.ChainID().Uint64())
			} else {
				t.Logf("\t%s\tTest 0:\tShould default the chain id to Sepolia.", success)
			}

			if !strings.EqualFold(clt.Contract().Hex(), testContract) {
				t.Errorf("\t%s\tTest 0:\tShould keep the configured contract address, got %s.", failed, clt.Contract().Hex())
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the configured contract address.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen handling a wallet address that does not match the key.")
		{
			cfg := Config{
				RPCURL:        testRPCURL,
				PrivateKey:    testKey,
				WalletAddress: testContract,
				Contract:      testContract,
			}

			if _, err := DialContext(context.Background(), cfg); err == nil {
				t.Errorf("\t%s\tTest 1:\tShould reject a mismatched wallet address.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject a mismatched wallet address.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen handling an invalid contract address.")
		{
			cfg := Config{
				RPCURL:     testRPCURL,
				PrivateKey: testKey,
				Contract:   "not-an-address",
			}

			if _, err := DialContext(context.Background(), cfg); err == nil {
				t.Errorf("\t%s\tTest 2:\tShould reject an invalid contract address.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould reject an invalid contract address.", success)
			}
		}
	}
}

func Test_ContractABI(t *testing.T) {
	t.Log("Given the need to validate the integrity contract ABI.")
	{
		t.Logf("\tTest 0:\tWhen parsing the embedded ABI document.")
		{
			contractABI, err := abi.JSON(strings.NewReader(anchorABI))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the ABI: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to parse the ABI.", success)

			store, exists := contractABI.Methods["storeHash"]
			if !exists {
				t.Fatalf("\t%s\tTest 0:\tShould find the storeHash method.", failed)
			}
			if store.Sig != "storeHash(string,string)" {
				t.Errorf("\t%s\tTest 0:\tShould have the storeHash signature, got %q.", failed, store.Sig)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have the storeHash signature.", success)
			}

			get, exists := contractABI.Methods["getHash"]
			if !exists {
				t.Fatalf("\t%s\tTest 0:\tShould find the getHash method.", failed)
			}
			if get.Sig != "getHash(string)" {
				t.Errorf("\t%s\tTest 0:\tShould have the getHash signature, got %q.", failed, get.Sig)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have the getHash signature.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen packing a storeHash call.")
		{
			contractABI, err := abi.JSON(strings.NewReader(anchorABI))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to parse the ABI: %v", failed, err)
			}

			const name = "sales_data"
			const digest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

			data, err := contractABI.Pack("storeHash", name, digest)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to pack the call: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to pack the call.", success)

			method := contractABI.Methods["storeHash"]
			if !bytes.HasPrefix(data, method.ID) {
				t.Errorf("\t%s\tTest 1:\tShould prefix the calldata with the method id.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould prefix the calldata with the method id.", success)
			}

			values, err := method.Inputs.Unpack(data[len(method.ID):])
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to unpack the arguments: %v", failed, err)
			}
			if values[0].(string) != name || values[1].(string) != digest {
				t.Errorf("\t%s\tTest 1:\tShould round trip the arguments.", failed)
				t.Logf("\t\tTest 1:\tGot: %v", values)
			} else {
				t.Logf("\t%s\tTest 1:\tShould round trip the arguments.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen unpacking a getHash result.")
		{
			contractABI, err := abi.JSON(strings.NewReader(anchorABI))
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to parse the ABI: %v", failed, err)
			}

			const digest = "60303ae22b998861bce3b28f33eec1be758a213c86c93c076dbe9f558c11c752"

			output, err := contractABI.Methods["getHash"].Outputs.Pack(digest)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to pack the output: %v", failed, err)
			}

			results, err := contractABI.Unpack("getHash", output)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to unpack the output: %v", failed, err)
			}
			if results[0].(string) != digest {
				t.Errorf("\t%s\tTest 2:\tShould round trip the digest, got %v.", failed, results[0])
			} else {
				t.Logf("\t%s\tTest 2:\tShould round trip the digest.", success)
			}
		}
	}
}

func Test_Signing(t *testing.T) {
	t.Log("Given the need to validate anchoring transactions are signed for Sepolia.")
	{
		t.Logf("\tTest 0:\tWhen signing a legacy transaction with the wallet key.")
		{
			privateKey, err := crypto.HexToECDSA(testKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the test key: %v", failed, err)
			}
			account := crypto.PubkeyToAddress(privateKey.PublicKey)

			contractABI, err := abi.JSON(strings.NewReader(anchorABI))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the ABI: %v", failed, err)
			}
			data, err := contractABI.Pack("storeHash", "sales_data", "00")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to pack the call: %v", failed, err)
			}

			to := common.HexToAddress(testContract)
			tx := types.NewTx(&types.LegacyTx{
				Nonce:    7,
				To:       &to,
				Value:    big.NewInt(0),
				Gas:      DefaultGasLimit,
				GasPrice: big.NewInt(10 * 1e9),
				Data:     data,
			})

			signer := types.NewEIP155Signer(big.NewInt(SepoliaChainID))
			signedTx, err := types.SignTx(tx, signer, privateKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to sign the transaction.", success)

			from, err := types.Sender(signer, signedTx)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to recover the sender: %v", failed, err)
			}
			if from != account {
				t.Errorf("\t%s\tTest 0:\tShould recover the wallet account from the signature.", failed)
				t.Logf("\t\tTest 0:\tGot: %s", from)
				t.Logf("\t\tTest 0:\tExp: %s", account)
			} else {
				t.Logf("\t%s\tTest 0:\tShould recover the wallet account from the signature.", success)
			}
		}
	}
}
