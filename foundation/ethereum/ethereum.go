// Package ethereum provides a client for the dataset integrity contract on
// the Sepolia test network. The contract stores one digest string per dataset
// name, storeHash overwrites and getHash reads back the latest value.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
)

// SepoliaChainID is the chain id of the Sepolia test network where the
// integrity contract is deployed.
const SepoliaChainID = 11155111

// Defaults for transaction construction. The contract writes a single
// string into a mapping so the fixed gas limit leaves plenty of headroom.
const (
	DefaultGasLimit      = 200000
	DefaultGasPriceGwei  = 10
	receiptStatusSuccess = types.ReceiptStatusSuccessful
)

// Config represents the set of values required to dial the network and sign
// anchoring transactions. PrivateKey and Contract come from the environment
// configured secrets, never from source.
type Config struct {
	RPCURL        string
	PrivateKey    string
	WalletAddress string
	Contract      string
	ChainID       uint64
	GasLimit      uint64
	GasPriceGwei  int64
}

// Receipt captures the fields of a mined anchoring transaction the
// application records and displays.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	Success     bool
}

// Client provides access to the integrity contract for anchoring and
// reading dataset digests.
type Client struct {
	ethClient  *ethclient.Client
	contractID common.Address
	abi        abi.ABI
	privateKey *ecdsa.PrivateKey
	account    common.Address
	chainID    *big.Int
	gasLimit   uint64
	gasPrice   *big.Int
}

// DialContext validates the configuration, derives the wallet account from
// the private key and connects to the configured RPC endpoint.
func DialContext(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("rpc url is not configured")
	}
	if !common.IsHexAddress(cfg.Contract) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.Contract)
	}

	contractABI, err := abi.JSON(strings.NewReader(anchorABI))
	if err != nil {
		return nil, fmt.Errorf("parsing contract abi: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	account := crypto.PubkeyToAddress(privateKey.PublicKey)

	// When a wallet address is configured it must belong to the private
	// key. Catching a mixed up secrets file here beats a silent nonce
	// mismatch during anchoring.
	if cfg.WalletAddress != "" {
		if !strings.EqualFold(cfg.WalletAddress, account.Hex()) {
			return nil, fmt.Errorf("wallet address %s does not match private key account %s", cfg.WalletAddress, account.Hex())
		}
	}

	chainID := cfg.ChainID
	if chainID == 0 {
		chainID = SepoliaChainID
	}
	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	gasPriceGwei := cfg.GasPriceGwei
	if gasPriceGwei == 0 {
		gasPriceGwei = DefaultGasPriceGwei
	}

	ethClient, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", cfg.RPCURL, err)
	}

	c := Client{
		ethClient:  ethClient,
		contractID: common.HexToAddress(cfg.Contract),
		abi:        contractABI,
		privateKey: privateKey,
		account:    account,
		chainID:    new(big.Int).SetUint64(chainID),
		gasLimit:   gasLimit,
		gasPrice:   new(big.Int).Mul(big.NewInt(gasPriceGwei), big.NewInt(params.GWei)),
	}

	return &c, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.ethClient.Close()
}

// Account returns the wallet account derived from the configured private key.
func (c *Client) Account() common.Address {
	return c.account
}

// Contract returns the address of the integrity contract.
func (c *Client) Contract() common.Address {
	return c.contractID
}

// ChainID returns the chain id transactions are signed for.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Balance returns the current wallet balance in wei.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	balance, err := c.ethClient.BalanceAt(ctx, c.account, nil)
	if err != nil {
		return nil, fmt.Errorf("reading balance: %w", err)
	}

	return balance, nil
}

// GetHash reads the digest stored on chain for the specified dataset name.
// An empty string means nothing has been anchored under that name yet.
func (c *Client) GetHash(ctx context.Context, name string) (string, error) {
	data, err := c.abi.Pack("getHash", name)
	if err != nil {
		return "", fmt.Errorf("packing getHash call: %w", err)
	}

	msg := geth.CallMsg{
		To:   &c.contractID,
		Data: data,
	}
	output, err := c.ethClient.CallContract(ctx, msg, nil)
	if err != nil {
		return "", fmt.Errorf("calling getHash: %w", err)
	}

	results, err := c.abi.Unpack("getHash", output)
	if err != nil {
		return "", fmt.Errorf("unpacking getHash result: %w", err)
	}
	digest, ok := results[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected getHash result type %T", results[0])
	}

	return digest, nil
}

// StoreHash anchors the digest under the dataset name. The call signs a
// legacy transaction with the wallet key, submits it and blocks until the
// transaction is mined or the context expires. This spends testnet ETH.
func (c *Client) StoreHash(ctx context.Context, name string, digest string) (Receipt, error) {
	nonce, err := c.ethClient.PendingNonceAt(ctx, c.account)
	if err != nil {
		return Receipt{}, fmt.Errorf("reading pending nonce: %w", err)
	}

	data, err := c.abi.Pack("storeHash", name, digest)
	if err != nil {
		return Receipt{}, fmt.Errorf("packing storeHash call: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contractID,
		Value:    big.NewInt(0),
		Gas:      c.gasLimit,
		GasPrice: c.gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
	if err != nil {
		return Receipt{}, fmt.Errorf("signing transaction: %w", err)
	}

	if err := c.ethClient.SendTransaction(ctx, signedTx); err != nil {
		return Receipt{}, fmt.Errorf("sending transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.ethClient, signedTx)
	if err != nil {
		return Receipt{}, fmt.Errorf("waiting for transaction %s: %w", signedTx.Hash().Hex(), err)
	}

	r := Receipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Success:     receipt.Status == receiptStatusSuccess,
	}

	return r, nil
}
