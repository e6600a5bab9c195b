// Package integrity implements the dataset integrity workflows. Datasets are
// registered from uploaded CSV documents, cleaned and fingerprinted, then the
// digest is anchored on the Sepolia contract and compared against it later.
// Exploratory analysis is only released for datasets that verify.
package integrity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/ethereum"
)

// DefaultCacheTTL limits how long an on-chain digest read is reused before
// the contract is asked again.
const DefaultCacheTTL = 30 * time.Second

// EventHandler defines a function that is called when progress events occur
// during the integrity workflows.
type EventHandler func(v string, args ...any)

// Anchorer abstracts the contract client used to store and read digests.
type Anchorer interface {
	StoreHash(ctx context.Context, name string, digest string) (ethereum.Receipt, error)
	GetHash(ctx context.Context, name string) (string, error)
	Balance(ctx context.Context) (*big.Int, error)
	Account() common.Address
}

// ReceiptStore abstracts the local catalog of anchor receipts.
type ReceiptStore interface {
	Create(ctx context.Context, rcpt *receipt.Receipt) error
	ByDataset(ctx context.Context, dataset string) ([]receipt.Receipt, error)
}

// Config represents the dependencies for constructing the core.
type Config struct {
	Anchorer  Anchorer
	Receipts  ReceiptStore
	CacheTTL  time.Duration
	EvHandler EventHandler
}

// registered represents one dataset held in the registry.
type registered struct {
	info    DatasetInfo
	table   dataset.Table
	rawHash uint64
}

// Core manages the registry of datasets and the anchoring and verification
// workflows against the chain.
type Core struct {
	anchorer Anchorer
	receipts ReceiptStore
	cache    *ristretto.Cache[string, string]
	ttl      time.Duration
	ev       EventHandler

	mu       sync.RWMutex
	datasets map[string]registered
}

// New constructs a core for the integrity workflows.
func New(cfg Config) (*Core, error) {
	if cfg.Anchorer == nil {
		return nil, fmt.Errorf("anchorer is required")
	}
	if cfg.Receipts == nil {
		return nil, fmt.Errorf("receipt store is required")
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	ev := cfg.EvHandler
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	// The cache holds one digest string per dataset name, so the cost of
	// every entry is 1 and MaxCost caps the number of entries.
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("constructing digest cache: %w", err)
	}

	c := Core{
		anchorer: cfg.Anchorer,
		receipts: cfg.Receipts,
		cache:    cache,
		ttl:      ttl,
		ev:       ev,
		datasets: make(map[string]registered),
	}

	return &c, nil
}

// Shutdown releases the resources held by the core.
func (c *Core) Shutdown() {
	c.cache.Close()
}

// UpsertDataset reads a CSV document, cleans it, computes the canonical
// digest and registers the dataset under the specified name. Uploading the
// same bytes under the same name again reuses the registered dataset.
func (c *Core) UpsertDataset(name string, r io.Reader) (DatasetInfo, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("reading dataset %q: %w", name, err)
	}
	rawHash := xxhash.Sum64(raw)

	c.mu.RLock()
	if reg, exists := c.datasets[name]; exists && reg.rawHash == rawHash {
		c.mu.RUnlock()
		c.ev("upload: dataset %s: unchanged, reusing digest %s", name, reg.info.Digest)
		return reg.info, nil
	}
	c.mu.RUnlock()

	tbl, err := dataset.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("parsing dataset %q: %w", name, err)
	}

	tbl, report := dataset.Clean(tbl)
	if len(tbl.Rows) == 0 {
		return DatasetInfo{}, ErrEmptyTable
	}

	digest, err := dataset.Digest(tbl)
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("hashing dataset %q: %w", name, err)
	}

	info := DatasetInfo{
		Name:       name,
		Digest:     digest,
		Rows:       len(tbl.Rows),
		Columns:    len(tbl.Cols),
		SizeBytes:  int64(len(raw)),
		Size:       humanize.Bytes(uint64(len(raw))),
		Clean:      report,
		UploadedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.datasets[name] = registered{
		info:    info,
		table:   tbl,
		rawHash: rawHash,
	}
	c.mu.Unlock()

	c.ev("upload: dataset %s: %d rows %d columns (%s), digest %s", name, info.Rows, info.Columns, info.Size, digest)
	return info, nil
}

// Dataset returns the registered dataset information for the name.
func (c *Core) Dataset(name string) (DatasetInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reg, exists := c.datasets[name]
	if !exists {
		return DatasetInfo{}, ErrNotFound
	}
	return reg.info, nil
}

// Datasets returns the information for every registered dataset ordered
// by name.
func (c *Core) Datasets() []DatasetInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]DatasetInfo, 0, len(c.datasets))
	for _, reg := range c.datasets {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}

// Preview returns the leading rows of the registered dataset.
func (c *Core) Preview(name string, rows int) (dataset.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reg, exists := c.datasets[name]
	if !exists {
		return dataset.Table{}, ErrNotFound
	}
	return reg.table.Preview(rows), nil
}

// Anchor submits the digest of the registered dataset to the contract and
// records the mined receipt in the catalog. This spends testnet ETH and
// blocks until the transaction is mined or the context expires.
func (c *Core) Anchor(ctx context.Context, name string) (receipt.Receipt, error) {
	c.mu.RLock()
	reg, exists := c.datasets[name]
	c.mu.RUnlock()
	if !exists {
		return receipt.Receipt{}, ErrNotFound
	}

	c.ev("anchor: dataset %s: submitting digest %s", name, reg.info.Digest)

	ethReceipt, err := c.anchorer.StoreHash(ctx, name, reg.info.Digest)
	if err != nil {
		return receipt.Receipt{}, fmt.Errorf("anchoring dataset %q: %w", name, err)
	}

	status := "success"
	if !ethReceipt.Success {
		status = "reverted"
	}
	c.ev("anchor: dataset %s: mined tx %s in block %d, gas %s, status %s",
		name, ethReceipt.TxHash, ethReceipt.BlockNumber, humanize.Comma(int64(ethReceipt.GasUsed)), status)

	rcpt := receipt.Receipt{
		Dataset:     name,
		Digest:      reg.info.Digest,
		TxHash:      ethReceipt.TxHash,
		BlockNumber: ethReceipt.BlockNumber,
		GasUsed:     ethReceipt.GasUsed,
		Status:      status,
		AnchoredAt:  time.Now().UTC(),
	}
	if err := c.receipts.Create(ctx, &rcpt); err != nil {
		return receipt.Receipt{}, fmt.Errorf("recording receipt for tx %s: %w", ethReceipt.TxHash, err)
	}

	// The next verification must see the new on-chain value.
	c.cache.Del(name)

	return rcpt, nil
}

// Verify compares the local digest of the registered dataset against the
// digest stored on chain. A mismatch is reported in the result, only RPC
// failures surface as errors.
func (c *Core) Verify(ctx context.Context, name string) (VerifyResult, error) {
	c.mu.RLock()
	reg, exists := c.datasets[name]
	c.mu.RUnlock()
	if !exists {
		return VerifyResult{}, ErrNotFound
	}

	onChain, err := c.onChainDigest(ctx, name)
	if err != nil {
		return VerifyResult{}, err
	}

	result := VerifyResult{
		Dataset:       name,
		Verified:      onChain != "" && onChain == reg.info.Digest,
		LocalDigest:   reg.info.Digest,
		OnChainDigest: onChain,
		CheckedAt:     time.Now().UTC(),
	}

	c.ev("verify: dataset %s: verified %v", name, result.Verified)
	return result, nil
}

// Tamper runs the tamper demo: one numeric cell of a copy of the dataset is
// incremented and the copy's digest is verified against the chain. The
// registered dataset itself is never modified.
func (c *Core) Tamper(ctx context.Context, name string) (TamperResult, error) {
	c.mu.RLock()
	reg, exists := c.datasets[name]
	c.mu.RUnlock()
	if !exists {
		return TamperResult{}, ErrNotFound
	}

	mutated, err := dataset.Tamper(reg.table)
	if err != nil {
		return TamperResult{}, fmt.Errorf("tampering dataset %q: %w", name, err)
	}

	digest, err := dataset.Digest(mutated)
	if err != nil {
		return TamperResult{}, fmt.Errorf("hashing tampered copy of %q: %w", name, err)
	}

	onChain, err := c.onChainDigest(ctx, name)
	if err != nil {
		return TamperResult{}, err
	}

	result := TamperResult{
		Dataset:        name,
		TamperedDigest: digest,
		OnChainDigest:  onChain,
		Verified:       onChain != "" && onChain == digest,
		CheckedAt:      time.Now().UTC(),
	}

	c.ev("tamper: dataset %s: tampered digest %s, verified %v", name, digest, result.Verified)
	return result, nil
}

// EDA returns the exploratory analysis report for the dataset. The report
// is only released when the dataset verifies against the chain, untrusted
// data gets ErrNotVerified.
func (c *Core) EDA(ctx context.Context, name string) (dataset.Report, error) {
	vr, err := c.Verify(ctx, name)
	if err != nil {
		return dataset.Report{}, err
	}
	if !vr.Verified {
		return dataset.Report{}, ErrNotVerified
	}

	c.mu.RLock()
	reg := c.datasets[name]
	c.mu.RUnlock()

	return dataset.Describe(reg.table), nil
}

// Receipts returns the anchor receipts recorded for the dataset. The
// catalog outlives the in-memory registry, so unknown names are allowed
// and return whatever history exists.
func (c *Core) Receipts(ctx context.Context, name string) ([]receipt.Receipt, error) {
	receipts, err := c.receipts.ByDataset(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading receipts for %q: %w", name, err)
	}
	return receipts, nil
}

// WalletStatus reports the anchoring wallet account and balance.
func (c *Core) WalletStatus(ctx context.Context) (WalletStatus, error) {
	balance, err := c.anchorer.Balance(ctx)
	if err != nil {
		return WalletStatus{}, fmt.Errorf("reading wallet balance: %w", err)
	}

	eth := new(big.Float).Quo(new(big.Float).SetInt(balance), big.NewFloat(params.Ether))

	status := WalletStatus{
		Account:    c.anchorer.Account().Hex(),
		BalanceWei: balance.String(),
		BalanceETH: eth.Text('f', 6),
	}

	return status, nil
}

// onChainDigest reads the digest stored on chain for the name, reusing a
// cached value when one is fresh enough.
func (c *Core) onChainDigest(ctx context.Context, name string) (string, error) {
	if digest, found := c.cache.Get(name); found {
		return digest, nil
	}

	digest, err := c.anchorer.GetHash(ctx, name)
	if err != nil {
		return "", fmt.Errorf("fetching on-chain digest for %q: %w", name, err)
	}

	c.cache.SetWithTTL(name, digest, 1, c.ttl)
	c.cache.Wait()

	return digest, nil
}
