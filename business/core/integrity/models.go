package integrity

import (
	"time"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
)

// DatasetInfo describes a registered dataset after cleaning.
type DatasetInfo struct {
	Name       string
	Digest     string
	Rows       int
	Columns    int
	SizeBytes  int64
	Size       string
	Clean      dataset.CleanReport
	UploadedAt time.Time
}

// VerifyResult carries the outcome of comparing the local digest against
// the digest stored on chain. A mismatch is a result, not an error.
type VerifyResult struct {
	Dataset       string
	Verified      bool
	LocalDigest   string
	OnChainDigest string
	CheckedAt     time.Time
}

// TamperResult carries the outcome of the tamper demo: the digest of a copy
// with one mutated cell and its failed verification against the chain.
type TamperResult struct {
	Dataset        string
	TamperedDigest string
	OnChainDigest  string
	Verified       bool
	CheckedAt      time.Time
}

// WalletStatus reports the anchoring wallet account and its balance on the
// test network.
type WalletStatus struct {
	Account    string
	BalanceWei string
	BalanceETH string
}
