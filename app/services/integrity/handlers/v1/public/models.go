package public

import (
	"time"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
)

// etherscanTx is the explorer URL prefix for Sepolia transactions.
const etherscanTx = "https://sepolia.etherscan.io/tx/"

type info struct {
	Name       string              `json:"name"`
	Digest     string              `json:"digest"`
	Rows       int                 `json:"rows"`
	Columns    int                 `json:"columns"`
	SizeBytes  int64               `json:"size_bytes"`
	Size       string              `json:"size"`
	Clean      dataset.CleanReport `json:"clean"`
	UploadedAt time.Time           `json:"uploaded_at"`
}

func toInfo(di integrity.DatasetInfo) info {
	return info{
		Name:       di.Name,
		Digest:     di.Digest,
		Rows:       di.Rows,
		Columns:    di.Columns,
		SizeBytes:  di.SizeBytes,
		Size:       di.Size,
		Clean:      di.Clean,
		UploadedAt: di.UploadedAt,
	}
}

type preview struct {
	Dataset string     `json:"dataset"`
	Cols    []string   `json:"cols"`
	Rows    [][]string `json:"rows"`
}

type digest struct {
	Dataset string `json:"dataset"`
	Digest  string `json:"digest"`
}

type verifyResult struct {
	Dataset       string    `json:"dataset"`
	Verified      bool      `json:"verified"`
	LocalDigest   string    `json:"local_digest"`
	OnChainDigest string    `json:"onchain_digest"`
	CheckedAt     time.Time `json:"checked_at"`
}

type tamperResult struct {
	Dataset        string    `json:"dataset"`
	TamperedDigest string    `json:"tampered_digest"`
	OnChainDigest  string    `json:"onchain_digest"`
	Verified       bool      `json:"verified"`
	CheckedAt      time.Time `json:"checked_at"`
}

type anchorReceipt struct {
	Dataset     string    `json:"dataset"`
	Digest      string    `json:"digest"`
	TxHash      string    `json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
	GasUsed     uint64    `json:"gas_used"`
	Status      string    `json:"status"`
	Etherscan   string    `json:"etherscan"`
	AnchoredAt  time.Time `json:"anchored_at"`
}

func toAnchorReceipt(rcpt receipt.Receipt) anchorReceipt {
	return anchorReceipt{
		Dataset:     rcpt.Dataset,
		Digest:      rcpt.Digest,
		TxHash:      rcpt.TxHash,
		BlockNumber: rcpt.BlockNumber,
		GasUsed:     rcpt.GasUsed,
		Status:      rcpt.Status,
		Etherscan:   etherscanTx + rcpt.TxHash,
		AnchoredAt:  rcpt.AnchoredAt,
	}
}
