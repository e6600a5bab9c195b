// Package private maintains the group of handlers that sign and spend with
// the wallet key.
package private

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/sys/validate"
	v1 "github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/web/v1"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/nameservice"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/web"
	"go.uber.org/zap"
)

// etherscanTx is the explorer URL prefix for Sepolia transactions.
const etherscanTx = "https://sepolia.etherscan.io/tx/"

// Handlers manages the set of private integrity endpoints.
type Handlers struct {
	Log  *zap.SugaredLogger
	Core *integrity.Core
	NS   *nameservice.NameService
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

// Anchor submits the dataset digest to the contract and blocks until the
// transaction is mined. This spends testnet ETH from the wallet.
func (h Handlers) Anchor(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ad struct {
		Dataset string `json:"dataset" validate:"required"`
	}
	if err := web.Decode(r, &ad); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	if err := validate.Check(ad); err != nil {
		return err
	}

	h.Log.Infow("anchor dataset", "traceid", v.TraceID, "dataset", ad.Dataset)

	rcpt, err := h.Core.Anchor(ctx, ad.Dataset)
	if err != nil {
		if errors.Is(err, integrity.ErrNotFound) {
			return v1.NewRequestError(err, http.StatusNotFound)
		}
		return v1.NewRequestError(err, http.StatusBadGateway)
	}

	resp := anchorReceipt{
		Dataset:     rcpt.Dataset,
		Digest:      rcpt.Digest,
		TxHash:      rcpt.TxHash,
		BlockNumber: rcpt.BlockNumber,
		GasUsed:     rcpt.GasUsed,
		Status:      rcpt.Status,
		Etherscan:   etherscanTx + rcpt.TxHash,
		AnchoredAt:  rcpt.AnchoredAt,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// WalletStatus returns the anchoring wallet account and current balance.
func (h Handlers) WalletStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status, err := h.Core.WalletStatus(ctx)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadGateway)
	}

	resp := struct {
		Account    string `json:"account"`
		Name       string `json:"name"`
		BalanceWei string `json:"balance_wei"`
		BalanceETH string `json:"balance_eth"`
	}{
		Account:    status.Account,
		Name:       h.NS.Lookup(common.HexToAddress(status.Account)),
		BalanceWei: status.BalanceWei,
		BalanceETH: status.BalanceETH,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
