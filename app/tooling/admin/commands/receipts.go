package commands

import (
	"context"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/pterm/pterm"
)

// Receipts lists the anchor receipts recorded in the local catalog, for one
// dataset when a name is specified.
func Receipts(args []string, store *receipt.Store) error {
	ctx := context.Background()

	var rcpts []receipt.Receipt
	var err error
	switch {
	case len(args) >= 3:
		rcpts, err = store.ByDataset(ctx, args[2])
	default:
		rcpts, err = store.All(ctx)
	}
	if err != nil {
		return err
	}

	if len(rcpts) == 0 {
		pterm.Info.Println("no anchor receipts recorded")
		return nil
	}

	data := pterm.TableData{{"ID", "Dataset", "Digest", "Tx", "Block", "Gas", "Status", "Anchored"}}
	for _, rcpt := range rcpts {
		data = append(data, []string{
			strconv.FormatUint(uint64(rcpt.ID), 10),
			rcpt.Dataset,
			short(rcpt.Digest),
			short(rcpt.TxHash),
			strconv.FormatUint(rcpt.BlockNumber, 10),
			humanize.Comma(int64(rcpt.GasUsed)),
			rcpt.Status,
			rcpt.AnchoredAt.Format(time.RFC3339),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// short keeps hashes readable in the table output.
func short(h string) string {
	if len(h) <= 18 {
		return h
	}
	return h[:18] + "..."
}
