// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/sys/validate"
	v1 "github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/web/v1"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/events"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/web"
	"go.uber.org/zap"
)

// defaultPreviewRows matches the head view of the original dashboard.
const defaultPreviewRows = 5

// Handlers manages the set of public integrity endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Core      *integrity.Core
	WS        websocket.Upgrader
	Evts      *events.Events
	MaxUpload int64
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Upload registers a dataset from a multipart CSV document. The dataset name
// comes from the form or falls back to the file name.
func (h Handlers) Upload(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("reading multipart dataset: %w", err), http.StatusBadRequest)
	}
	defer file.Close()

	up := struct {
		Name string `json:"name" validate:"required"`
	}{
		Name: r.FormValue("name"),
	}
	if up.Name == "" {
		up.Name = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}
	if err := validate.Check(up); err != nil {
		return err
	}

	di, err := h.Core.UpsertDataset(up.Name, file)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("dataset upload", "traceid", v.TraceID, "dataset", di.Name, "rows", di.Rows, "digest", di.Digest)

	return web.Respond(ctx, w, toInfo(di), http.StatusOK)
}

// Datasets returns the registered datasets.
func (h Handlers) Datasets(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dis := h.Core.Datasets()

	infos := make([]info, len(dis))
	for i, di := range dis {
		infos[i] = toInfo(di)
	}

	return web.Respond(ctx, w, infos, http.StatusOK)
}

// Info returns the registered dataset information.
func (h Handlers) Info(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	di, err := h.Core.Dataset(web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	return web.Respond(ctx, w, toInfo(di), http.StatusOK)
}

// Preview returns the leading rows of the dataset.
func (h Handlers) Preview(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	name := web.Param(r, "dataset")

	rows := defaultPreviewRows
	if rp := r.URL.Query().Get("rows"); rp != "" {
		var err error
		rows, err = strconv.Atoi(rp)
		if err != nil || rows < 1 {
			return v1.NewRequestError(fmt.Errorf("invalid rows value %q", rp), http.StatusBadRequest)
		}
	}

	tbl, err := h.Core.Preview(name, rows)
	if err != nil {
		return errStatus(err)
	}

	pre := preview{
		Dataset: name,
		Cols:    tbl.Cols,
		Rows:    tbl.Rows,
	}

	return web.Respond(ctx, w, pre, http.StatusOK)
}

// Digest returns the canonical digest of the dataset.
func (h Handlers) Digest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	di, err := h.Core.Dataset(web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	dgst := digest{
		Dataset: di.Name,
		Digest:  di.Digest,
	}

	return web.Respond(ctx, w, dgst, http.StatusOK)
}

// Verify compares the dataset digest against the digest stored on chain.
// A mismatch is not an error, the result carries both digests.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	vr, err := h.Core.Verify(ctx, web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	result := verifyResult{
		Dataset:       vr.Dataset,
		Verified:      vr.Verified,
		LocalDigest:   vr.LocalDigest,
		OnChainDigest: vr.OnChainDigest,
		CheckedAt:     vr.CheckedAt,
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Tamper runs the tamper demo against a copy of the dataset and reports the
// failed verification.
func (h Handlers) Tamper(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tr, err := h.Core.Tamper(ctx, web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	result := tamperResult{
		Dataset:        tr.Dataset,
		TamperedDigest: tr.TamperedDigest,
		OnChainDigest:  tr.OnChainDigest,
		Verified:       tr.Verified,
		CheckedAt:      tr.CheckedAt,
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// EDA returns the exploratory analysis report. The report is only released
// when the dataset verifies against the chain.
func (h Handlers) EDA(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	report, err := h.Core.EDA(ctx, web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	return web.Respond(ctx, w, report, http.StatusOK)
}

// Receipts returns the recorded anchor receipts for the dataset.
func (h Handlers) Receipts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	rcpts, err := h.Core.Receipts(ctx, web.Param(r, "dataset"))
	if err != nil {
		return errStatus(err)
	}

	results := make([]anchorReceipt, len(rcpts))
	for i, rcpt := range rcpts {
		results[i] = toAnchorReceipt(rcpt)
	}

	return web.Respond(ctx, w, results, http.StatusOK)
}

// errStatus maps the known core errors to trusted request errors. Anything
// else at this point is chain RPC trouble and comes back as a bad gateway.
func errStatus(err error) error {
	switch {
	case errors.Is(err, integrity.ErrNotFound):
		return v1.NewRequestError(err, http.StatusNotFound)
	case errors.Is(err, integrity.ErrNotVerified):
		return v1.NewRequestError(err, http.StatusPreconditionFailed)
	case errors.Is(err, dataset.ErrNoNumericColumn):
		return v1.NewRequestError(err, http.StatusBadRequest)
	default:
		return v1.NewRequestError(err, http.StatusBadGateway)
	}
}
