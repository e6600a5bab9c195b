// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/services/integrity/handlers/v1/private"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/services/integrity/handlers/v1/public"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/events"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/nameservice"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *zap.SugaredLogger
	Core      *integrity.Core
	NS        *nameservice.NameService
	Evts      *events.Events
	MaxUpload int64
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:       cfg.Log,
		Core:      cfg.Core,
		Evts:      cfg.Evts,
		MaxUpload: cfg.MaxUpload,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/datasets/list", pbl.Datasets)
	app.Handle(http.MethodPost, version, "/datasets/upload", pbl.Upload)
	app.Handle(http.MethodGet, version, "/datasets/info/:dataset", pbl.Info)
	app.Handle(http.MethodGet, version, "/datasets/preview/:dataset", pbl.Preview)
	app.Handle(http.MethodGet, version, "/datasets/digest/:dataset", pbl.Digest)
	app.Handle(http.MethodGet, version, "/datasets/verify/:dataset", pbl.Verify)
	app.Handle(http.MethodGet, version, "/datasets/tamper/:dataset", pbl.Tamper)
	app.Handle(http.MethodGet, version, "/datasets/eda/:dataset", pbl.EDA)
	app.Handle(http.MethodGet, version, "/receipts/list/:dataset", pbl.Receipts)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:  cfg.Log,
		Core: cfg.Core,
		NS:   cfg.NS,
	}

	app.Handle(http.MethodPost, version, "/anchor", prv.Anchor)
	app.Handle(http.MethodGet, version, "/wallet/status", prv.WalletStatus)
}
