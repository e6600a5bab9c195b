// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/services/integrity/handlers/debug/checkgrp"
	v1 "github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/services/integrity/handlers/v1"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/web/v1/mid"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/events"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/nameservice"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown  chan os.Signal
	Log       *zap.SugaredLogger
	Core      *integrity.Core
	NS        *nameservice.NameService
	Evts      *events.Events
	MaxUpload int64
}

// PublicMux constructs a http.Handler with all application routes defined.
// This includes the dashboard pages and their assets.
func PublicMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests if config has been provided.
	// Don't forget to apply the CORS middleware to the routes that need it.
	// Example Config: `conf:"default:https://MY_DOMAIN.COM"`
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors("*"))

	// Register the dashboard page and its assets.
	app.Handle(http.MethodGet, "", "/", index)

	fs := http.FileServer(http.Dir("app/services/integrity/assets"))
	fs = http.StripPrefix("/assets/", fs)
	f := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		fs.ServeHTTP(w, r)
		return nil
	}
	app.Handle(http.MethodGet, "", "/assets/*", f)

	// Load the v1 routes.
	v1.PublicRoutes(app, v1.Config{
		Log:       cfg.Log,
		Core:      cfg.Core,
		NS:        cfg.NS,
		Evts:      cfg.Evts,
		MaxUpload: cfg.MaxUpload,
	})

	return app
}

// PrivateMux constructs a http.Handler with the routes that sign and spend
// with the wallet key. This mux must not be exposed publicly.
func PrivateMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests so the dashboard served from
	// the public host can call the anchoring endpoint.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors("*"))

	// Load the v1 routes.
	v1.PrivateRoutes(app, v1.Config{
		Log:  cfg.Log,
		Core: cfg.Core,
		NS:   cfg.NS,
	})

	return app
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service. This bypassing the use of the
// DefaultServerMux. Using the DefaultServerMux would be a security risk since
// a dependency could inject a handler into our service without us knowing it.
func DebugMux(build string, log *zap.SugaredLogger, store *receipt.Store) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
		Store: store,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
