package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/dustin/go-humanize"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/services/integrity/handlers"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/ethereum"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/events"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/logger"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/nameservice"
	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("INTEGRITY")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// The wallet secrets live in secrets.env using the original deployment
	// layout. A missing file is fine, the environment may carry the values
	// directly.
	if err := godotenv.Load("secrets.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading secrets.env: %w", err)
	}

	// This is all the configuration for the application and the default values.
	// Configuration values will be passed through the application as individual
	// values.
	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			AnchorTimeout   time.Duration `conf:"default:2m"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			PrivateHost     string        `conf:"default:0.0.0.0:9080"`
			MaxUpload       string        `conf:"default:10mb"`
		}
		Eth struct {
			RPCURL          string `conf:"default:https://ethereum-sepolia-rpc.publicnode.com"`
			PrivateKey      string `conf:"mask"`
			WalletAddress   string
			ContractAddress string
			ChainID         uint64 `conf:"default:11155111"`
			GasLimit        uint64 `conf:"default:200000"`
			GasPriceGwei    int64  `conf:"default:10"`
		}
		DB struct {
			Driver     string `conf:"default:sqlite"`
			Connection string `conf:"default:zdata/receipts.db"`
		}
		Dataset struct {
			Name       string        `conf:"default:sales_data"`
			SamplePath string        `conf:"default:zdata/sales_data.csv"`
			CacheTTL   time.Duration `conf:"default:30s"`
		}
		NameService struct {
			Folder string `conf:"default:zdata/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "INTEGRITY"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// The secrets file names these values without the config prefix. Let
	// them override so the original secrets.env works unchanged.
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.Eth.RPCURL = v
	}
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		cfg.Eth.PrivateKey = v
	}
	if v := os.Getenv("WALLET_ADDRESS"); v != "" {
		cfg.Eth.WalletAddress = v
	}
	if v := os.Getenv("CONTRACT_ADDRESS"); v != "" {
		cfg.Eth.ContractAddress = v
	}

	maxUpload, err := humanize.ParseBytes(cfg.Web.MaxUpload)
	if err != nil {
		return fmt.Errorf("parsing max upload size: %w", err)
	}

	// =========================================================================
	// App Starting

	fmt.Println(` ___ _   _ _____ _____ ____ ____  ___ _____ __   __`)
	fmt.Println(`|_ _| \ | |_   _| ____/ ___|  _ \|_ _|_   _|\ \ / /`)
	fmt.Println(` | | |  \| | | | |  _|| |  _| |_) || |  | |   \ V / `)
	fmt.Println(` | | | |\  | | | | |__| |_| |  _ < | |  | |    | |  `)
	fmt.Println(`|___||_| \_| |_| |_____\____|_| \_\___| |_|    |_|  `)
	fmt.Print("\n")

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for wallet accounts.
	// The names come from the file names in the zdata/accounts folder.
	ns, err := nameservice.New(cfg.NameService.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	// Logging the accounts for documentation in the logs.
	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account)
	}

	// =========================================================================
	// Receipt Catalog Support

	log.Infow("startup", "status", "initializing receipt catalog", "driver", cfg.DB.Driver, "connection", cfg.DB.Connection)

	store, err := receipt.NewStore(receipt.Config{
		Driver:     cfg.DB.Driver,
		Connection: cfg.DB.Connection,
	}, log)
	if err != nil {
		return fmt.Errorf("unable to open receipt catalog: %w", err)
	}
	defer store.Close()

	// =========================================================================
	// Ethereum Support

	log.Infow("startup", "status", "dialing sepolia", "rpc", cfg.Eth.RPCURL, "contract", cfg.Eth.ContractAddress)

	ethClient, err := ethereum.DialContext(context.Background(), ethereum.Config{
		RPCURL:        cfg.Eth.RPCURL,
		PrivateKey:    cfg.Eth.PrivateKey,
		WalletAddress: cfg.Eth.WalletAddress,
		Contract:      cfg.Eth.ContractAddress,
		ChainID:       cfg.Eth.ChainID,
		GasLimit:      cfg.Eth.GasLimit,
		GasPriceGwei:  cfg.Eth.GasPriceGwei,
	})
	if err != nil {
		return fmt.Errorf("unable to dial ethereum rpc: %w", err)
	}
	defer ethClient.Close()

	log.Infow("startup", "status", "wallet", "account", ethClient.Account(), "name", ns.Lookup(ethClient.Account()))

	// =========================================================================
	// Integrity Core Support

	// The core packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client that is connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	core, err := integrity.New(integrity.Config{
		Anchorer:  ethClient,
		Receipts:  store,
		CacheTTL:  cfg.Dataset.CacheTTL,
		EvHandler: ev,
	})
	if err != nil {
		return fmt.Errorf("unable to construct integrity core: %w", err)
	}
	defer core.Shutdown()

	// Register the sample dataset so the dashboard has something to anchor
	// right away. The service still works from uploads alone.
	sample, err := os.Open(cfg.Dataset.SamplePath)
	switch {
	case err != nil:
		log.Infow("startup", "status", "sample dataset not loaded", "path", cfg.Dataset.SamplePath, "ERROR", err)

	default:
		info, err := core.UpsertDataset(cfg.Dataset.Name, sample)
		sample.Close()
		if err != nil {
			return fmt.Errorf("registering sample dataset: %w", err)
		}
		log.Infow("startup", "status", "sample dataset registered", "dataset", info.Name, "rows", info.Rows, "digest", info.Digest)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, store)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown:  shutdown,
		Log:       log,
		Core:      core,
		NS:        ns,
		Evts:      evts,
		MaxUpload: int64(maxUpload),
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Start Private Service

	log.Infow("startup", "status", "initializing V1 private API support")

	// Construct the mux for the private API calls.
	privateMux := handlers.PrivateMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Core:     core,
		NS:       ns,
	})

	// Construct a server to service the requests against the mux. Anchoring
	// blocks until the transaction is mined, so the write timeout on this
	// server covers full Sepolia block times.
	private := http.Server{
		Addr:         cfg.Web.PrivateHost,
		Handler:      privateMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.AnchorTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "private api router started", "host", private.Addr)
		serverErrors <- private.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancelPri := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancelPri()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown private API started")
		if err := private.Shutdown(ctx); err != nil {
			private.Close()
			return fmt.Errorf("could not stop private service gracefully: %w", err)
		}

		// Give outstanding requests a deadline for completion.
		ctx, cancelPub := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancelPub()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}
