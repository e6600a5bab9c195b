// This program performs administrative tasks for the dataset integrity
// service: an offline EDA report for a CSV document and listings of the
// recorded anchor receipts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/tooling/admin/commands"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
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
	if len(os.Args) < 2 {
		return errors.New("usage: admin [eda <csv-file> | receipts [dataset]]")
	}

	return processCommands(os.Args, log)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args []string, log *zap.SugaredLogger) error {
	switch args[1] {
	case "eda":
		if err := commands.EDA(args); err != nil {
			return fmt.Errorf("generating eda report: %w", err)
		}

	case "receipts":
		store, err := openStore(log)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := commands.Receipts(args, store); err != nil {
			return fmt.Errorf("listing receipts: %w", err)
		}

	default:
		return fmt.Errorf("unknown command %q", args[1])
	}

	return nil
}

// openStore connects to the receipt catalog the service writes to. The
// connection settings mirror the service defaults and follow the same
// environment variables.
func openStore(log *zap.SugaredLogger) (*receipt.Store, error) {
	driver := os.Getenv("INTEGRITY_DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	connection := os.Getenv("INTEGRITY_DB_CONNECTION")
	if connection == "" {
		connection = "zdata/receipts.db"
	}

	return receipt.NewStore(receipt.Config{
		Driver:     driver,
		Connection: connection,
	}, log)
}
