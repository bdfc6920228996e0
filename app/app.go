package app

import (
	"fmt"
	"os"
	"time"

	"github.com/machinecoin-project/machinecoin-core/infrastructure/config"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database/ldb"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/os/signal"
	"github.com/machinecoin-project/machinecoin-core/util/panics"
	"github.com/machinecoin-project/machinecoin-core/version"
)

type machinecoindApp struct {
	cfg *config.Config
}

// StartApp starts the machinecoind app, and blocks until it finishes running
func StartApp() error {
	interrupt := signal.InterruptListener()

	// Load configuration and parse command line. This function also
	// initializes logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	app := &machinecoindApp{cfg: cfg}
	return app.main(interrupt)
}

func (app *machinecoindApp) main(interrupt <-chan struct{}) error {
	log.Infof("Version %s", version.Version())
	log.Infof("Active network: %s", app.cfg.NetParams().Name)

	log.Infof("Loading database from '%s'", app.cfg.DatabaseDir())
	db, err := openDB(app.cfg)
	if err != nil {
		log.Errorf("Loading database failed: %+v", err)
		return err
	}
	defer func() {
		log.Infof("Gracefully shutting down the database...")
		err := db.Close()
		if err != nil {
			log.Errorf("Failed to close the database: %s", err)
		}
	}()

	componentManager, err := NewComponentManager(app.cfg, db, interrupt)
	if err != nil {
		log.Errorf("Unable to start machinecoind: %+v", err)
		return err
	}

	defer func() {
		log.Infof("Gracefully shutting down machinecoind...")

		shutdownDone := make(chan struct{})
		go func() {
			componentManager.Stop()
			shutdownDone <- struct{}{}
		}()

		const shutdownTimeout = 2 * time.Minute

		select {
		case <-shutdownDone:
		case <-time.After(shutdownTimeout):
			log.Criticalf("Graceful shutdown timed out %s. Terminating...", shutdownTimeout)
		}
		log.Infof("Machinecoind shutdown complete")
	}()

	componentManager.Start()

	select {
	case <-interrupt:
	case <-componentManager.Done():
	}
	return nil
}

func openDB(cfg *config.Config) (database.Database, error) {
	err := os.MkdirAll(cfg.DatabaseDir(), 0700)
	if err != nil {
		return nil, err
	}
	db, err := ldb.NewLevelDB(cfg.DatabaseDir(), cfg.DBCacheMiB)
	if err != nil {
		return nil, err
	}
	return db, nil
}
