package app

import (
	"sync/atomic"

	"github.com/machinecoin-project/machinecoin-core/domain/chaintip"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/config"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
)

// ComponentManager is a wrapper for all the machinecoind services
type ComponentManager struct {
	cfg        *config.Config
	consensus  consensus.Consensus
	dispatcher *chaintip.Dispatcher
	interrupt  <-chan struct{}
	importDone chan struct{}

	started, shutdown int32
}

// Start launches all the machinecoind services.
func (a *ComponentManager) Start() {
	// Already started?
	if atomic.AddInt32(&a.started, 1) != 1 {
		return
	}

	log.Trace("Starting machinecoind")

	a.consensus.InitializeCurrentBlockTip()

	if len(a.cfg.LoadHeaders) == 0 {
		close(a.importDone)
		return
	}
	spawn(func() {
		defer close(a.importDone)
		for _, path := range a.cfg.LoadHeaders {
			inserted, err := importHeadersFile(a.consensus, path, a.interrupt)
			if err != nil {
				log.Errorf("Importing headers from %s stopped after %d headers: %s", path, inserted, err)
				return
			}
			log.Infof("Imported %d headers from %s", inserted, path)
		}
		tip := a.consensus.Tip()
		log.Infof("Header tip is %s at height %d", tip.Hash(), tip.Height())
	})
}

// Stop gracefully shuts down all the machinecoind services.
func (a *ComponentManager) Stop() {
	// Make sure this only happens once.
	if atomic.AddInt32(&a.shutdown, 1) != 1 {
		log.Infof("Machinecoind is already in the process of shutting down")
		return
	}

	log.Warnf("Machinecoind shutting down")

	if atomic.LoadInt32(&a.started) != 0 {
		<-a.importDone
	}

	tip := a.consensus.Tip()
	log.Infof("Stopping at tip %s, height %d", tip.Hash(), tip.Height())
}

// Done returns a channel that is closed once the header import started by
// Start has finished.
func (a *ComponentManager) Done() <-chan struct{} {
	return a.importDone
}

// Consensus returns the Consensus associated with this ComponentManager
func (a *ComponentManager) Consensus() consensus.Consensus {
	return a.consensus
}

// NewComponentManager returns a new ComponentManager instance.
// Use Start() to begin all services within this ComponentManager
func NewComponentManager(cfg *config.Config, db database.Database, interrupt <-chan struct{}) (
	*ComponentManager, error) {

	dispatcher, err := chaintip.New(newLoggingSubsystems(), cfg.LiteMode)
	if err != nil {
		return nil, err
	}

	c, err := consensus.NewFactory().NewConsensus(cfg.NetParams(), db, dispatcher)
	if err != nil {
		return nil, err
	}

	return &ComponentManager{
		cfg:        cfg,
		consensus:  c,
		dispatcher: dispatcher,
		interrupt:  interrupt,
		importDone: make(chan struct{}),
	}, nil
}
