package consensus

import (
	"sync"
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/blocknode"
	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/datastructures/tipstore"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/processes/difficultymanager"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/processes/headervalidator"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
	"github.com/pkg/errors"
)

// Factory instantiates new Consensuses
type Factory interface {
	NewConsensus(params *chaincfg.Params, db database.Database, dispatcher EventDispatcher) (Consensus, error)

	// SetPrimitiveSet replaces the hash primitives used for proof of work.
	// It affects consensuses created afterwards.
	SetPrimitiveSet(primitives *pow.PrimitiveSet)
}

type factory struct {
	primitives *pow.PrimitiveSet
}

// NewFactory creates a new Consensus factory
func NewFactory() Factory {
	return &factory{
		primitives: pow.DefaultPrimitiveSet(),
	}
}

func (f *factory) SetPrimitiveSet(primitives *pow.PrimitiveSet) {
	f.primitives = primitives
}

// NewConsensus instantiates a new Consensus, loading the block index and tip
// from db. An empty database is initialized with the network's genesis.
func (f *factory) NewConsensus(params *chaincfg.Params, db database.Database,
	dispatcher EventDispatcher) (Consensus, error) {

	if missing := f.primitives.Missing(); len(missing) > 0 {
		log.Warnf("Proof-of-work primitives %s are unavailable. Headers timestamped "+
			"from %d can't be validated", missing, params.PowHashCutoverTime)
	}

	difficultyManager := difficultymanager.New(params)
	c := &consensus{
		lock:              &sync.RWMutex{},
		params:            params,
		databaseContext:   db,
		dispatcher:        dispatcher,
		hasher:            pow.NewHasher(f.primitives, params.PowHashCutoverTime),
		difficultyManager: difficultyManager,
		headerValidator:   headervalidator.New(params.PowMax, difficultyManager),
		tipStore:          tipstore.New(),
		timeNow:           time.Now,
	}

	err := c.init()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *consensus) init() error {
	blockIndex, err := blocknode.LoadIndex(s.databaseContext)
	if err != nil {
		return err
	}
	s.blockIndex = blockIndex

	if blockIndex.Len() == 0 {
		return s.initGenesis()
	}

	tipHash, err := s.tipStore.Tip(s.databaseContext)
	if err != nil {
		return errors.Wrap(err, "the block index is not empty but no tip is stored")
	}
	tip, ok := blockIndex.LookupNode(tipHash)
	if !ok {
		return errors.Errorf("stored tip %s is not in the block index", tipHash)
	}
	genesis := blockIndex.NodeByID(0)
	if !genesis.Hash().Equal(s.params.GenesisHash) {
		return errors.Errorf("the database holds a chain with genesis %s, "+
			"while the %s genesis is %s", genesis.Hash(), s.params.Name, s.params.GenesisHash)
	}
	s.tip = tip
	log.Infof("Chain tip is %s at height %d", tip.Hash(), tip.Height())
	return nil
}

func (s *consensus) initGenesis() error {
	genesis, err := s.blockIndex.AddNode(s.params.GenesisHeader)
	if err != nil {
		return err
	}
	s.tipStore.Stage(genesis.Hash())
	err = s.commit()
	if err != nil {
		s.blockIndex.DiscardNodesFrom(genesis.ID())
		s.tipStore.Discard()
		return err
	}
	s.tip = genesis
	log.Infof("Initialized the %s chain with genesis %s", s.params.Name, genesis.Hash())
	return nil
}
