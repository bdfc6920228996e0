package consensus

import (
	"sync"
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/blocknode"
	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/machinecoin-project/machinecoin-core/domain/chaintip"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/processes/difficultymanager"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/pkg/errors"
)

// EventDispatcher receives the chain lifecycle events raised by a Consensus.
type EventDispatcher interface {
	Dispatch(event chaintip.Event)
	InitializeCurrentBlockTip(tip model.ChainNode, isInitialDownload bool)
}

// Consensus maintains the current core state of the node
type Consensus interface {
	// ValidateAndInsertHeaders validates headers in order and connects the
	// valid ones. Processing stops at the first invalid header. The hashes
	// of the connected headers are returned together with that error.
	ValidateAndInsertHeaders(headers []*externalapi.DomainBlockHeader) ([]*externalapi.DomainHash, error)

	GetBlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error)
	HasBlock(blockHash *externalapi.DomainHash) bool
	Tip() model.ChainNode
	NextRequiredTarget(header *externalapi.DomainBlockHeader) uint32
	EraAt(height uint64) difficultymanager.Era
	IsInitialBlockDownload() bool

	// InitializeCurrentBlockTip replays the current tip to the event
	// dispatcher.
	InitializeCurrentBlockTip()
}

type consensus struct {
	lock            *sync.RWMutex
	params          *chaincfg.Params
	databaseContext database.Database
	dispatcher      EventDispatcher

	hasher            *pow.Hasher
	difficultyManager difficultymanager.DifficultyManager
	headerValidator   model.HeaderValidator

	blockIndex *blocknode.Index
	tipStore   model.TipStore
	tip        *blocknode.Node

	timeNow func() time.Time
}

func (s *consensus) ValidateAndInsertHeaders(headers []*externalapi.DomainBlockHeader) (
	[]*externalapi.DomainHash, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateAndInsertHeaders")
	defer onEnd()

	// Hashing is pure, so it runs before taking the lock.
	powHashes, err := s.hasher.PowHashes(headers, s.params.PowHashGenesisTime)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	// The tip only moves in memory once the batch is committed.
	firstNewID := blocknode.NodeID(s.blockIndex.Len())
	tip := s.tip
	var events []chaintip.Event
	inserted := make([]*externalapi.DomainHash, 0, len(headers))
	var validationErr error
	for i, header := range headers {
		var headerEvents []chaintip.Event
		var node *blocknode.Node
		node, headerEvents, validationErr = s.validateAndInsertHeader(header, powHashes[i], tip)
		if validationErr != nil {
			break
		}
		if node.ParentID() == tip.ID() {
			tip = node
		}
		inserted = append(inserted, node.Hash())
		events = append(events, headerEvents...)
	}
	if len(inserted) == 0 {
		return inserted, validationErr
	}

	err = s.commit()
	if err != nil {
		s.blockIndex.DiscardNodesFrom(firstNewID)
		s.tipStore.Discard()
		if validationErr != nil {
			return nil, errors.Wrapf(err, "failed committing %d headers (the batch had stopped early: %s)",
				len(inserted), validationErr)
		}
		return nil, errors.Wrapf(err, "failed committing %d headers", len(inserted))
	}
	s.tip = tip

	for _, event := range events {
		s.dispatcher.Dispatch(event)
	}

	if validationErr != nil {
		return inserted, validationErr
	}
	log.Debugf("Inserted %d headers. Tip is %s at height %d", len(inserted), s.tip.Hash(), s.tip.Height())
	return inserted, nil
}

// validateAndInsertHeader connects a single header to the index. When it
// extends tip, it stages the new node as the tip and returns the tip events
// along with the accepted header event.
func (s *consensus) validateAndInsertHeader(header *externalapi.DomainBlockHeader, powHash *externalapi.DomainHash,
	tip *blocknode.Node) (*blocknode.Node, []chaintip.Event, error) {

	hash := consensushashing.HeaderHash(header)
	if s.blockIndex.HaveBlock(hash) {
		return nil, nil, errors.Wrapf(ruleerrors.ErrDuplicateBlock, "block %s is already known", hash)
	}
	parent, ok := s.blockIndex.LookupNode(&header.PrevBlockHash)
	if !ok {
		return nil, nil, ruleerrors.NewErrMissingParents([]*externalapi.DomainHash{&header.PrevBlockHash})
	}

	err := s.headerValidator.ValidateHeaderInContext(header, powHash, parent)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "block %s failed validation", hash)
	}

	node, err := s.blockIndex.AddNode(header)
	if err != nil {
		return nil, nil, err
	}
	log.Tracef("Connected block %s at height %d", node.Hash(), node.Height())

	events := []chaintip.Event{chaintip.AcceptedHeaderEvent{Node: node}}
	if parent == tip {
		s.tipStore.Stage(node.Hash())
		isInitialDownload := s.isInitialBlockDownloadAt(node)
		events = append(events,
			chaintip.HeaderTipEvent{Node: node, IsInitialDownload: isInitialDownload},
			chaintip.UpdatedTipEvent{NewTip: node, ForkPoint: tip, IsInitialDownload: isInitialDownload},
		)
	} else {
		log.Debugf("Block %s at height %d is on a side branch", node.Hash(), node.Height())
	}
	return node, events, nil
}

// commit writes the dirty part of the block index and the staged tip in a
// single database transaction. On failure nothing is marked as flushed, and
// the caller is expected to discard what it staged.
func (s *consensus) commit() error {
	dbTx, err := s.databaseContext.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = s.blockIndex.FlushToDB(dbTx)
	if err != nil {
		return err
	}
	err = s.tipStore.Commit(dbTx)
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}
	s.blockIndex.MarkFlushed()
	return nil
}

func (s *consensus) GetBlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	node, ok := s.blockIndex.LookupNode(blockHash)
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound, "block %s not found", blockHash)
	}
	return node.Header(), nil
}

func (s *consensus) HasBlock(blockHash *externalapi.DomainHash) bool {
	return s.blockIndex.HaveBlock(blockHash)
}

func (s *consensus) Tip() model.ChainNode {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.tip
}

func (s *consensus) NextRequiredTarget(header *externalapi.DomainBlockHeader) uint32 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.difficultyManager.NextRequiredTarget(s.tip, header)
}

func (s *consensus) EraAt(height uint64) difficultymanager.Era {
	return s.difficultyManager.EraAt(height)
}

func (s *consensus) IsInitialBlockDownload() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.isInitialBlockDownloadAt(s.tip)
}

func (s *consensus) isInitialBlockDownloadAt(tip *blocknode.Node) bool {
	tipTime := time.Unix(tip.Timestamp(), 0)
	return tipTime.Before(s.timeNow().Add(-s.params.MaxTipAge))
}

func (s *consensus) InitializeCurrentBlockTip() {
	s.lock.RLock()
	defer s.lock.RUnlock()
	s.dispatcher.InitializeCurrentBlockTip(s.tip, s.isInitialBlockDownloadAt(s.tip))
}
