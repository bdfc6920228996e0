package chaintip

import (
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// Dispatcher hands chain lifecycle events to the dependent subsystems in a
// fixed order. It holds no chain state of its own and expects its caller to
// hold the chain-state lock for the duration of each call.
type Dispatcher struct {
	subsystems Subsystems
	liteMode   bool
}

// New returns a Dispatcher calling into the given subsystems. In lite mode
// tip updates stop after the masternode list and sync stages.
func New(subsystems Subsystems, liteMode bool) (*Dispatcher, error) {
	if subsystems.MasternodeListManager == nil || subsystems.MasternodeSync == nil ||
		subsystems.ChainLocksHandler == nil || subsystems.Governance == nil ||
		subsystems.QuorumManager == nil || subsystems.DKGSessionManager == nil ||
		subsystems.MasternodeAuthRefresher == nil {

		return nil, errors.New("every dependent subsystem of the chain tip dispatcher must be set")
	}
	return &Dispatcher{
		subsystems: subsystems,
		liteMode:   liteMode,
	}, nil
}

// InitializeCurrentBlockTip lets the subsystems learn the current tip on
// startup.
func (d *Dispatcher) InitializeCurrentBlockTip(tip model.ChainNode, isInitialDownload bool) {
	d.UpdatedTip(tip, nil, isInitialDownload)
}

// AcceptedHeader is called for every header connected to the index.
func (d *Dispatcher) AcceptedHeader(node model.ChainNode) {
	log.Tracef("AcceptedHeader %s", node.Hash())
	d.subsystems.ChainLocksHandler.AcceptedBlockHeader(node)
	d.subsystems.MasternodeSync.AcceptedBlockHeader(node)
}

// HeaderTip is called when the best header changes.
func (d *Dispatcher) HeaderTip(node model.ChainNode, isInitialDownload bool) {
	log.Tracef("HeaderTip %s (initial download: %t)", node.Hash(), isInitialDownload)
	d.subsystems.MasternodeSync.NotifyHeaderTip(node, isInitialDownload)
}

// UpdatedTip is called when the best block changes. A newTip equal to
// forkPoint means blocks were only disconnected and nothing is notified.
func (d *Dispatcher) UpdatedTip(newTip, forkPoint model.ChainNode, isInitialDownload bool) {
	if newTip == forkPoint {
		return
	}
	log.Debugf("UpdatedTip %s at height %d (initial download: %t)",
		newTip.Hash(), newTip.Height(), isInitialDownload)

	d.subsystems.MasternodeListManager.UpdatedBlockTip(newTip)
	d.subsystems.MasternodeSync.UpdatedBlockTip(newTip, isInitialDownload)

	if isInitialDownload || d.liteMode {
		return
	}

	d.subsystems.ChainLocksHandler.UpdatedBlockTip(newTip)
	d.subsystems.Governance.UpdatedBlockTip(newTip)
	d.subsystems.QuorumManager.UpdatedBlockTip(newTip, isInitialDownload)
	d.subsystems.DKGSessionManager.UpdatedBlockTip(newTip, isInitialDownload)
}

// TxAdded is called when a transaction enters the mempool.
func (d *Dispatcher) TxAdded(tx *externalapi.DomainTransaction, acceptTime time.Time) {
	d.subsystems.ChainLocksHandler.TransactionAddedToMempool(tx, acceptTime)
}

// BlockConnected is called when a block is connected to the best chain.
//
// Mempool eviction of the conflicted transactions is expected to have been
// notified before this call. Nothing here orders the two, so a subsystem
// observing both may see them interleaved.
func (d *Dispatcher) BlockConnected(block *externalapi.DomainBlock, node model.ChainNode,
	conflicted []*externalapi.DomainTransaction) {

	d.subsystems.ChainLocksHandler.BlockConnected(block, node, conflicted)
}

// BlockDisconnected is called when a block leaves the best chain.
func (d *Dispatcher) BlockDisconnected(block *externalapi.DomainBlock, node model.ChainNode) {
	d.subsystems.ChainLocksHandler.BlockDisconnected(block, node)
}

// MasternodeListChanged is called when the masternode list changes.
// Authentications are refreshed before governance cleans its caches.
func (d *Dispatcher) MasternodeListChanged(undo bool, oldList *model.MasternodeList,
	diff *model.MasternodeListDiff) {

	d.subsystems.MasternodeAuthRefresher.NotifyMasternodeListChanged(undo, oldList, diff)
	d.subsystems.Governance.UpdateCachesAndClean()
}

// NotifyChainLock is part of the notification surface but has no
// dependent subsystem.
func (d *Dispatcher) NotifyChainLock(model.ChainNode, *model.ChainLockSig) {}

// Dispatch routes event to the matching method.
func (d *Dispatcher) Dispatch(event Event) {
	switch event := event.(type) {
	case AcceptedHeaderEvent:
		d.AcceptedHeader(event.Node)
	case HeaderTipEvent:
		d.HeaderTip(event.Node, event.IsInitialDownload)
	case UpdatedTipEvent:
		d.UpdatedTip(event.NewTip, event.ForkPoint, event.IsInitialDownload)
	case TxAddedEvent:
		d.TxAdded(event.Tx, event.AcceptTime)
	case BlockConnectedEvent:
		d.BlockConnected(event.Block, event.Node, event.Conflicted)
	case BlockDisconnectedEvent:
		d.BlockDisconnected(event.Block, event.Node)
	case MasternodeListChangedEvent:
		d.MasternodeListChanged(event.Undo, event.OldList, event.Diff)
	default:
		panic(errors.Errorf("unknown chain tip event %T", event))
	}
}
