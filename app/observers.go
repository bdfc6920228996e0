package app

import (
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/chaintip"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// The masternode, governance and quorum subsystems live outside this
// repository. Until they're attached, the chain tip dispatcher calls into
// the observers below, which only track and log what they're told. All of
// them are called with the chain-state lock held.

func newLoggingSubsystems() chaintip.Subsystems {
	return chaintip.Subsystems{
		MasternodeListManager:   &masternodeListObserver{},
		MasternodeSync:          &syncProgressObserver{},
		ChainLocksHandler:       &chainLocksObserver{},
		Governance:              &governanceObserver{},
		QuorumManager:           &quorumObserver{name: "quorum manager"},
		DKGSessionManager:       &quorumObserver{name: "DKG session manager"},
		MasternodeAuthRefresher: &authRefreshObserver{},
	}
}

type masternodeListObserver struct {
	tip model.ChainNode
}

func (o *masternodeListObserver) UpdatedBlockTip(newTip model.ChainNode) {
	o.tip = newTip
	log.Tracef("Masternode list follows tip %s", newTip.Hash())
}

// syncProgressObserver reports header sync progress and logs once when the
// node leaves initial download.
type syncProgressObserver struct {
	acceptedHeaders uint64
	headerTipHeight uint64
	synced          bool
}

func (o *syncProgressObserver) AcceptedBlockHeader(model.ChainNode) {
	o.acceptedHeaders++
}

func (o *syncProgressObserver) NotifyHeaderTip(node model.ChainNode, isInitialDownload bool) {
	o.headerTipHeight = node.Height()
	if isInitialDownload && node.Height()%10000 == 0 {
		log.Infof("Synced headers up to height %d", node.Height())
	}
}

func (o *syncProgressObserver) UpdatedBlockTip(newTip model.ChainNode, isInitialDownload bool) {
	if isInitialDownload || o.synced {
		return
	}
	o.synced = true
	log.Infof("Initial download is complete at height %d", newTip.Height())
}

type chainLocksObserver struct{}

func (o *chainLocksObserver) AcceptedBlockHeader(node model.ChainNode) {
	log.Tracef("Chain locks: accepted header %s", node.Hash())
}

func (o *chainLocksObserver) UpdatedBlockTip(newTip model.ChainNode) {
	log.Tracef("Chain locks: new tip %s", newTip.Hash())
}

func (o *chainLocksObserver) TransactionAddedToMempool(tx *externalapi.DomainTransaction, acceptTime time.Time) {
	log.Tracef("Chain locks: transaction added to the mempool at %s", acceptTime)
}

func (o *chainLocksObserver) BlockConnected(block *externalapi.DomainBlock, node model.ChainNode,
	conflicted []*externalapi.DomainTransaction) {

	log.Tracef("Chain locks: block %s connected with %d conflicted transactions", node.Hash(), len(conflicted))
}

func (o *chainLocksObserver) BlockDisconnected(block *externalapi.DomainBlock, node model.ChainNode) {
	log.Tracef("Chain locks: block %s disconnected", node.Hash())
}

type governanceObserver struct {
	cleanups uint64
}

func (o *governanceObserver) UpdatedBlockTip(newTip model.ChainNode) {
	log.Tracef("Governance: new tip %s", newTip.Hash())
}

func (o *governanceObserver) UpdateCachesAndClean() {
	o.cleanups++
}

type quorumObserver struct {
	name string
}

func (o *quorumObserver) UpdatedBlockTip(newTip model.ChainNode, isInitialDownload bool) {
	log.Tracef("%s: new tip %s (initial download: %t)", o.name, newTip.Hash(), isInitialDownload)
}

type authRefreshObserver struct{}

func (o *authRefreshObserver) NotifyMasternodeListChanged(undo bool, oldList *model.MasternodeList,
	diff *model.MasternodeListDiff) {

	if !diff.HasChanges() {
		return
	}
	log.Debugf("Masternode list changed (undo: %t): %d added, %d removed, %d updated",
		undo, len(diff.Added), len(diff.Removed), len(diff.Updated))
}
