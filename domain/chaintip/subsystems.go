package chaintip

import (
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// The interfaces below are the hooks the Dispatcher calls. Each subsystem
// handles its own failures, so none of them return an error.

// MasternodeListManager keeps the deterministic masternode list in step
// with the tip. Every other tip consumer reads its state.
type MasternodeListManager interface {
	UpdatedBlockTip(newTip model.ChainNode)
}

// MasternodeSync tracks how far the node is through its sync stages.
type MasternodeSync interface {
	AcceptedBlockHeader(node model.ChainNode)
	NotifyHeaderTip(node model.ChainNode, isInitialDownload bool)
	UpdatedBlockTip(newTip model.ChainNode, isInitialDownload bool)
}

// ChainLocksHandler signs and enforces chain locks.
type ChainLocksHandler interface {
	AcceptedBlockHeader(node model.ChainNode)
	UpdatedBlockTip(newTip model.ChainNode)
	TransactionAddedToMempool(tx *externalapi.DomainTransaction, acceptTime time.Time)
	BlockConnected(block *externalapi.DomainBlock, node model.ChainNode, conflicted []*externalapi.DomainTransaction)
	BlockDisconnected(block *externalapi.DomainBlock, node model.ChainNode)
}

// Governance maintains governance objects and votes.
type Governance interface {
	UpdatedBlockTip(newTip model.ChainNode)
	UpdateCachesAndClean()
}

// QuorumManager maintains the active quorums.
type QuorumManager interface {
	UpdatedBlockTip(newTip model.ChainNode, isInitialDownload bool)
}

// DKGSessionManager runs distributed key generation sessions.
type DKGSessionManager interface {
	UpdatedBlockTip(newTip model.ChainNode, isInitialDownload bool)
}

// MasternodeAuthRefresher drops masternode authentications that a list
// change made stale.
type MasternodeAuthRefresher interface {
	NotifyMasternodeListChanged(undo bool, oldList *model.MasternodeList, diff *model.MasternodeListDiff)
}

// Subsystems groups the dependent subsystems of a Dispatcher.
type Subsystems struct {
	MasternodeListManager   MasternodeListManager
	MasternodeSync          MasternodeSync
	ChainLocksHandler       ChainLocksHandler
	Governance              Governance
	QuorumManager           QuorumManager
	DKGSessionManager       DKGSessionManager
	MasternodeAuthRefresher MasternodeAuthRefresher
}
