package chaintip

import (
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// Event is a chain lifecycle event that a Dispatcher fans out. Only the
// types declared in this package implement it.
type Event interface {
	isChainTipEvent()
}

// AcceptedHeaderEvent is raised for every header connected to the index.
type AcceptedHeaderEvent struct {
	Node model.ChainNode
}

// HeaderTipEvent is raised when the best header changes.
type HeaderTipEvent struct {
	Node              model.ChainNode
	IsInitialDownload bool
}

// UpdatedTipEvent is raised when the best block changes. ForkPoint is the
// last block shared by the old and the new best chain, or nil on startup.
type UpdatedTipEvent struct {
	NewTip            model.ChainNode
	ForkPoint         model.ChainNode
	IsInitialDownload bool
}

// TxAddedEvent is raised when a transaction enters the mempool.
type TxAddedEvent struct {
	Tx         *externalapi.DomainTransaction
	AcceptTime time.Time
}

// BlockConnectedEvent is raised when a block is connected to the best chain.
type BlockConnectedEvent struct {
	Block      *externalapi.DomainBlock
	Node       model.ChainNode
	Conflicted []*externalapi.DomainTransaction
}

// BlockDisconnectedEvent is raised when a block leaves the best chain.
type BlockDisconnectedEvent struct {
	Block *externalapi.DomainBlock
	Node  model.ChainNode
}

// MasternodeListChangedEvent is raised when the masternode list changes.
type MasternodeListChangedEvent struct {
	Undo    bool
	OldList *model.MasternodeList
	Diff    *model.MasternodeListDiff
}

func (AcceptedHeaderEvent) isChainTipEvent()        {}
func (HeaderTipEvent) isChainTipEvent()             {}
func (UpdatedTipEvent) isChainTipEvent()            {}
func (TxAddedEvent) isChainTipEvent()               {}
func (BlockConnectedEvent) isChainTipEvent()        {}
func (BlockDisconnectedEvent) isChainTipEvent()     {}
func (MasternodeListChangedEvent) isChainTipEvent() {}
