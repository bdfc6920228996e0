package model

import "github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"

// MasternodeList is the deterministic masternode list as of a block. The
// kernel only passes it between subsystems, it never inspects entries.
type MasternodeList struct {
	BlockHash   *externalapi.DomainHash
	Height      uint64
	ProTxHashes []*externalapi.DomainHash
}

// MasternodeListDiff describes how a MasternodeList changed between two
// blocks.
type MasternodeListDiff struct {
	Added   []*externalapi.DomainHash
	Removed []*externalapi.DomainHash
	Updated []*externalapi.DomainHash
}

// HasChanges returns whether the diff adds, removes or updates anything.
func (diff *MasternodeListDiff) HasChanges() bool {
	return len(diff.Added) > 0 || len(diff.Removed) > 0 || len(diff.Updated) > 0
}
