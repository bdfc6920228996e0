package model

import "github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"

// ChainNode is a read-only view of a connected block on a single ancestor
// path. Parent returns nil (an untyped nil interface) for the genesis node.
type ChainNode interface {
	Hash() *externalapi.DomainHash
	Height() uint64
	Timestamp() int64
	Bits() uint32
	Parent() ChainNode
}

// Ancestor walks back from node until it reaches the given height. It
// returns nil if height is above node or the path is cut short.
func Ancestor(node ChainNode, height uint64) ChainNode {
	if node == nil || height > node.Height() {
		return nil
	}
	for node != nil && node.Height() > height {
		node = node.Parent()
	}
	return node
}
