package blocknode

import (
	"math"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// NodeID addresses a Node inside the Index that owns it.
type NodeID uint32

// NoParent is the parent ID of the genesis node.
const NoParent NodeID = math.MaxUint32

// Node represents a connected block header. Nodes are owned by an Index and
// refer to their parent by ID.
type Node struct {
	index *Index

	id       NodeID
	parentID NodeID
	height   uint64

	hash   *externalapi.DomainHash
	header *externalapi.DomainBlockHeader
}

// Compile time check to make sure Node satisfies model.ChainNode.
var _ model.ChainNode = (*Node)(nil)

// ID returns the node's position in its index.
func (node *Node) ID() NodeID {
	return node.id
}

// ParentID returns the ID of the node's parent, or NoParent for genesis.
func (node *Node) ParentID() NodeID {
	return node.parentID
}

// Hash returns the identity hash of the node's header.
func (node *Node) Hash() *externalapi.DomainHash {
	return node.hash
}

// Height returns the node's distance from genesis.
func (node *Node) Height() uint64 {
	return node.height
}

// Timestamp returns the header time in seconds.
func (node *Node) Timestamp() int64 {
	return int64(node.header.Timestamp)
}

// Bits returns the compact target the header claims.
func (node *Node) Bits() uint32 {
	return node.header.Bits
}

// Header returns a copy of the node's header.
func (node *Node) Header() *externalapi.DomainBlockHeader {
	return node.header.Clone()
}

// IsGenesis returns whether the node has no parent.
func (node *Node) IsGenesis() bool {
	return node.parentID == NoParent
}

// Parent returns the node's parent. The result is a nil interface for the
// genesis node.
//
// This function is safe for concurrent access.
func (node *Node) Parent() model.ChainNode {
	parent := node.ParentNode()
	if parent == nil {
		return nil
	}
	return parent
}

// ParentNode is like Parent, returning the concrete type.
//
// This function is safe for concurrent access.
func (node *Node) ParentNode() *Node {
	if node.parentID == NoParent {
		return nil
	}
	return node.index.NodeByID(node.parentID)
}

// String returns the node's hash.
func (node *Node) String() string {
	return node.hash.String()
}
