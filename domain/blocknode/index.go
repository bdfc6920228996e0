package blocknode

import (
	"encoding/binary"
	"sync"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/pkg/errors"
)

var bucket = database.MakeBucket([]byte("blockindex"))

const heightKeyLength = 8

// Index is an arena holding every known block node. The only nodes ever
// removed are unflushed ones dropped by DiscardNodesFrom, so the NodeID of a
// persisted node stays valid for the lifetime of the Index.
type Index struct {
	sync.RWMutex
	nodes  []*Node
	byHash map[externalapi.DomainHash]NodeID
	dirty  map[NodeID]struct{}
}

// NewIndex returns a new empty block index.
func NewIndex() *Index {
	return &Index{
		byHash: make(map[externalapi.DomainHash]NodeID),
		dirty:  make(map[NodeID]struct{}),
	}
}

// Len returns the number of nodes in the index.
//
// This function is safe for concurrent access.
func (bi *Index) Len() int {
	bi.RLock()
	defer bi.RUnlock()
	return len(bi.nodes)
}

// HaveBlock returns whether or not the block index contains the provided hash.
//
// This function is safe for concurrent access.
func (bi *Index) HaveBlock(hash *externalapi.DomainHash) bool {
	bi.RLock()
	defer bi.RUnlock()
	_, ok := bi.byHash[*hash]
	return ok
}

// LookupNode returns the block node identified by the provided hash.
//
// This function is safe for concurrent access.
func (bi *Index) LookupNode(hash *externalapi.DomainHash) (*Node, bool) {
	bi.RLock()
	defer bi.RUnlock()
	id, ok := bi.byHash[*hash]
	if !ok {
		return nil, false
	}
	return bi.nodes[id], true
}

// NodeByID returns the node with the given ID, or nil if there is none.
//
// This function is safe for concurrent access.
func (bi *Index) NodeByID(id NodeID) *Node {
	bi.RLock()
	defer bi.RUnlock()
	if int(id) >= len(bi.nodes) {
		return nil
	}
	return bi.nodes[id]
}

// AddNode connects the given header to the index and marks the new node as
// dirty. The first header added becomes the genesis node and must not have a
// previous block. Every other header must extend a node already in the index.
//
// This function is safe for concurrent access.
func (bi *Index) AddNode(header *externalapi.DomainBlockHeader) (*Node, error) {
	bi.Lock()
	defer bi.Unlock()

	node, err := bi.addNodeNoLock(header)
	if err != nil {
		return nil, err
	}
	bi.dirty[node.id] = struct{}{}
	return node, nil
}

func (bi *Index) addNodeNoLock(header *externalapi.DomainBlockHeader) (*Node, error) {
	hash := consensushashing.HeaderHash(header)
	if _, ok := bi.byHash[*hash]; ok {
		return nil, errors.Wrapf(ruleerrors.ErrDuplicateBlock, "block %s is already in the index", hash)
	}

	parentID := NoParent
	height := uint64(0)
	if len(bi.nodes) > 0 {
		id, ok := bi.byHash[header.PrevBlockHash]
		if !ok {
			return nil, errors.Wrapf(ruleerrors.ErrMissingParent,
				"previous block %s of block %s is unknown", &header.PrevBlockHash, hash)
		}
		parentID = id
		height = bi.nodes[id].height + 1
	} else if !header.PrevBlockHash.IsZero() {
		return nil, errors.Wrapf(ruleerrors.ErrMissingParent,
			"genesis block %s has a previous block %s", hash, &header.PrevBlockHash)
	}

	if len(bi.nodes) == int(NoParent) {
		return nil, errors.New("the block index is full")
	}
	node := &Node{
		index:    bi,
		id:       NodeID(len(bi.nodes)),
		parentID: parentID,
		height:   height,
		hash:     hash,
		header:   header.Clone(),
	}
	bi.nodes = append(bi.nodes, node)
	bi.byHash[*hash] = node.id
	return node, nil
}

// FlushToDB writes all dirty block nodes to the given database accessor.
// The nodes stay dirty until MarkFlushed is called, so a transaction that
// fails to commit can be flushed again.
func (bi *Index) FlushToDB(dbAccessor database.DataAccessor) error {
	bi.Lock()
	defer bi.Unlock()
	if len(bi.dirty) == 0 {
		return nil
	}

	for id := range bi.dirty {
		node := bi.nodes[id]
		err := dbAccessor.Put(nodeKey(node.height, node.hash), node.header.Serialize())
		if err != nil {
			return err
		}
	}
	log.Debugf("Flushed %d block nodes", len(bi.dirty))
	return nil
}

// MarkFlushed clears the dirty set once the transaction FlushToDB wrote to
// has been committed.
func (bi *Index) MarkFlushed() {
	bi.Lock()
	defer bi.Unlock()
	bi.dirty = make(map[NodeID]struct{})
}

// DiscardNodesFrom drops every node whose ID is id or greater. It undoes
// AddNode calls whose flush was never committed, and must not be used on
// nodes that other nodes outside the discarded range point to.
func (bi *Index) DiscardNodesFrom(id NodeID) {
	bi.Lock()
	defer bi.Unlock()
	if int(id) >= len(bi.nodes) {
		return
	}
	for i := int(id); i < len(bi.nodes); i++ {
		node := bi.nodes[i]
		delete(bi.byHash, *node.hash)
		delete(bi.dirty, node.id)
		bi.nodes[i] = nil
	}
	bi.nodes = bi.nodes[:id]
	log.Debugf("Discarded block nodes from ID %d", id)
}

// LoadIndex rebuilds a block index from the nodes previously written by
// FlushToDB. Keys are ordered by height, so every parent is loaded before
// its children.
func LoadIndex(dbAccessor database.DataAccessor) (*Index, error) {
	defer logger.LogAndMeasureExecutionTime(log, "LoadIndex")()

	cursor, err := dbAccessor.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	bi := NewIndex()
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		serializedHeader, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		header, err := externalapi.DeserializeBlockHeader(serializedHeader)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt block index entry %s", key)
		}

		height, hash, err := parseNodeKey(key.Suffix())
		if err != nil {
			return nil, err
		}
		node, err := bi.addNodeNoLock(header)
		if err != nil {
			return nil, errors.Wrapf(err, "failed loading block %s", hash)
		}
		if !node.hash.Equal(hash) || node.height != height {
			return nil, errors.Errorf("block index entry %s doesn't match "+
				"its header: got block %s at height %d", key, node.hash, node.height)
		}
	}

	log.Infof("Loaded %d block nodes", len(bi.nodes))
	return bi, nil
}

func nodeKey(height uint64, hash *externalapi.DomainHash) *database.Key {
	suffix := make([]byte, heightKeyLength+externalapi.DomainHashSize)
	binary.BigEndian.PutUint64(suffix, height)
	copy(suffix[heightKeyLength:], hash.BytesSlice())
	return bucket.Key(suffix)
}

func parseNodeKey(suffix []byte) (uint64, *externalapi.DomainHash, error) {
	if len(suffix) != heightKeyLength+externalapi.DomainHashSize {
		return 0, nil, errors.Errorf("block index key has length %d", len(suffix))
	}
	height := binary.BigEndian.Uint64(suffix[:heightKeyLength])
	hash, err := externalapi.NewDomainHashFromByteSlice(suffix[heightKeyLength:])
	if err != nil {
		return 0, nil, err
	}
	return height, hash, nil
}
