package tipstore

import (
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
)

var tipKey = database.MakeBucket([]byte("chainstate")).Key([]byte("tip"))

type tipStore struct {
	staged *externalapi.DomainHash
	cache  *externalapi.DomainHash
}

// New instantiates a new TipStore
func New() model.TipStore {
	return &tipStore{}
}

func (ts *tipStore) Stage(tip *externalapi.DomainHash) {
	tipCopy := *tip
	ts.staged = &tipCopy
}

func (ts *tipStore) IsStaged() bool {
	return ts.staged != nil
}

// Discard drops the staged tip together with the cached one, since the cache
// may hold a tip whose transaction never committed. The next Tip call reads
// the database again.
func (ts *tipStore) Discard() {
	ts.staged = nil
	ts.cache = nil
}

func (ts *tipStore) Commit(dbTx database.DataAccessor) error {
	if ts.staged == nil {
		return nil
	}
	err := dbTx.Put(tipKey, ts.staged.BytesSlice())
	if err != nil {
		return err
	}
	ts.cache = ts.staged
	ts.staged = nil
	return nil
}

func (ts *tipStore) Tip(dbContext database.DataAccessor) (*externalapi.DomainHash, error) {
	if ts.staged != nil {
		return ts.staged, nil
	}
	if ts.cache != nil {
		return ts.cache, nil
	}

	tipBytes, err := dbContext.Get(tipKey)
	if err != nil {
		return nil, err
	}
	tip, err := externalapi.NewDomainHashFromByteSlice(tipBytes)
	if err != nil {
		return nil, err
	}
	ts.cache = tip
	return tip, nil
}

func (ts *tipStore) Has(dbContext database.DataAccessor) (bool, error) {
	if ts.staged != nil || ts.cache != nil {
		return true, nil
	}
	return dbContext.Has(tipKey)
}
