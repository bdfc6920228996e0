package model

import (
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
)

// TipStore represents a store of the hash of the best chain tip
type TipStore interface {
	Stage(tip *externalapi.DomainHash)
	IsStaged() bool
	Discard()
	Commit(dbTx database.DataAccessor) error
	Tip(dbContext database.DataAccessor) (*externalapi.DomainHash, error)
	Has(dbContext database.DataAccessor) (bool, error)
}
