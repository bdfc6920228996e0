package tipstore

import (
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database/ldb"
)

func TestTipStore(t *testing.T) {
	db, err := ldb.NewMemoryLevelDB()
	if err != nil {
		t.Fatalf("TestTipStore: NewMemoryLevelDB unexpectedly failed: %s", err)
	}
	defer db.Close()

	store := New()
	has, err := store.Has(db)
	if err != nil || has {
		t.Fatalf("TestTipStore: Has on an empty database returned %t, %v", has, err)
	}
	_, err = store.Tip(db)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestTipStore: Tip on an empty database returned wrong error: %v", err)
	}

	tip := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1, 2, 3})
	store.Stage(tip)
	store.Discard()
	if store.IsStaged() {
		t.Fatalf("TestTipStore: the tip is still staged after Discard")
	}

	store.Stage(tip)
	err = store.Commit(db)
	if err != nil {
		t.Fatalf("TestTipStore: Commit unexpectedly failed: %s", err)
	}

	// A fresh store has no cache and reads the tip from the database.
	reloaded, err := New().Tip(db)
	if err != nil {
		t.Fatalf("TestTipStore: Tip unexpectedly failed: %s", err)
	}
	if !reloaded.Equal(tip) {
		t.Errorf("TestTipStore: got tip %s, want %s", reloaded, tip)
	}
}

func TestTipStoreDiscardAfterRollback(t *testing.T) {
	db, err := ldb.NewMemoryLevelDB()
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: NewMemoryLevelDB unexpectedly failed: %s", err)
	}
	defer db.Close()

	committed := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1})
	store := New()
	store.Stage(committed)
	err = store.Commit(db)
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: Commit unexpectedly failed: %s", err)
	}

	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: Begin unexpectedly failed: %s", err)
	}
	store.Stage(externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2}))
	err = store.Commit(dbTx)
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: Commit(dbTx) unexpectedly failed: %s", err)
	}
	err = dbTx.Rollback()
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: Rollback unexpectedly failed: %s", err)
	}
	store.Discard()

	tip, err := store.Tip(db)
	if err != nil {
		t.Fatalf("TestTipStoreDiscardAfterRollback: Tip unexpectedly failed: %s", err)
	}
	if !tip.Equal(committed) {
		t.Errorf("TestTipStoreDiscardAfterRollback: got tip %s after rollback, want %s", tip, committed)
	}
}
