package app

import (
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/chaintip"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

type testNode struct {
	height uint64
}

func (n *testNode) Hash() *externalapi.DomainHash {
	var hashBytes [externalapi.DomainHashSize]byte
	hashBytes[0] = byte(n.height)
	return externalapi.NewDomainHashFromByteArray(&hashBytes)
}
func (n *testNode) Height() uint64          { return n.height }
func (n *testNode) Timestamp() int64        { return 0 }
func (n *testNode) Bits() uint32            { return 0x207fffff }
func (n *testNode) Parent() model.ChainNode { return nil }

func TestLoggingSubsystemsAreComplete(t *testing.T) {
	_, err := chaintip.New(newLoggingSubsystems(), false)
	if err != nil {
		t.Fatalf("TestLoggingSubsystemsAreComplete: %s", err)
	}
}

func TestSyncProgressObserver(t *testing.T) {
	subsystems := newLoggingSubsystems()
	dispatcher, err := chaintip.New(subsystems, false)
	if err != nil {
		t.Fatalf("TestSyncProgressObserver: %s", err)
	}
	observer := subsystems.MasternodeSync.(*syncProgressObserver)

	for height := uint64(1); height <= 3; height++ {
		node := &testNode{height: height}
		dispatcher.Dispatch(chaintip.AcceptedHeaderEvent{Node: node})
		dispatcher.Dispatch(chaintip.HeaderTipEvent{Node: node, IsInitialDownload: true})
		dispatcher.Dispatch(chaintip.UpdatedTipEvent{NewTip: node, IsInitialDownload: true})
	}
	if observer.acceptedHeaders != 3 || observer.headerTipHeight != 3 {
		t.Fatalf("TestSyncProgressObserver: got %d accepted headers and header tip %d",
			observer.acceptedHeaders, observer.headerTipHeight)
	}
	if observer.synced {
		t.Fatalf("TestSyncProgressObserver: synced during initial download")
	}

	dispatcher.Dispatch(chaintip.UpdatedTipEvent{NewTip: &testNode{height: 4}})
	if !observer.synced {
		t.Fatalf("TestSyncProgressObserver: not synced after initial download ended")
	}
}

func TestMasternodeListChangedCleansGovernance(t *testing.T) {
	subsystems := newLoggingSubsystems()
	dispatcher, err := chaintip.New(subsystems, false)
	if err != nil {
		t.Fatalf("TestMasternodeListChangedCleansGovernance: %s", err)
	}
	dispatcher.MasternodeListChanged(false, &model.MasternodeList{}, &model.MasternodeListDiff{})

	governance := subsystems.Governance.(*governanceObserver)
	if governance.cleanups != 1 {
		t.Fatalf("TestMasternodeListChangedCleansGovernance: expected 1 cleanup but got %d", governance.cleanups)
	}
}
