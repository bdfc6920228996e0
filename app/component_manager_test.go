package app

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/config"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database/ldb"
)

func mineRegtestChain(t *testing.T, length int) []*externalapi.DomainBlockHeader {
	params := &chaincfg.RegressionNetParams
	parent := params.GenesisHeader
	headers := make([]*externalapi.DomainBlockHeader, 0, length)
	for i := 0; i < length; i++ {
		header := &externalapi.DomainBlockHeader{
			Version:        parent.Version,
			PrevBlockHash:  *consensushashing.HeaderHash(parent),
			HashMerkleRoot: parent.HashMerkleRoot,
			Timestamp:      parent.Timestamp + 150,
			Bits:           parent.Bits,
		}
		for {
			powHash, err := pow.LegacyHash(header.Serialize())
			if err != nil {
				t.Fatalf("mineRegtestChain: LegacyHash: %s", err)
			}
			if pow.CheckProofOfWork(powHash, header.Bits, params.PowMax) {
				break
			}
			header.Nonce++
		}
		headers = append(headers, header)
		parent = header
	}
	return headers
}

func newTestComponentManager(t *testing.T, loadHeaders []string) *ComponentManager {
	db, err := ldb.NewMemoryLevelDB()
	if err != nil {
		t.Fatalf("NewMemoryLevelDB: %s", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{Flags: &config.Flags{
		LoadHeaders: loadHeaders,
		NetworkFlags: config.NetworkFlags{
			Regtest:         true,
			ActiveNetParams: chaincfg.RegressionNetParams.Clone(),
		},
	}}
	componentManager, err := NewComponentManager(cfg, db, make(chan struct{}))
	if err != nil {
		t.Fatalf("NewComponentManager: %s", err)
	}
	return componentManager
}

func TestComponentManagerImportsHeaders(t *testing.T) {
	headers := mineRegtestChain(t, 6)
	var lines []string
	for _, header := range headers {
		lines = append(lines, hex.EncodeToString(header.Serialize()))
	}
	path := filepath.Join(t.TempDir(), "headers.txt")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0600)
	if err != nil {
		t.Fatalf("TestComponentManagerImportsHeaders: WriteFile: %s", err)
	}

	componentManager := newTestComponentManager(t, []string{path})
	componentManager.Start()
	componentManager.Stop()

	tip := componentManager.Consensus().Tip()
	if tip.Height() != uint64(len(headers)) {
		t.Fatalf("TestComponentManagerImportsHeaders: tip height is %d, expected %d", tip.Height(), len(headers))
	}
	expectedTip := consensushashing.HeaderHash(headers[len(headers)-1])
	if !tip.Hash().Equal(expectedTip) {
		t.Fatalf("TestComponentManagerImportsHeaders: tip is %s, expected %s", tip.Hash(), expectedTip)
	}
}

func TestComponentManagerWithoutImport(t *testing.T) {
	componentManager := newTestComponentManager(t, nil)
	componentManager.Start()
	componentManager.Start()
	componentManager.Stop()
	componentManager.Stop()

	tip := componentManager.Consensus().Tip()
	if tip.Height() != 0 || !tip.Hash().Equal(chaincfg.RegressionNetParams.GenesisHash) {
		t.Fatalf("TestComponentManagerWithoutImport: expected the genesis tip but got %s at height %d",
			tip.Hash(), tip.Height())
	}
}
