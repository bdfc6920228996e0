package chaincfg

import (
	"math/big"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

var (
	// genesisMerkleRoot is the merkle root of the genesis coinbase, shared
	// by every network.
	genesisMerkleRoot = newHashFromStr("36a9e41063f3e71466299d0ed9e8193c1c802a88b286016fa4a4d0c3bc384a5c")

	mainnetGenesisHeader = externalapi.DomainBlockHeader{
		Version:        1,
		HashMerkleRoot: *genesisMerkleRoot,
		Timestamp:      1389040865,
		Bits:           0x1e0ffff0,
		Nonce:          3716037,
	}
	mainnetGenesisHash = newHashFromStr("6a1f879bcea5471cbfdee1fd0cb2ddcc4fed569a500e352d41de967703e83172")

	testnetGenesisHeader = externalapi.DomainBlockHeader{
		Version:        1,
		HashMerkleRoot: *genesisMerkleRoot,
		Timestamp:      1473357600,
		Bits:           0x1e0ffff0,
		Nonce:          5653466,
	}
	testnetGenesisHash = newHashFromStr("72059c481cc49a2941cc36bd0f070abfe1ccc6e329534602dbdef555547e895f")

	regtestGenesisHeader = externalapi.DomainBlockHeader{
		Version:        1,
		HashMerkleRoot: *genesisMerkleRoot,
		Timestamp:      1296688602,
		Bits:           0x207fffff,
		Nonce:          0,
	}
	regtestGenesisHash = newHashFromStr("62214f698865bf3308a4cddec2a18c1e9a98f272189f696e0f99d5d1b137912b")
)

var (
	// mainPowMax is the highest proof of work value a block can have on the
	// main network: 00000fff...ff.
	mainPowMax = newBigFromHex("00000fffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	// testnetPowMax is the highest proof of work value a block can have on
	// the test network. It reuses the test network genesis hash.
	testnetPowMax = newBigFromHex("72059c481cc49a2941cc36bd0f070abfe1ccc6e329534602dbdef555547e895f")

	// regressionPowMax is the highest proof of work value a block can have
	// on the regression test network: 2^255 - 1.
	regressionPowMax = newBigFromHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
)

// newHashFromStr converts the passed big-endian hex string into a
// DomainHash. It only differs from the one available in externalapi in
// that it panics on an error since it will only be called with hard-coded,
// and therefore known good, hashes.
func newHashFromStr(hexStr string) *externalapi.DomainHash {
	hash, err := externalapi.NewDomainHashFromString(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

func newBigFromHex(hexStr string) *big.Int {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic(errors.Errorf("invalid hex number %s", hexStr))
	}
	return n
}

func init() {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegressionNetParams} {
		hash := consensushashing.HeaderHash(params.GenesisHeader)
		if !hash.Equal(params.GenesisHash) {
			panic(errors.Errorf("%s genesis header hashes to %s, expected %s",
				params.Name, hash, params.GenesisHash))
		}
	}
}
