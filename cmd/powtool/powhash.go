package main

import (
	"fmt"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
)

func powHash(conf *powHashConfig) error {
	header, err := parseHeader(conf.Header)
	if err != nil {
		return err
	}
	params := conf.NetParams()

	fmt.Printf("Identity hash: %s\n", consensushashing.HeaderHash(header))
	if header.Timestamp < params.PowHashCutoverTime {
		fmt.Printf("Algorithm: scrypt\n")
	} else {
		epoch := pow.EpochIndex(header.Timestamp, params.PowHashGenesisTime)
		fmt.Printf("Epoch: %d\n", epoch)
		fmt.Printf("Algorithm sequence: %s\n", pow.SequenceForEpoch(epoch))
	}

	hash, err := pow.NewHasher(pow.DefaultPrimitiveSet(), params.PowHashCutoverTime).
		HeaderPowHash(header, params.PowHashGenesisTime)
	if err != nil {
		return err
	}
	fmt.Printf("Proof-of-work hash: %s\n", hash)
	return nil
}
