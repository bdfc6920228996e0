package main

import (
	"fmt"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
)

func checkPoW(conf *checkPoWConfig) error {
	hash, err := externalapi.NewDomainHashFromString(conf.Hash)
	if err != nil {
		return err
	}
	bits, err := parseBits(conf.Bits)
	if err != nil {
		return err
	}

	err = pow.ValidateProofOfWork(hash, bits, conf.NetParams().PowMax)
	if err != nil {
		return err
	}
	fmt.Printf("Hash %s satisfies target %08x\n", hash, bits)
	return nil
}
