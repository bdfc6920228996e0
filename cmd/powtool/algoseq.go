package main

import (
	"fmt"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

func algoSeq(conf *algoSeqConfig) error {
	if (conf.Time == 0) == (conf.Epoch == 0) {
		return errors.New("exactly one of --time and --epoch must be given")
	}

	epoch := conf.Epoch
	if conf.Time != 0 {
		params := conf.NetParams()
		if conf.Time < params.PowHashCutoverTime {
			return errors.Errorf("time %d is before the chained hash cutover at %d", conf.Time,
				params.PowHashCutoverTime)
		}
		epoch = pow.EpochIndex(conf.Time, params.PowHashGenesisTime)
	}
	fmt.Printf("Epoch %d: %s\n", epoch, pow.SequenceForEpoch(epoch))
	return nil
}
