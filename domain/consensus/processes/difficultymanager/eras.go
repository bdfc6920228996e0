package difficultymanager

import (
	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
)

// Era is a height range over which one retarget algorithm is active.
type Era uint8

// The retarget eras, in the order they first appear on the chain.
const (
	// EraV1 is the classic retarget every DifficultyAdjustmentInterval
	// blocks.
	EraV1 Era = iota

	// EraV2 retargets every block with an asymmetric clamp.
	EraV2

	// EraFixed pins the target to PowMax during the hash algorithm switch.
	EraFixed

	// EraV3 is EraV2 followed by a compensation pass for long block gaps.
	EraV3
)

func (era Era) String() string {
	switch era {
	case EraV1:
		return "V1"
	case EraV2:
		return "V2"
	case EraFixed:
		return "fixed"
	case EraV3:
		return "V3"
	}
	return "unknown"
}

type eraFormula func(dm *difficultyManager, tip model.ChainNode, header *externalapi.DomainBlockHeader) uint32

// eraRule applies to heights below upperBound not claimed by an earlier
// rule.
type eraRule struct {
	upperBound uint64
	era        Era
	formula    eraFormula
}

const unbounded = ^uint64(0)

func newEraTable(params *chaincfg.Params) []eraRule {
	return []eraRule{
		{upperBound: params.V1End, era: EraV1, formula: (*difficultyManager).nextTargetV1},
		{upperBound: params.V2EndA, era: EraV2, formula: (*difficultyManager).nextTargetV2},
		{upperBound: params.V3GapEnd, era: EraFixed, formula: (*difficultyManager).nextTargetFixed},
		{upperBound: params.V2EndB, era: EraV2, formula: (*difficultyManager).nextTargetV2},
		{upperBound: unbounded, era: EraV3, formula: (*difficultyManager).nextTargetV3},
	}
}

func (dm *difficultyManager) ruleAt(height uint64) eraRule {
	for _, rule := range dm.eras {
		if height < rule.upperBound {
			return rule
		}
	}
	return dm.eras[len(dm.eras)-1]
}

// EraAt returns the era whose retarget rule applies to a block at height.
func (dm *difficultyManager) EraAt(height uint64) Era {
	return dm.ruleAt(height).era
}
