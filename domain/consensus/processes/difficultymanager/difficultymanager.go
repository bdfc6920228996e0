package difficultymanager

import (
	"math/big"

	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/math"
	"github.com/pkg/errors"
)

const (
	// octopusMinGap is the smallest gap, in seconds, between the tip and a
	// new header that triggers the era V3 compensation pass.
	octopusMinGap = 300

	// octopusRoundDuration is the number of seconds of gap per
	// compensation round.
	octopusRoundDuration = 150

	octopusDivisor = 173
)

// DifficultyManager computes required targets and reports the active era.
type DifficultyManager interface {
	model.DifficultyManager
	EraAt(height uint64) Era
}

type difficultyManager struct {
	powMax                   *big.Int
	powMaxBits               uint32
	allowMinDifficultyBlocks bool
	noRetargeting            bool

	intervalV1 uint64
	timespanV1 int64
	spacingV1  int64

	intervalV2 uint64
	timespanV2 int64
	spacingV2  int64

	eras []eraRule
}

// New instantiates a new DifficultyManager
func New(params *chaincfg.Params) DifficultyManager {
	dm := &difficultyManager{
		powMax:                   params.PowMax,
		powMaxBits:               params.PowMaxBits(),
		allowMinDifficultyBlocks: params.AllowMinDifficultyBlocks,
		noRetargeting:            params.NoRetargeting,

		intervalV1: params.DifficultyAdjustmentInterval(),
		timespanV1: int64(params.TargetTimespan.Seconds()),
		spacingV1:  int64(params.TargetSpacing.Seconds()),

		intervalV2: params.DifficultyAdjustmentIntervalV2(),
		timespanV2: int64(params.TargetTimespanV2.Seconds()),
		spacingV2:  int64(params.TargetSpacingV2.Seconds()),
	}
	dm.eras = newEraTable(params)
	return dm
}

// NextRequiredTarget returns the compact target required for a header built
// on tip. Ancestors of tip are read through ChainNode.Parent; a missing
// ancestor where the retarget needs one is a caller bug and panics.
func (dm *difficultyManager) NextRequiredTarget(tip model.ChainNode, header *externalapi.DomainBlockHeader) uint32 {
	if tip == nil {
		return dm.powMaxBits
	}
	if dm.noRetargeting {
		return tip.Bits()
	}

	rule := dm.ruleAt(tip.Height() + 1)
	bits := rule.formula(dm, tip, header)
	log.Tracef("Required bits at height %d (era %s): %08x", tip.Height()+1, rule.era, bits)
	return bits
}

func (dm *difficultyManager) nextTargetV1(tip model.ChainNode, header *externalapi.DomainBlockHeader) uint32 {
	return dm.retarget(tip, header, retargetWindow{
		interval:    dm.intervalV1,
		timespan:    dm.timespanV1,
		spacing:     dm.spacingV1,
		minTimespan: dm.timespanV1 / 4,
		maxTimespan: dm.timespanV1 * 4,
	})
}

func (dm *difficultyManager) nextTargetV2(tip model.ChainNode, header *externalapi.DomainBlockHeader) uint32 {
	return dm.retarget(tip, header, retargetWindow{
		interval:    dm.intervalV2,
		timespan:    dm.timespanV2,
		spacing:     dm.spacingV2,
		minTimespan: dm.timespanV2 - dm.timespanV2/4,
		maxTimespan: dm.timespanV2 + dm.timespanV2/2,
	})
}

func (dm *difficultyManager) nextTargetFixed(model.ChainNode, *externalapi.DomainBlockHeader) uint32 {
	return dm.powMaxBits
}

// nextTargetV3 raises the era V2 target when a header comes at least
// octopusMinGap seconds after the tip and doesn't already claim the era
// V2 target. Every octopusRoundDuration seconds of gap is one round of
// target *= (190 + 3*round) / 173, computed with 256-bit wrap-around and a
// one bit shift around the multiplication.
func (dm *difficultyManager) nextTargetV3(tip model.ChainNode, header *externalapi.DomainBlockHeader) uint32 {
	v2Bits := dm.nextTargetV2(tip, header)

	gap := int64(header.Timestamp) - tip.Timestamp()
	if gap < octopusMinGap || header.Bits == v2Bits {
		return v2Bits
	}

	target, _, _ := math.CompactToTarget(v2Bits)
	divisor := big.NewInt(octopusDivisor)
	rounds := gap / octopusRoundDuration
	for round := int64(1); round <= rounds; round++ {
		target.Rsh(target, 1)
		math.Mul256(target, 190+round*3)
		target.Quo(target, divisor)
		math.Lsh256(target, 1)
	}

	if target.Cmp(dm.powMax) > 0 {
		return dm.powMaxBits
	}
	log.Debugf("Compensated %d second gap after height %d with %d rounds", gap, tip.Height(), rounds)
	return math.BigToCompact(target)
}

type retargetWindow struct {
	interval    uint64
	timespan    int64
	spacing     int64
	minTimespan int64
	maxTimespan int64
}

func (dm *difficultyManager) retarget(tip model.ChainNode, header *externalapi.DomainBlockHeader,
	window retargetWindow) uint32 {

	height := tip.Height() + 1
	if height%window.interval != 0 {
		if dm.allowMinDifficultyBlocks {
			return dm.minDifficultyBits(tip, header, window)
		}
		return tip.Bits()
	}

	// Go back the full interval unless this is the first retarget after
	// genesis, where only interval-1 ancestors exist.
	blocksToGoBack := window.interval
	if height == window.interval {
		blocksToGoBack = window.interval - 1
	}
	first := tip
	for i := uint64(0); i < blocksToGoBack; i++ {
		first = first.Parent()
		if first == nil {
			panic(errors.Errorf("retarget at height %d needs %d ancestors of %s, the chain is shorter",
				height, blocksToGoBack, tip.Hash()))
		}
	}

	actualTimespan := tip.Timestamp() - first.Timestamp()
	if actualTimespan < window.minTimespan {
		actualTimespan = window.minTimespan
	}
	if actualTimespan > window.maxTimespan {
		actualTimespan = window.maxTimespan
	}

	oldTarget, _, _ := math.CompactToTarget(tip.Bits())
	newTarget := math.ScaleTarget(oldTarget, actualTimespan, window.timespan)
	if newTarget.Cmp(dm.powMax) > 0 {
		newTarget.Set(dm.powMax)
	}
	return math.BigToCompact(newTarget)
}

// minDifficultyBits lets a header that comes more than two spacings after
// tip use PowMax. Otherwise it returns the bits of the last ancestor that
// was not mined under that rule.
func (dm *difficultyManager) minDifficultyBits(tip model.ChainNode, header *externalapi.DomainBlockHeader,
	window retargetWindow) uint32 {

	if int64(header.Timestamp) > tip.Timestamp()+window.spacing*2 {
		return dm.powMaxBits
	}

	node := tip
	for node.Parent() != nil && node.Height()%window.interval != 0 && node.Bits() == dm.powMaxBits {
		node = node.Parent()
	}
	return node.Bits()
}
