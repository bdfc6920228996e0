package chaincfg

import (
	"math/big"
	"time"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/math"
)

// Heights at which the retarget algorithm switches. They are the same on
// every network.
const (
	v1End    = 76000
	v2EndA   = 329529
	v3GapEnd = 330000
	v2EndB   = 468000
)

const (
	targetTimespan   = 3*24*time.Hour + 12*time.Hour // 3.5 days
	targetSpacing    = 150 * time.Second
	targetTimespanV2 = 150 * time.Second
	targetSpacingV2  = 150 * time.Second
	maxTipAge        = 24 * time.Hour

	// powHashCutoverTime is the header time from which the chained
	// multi-primitive hash replaces scrypt (2016-09-09 18:00:00 UTC).
	powHashCutoverTime = 1473444000

	// powHashGenesisTime is the time algorithm sequence epochs are counted
	// from. Every network uses the main network genesis time.
	powHashGenesisTime = 1389040865
)

// NetworkMagic identifies the network in message headers.
type NetworkMagic [4]byte

// Params defines a Machinecoin network by its parameters. Params are read
// only once selected; the one supported mutation is
// UpdateDeploymentWindow on test networks.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net NetworkMagic

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// GenesisHeader defines the first block header of the chain.
	GenesisHeader *externalapi.DomainBlockHeader

	// GenesisHash is the identity hash of GenesisHeader.
	GenesisHash *externalapi.DomainHash

	// PowMax defines the highest allowed proof of work value for a block
	// as a uint256.
	PowMax *big.Int

	// TargetTimespan and TargetSpacing parameterize the classic retarget
	// (era V1). Their ratio is the adjustment interval in blocks.
	TargetTimespan time.Duration
	TargetSpacing  time.Duration

	// TargetTimespanV2 and TargetSpacingV2 parameterize the frequent
	// retarget of eras V2 and V3.
	TargetTimespanV2 time.Duration
	TargetSpacingV2  time.Duration

	// AllowMinDifficultyBlocks lets a block whose timestamp is more than
	// twice the target spacing after its parent use the easiest target.
	AllowMinDifficultyBlocks bool

	// NoRetargeting freezes difficulty at the parent's bits.
	NoRetargeting bool

	// Era boundaries. A block at height h is in era V1 when h < V1End, V2
	// when V1End <= h < V2EndA, fixed at PowMax when V2EndA <= h < V3GapEnd,
	// V2 again when V3GapEnd <= h < V2EndB and V3 from V2EndB on.
	V1End    uint64
	V2EndA   uint64
	V3GapEnd uint64
	V2EndB   uint64

	// PowHashCutoverTime is the header time from which the chained hash
	// replaces the legacy scrypt hash.
	PowHashCutoverTime uint32

	// PowHashGenesisTime is the time algorithm sequence epochs are
	// counted from.
	PowHashGenesisTime uint32

	// MaxTipAge is how old the tip may be before the node considers itself
	// in initial block download.
	MaxTipAge time.Duration

	// RuleChangeActivationThreshold is the number of blocks in a
	// MinerConfirmationWindow that must signal a deployment for it to lock in.
	RuleChangeActivationThreshold uint64
	MinerConfirmationWindow       uint64

	// Deployments define the specific consensus rule changes to be voted
	// on.
	Deployments [DefinedDeployments]ConsensusDeployment
}

// V3Start returns the first height of era V3.
func (p *Params) V3Start() uint64 {
	return p.V2EndB
}

// DifficultyAdjustmentInterval returns the number of blocks between two
// era V1 retargets.
func (p *Params) DifficultyAdjustmentInterval() uint64 {
	return uint64(p.TargetTimespan / p.TargetSpacing)
}

// DifficultyAdjustmentIntervalV2 returns the number of blocks between two
// era V2 retargets.
func (p *Params) DifficultyAdjustmentIntervalV2() uint64 {
	return uint64(p.TargetTimespanV2 / p.TargetSpacingV2)
}

// PowMaxBits returns PowMax in compact form.
func (p *Params) PowMaxBits() uint32 {
	return math.BigToCompact(p.PowMax)
}

// Clone returns a deep copy of p, so callers may override deployment
// windows without affecting the registered parameters.
func (p *Params) Clone() *Params {
	clone := *p
	clone.GenesisHeader = p.GenesisHeader.Clone()
	genesisHash := *p.GenesisHash
	clone.GenesisHash = &genesisHash
	clone.PowMax = new(big.Int).Set(p.PowMax)
	return &clone
}

// MainnetParams defines the network parameters for the main Machinecoin
// network.
var MainnetParams = Params{
	Name:                          "mainnet",
	Net:                           NetworkMagic{0xfb, 0xc0, 0xb6, 0xdb},
	DefaultPort:                   "40333",
	GenesisHeader:                 &mainnetGenesisHeader,
	GenesisHash:                   mainnetGenesisHash,
	PowMax:                        mainPowMax,
	TargetTimespan:                targetTimespan,
	TargetSpacing:                 targetSpacing,
	TargetTimespanV2:              targetTimespanV2,
	TargetSpacingV2:               targetSpacingV2,
	AllowMinDifficultyBlocks:      false,
	NoRetargeting:                 false,
	V1End:                         v1End,
	V2EndA:                        v2EndA,
	V3GapEnd:                      v3GapEnd,
	V2EndB:                        v2EndB,
	PowHashCutoverTime:            powHashCutoverTime,
	PowHashGenesisTime:            powHashGenesisTime,
	MaxTipAge:                     maxTipAge,
	RuleChangeActivationThreshold: 1916, // 95% of MinerConfirmationWindow
	MinerConfirmationWindow:       2016,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  1199145601, // January 1, 2008 UTC
			ExpireTime: 1230767999, // December 31, 2008 UTC
		},
		DeploymentCSV: {
			BitNumber:  0,
			StartTime:  1462060800,
			ExpireTime: 1493596800,
		},
		DeploymentSegwit: {
			BitNumber:  1,
			StartTime:  0,
			ExpireTime: 0,
		},
	},
}

// TestnetParams defines the network parameters for the test Machinecoin
// network.
var TestnetParams = Params{
	Name:                          "testnet",
	Net:                           NetworkMagic{0xfb, 0xc0, 0xb6, 0xdb},
	DefaultPort:                   "50333",
	GenesisHeader:                 &testnetGenesisHeader,
	GenesisHash:                   testnetGenesisHash,
	PowMax:                        testnetPowMax,
	TargetTimespan:                targetTimespan,
	TargetSpacing:                 targetSpacing,
	TargetTimespanV2:              targetTimespanV2,
	TargetSpacingV2:               targetSpacingV2,
	AllowMinDifficultyBlocks:      true,
	NoRetargeting:                 false,
	V1End:                         v1End,
	V2EndA:                        v2EndA,
	V3GapEnd:                      v3GapEnd,
	V2EndB:                        v2EndB,
	PowHashCutoverTime:            powHashCutoverTime,
	PowHashGenesisTime:            powHashGenesisTime,
	MaxTipAge:                     maxTipAge,
	RuleChangeActivationThreshold: 1,
	MinerConfirmationWindow:       2,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  1199145601, // January 1, 2008 UTC
			ExpireTime: 1230767999, // December 31, 2008 UTC
		},
		DeploymentCSV: {
			BitNumber:  0,
			StartTime:  1494604259,
			ExpireTime: 1494604959,
		},
		DeploymentSegwit: {
			BitNumber:  1,
			StartTime:  1494604259,
			ExpireTime: 1494604959,
		},
	},
}

// RegressionNetParams defines the network parameters for the regression
// test network. Difficulty never changes on it.
var RegressionNetParams = Params{
	Name:                          "regtest",
	Net:                           NetworkMagic{0xfa, 0xc2, 0xc6, 0xab},
	DefaultPort:                   "60333",
	GenesisHeader:                 &regtestGenesisHeader,
	GenesisHash:                   regtestGenesisHash,
	PowMax:                        regressionPowMax,
	TargetTimespan:                targetTimespan,
	TargetSpacing:                 targetSpacing,
	TargetTimespanV2:              targetTimespanV2,
	TargetSpacingV2:               targetSpacingV2,
	AllowMinDifficultyBlocks:      true,
	NoRetargeting:                 true,
	V1End:                         v1End,
	V2EndA:                        v2EndA,
	V3GapEnd:                      v3GapEnd,
	V2EndB:                        v2EndB,
	PowHashCutoverTime:            powHashCutoverTime,
	PowHashGenesisTime:            powHashGenesisTime,
	MaxTipAge:                     maxTipAge,
	RuleChangeActivationThreshold: 108, // 75% of MinerConfirmationWindow
	MinerConfirmationWindow:       144,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  0,
			ExpireTime: 999999999999,
		},
		DeploymentCSV: {
			BitNumber:  0,
			StartTime:  0,
			ExpireTime: 999999999999,
		},
		DeploymentSegwit: {
			BitNumber:  1,
			StartTime:  0,
			ExpireTime: 999999999999,
		},
	},
}
