package chaincfg

import (
	"github.com/pkg/errors"
)

// ConsensusDeployment defines details related to a specific consensus rule
// change that is voted in. This is part of BIP0009.
type ConsensusDeployment struct {
	// BitNumber defines the specific bit number within the block version
	// this particular soft-fork deployment refers to.
	BitNumber uint8

	// StartTime is the median block time after which voting on the
	// deployment starts.
	StartTime uint64

	// ExpireTime is the median block time after which the attempted
	// deployment expires.
	ExpireTime uint64
}

// Constants that define the deployment offset in the deployments field of the
// parameters for each deployment. This is useful to be able to get the details
// of a specific deployment by name.
const (
	// DeploymentTestDummy defines the rule change deployment ID for testing
	// purposes.
	DeploymentTestDummy = iota

	// DeploymentCSV defines the rule change deployment ID for the CSV
	// soft-fork package.
	DeploymentCSV

	// DeploymentSegwit defines the rule change deployment ID for the
	// segregated witness soft-fork package.
	DeploymentSegwit

	// DefinedDeployments is the number of currently defined deployments.
	// NOTE: DefinedDeployments must always come last since it is used to
	// determine how many defined deployments there currently are.
	DefinedDeployments
)

var deploymentNames = map[string]int{
	"testdummy": DeploymentTestDummy,
	"csv":       DeploymentCSV,
	"segwit":    DeploymentSegwit,
}

// ErrUnknownDeployment describes an error where a deployment override names
// a deployment that doesn't exist.
var ErrUnknownDeployment = errors.New("unknown deployment")

// DeploymentByName returns the ID of the named deployment.
func DeploymentByName(name string) (int, bool) {
	id, ok := deploymentNames[name]
	return id, ok
}

// UpdateDeploymentWindow overrides the start and expire times of the named
// deployment. It exists for deterministic test fixtures: calling it on the
// main network is a programming error and panics.
func (p *Params) UpdateDeploymentWindow(name string, startTime, expireTime uint64) error {
	if p.Name == MainnetParams.Name {
		panic(errors.Errorf("deployment windows of %s can't be overridden", p.Name))
	}
	id, ok := DeploymentByName(name)
	if !ok {
		return errors.Wrapf(ErrUnknownDeployment, "%s", name)
	}
	p.Deployments[id].StartTime = startTime
	p.Deployments[id].ExpireTime = expireTime
	return nil
}
