package chaincfg

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// Machinecoin network could not be set due to the network already
	// being a standard network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate Machinecoin network")

	// ErrUnknownNetwork describes an error where the requested network
	// name is not registered.
	ErrUnknownNetwork = errors.New("unknown Machinecoin network")
)

var (
	registeredNetsLock sync.RWMutex
	registeredNets     = make(map[string]*Params)
	networkAliases     = map[string]string{
		"main": "mainnet",
		"test": "testnet",
	}
)

// Register registers the network parameters for a Machinecoin network.
// This may error with ErrDuplicateNet if the network is already registered
// (either due to a previous Register call, or the network being one of the
// default networks).
func Register(params *Params) error {
	registeredNetsLock.Lock()
	defer registeredNetsLock.Unlock()

	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "%s", params.Name)
	}
	registeredNets[params.Name] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error. This should only be called from package init
// functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// ParamsForNetwork returns a copy of the parameters of the named network.
// "main" and "test" are accepted as aliases of "mainnet" and "testnet".
func ParamsForNetwork(name string) (*Params, error) {
	if canonical, ok := networkAliases[name]; ok {
		name = canonical
	}

	registeredNetsLock.RLock()
	defer registeredNetsLock.RUnlock()

	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNetwork, "%s", name)
	}
	return params.Clone(), nil
}

// RegisteredNetworks returns the names of the registered networks, sorted.
func RegisteredNetworks() []string {
	registeredNetsLock.RLock()
	defer registeredNetsLock.RUnlock()

	names := make([]string, 0, len(registeredNets))
	for name := range registeredNets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&RegressionNetParams)
}
