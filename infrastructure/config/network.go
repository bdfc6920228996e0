package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet  bool     `long:"testnet" description:"Use the test network"`
	Regtest  bool     `long:"regtest" description:"Use the regression test network"`
	VBParams []string `long:"vbparams" description:"Use the given start and timeout for a version bits deployment (<deployment>:<start>:<timeout>). Not allowed on mainnet"`

	ActiveNetParams *chaincfg.Params
}

// ResolveNetwork parses the network command line argument and sets
// ActiveNetParams accordingly. It returns an error if more than one network
// was selected.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	networkName := chaincfg.MainnetParams.Name
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkName = chaincfg.TestnetParams.Name
	}
	if networkFlags.Regtest {
		numNets++
		networkName = chaincfg.RegressionNetParams.Name
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	params, err := chaincfg.ParamsForNetwork(networkName)
	if err != nil {
		return err
	}
	networkFlags.ActiveNetParams = params

	return networkFlags.applyVBParams()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) applyVBParams() error {
	if len(networkFlags.VBParams) == 0 {
		return nil
	}
	if networkFlags.ActiveNetParams.Name == chaincfg.MainnetParams.Name {
		return errors.New("vbparams is not allowed on mainnet")
	}

	for _, vbParams := range networkFlags.VBParams {
		name, startTime, expireTime, err := parseVBParams(vbParams)
		if err != nil {
			return err
		}
		err = networkFlags.ActiveNetParams.UpdateDeploymentWindow(name, startTime, expireTime)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseVBParams(vbParams string) (name string, startTime, expireTime uint64, err error) {
	fields := strings.Split(vbParams, ":")
	if len(fields) != 3 {
		return "", 0, 0, errors.Errorf("vbparams %q must be of the form "+
			"<deployment>:<start>:<timeout>", vbParams)
	}
	startTime, err = strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return "", 0, 0, errors.Wrapf(err, "invalid start time in vbparams %q", vbParams)
	}
	expireTime, err = strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return "", 0, 0, errors.Wrapf(err, "invalid timeout in vbparams %q", vbParams)
	}
	return fields[0], startTime, expireTime, nil
}
