package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	powHashSubCmd  = "powhash"
	algoSeqSubCmd  = "algoseq"
	checkPoWSubCmd = "checkpow"
	eraSubCmd      = "era"
)

type configFlags struct {
	config.NetworkFlags
}

type powHashConfig struct {
	Header string `long:"header" short:"H" description:"The serialized block header (encoded in hex)" required:"true"`
	config.NetworkFlags
}

type algoSeqConfig struct {
	Time  uint32 `long:"time" short:"t" description:"The header time to derive the algorithm sequence from"`
	Epoch uint64 `long:"epoch" short:"e" description:"The epoch index to derive the algorithm sequence from"`
	config.NetworkFlags
}

type checkPoWConfig struct {
	Hash string `long:"hash" description:"The proof-of-work hash (in display order)" required:"true"`
	Bits string `long:"bits" description:"The compact target (encoded in hex)" required:"true"`
	config.NetworkFlags
}

type eraConfig struct {
	Height uint64 `long:"height" description:"The block height" required:"true"`
	config.NetworkFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	powHashConf := &powHashConfig{}
	parser.AddCommand(powHashSubCmd, "Hashes a block header",
		"Prints the identity hash, the algorithm sequence and the proof-of-work hash of a block header", powHashConf)

	algoSeqConf := &algoSeqConfig{}
	parser.AddCommand(algoSeqSubCmd, "Shows an algorithm sequence",
		"Prints the hash algorithm sequence for a header time or an epoch index", algoSeqConf)

	checkPoWConf := &checkPoWConfig{}
	parser.AddCommand(checkPoWSubCmd, "Checks a proof-of-work hash against a target",
		"Checks a proof-of-work hash against a compact target and the network's proof-of-work limit", checkPoWConf)

	eraConf := &eraConfig{}
	parser.AddCommand(eraSubCmd, "Shows the difficulty era of a height",
		"Prints the difficulty retarget era active at a height", eraConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case powHashSubCmd:
		resolveNetwork(parser, &powHashConf.NetworkFlags, &cfg.NetworkFlags)
		config = powHashConf
	case algoSeqSubCmd:
		resolveNetwork(parser, &algoSeqConf.NetworkFlags, &cfg.NetworkFlags)
		config = algoSeqConf
	case checkPoWSubCmd:
		resolveNetwork(parser, &checkPoWConf.NetworkFlags, &cfg.NetworkFlags)
		config = checkPoWConf
	case eraSubCmd:
		resolveNetwork(parser, &eraConf.NetworkFlags, &cfg.NetworkFlags)
		config = eraConf
	}

	return parser.Command.Active.Name, config
}

func resolveNetwork(parser *flags.Parser, dst, src *config.NetworkFlags) {
	combineNetworkFlags(dst, src)
	err := dst.ResolveNetwork(parser)
	if err != nil {
		printErrorAndExit(err)
	}
}

func combineNetworkFlags(dst, src *config.NetworkFlags) {
	dst.Testnet = dst.Testnet || src.Testnet
	dst.Regtest = dst.Regtest || src.Regtest
	dst.VBParams = append(dst.VBParams, src.VBParams...)
}
