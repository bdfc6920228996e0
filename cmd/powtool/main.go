package main

import "github.com/pkg/errors"

func main() {
	subCmd, config := parseCommandLine()

	var err error
	switch subCmd {
	case powHashSubCmd:
		err = powHash(config.(*powHashConfig))
	case algoSeqSubCmd:
		err = algoSeq(config.(*algoSeqConfig))
	case checkPoWSubCmd:
		err = checkPoW(config.(*checkPoWConfig))
	case eraSubCmd:
		err = era(config.(*eraConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
}
