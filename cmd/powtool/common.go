package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func parseHeader(headerHex string) (*externalapi.DomainBlockHeader, error) {
	serialized, err := hex.DecodeString(strings.TrimSpace(headerHex))
	if err != nil {
		return nil, errors.Wrap(err, "header is not valid hex")
	}
	return externalapi.DeserializeBlockHeader(serialized)
}

func parseBits(bitsHex string) (uint32, error) {
	bits, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(bitsHex), "0x"), 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bits %s are not a 32-bit hex number", bitsHex)
	}
	return uint32(bits), nil
}
