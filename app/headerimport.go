package app

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/pkg/errors"
)

// importBatchSize matches the number of headers a peer sends per message.
const importBatchSize = 2000

type headerInserter interface {
	HasBlock(blockHash *externalapi.DomainHash) bool
	ValidateAndInsertHeaders(headers []*externalapi.DomainBlockHeader) ([]*externalapi.DomainHash, error)
}

func importHeadersFile(inserter headerInserter, path string, interrupt <-chan struct{}) (int, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "importHeadersFile")
	defer onEnd()

	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't open headers file")
	}
	defer file.Close()

	return importHeaders(inserter, file, interrupt)
}

// importHeaders feeds the headers read from r to inserter in batches.
// Headers inserter already has are skipped so an import can be rerun.
func importHeaders(inserter headerInserter, r io.Reader, interrupt <-chan struct{}) (int, error) {
	reader := newHeaderReader(r)
	inserted := 0
	for {
		select {
		case <-interrupt:
			return inserted, errors.New("interrupted")
		default:
		}

		batch, readErr := reader.readBatch(importBatchSize)

		unknown := batch[:0]
		for _, header := range batch {
			if !inserter.HasBlock(consensushashing.HeaderHash(header)) {
				unknown = append(unknown, header)
			}
		}
		if len(unknown) > 0 {
			hashes, err := inserter.ValidateAndInsertHeaders(unknown)
			inserted += len(hashes)
			if err != nil {
				return inserted, err
			}
			log.Debugf("Imported a batch of %d headers", len(hashes))
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return inserted, nil
			}
			return inserted, readErr
		}
	}
}

// headerReader reads one hex-encoded serialized header per line. Empty lines
// and lines starting with '#' are ignored.
type headerReader struct {
	scanner *bufio.Scanner
	line    int
}

func newHeaderReader(r io.Reader) *headerReader {
	return &headerReader{scanner: bufio.NewScanner(r)}
}

// readBatch returns up to max headers. It returns io.EOF together with the
// last headers once the input is exhausted.
func (hr *headerReader) readBatch(max int) ([]*externalapi.DomainBlockHeader, error) {
	headers := make([]*externalapi.DomainBlockHeader, 0, max)
	for len(headers) < max {
		if !hr.scanner.Scan() {
			if err := hr.scanner.Err(); err != nil {
				return headers, errors.Wrapf(err, "failed reading line %d", hr.line+1)
			}
			return headers, io.EOF
		}
		hr.line++

		text := strings.TrimSpace(hr.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		serialized, err := hex.DecodeString(text)
		if err != nil {
			return headers, errors.Wrapf(err, "line %d is not valid hex", hr.line)
		}
		header, err := externalapi.DeserializeBlockHeader(serialized)
		if err != nil {
			return headers, errors.Wrapf(err, "line %d", hr.line)
		}
		headers = append(headers, header)
	}
	return headers, nil
}
