package app

import (
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

type fakeInserter struct {
	known     map[externalapi.DomainHash]struct{}
	batches   [][]*externalapi.DomainBlockHeader
	rejectAt  int
	callCount int
}

func newFakeInserter() *fakeInserter {
	return &fakeInserter{known: make(map[externalapi.DomainHash]struct{}), rejectAt: -1}
}

func (f *fakeInserter) HasBlock(blockHash *externalapi.DomainHash) bool {
	_, ok := f.known[*blockHash]
	return ok
}

func (f *fakeInserter) ValidateAndInsertHeaders(headers []*externalapi.DomainBlockHeader) (
	[]*externalapi.DomainHash, error) {

	f.callCount++
	batch := make([]*externalapi.DomainBlockHeader, len(headers))
	copy(batch, headers)
	f.batches = append(f.batches, batch)

	var inserted []*externalapi.DomainHash
	for _, header := range headers {
		if len(f.known) == f.rejectAt {
			return inserted, errors.Wrapf(ruleerrors.ErrInvalidPoW, "rejected")
		}
		hash := consensushashing.HeaderHash(header)
		f.known[*hash] = struct{}{}
		inserted = append(inserted, hash)
	}
	return inserted, nil
}

func testHeaders(count int) []*externalapi.DomainBlockHeader {
	headers := make([]*externalapi.DomainBlockHeader, count)
	var prev externalapi.DomainHash
	for i := range headers {
		headers[i] = &externalapi.DomainBlockHeader{
			Version:       2,
			PrevBlockHash: prev,
			Timestamp:     1389040865 + uint32(i)*150,
			Bits:          0x207fffff,
			Nonce:         uint32(i),
		}
		prev = *consensushashing.HeaderHash(headers[i])
	}
	return headers
}

func headersText(headers []*externalapi.DomainBlockHeader) string {
	var builder strings.Builder
	builder.WriteString("# exported headers\n")
	for i, header := range headers {
		builder.WriteString(hex.EncodeToString(header.Serialize()))
		builder.WriteString("\n")
		if i%3 == 0 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func TestHeaderReader(t *testing.T) {
	headers := testHeaders(5)
	reader := newHeaderReader(strings.NewReader(headersText(headers)))

	first, err := reader.readBatch(3)
	if err != nil {
		t.Fatalf("TestHeaderReader: readBatch: %s", err)
	}
	rest, err := reader.readBatch(3)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("TestHeaderReader: expected io.EOF but got %v", err)
	}
	read := append(first, rest...)
	if len(read) != len(headers) {
		t.Fatalf("TestHeaderReader: read %d headers, expected %d", len(read), len(headers))
	}
	for i := range headers {
		if !read[i].Equal(headers[i]) {
			t.Errorf("TestHeaderReader: header %d differs", i)
		}
	}
}

func TestHeaderReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not hex", input: "zz\n"},
		{name: "short header", input: "00112233\n"},
	}
	for _, test := range tests {
		_, err := newHeaderReader(strings.NewReader(test.input)).readBatch(10)
		if err == nil || errors.Is(err, io.EOF) {
			t.Errorf("TestHeaderReaderErrors: %s: expected a parse error but got %v", test.name, err)
			continue
		}
		if !strings.Contains(err.Error(), "line 1") {
			t.Errorf("TestHeaderReaderErrors: %s: error %q doesn't name the line", test.name, err)
		}
	}
}

func TestImportHeaders(t *testing.T) {
	headers := testHeaders(importBatchSize + 10)
	inserter := newFakeInserter()

	inserted, err := importHeaders(inserter, strings.NewReader(headersText(headers)), nil)
	if err != nil {
		t.Fatalf("TestImportHeaders: %s", err)
	}
	if inserted != len(headers) {
		t.Fatalf("TestImportHeaders: inserted %d headers, expected %d", inserted, len(headers))
	}
	if inserter.callCount != 2 {
		t.Fatalf("TestImportHeaders: expected 2 batches but got %d", inserter.callCount)
	}

	// A second run finds everything known and inserts nothing.
	inserted, err = importHeaders(inserter, strings.NewReader(headersText(headers)), nil)
	if err != nil {
		t.Fatalf("TestImportHeaders: rerun: %s", err)
	}
	if inserted != 0 || inserter.callCount != 2 {
		t.Fatalf("TestImportHeaders: rerun inserted %d headers in %d calls", inserted, inserter.callCount)
	}
}

func TestImportHeadersStopsOnRuleError(t *testing.T) {
	headers := testHeaders(10)
	inserter := newFakeInserter()
	inserter.rejectAt = 4

	inserted, err := importHeaders(inserter, strings.NewReader(headersText(headers)), nil)
	if !errors.Is(err, ruleerrors.ErrInvalidPoW) {
		t.Fatalf("TestImportHeadersStopsOnRuleError: expected ErrInvalidPoW but got %v", err)
	}
	if inserted != 4 {
		t.Fatalf("TestImportHeadersStopsOnRuleError: inserted %d headers, expected 4", inserted)
	}
}

func TestImportHeadersInterrupted(t *testing.T) {
	interrupt := make(chan struct{})
	close(interrupt)

	inserter := newFakeInserter()
	inserted, err := importHeaders(inserter, strings.NewReader(headersText(testHeaders(3))), interrupt)
	if err == nil {
		t.Fatalf("TestImportHeadersInterrupted: expected an error")
	}
	if inserted != 0 || inserter.callCount != 0 {
		t.Fatalf("TestImportHeadersInterrupted: inserted %d headers after interrupt", inserted)
	}
}
