package main

import (
	"encoding/hex"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
)

func TestParseBits(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
		isError  bool
	}{
		{input: "1e0fffff", expected: 0x1e0fffff},
		{input: "0x207fffff", expected: 0x207fffff},
		{input: " 1d00ffff ", expected: 0x1d00ffff},
		{input: "1ffffffff", isError: true},
		{input: "bits", isError: true},
	}
	for _, test := range tests {
		bits, err := parseBits(test.input)
		if test.isError {
			if err == nil {
				t.Errorf("TestParseBits: %q: expected an error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("TestParseBits: %q: unexpected error: %s", test.input, err)
			continue
		}
		if bits != test.expected {
			t.Errorf("TestParseBits: %q: got %08x, expected %08x", test.input, bits, test.expected)
		}
	}
}

func TestParseHeader(t *testing.T) {
	genesis := chaincfg.MainnetParams.GenesisHeader
	header, err := parseHeader(hex.EncodeToString(genesis.Serialize()))
	if err != nil {
		t.Fatalf("TestParseHeader: %s", err)
	}
	if !header.Equal(genesis) {
		t.Fatalf("TestParseHeader: parsed header differs from the genesis header")
	}

	_, err = parseHeader("xyz")
	if err == nil {
		t.Fatalf("TestParseHeader: expected an error for invalid hex")
	}
	_, err = parseHeader("0011")
	if err == nil {
		t.Fatalf("TestParseHeader: expected an error for a short header")
	}
}
