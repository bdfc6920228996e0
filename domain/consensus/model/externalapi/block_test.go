package externalapi

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

const mainGenesisHeaderHex = "01000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"5c4a38bcc3d0a4a46f0186b2882a801c3c19e8d90e9d296614e7f36310e4a936" +
	"e114cb52f0ff0f1ec5b33800"

func TestBlockHeaderSerialization(t *testing.T) {
	merkleRoot, err := NewDomainHashFromString("36a9e41063f3e71466299d0ed9e8193c1c802a88b286016fa4a4d0c3bc384a5c")
	if err != nil {
		t.Fatalf("TestBlockHeaderSerialization: NewDomainHashFromString: %s", err)
	}
	header := &DomainBlockHeader{
		Version:        1,
		HashMerkleRoot: *merkleRoot,
		Timestamp:      1389040865,
		Bits:           0x1e0ffff0,
		Nonce:          3716037,
	}

	serialized := header.Serialize()
	expected, _ := hex.DecodeString(mainGenesisHeaderHex)
	if !bytes.Equal(serialized, expected) {
		t.Fatalf("TestBlockHeaderSerialization: got %x, want %x", serialized, expected)
	}

	deserialized, err := DeserializeBlockHeader(serialized)
	if err != nil {
		t.Fatalf("TestBlockHeaderSerialization: DeserializeBlockHeader: %s", err)
	}
	if !deserialized.Equal(header) {
		t.Errorf("TestBlockHeaderSerialization: round trip mismatch: got %s, want %s",
			spew.Sdump(deserialized), spew.Sdump(header))
	}
}

func TestDeserializeBlockHeaderWrongSize(t *testing.T) {
	for _, size := range []int{0, BlockHeaderSize - 1, BlockHeaderSize + 1} {
		_, err := DeserializeBlockHeader(make([]byte, size))
		if err == nil {
			t.Errorf("TestDeserializeBlockHeaderWrongSize: expected an error for %d bytes", size)
		}
	}
}

func TestDomainHashString(t *testing.T) {
	const hashString = "6a1f879bcea5471cbfdee1fd0cb2ddcc4fed569a500e352d41de967703e83172"
	hash, err := NewDomainHashFromString(hashString)
	if err != nil {
		t.Fatalf("TestDomainHashString: %s", err)
	}
	if hash.BytesSlice()[0] != 0x72 {
		t.Errorf("TestDomainHashString: expected the string to be byte-reversed, first byte is %x",
			hash.BytesSlice()[0])
	}
	if hash.String() != hashString {
		t.Errorf("TestDomainHashString: got %s, want %s", hash, hashString)
	}

	_, err = NewDomainHashFromString(hashString[2:])
	if err == nil {
		t.Errorf("TestDomainHashString: expected an error for a short string")
	}
}

func TestDomainHashEqual(t *testing.T) {
	a := NewDomainHashFromByteArray(&[DomainHashSize]byte{1})
	b := NewDomainHashFromByteArray(&[DomainHashSize]byte{1})
	c := NewDomainHashFromByteArray(&[DomainHashSize]byte{2})

	tests := []struct {
		name     string
		first    *DomainHash
		second   *DomainHash
		expected bool
	}{
		{"same bytes", a, b, true},
		{"different bytes", a, c, false},
		{"one nil", a, nil, false},
		{"both nil", nil, nil, true},
	}
	for _, test := range tests {
		if result := test.first.Equal(test.second); result != test.expected {
			t.Errorf("TestDomainHashEqual: %s: got %t, want %t", test.name, result, test.expected)
		}
	}
	if !a.Less(c) || c.Less(a) {
		t.Errorf("TestDomainHashEqual: unexpected Less ordering")
	}
}
