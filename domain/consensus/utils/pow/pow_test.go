package pow

import (
	"math/big"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

func hashFromBig(t *testing.T, n *big.Int) *externalapi.DomainHash {
	var buf [externalapi.DomainHashSize]byte
	n.FillBytes(buf[:])
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return externalapi.NewDomainHashFromByteArray(&buf)
}

func TestCheckProofOfWork(t *testing.T) {
	// 00000fffff...ff
	powMax := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 236), big.NewInt(1))
	target, _ := new(big.Int).SetString("ffff0000000000000000000000000000000000000000000000000000000", 16)

	tests := []struct {
		name          string
		hash          *big.Int
		bits          uint32
		expectedError error
	}{
		{"hash equal to target", target, 0x1e0ffff0, nil},
		{"hash below target", big.NewInt(1), 0x1e0ffff0, nil},
		{"hash above target", new(big.Int).Add(target, big.NewInt(1)), 0x1e0ffff0, ruleerrors.ErrInvalidPoW},
		{"target above pow max", big.NewInt(1), 0x1f00ffff, ruleerrors.ErrTargetTooHigh},
		{"zero target", big.NewInt(0), 0x1e000000, ruleerrors.ErrMalformedTarget},
		{"negative target", big.NewInt(1), 0x1e8ffff0, ruleerrors.ErrNegativeTarget},
		{"overflowed target", big.NewInt(1), 0xff123456, ruleerrors.ErrMalformedTarget},
	}

	for _, test := range tests {
		hash := hashFromBig(t, test.hash)
		if HashToBig(hash).Cmp(test.hash) != 0 {
			t.Fatalf("TestCheckProofOfWork: %s: HashToBig round trip failed", test.name)
		}

		err := ValidateProofOfWork(hash, test.bits, powMax)
		if test.expectedError == nil {
			if err != nil {
				t.Errorf("TestCheckProofOfWork: %s: unexpected error %s", test.name, err)
			}
		} else if !errors.Is(err, test.expectedError) {
			t.Errorf("TestCheckProofOfWork: %s: expected %s, got %v", test.name, test.expectedError, err)
		}

		if valid := CheckProofOfWork(hash, test.bits, powMax); valid != (test.expectedError == nil) {
			t.Errorf("TestCheckProofOfWork: %s: CheckProofOfWork returned %t", test.name, valid)
		}
	}
}

func TestGenesisProofOfWork(t *testing.T) {
	powMax := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 236), big.NewInt(1))
	header := genesisHeader(t, 1389040865, 0x1e0ffff0, 3716037)

	powHash, err := PowHash(header.Serialize(), header.Timestamp, SequenceBaseTime)
	if err != nil {
		t.Fatalf("TestGenesisProofOfWork: %s", err)
	}
	if !CheckProofOfWork(powHash, header.Bits, powMax) {
		t.Errorf("TestGenesisProofOfWork: the mainnet genesis does not satisfy its own target")
	}

	header.Nonce++
	powHash, err = PowHash(header.Serialize(), header.Timestamp, SequenceBaseTime)
	if err != nil {
		t.Fatalf("TestGenesisProofOfWork: %s", err)
	}
	if CheckProofOfWork(powHash, header.Bits, powMax) {
		t.Errorf("TestGenesisProofOfWork: a different nonce unexpectedly satisfies the genesis target")
	}
}
