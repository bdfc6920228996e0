package math

import (
	"math"
	"math/big"
	"testing"
)

// TestBigToCompact ensures BigToCompact converts big integers to the expected
// compact representation.
func TestBigToCompact(t *testing.T) {
	tests := []struct {
		in  string
		out uint32
	}{
		{"0", 0},
		{"-1", 25231360},
		{"9223372036854775807", 142606335},
		{"922337203685477580712312312123487", 237861256},
	}

	for x, test := range tests {
		n := new(big.Int)
		n.SetString(test.in, 10)
		r := BigToCompact(n)
		if r != test.out {
			t.Errorf("TestBigToCompact test #%d failed: got %d want %d\n",
				x, r, test.out)
			return
		}
	}
}

// TestCompactToBig ensures CompactToBig converts numbers using the compact
// representation to the expected big integers.
func TestCompactToBig(t *testing.T) {
	tests := []struct {
		in  uint32
		out string
	}{
		{0, "0"},
		{10000000, "0"},
		{math.MaxUint32, "-6311914495863998658485429352026283268468573753812676234178171506285465200675957" +
			"87397376951158770808349115367298981082112562162319027637583517246275967980671962038665775867893645140" +
			"22856089959012026469381002722748489975264028415685723882208353467651862351803217528553851158828320170" +
			"89832330727351553686808317476632783024236208492771822246700842318520468733521003756809213629548010354" +
			"33865968377930773213939300289069292503211567790599147939718451689002543278625341832829837474611074167" +
			"86700705915281593002614032021233542099318559748885883681365573294332856023451874423425211080847063825" +
			"199113186681992371681311588352",
		},
		{142606335, "9223370937343148032"},
		{25231360, "-1"},
		{237861256, "922337129789886856855791696084992"},
	}

	for i, test := range tests {
		n := CompactToBig(test.in)
		if n.String() != test.out {
			t.Errorf("TestCompactToBig test #%d failed: got %s want %s",
				i, n, test.out)
			return
		}
	}
}

func TestCompactToTarget(t *testing.T) {
	tests := []struct {
		compact          uint32
		target           string
		expectedNegative bool
		expectedOverflow bool
		reencoded        uint32
	}{
		{0x00000000, "0", false, false, 0},
		{0x00123456, "0", false, false, 0},
		{0x01003456, "0", false, false, 0},
		{0x02000056, "0", false, false, 0},
		{0x03000000, "0", false, false, 0},
		{0x04000000, "0", false, false, 0},
		{0x00923456, "0", false, false, 0},
		{0x01803456, "0", false, false, 0},
		{0x02800056, "0", false, false, 0},
		{0x03800000, "0", false, false, 0},
		{0x04800000, "0", false, false, 0},
		{0x01123456, "12", false, false, 0x01120000},
		{0x01fedcba, "7e", true, false, 0x01fe0000},
		{0x02123456, "1234", false, false, 0x02123400},
		{0x03123456, "123456", false, false, 0x03123456},
		{0x04123456, "12345600", false, false, 0x04123456},
		{0x04923456, "12345600", true, false, 0x04923456},
		{0x05009234, "92340000", false, false, 0x05009234},
		{0x1e0ffff0, "ffff0000000000000000000000000000000000000000000000000000000", false, false, 0x1e0ffff0},
		{0x207fffff, "7fffff0000000000000000000000000000000000000000000000000000000000", false, false, 0x207fffff},
		{0x20123456, "1234560000000000000000000000000000000000000000000000000000000000", false, false, 0x20123456},
		{0xff123456, "0", false, true, 0},
		{0x22000100, "0", false, true, 0},
		{0x21010000, "0", false, true, 0},
		{0x21008000, "8000000000000000000000000000000000000000000000000000000000000000", false, false, 0x21008000},
	}

	for _, test := range tests {
		target, isNegative, isOverflow := CompactToTarget(test.compact)
		if isNegative != test.expectedNegative {
			t.Errorf("TestCompactToTarget: %08x: expected negative %t, got %t",
				test.compact, test.expectedNegative, isNegative)
		}
		if isOverflow != test.expectedOverflow {
			t.Errorf("TestCompactToTarget: %08x: expected overflow %t, got %t",
				test.compact, test.expectedOverflow, isOverflow)
		}
		if isOverflow {
			continue
		}
		if target.Text(16) != test.target {
			t.Errorf("TestCompactToTarget: %08x: expected target %s, got %s",
				test.compact, test.target, target.Text(16))
		}

		reencoded := TargetToCompact(target)
		if isNegative {
			reencoded |= 0x00800000
		}
		if reencoded != test.reencoded {
			t.Errorf("TestCompactToTarget: %08x: expected re-encoding %08x, got %08x",
				test.compact, test.reencoded, reencoded)
		}
	}
}

// TestCompactRoundTrip checks that normalized, non-negative encodings are
// stable through decode and encode.
func TestCompactRoundTrip(t *testing.T) {
	for exponent := uint32(3); exponent <= 0x20; exponent++ {
		for _, mantissa := range []uint32{0x010000, 0x123456, 0x7fffff, 0x0ffff0} {
			compact := exponent<<24 | mantissa
			target, isNegative, isOverflow := CompactToTarget(compact)
			if isNegative || isOverflow {
				t.Fatalf("TestCompactRoundTrip: %08x unexpectedly decoded as negative or overflowed", compact)
			}
			if roundTrip := TargetToCompact(target); roundTrip != compact {
				t.Errorf("TestCompactRoundTrip: %08x re-encoded as %08x", compact, roundTrip)
			}
		}
	}
}

func TestScaleTarget(t *testing.T) {
	// 2^240 - 1 is wide enough to take the one bit shift.
	wide := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)
	// ((2^239 - 1) * 3 / 4) << 1 == 3*2^238 - 2
	expectedWide := new(big.Int).Sub(new(big.Int).Mul(big.NewInt(3), new(big.Int).Lsh(bigOne, 238)), big.NewInt(2))

	narrow := big.NewInt(1000)

	tests := []struct {
		name        string
		target      *big.Int
		numerator   int64
		denominator int64
		expected    *big.Int
	}{
		{"wide target", wide, 3, 4, expectedWide},
		{"narrow target", narrow, 3, 4, big.NewInt(750)},
		{"narrow target rounds down", big.NewInt(10), 1, 3, big.NewInt(3)},
	}
	for _, test := range tests {
		original := new(big.Int).Set(test.target)
		result := ScaleTarget(test.target, test.numerator, test.denominator)
		if result.Cmp(test.expected) != 0 {
			t.Errorf("TestScaleTarget: %s: got %x, want %x", test.name, result, test.expected)
		}
		if test.target.Cmp(original) != 0 {
			t.Errorf("TestScaleTarget: %s: the input target was modified", test.name)
		}
	}
}

func TestMul256Wraps(t *testing.T) {
	n := new(big.Int).Lsh(bigOne, 255)
	Mul256(n, 2)
	if n.Sign() != 0 {
		t.Errorf("TestMul256Wraps: expected 2^255 * 2 to wrap to zero, got %x", n)
	}

	n = new(big.Int).Lsh(bigOne, 255)
	Lsh256(n, 1)
	if n.Sign() != 0 {
		t.Errorf("TestMul256Wraps: expected 2^255 << 1 to wrap to zero, got %x", n)
	}

	if CompactToBig(math.MaxUint32).Sign() >= 0 {
		t.Errorf("TestMul256Wraps: CompactToBig is expected to keep the sign bit")
	}
}
