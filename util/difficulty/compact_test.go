package difficulty

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestCompactToTarget(t *testing.T) {
	tests := []struct {
		compact          uint32
		expectedHex      string
		expectedNegative bool
		expectedOverflow bool
		expectedCompact  uint32
	}{
		{0x00000000, "0", false, false, 0x00000000},
		{0x00123456, "0", false, false, 0x00000000},
		{0x01003456, "0", false, false, 0x00000000},
		{0x02000056, "0", false, false, 0x00000000},
		{0x03000000, "0", false, false, 0x00000000},
		{0x04000000, "0", false, false, 0x00000000},
		{0x00923456, "0", false, false, 0x00000000},
		{0x01803456, "0", false, false, 0x00000000},
		{0x02800056, "0", false, false, 0x00000000},
		{0x01123456, "12", false, false, 0x01120000},
		{0x02123456, "1234", false, false, 0x02123400},
		{0x03123456, "123456", false, false, 0x03123456},
		{0x04123456, "12345600", false, false, 0x04123456},
		{0x04923456, "12345600", true, false, 0x04123456},
		{0x05009234, "92340000", false, false, 0x05009234},
		{0x1c00ffff, "ffff" + zeros(50), false, false, 0x1c00ffff},
		{0x20123456, "123456" + zeros(58), false, false, 0x20123456},
		{0xff123456, "", false, true, 0},
	}

	for _, test := range tests {
		target, negative, overflow := CompactToTarget(test.compact)
		if negative != test.expectedNegative || overflow != test.expectedOverflow {
			t.Fatalf("TestCompactToTarget: 0x%08x: got negative=%t overflow=%t, want negative=%t overflow=%t",
				test.compact, negative, overflow, test.expectedNegative, test.expectedOverflow)
		}
		if overflow {
			continue
		}
		expected := mustParseHex(t, test.expectedHex)
		if !target.Eq(expected) {
			t.Fatalf("TestCompactToTarget: 0x%08x: got %s, want %s", test.compact, target.Hex(), expected.Hex())
		}
		if compact := TargetToCompact(target); compact != test.expectedCompact {
			t.Fatalf("TestCompactToTarget: 0x%08x: re-encoded as 0x%08x, want 0x%08x",
				test.compact, compact, test.expectedCompact)
		}
	}
}

func TestCompactToBig(t *testing.T) {
	tests := []struct {
		compact  uint32
		expected *big.Int
	}{
		{0x00000000, big.NewInt(0)},
		{0x05009234, big.NewInt(0x92340000)},
		{0x04923456, big.NewInt(-0x12345600)},
		{0x1c00ffff, new(big.Int).Lsh(big.NewInt(0xffff), 200)},
	}

	for _, test := range tests {
		n := CompactToBig(test.compact)
		if n.Cmp(test.expected) != 0 {
			t.Fatalf("TestCompactToBig: 0x%08x: got %s, want %s", test.compact, n, test.expected)
		}
		if compact := BigToCompact(n); compact != test.compact {
			t.Fatalf("TestCompactToBig: %s: re-encoded as 0x%08x, want 0x%08x", n, compact, test.compact)
		}
	}
}

func TestTargetToCompactAgreesWithBigToCompact(t *testing.T) {
	targets := []*uint256.Int{
		uint256.NewInt(1),
		uint256.NewInt(0x80),
		uint256.NewInt(0x7fffff),
		uint256.NewInt(0x800000),
		new(uint256.Int).Lsh(uint256.NewInt(0xffff), 200),
		new(uint256.Int).SetAllOne(),
	}
	for _, target := range targets {
		if got, want := TargetToCompact(target), BigToCompact(target.ToBig()); got != want {
			t.Fatalf("TestTargetToCompactAgreesWithBigToCompact: %s: got 0x%08x, want 0x%08x",
				target.Hex(), got, want)
		}
	}
}

func TestCalcWork(t *testing.T) {
	tests := []struct {
		bits     uint32
		expected *big.Int
	}{
		{0x1d00ffff, big.NewInt(4295032833)},
		{0x01010000, new(big.Int).Rsh(oneLsh256, 1)},
		{0x04923456, big.NewInt(0)},
		{0x00000000, big.NewInt(0)},
	}

	for _, test := range tests {
		if work := CalcWork(test.bits); work.Cmp(test.expected) != 0 {
			t.Fatalf("TestCalcWork: 0x%08x: got %s, want %s", test.bits, work, test.expected)
		}
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func mustParseHex(t *testing.T, s string) *uint256.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		t.Fatalf("invalid hex %q", s)
	}
	value, overflow := uint256.FromBig(n)
	if overflow {
		t.Fatalf("hex %q does not fit in 256 bits", s)
	}
	return value
}
