package difficulty

import (
	"testing"

	"github.com/holiman/uint256"
)

const (
	testTargetSpacing = 600
	testHalfLife      = 2 * 24 * 60 * 60

	// Time between the reference block and its parent, assumed ideally spaced.
	parentTimeDiff = testTargetSpacing
)

func testPowLimit() *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(0xffff), 200)
}

func calculateTestASERT(refTarget *uint256.Int, timeDiff, heightDiff int64) *uint256.Int {
	return CalculateASERT(refTarget, testTargetSpacing, timeDiff, heightDiff, testPowLimit(), testHalfLife)
}

func TestCalculateASERTSchedule(t *testing.T) {
	powLimit := testPowLimit()
	powLimitBits := TargetToCompact(powLimit)
	initialTarget := new(uint256.Int).Rsh(powLimit, 4)
	var height int64

	// Steady
	height++
	nextTarget := calculateTestASERT(initialTarget, parentTimeDiff+600, height)
	if !nextTarget.Eq(initialTarget) {
		t.Fatalf("TestCalculateASERTSchedule: steady block changed the target to %s", nextTarget.Hex())
	}

	// A block that arrives in half the expected time
	height++
	nextTarget = calculateTestASERT(initialTarget, parentTimeDiff+600+300, height)
	if !nextTarget.Lt(initialTarget) {
		t.Fatalf("TestCalculateASERTSchedule: a fast block did not lower the target")
	}

	// A block that makes up for the shortfall of the previous one restores the target
	prevTarget := nextTarget
	height++
	nextTarget = calculateTestASERT(initialTarget, parentTimeDiff+600+300+900, height)
	if !nextTarget.Gt(prevTarget) || !nextTarget.Eq(initialTarget) {
		t.Fatalf("TestCalculateASERTSchedule: got %s after a slow block, want %s", nextTarget.Hex(), initialTarget.Hex())
	}

	// Two days ahead of schedule doubles the target
	prevTarget = nextTarget
	nextTarget = calculateTestASERT(prevTarget, parentTimeDiff+288*1200, 288)
	if !nextTarget.Eq(new(uint256.Int).Lsh(prevTarget, 1)) {
		t.Fatalf("TestCalculateASERTSchedule: got %s two days ahead of schedule, want double of %s",
			nextTarget.Hex(), prevTarget.Hex())
	}

	// Two days behind schedule halves the target
	prevTarget = nextTarget
	nextTarget = calculateTestASERT(prevTarget, parentTimeDiff+288*0, 288)
	if !nextTarget.Eq(new(uint256.Int).Rsh(prevTarget, 1)) || !nextTarget.Eq(initialTarget) {
		t.Fatalf("TestCalculateASERTSchedule: got %s two days behind schedule, want half of %s",
			nextTarget.Hex(), prevTarget.Hex())
	}

	// Ramping up from the initial target to the limit takes four doublings
	for k := 0; k < 3; k++ {
		prevTarget = nextTarget
		nextTarget = calculateTestASERT(prevTarget, parentTimeDiff+288*1200, 288)
		if !nextTarget.Eq(new(uint256.Int).Lsh(prevTarget, 1)) {
			t.Fatalf("TestCalculateASERTSchedule: doubling %d: got %s", k, nextTarget.Hex())
		}
		if !nextTarget.Lt(powLimit) {
			t.Fatalf("TestCalculateASERTSchedule: doubling %d reached the limit", k)
		}
		if TargetToCompact(nextTarget) == powLimitBits {
			t.Fatalf("TestCalculateASERTSchedule: doubling %d encodes as the limit", k)
		}
	}
	prevTarget = nextTarget
	nextTarget = calculateTestASERT(prevTarget, parentTimeDiff+288*1200, 288)
	if !nextTarget.Eq(new(uint256.Int).Lsh(prevTarget, 1)) || TargetToCompact(nextTarget) != powLimitBits {
		t.Fatalf("TestCalculateASERTSchedule: the fourth doubling got %s", nextTarget.Hex())
	}

	// Fast periods cannot push the target past the limit, even when the
	// shift would overflow 256 bits.
	nextTarget = calculateTestASERT(prevTarget, parentTimeDiff+512*144*600, 0)
	if TargetToCompact(nextTarget) != powLimitBits {
		t.Fatalf("TestCalculateASERTSchedule: got 0x%08x after 512 fast days, want 0x%08x",
			TargetToCompact(nextTarget), powLimitBits)
	}

	// Slow periods bottom out at a target of 1.
	nextTarget = calculateTestASERT(powLimit, 0, 2*(256-33)*144)
	if bits := TargetToCompact(nextTarget); bits != TargetToCompact(uint256.NewInt(1)) {
		t.Fatalf("TestCalculateASERTSchedule: got 0x%08x after 446 slow days, want 0x01010000", bits)
	}
}

func TestCalculateASERT(t *testing.T) {
	powLimit := testPowLimit()
	single300Target := mustParseHex(t, "0000000000ffb1004e"+zeros(46))
	funnyRefTarget := mustParseHex(t, "000000000080000000000000000fffffffffffffffffffffffffffffffffffff")

	// timeDiff excludes parentTimeDiff, which is added when calling.
	tests := []struct {
		refTarget      *uint256.Int
		timeDiff       int64
		heightDiff     int64
		expectedTarget *uint256.Int
		expectedBits   uint32
	}{
		// Blocks arriving too early by exactly a half-life halve the target.
		{powLimit, 0, 2 * 144, new(uint256.Int).Rsh(powLimit, 1), 0x1b7fff80},
		{powLimit, 0, 4 * 144, new(uint256.Int).Rsh(powLimit, 2), 0x1b3fffc0},
		{new(uint256.Int).Rsh(powLimit, 1), 0, 2 * 144, new(uint256.Int).Rsh(powLimit, 2), 0x1b3fffc0},
		{new(uint256.Int).Rsh(powLimit, 2), 0, 2 * 144, new(uint256.Int).Rsh(powLimit, 3), 0x1b1fffe0},
		{new(uint256.Int).Rsh(powLimit, 3), 0, 2 * 144, new(uint256.Int).Rsh(powLimit, 4), 0x1b0ffff0},
		{powLimit, 0, 2 * (256 - 42) * 144, uint256.NewInt(3), 0x01030000},
		{powLimit, 0, 2*(256-32)*144 + 119, uint256.NewInt(1), 0x01010000},
		{powLimit, 0, 2*(256-40)*144 + 120, uint256.NewInt(1), 0x01010000},
		{powLimit, 0, 2*(256-39)*144 - 1, uint256.NewInt(1), 0x01010000},
		// The target bottoms out at 1.
		{powLimit, 0, 2 * (256 - 33) * 144, uint256.NewInt(1), 0x01010000},
		{powLimit, 0, 2 * (256 - 32) * 144, uint256.NewInt(1), 0x01010000},
		{uint256.NewInt(1), 0, 2 * (256 - 32) * 144, uint256.NewInt(1), 0x01010000},
		// Blocks arriving far too late are clamped at the limit.
		{powLimit, 2 * (512 - 32) * 144, 0, powLimit, 0x1c00ffff},
		{uint256.NewInt(1), (512 - 64) * 144 * 600, 0, powLimit, 0x1c00ffff},
		// A single block arriving 300 seconds early.
		{powLimit, 300, 1, single300Target, 0x1c00ffb1},
		{funnyRefTarget, 600 * 2 * 33 * 144, 0, powLimit, 0x1c00ffff},
		// Overflows to exactly 2^256.
		{uint256.NewInt(1), 600 * 2 * 256 * 144, 0, powLimit, 0x1c00ffff},
		// Just under the limit without clamping.
		{uint256.NewInt(1), 600*2*224*144 - 1, 0, powLimit, 0x1c00ffff},
	}

	for i, test := range tests {
		nextTarget := calculateTestASERT(test.refTarget, parentTimeDiff+test.timeDiff, test.heightDiff)
		bits := TargetToCompact(nextTarget)
		if !nextTarget.Eq(test.expectedTarget) || bits != test.expectedBits {
			t.Fatalf("TestCalculateASERT: test %d (ref=%s timeDiff=%d heightDiff=%d): "+
				"got %s (0x%08x), want %s (0x%08x)", i, test.refTarget.Hex(), parentTimeDiff+test.timeDiff,
				test.heightDiff, nextTarget.Hex(), bits, test.expectedTarget.Hex(), test.expectedBits)
		}
	}
}

func TestCalculateASERTZeroReference(t *testing.T) {
	zero := calculateTestASERT(uint256.NewInt(0), parentTimeDiff+600, 0)
	one := calculateTestASERT(uint256.NewInt(1), parentTimeDiff+600, 0)
	if !zero.Eq(one) {
		t.Fatalf("TestCalculateASERTZeroReference: got %s, want %s", zero.Hex(), one.Hex())
	}
}

func TestCalculateASERTSaturatesExtremeInputs(t *testing.T) {
	powLimit := testPowLimit()
	maxInt64 := int64(^uint64(0) >> 1)

	if next := calculateTestASERT(powLimit, maxInt64, 0); !next.Eq(powLimit) {
		t.Fatalf("TestCalculateASERTSaturatesExtremeInputs: got %s for a huge time difference", next.Hex())
	}
	if next := calculateTestASERT(powLimit, -maxInt64, maxInt64-1); !next.Eq(uint256.NewInt(1)) {
		t.Fatalf("TestCalculateASERTSaturatesExtremeInputs: got %s for a huge height difference", next.Hex())
	}

	// A reference above the limit whose product with the factor needs more than 256 bits.
	allOnes := new(uint256.Int).SetAllOne()
	next := CalculateASERT(allOnes, testTargetSpacing, parentTimeDiff+600, 0, allOnes, testHalfLife)
	if !next.Eq(allOnes) {
		t.Fatalf("TestCalculateASERTSaturatesExtremeInputs: got %s for an all-ones reference", next.Hex())
	}
}

func TestCalculateASERTPanicsOnNegativeHeightDiff(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("TestCalculateASERTPanicsOnNegativeHeightDiff: expected a panic")
		}
	}()
	calculateTestASERT(testPowLimit(), 0, -1)
}
