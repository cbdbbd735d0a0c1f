package pow

import (
	"encoding/binary"
	"testing"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
)

func hashFromLanes(lanes ...uint64) *externalapi.DomainHash {
	var hashBytes [externalapi.DomainHashSize]byte
	for i, lane := range lanes {
		binary.LittleEndian.PutUint64(hashBytes[8*i:], lane)
	}
	return externalapi.NewDomainHashFromByteArray(&hashBytes)
}

func TestXoShiRo256PlusPlus(t *testing.T) {
	generator := newxoShiRo256PlusPlus(hashFromLanes(1, 2, 3, 4))
	expected := []uint64{
		41943041, 58720359, 3588806011781223, 3591011842654386,
		9228616714210784205, 9973669472204895162,
	}
	for i, want := range expected {
		if got := generator.Uint64(); got != want {
			t.Fatalf("TestXoShiRo256PlusPlus: output %d: got %d, want %d", i, got, want)
		}
	}
}

func TestXoShiRo256PlusPlusLaneOrder(t *testing.T) {
	var seedBytes [externalapi.DomainHashSize]byte
	for i := range seedBytes {
		seedBytes[i] = byte(i)
	}
	generator := newxoShiRo256PlusPlus(externalapi.NewDomainHashFromByteArray(&seedBytes))
	expected := []uint64{0x171513110f151311, 0xa2209f1d9c1e9d1b, 0xe0d100f0a090c0b0}
	for i, want := range expected {
		if got := generator.Uint64(); got != want {
			t.Fatalf("TestXoShiRo256PlusPlusLaneOrder: output %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestXoShiRo256PlusPlusCloneAndReset(t *testing.T) {
	seed := hashFromLanes(0xdeadbeef, 42, 7, 1<<63)
	generator := newxoShiRo256PlusPlus(seed)
	generator.Uint64()
	generator.Uint64()

	clone := generator.Clone()
	for i := 0; i < 10; i++ {
		if a, b := generator.Uint64(), clone.Uint64(); a != b {
			t.Fatalf("TestXoShiRo256PlusPlusCloneAndReset: output %d of the clone diverged: %d != %d", i, a, b)
		}
	}

	// Advancing one must not advance the other.
	clone.Uint64()
	if generator.Uint64() == clone.Uint64() {
		t.Fatalf("TestXoShiRo256PlusPlusCloneAndReset: clone shares state with the original")
	}

	generator.Reset(seed)
	fresh := newxoShiRo256PlusPlus(seed)
	for i := 0; i < 10; i++ {
		if a, b := generator.Uint64(), fresh.Uint64(); a != b {
			t.Fatalf("TestXoShiRo256PlusPlusCloneAndReset: output %d after Reset: %d != %d", i, a, b)
		}
	}
}
