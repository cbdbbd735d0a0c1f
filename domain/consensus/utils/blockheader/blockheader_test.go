package blockheader

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/hashes"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func testHeader(t *testing.T) *BlockHeader {
	prevBlockHash, err := externalapi.NewDomainHashFromString(
		"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatal(err)
	}
	merkleRoot, err := externalapi.NewDomainHashFromString(
		"f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatal(err)
	}
	return NewBlockHeader(0x20000000, prevBlockHash, merkleRoot, 0x62805d40, 0x1d00ffff, 0xdeadbeef)
}

func TestSerialize(t *testing.T) {
	header := testHeader(t)
	serialized := header.Serialize()
	if len(serialized) != HeaderSize || HeaderSize != 80 {
		t.Fatalf("TestSerialize: got %d bytes, want 80", len(serialized))
	}

	expected, _ := hex.DecodeString("00000020" +
		"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
		"f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff00112233445566778899aabbccddeeff" +
		"405d8062" + "ffff001d" + "efbeadde")
	if !bytes.Equal(serialized, expected) {
		t.Fatalf("TestSerialize: got %x, want %x", serialized, expected)
	}
}

func TestDeserialize(t *testing.T) {
	header := testHeader(t)
	deserialized, err := Deserialize(header.Serialize())
	if err != nil {
		t.Fatalf("TestDeserialize: %s", err)
	}
	if deserialized.Version != header.Version ||
		!deserialized.PrevBlockHash.Equal(header.PrevBlockHash) ||
		!deserialized.MerkleRoot.Equal(header.MerkleRoot) ||
		deserialized.Timestamp != header.Timestamp ||
		deserialized.Bits != header.Bits ||
		deserialized.Nonce != header.Nonce {
		t.Fatalf("TestDeserialize: got %s, want %s", spew.Sdump(deserialized), spew.Sdump(header))
	}

	for _, size := range []int{0, HeaderSize - 1, HeaderSize + 1} {
		if _, err := Deserialize(make([]byte, size)); !errors.Is(err, ErrMalformedHeader) {
			t.Fatalf("TestDeserialize: %d bytes: got %v, want ErrMalformedHeader", size, err)
		}
	}
}

func TestNewBlockHeaderDefaultsHashes(t *testing.T) {
	header := NewBlockHeader(1, nil, nil, 0, 0, 0)
	if !header.ParentHash().Equal(externalapi.NewZeroHash()) || !header.MerkleRoot.Equal(externalapi.NewZeroHash()) {
		t.Fatalf("TestNewBlockHeaderDefaultsHashes: nil hashes were not replaced with the zero hash")
	}
}

func TestHashes(t *testing.T) {
	header := testHeader(t)
	if *header.LightHash() != *hashes.LightHash(header.PoWBytes()) {
		t.Fatalf("TestHashes: LightHash does not cover the serialized header")
	}
	if !header.BlockHash().Equal(pow.HeavyHash(header.PoWBytes(), header.ParentHash())) {
		t.Fatalf("TestHashes: BlockHash is not the HeavyHash of the header")
	}

	other := testHeader(t)
	other.Nonce++
	if *other.LightHash() == *header.LightHash() {
		t.Fatalf("TestHashes: different nonces produced the same light hash")
	}
	if other.BlockHash().Equal(header.BlockHash()) {
		t.Fatalf("TestHashes: different nonces produced the same block hash")
	}
}
