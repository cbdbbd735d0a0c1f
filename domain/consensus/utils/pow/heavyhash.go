package pow

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/hashes"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/matrixchecks"
	"github.com/pkg/errors"
)

// productShift attenuates each matrix-vector product entry back to 4 bits.
const productShift = 10

// MatrixSeed returns the seed the HeavyHash matrix of a block's children is
// generated from: SHA3-256 over the parent hash bytes.
func MatrixSeed(prevBlockHash *externalapi.DomainHash) *externalapi.DomainHash {
	writer := hashes.NewSHA3Writer()
	writer.InfallibleWrite(prevBlockHash.ByteSlice())
	return writer.Finalize()
}

// HeavyHash computes the proof-of-work hash of a serialized header whose
// parent is prevBlockHash.
func HeavyHash(headerBytes []byte, prevBlockHash *externalapi.DomainHash) *externalapi.DomainHash {
	return GenerateMatrix(MatrixSeed(prevBlockHash)).HeavyHash(headerBytes)
}

// HeavyHash hashes headerBytes through the matrix:
// SHA3-256(SHA3-256(header) XOR pack((mat * nibbles(SHA3-256(header))) >> 10)).
func (mat *Matrix) HeavyHash(headerBytes []byte) *externalapi.DomainHash {
	if !matrixchecks.Is4BitPrecision(&mat.rows) {
		panic(errors.New("HeavyHash called with a matrix that has entries wider than 4 bits"))
	}

	writer := hashes.NewSHA3Writer()
	writer.InfallibleWrite(headerBytes)
	hashBytes := writer.Finalize().ByteArray()

	var vector [MatrixSize]uint64
	for i := 0; i < MatrixSize/2; i++ {
		vector[2*i] = uint64(hashBytes[i] >> 4)
		vector[2*i+1] = uint64(hashBytes[i] & 0x0F)
	}

	// Matrix-vector multiplication, and convert to 4 bits.
	var product [MatrixSize]uint64
	for i := 0; i < MatrixSize; i++ {
		var sum uint64
		for j := 0; j < MatrixSize; j++ {
			sum += uint64(mat.rows[i][j]) * vector[j]
		}
		product[i] = sum >> productShift
	}

	// Concatenate 4 LSBs back to 8 bit xor with the first digest
	var res [externalapi.DomainHashSize]byte
	for i := range res {
		res[i] = hashBytes[i] ^ (byte(product[2*i]<<4) | byte(product[2*i+1]))
	}

	writer = hashes.NewSHA3Writer()
	writer.InfallibleWrite(res[:])
	return writer.Finalize()
}
