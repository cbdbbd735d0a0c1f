package blockvalidator

import (
	"testing"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/processes/difficultymanager"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/processes/powhasher"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/blockheader"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
	"github.com/pkg/errors"
)

func newValidatorForTest(params *dagconfig.Params) model.BlockValidator {
	return New(params, difficultymanager.New(params, nil), powhasher.New(nil, 0))
}

// findHeader returns the first header, by nonce, whose proof-of-work check
// against bits returns an error matching wantValid.
func findHeader(t *testing.T, params *dagconfig.Params, bits uint32, wantValid bool) *blockheader.BlockHeader {
	for nonce := uint32(0); nonce < 64; nonce++ {
		header := blockheader.NewBlockHeader(1, externalapi.NewZeroHash(), nil, 1_700_000_000, bits, nonce)
		err := pow.CheckProofOfWorkWithTarget(header.BlockHash(), bits, params.PowMax)
		if (err == nil) == wantValid {
			return header
		}
	}
	t.Fatalf("findHeader: no header with valid=%t in 64 nonces", wantValid)
	return nil
}

func TestValidateProofOfWorkAndDifficulty(t *testing.T) {
	params := dagconfig.SimnetParams.Clone()
	validator := newValidatorForTest(params)

	valid := findHeader(t, params, params.PowLimitBits, true)
	if err := validator.ValidateProofOfWorkAndDifficulty(valid, valid.Bits, nil); err != nil {
		t.Fatalf("TestValidateProofOfWorkAndDifficulty: valid header rejected: %+v", err)
	}

	invalid := findHeader(t, params, params.PowLimitBits, false)
	err := validator.ValidateProofOfWorkAndDifficulty(invalid, invalid.Bits, nil)
	if !errors.Is(err, pow.ErrHighHash) {
		t.Fatalf("TestValidateProofOfWorkAndDifficulty: expected ErrHighHash, got: %+v", err)
	}

	err = validator.ValidateProofOfWorkAndDifficulty(valid, 0x1f7fffff, nil)
	if !errors.Is(err, pow.ErrUnexpectedDifficulty) {
		t.Fatalf("TestValidateProofOfWorkAndDifficulty: expected ErrUnexpectedDifficulty, got: %+v", err)
	}
}

func TestValidateProofOfWorkSkipped(t *testing.T) {
	params := dagconfig.SimnetParams.Clone()
	params.SkipProofOfWork = true
	validator := newValidatorForTest(params)

	invalid := findHeader(t, params, params.PowLimitBits, false)
	if err := validator.ValidateProofOfWorkAndDifficulty(invalid, invalid.Bits, nil); err != nil {
		t.Fatalf("TestValidateProofOfWorkSkipped: expected nil, got: %+v", err)
	}

	err := validator.ValidateProofOfWorkAndDifficulty(invalid, 0x1f7fffff, nil)
	if !errors.Is(err, pow.ErrUnexpectedDifficulty) {
		t.Fatalf("TestValidateProofOfWorkSkipped: difficulty must still be checked, got: %+v", err)
	}
}

type legacyBlock struct{}

func (legacyBlock) Hash() *externalapi.DomainHash { return externalapi.NewZeroHash() }
func (legacyBlock) Height() uint64                { return 10 }
func (legacyBlock) Timestamp() int64              { return 0 }
func (legacyBlock) Bits() uint32                  { return 0x1d00ffff }
func (legacyBlock) MedianTimePast() int64         { return 0 }
func (legacyBlock) Parent() model.BlockIndex      { return nil }

func TestValidateDifficultyManagerError(t *testing.T) {
	params := dagconfig.MainnetParams.Clone()
	validator := newValidatorForTest(params)

	header := blockheader.NewBlockHeader(1, nil, nil, 0, 0x1d00ffff, 0)
	if err := validator.ValidateProofOfWorkAndDifficulty(header, 0x1d00ffff, legacyBlock{}); err == nil {
		t.Fatalf("TestValidateDifficultyManagerError: expected an error without a legacy calculator")
	}
}
