// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 Hoosat Oy
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"time"

	"github.com/holiman/uint256"
)

// These variables are the DAG proof-of-work limit parameters for each default
// network.
var (
	// mainPowMax is the highest proof of work value a block can
	// have for the main network. It is the value 2^224 - 1.
	mainPowMax = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 224), uint256.NewInt(1))

	// testnetPowMax is the highest proof of work value a block can
	// have for the test network. It is the value 2^232 - 1.
	testnetPowMax = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 232), uint256.NewInt(1))

	// simnetPowMax is the highest proof of work value a block can
	// have for the simulation test network. It is the value 2^255 - 1.
	simnetPowMax = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 255), uint256.NewInt(1))

	// devnetPowMax is the highest proof of work value a block can
	// have for the development network. It is the value 2^239 - 1.
	devnetPowMax = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 239), uint256.NewInt(1))
)

const (
	defaultTargetTimePerBlock = 10 * time.Minute
	defaultASERTHalfLife      = 2 * 24 * time.Hour
)

// ASERTAnchor is a checkpointed ASERT reference block. When a network carries
// one, ASERT activates by height and the anchor's ancestry is never walked.
type ASERTAnchor struct {
	// Height is the height of the anchor block.
	Height uint64

	// Bits is the compact target of the anchor block.
	Bits uint32

	// PrevBlockTime is the timestamp of the anchor's parent, in unix seconds.
	PrevBlockTime int64
}

// Params defines a network by its proof-of-work and difficulty adjustment
// parameters.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowMax defines the highest allowed proof of work value for a block
	// as a uint256.
	PowMax *uint256.Int

	// PowLimitBits is PowMax in compact form.
	PowLimitBits uint32

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// ASERTHalfLife is the time it takes the target to double or halve when
	// blocks are late or early by that much.
	ASERTHalfLife time.Duration

	// ASERTAnchor, when set, replaces the median-time-past activation check
	// with a height check.
	ASERTAnchor *ASERTAnchor

	// ASERTActivationTime is the median time past, in unix seconds, from
	// which blocks are retargeted with ASERT.
	ASERTActivationTime int64

	// NoRetargeting keeps the difficulty of every block at the previous
	// block's bits.
	NoRetargeting bool

	// SkipProofOfWork indicates whether proof of work should be checked.
	SkipProofOfWork bool
}

// TargetSpacingSeconds returns TargetTimePerBlock in whole seconds.
func (p *Params) TargetSpacingSeconds() int64 {
	return int64(p.TargetTimePerBlock / time.Second)
}

// HalfLifeSeconds returns ASERTHalfLife in whole seconds.
func (p *Params) HalfLifeSeconds() int64 {
	return int64(p.ASERTHalfLife / time.Second)
}

// Clone returns a copy of p that can be adjusted without affecting p.
func (p *Params) Clone() *Params {
	clone := *p
	clone.PowMax = p.PowMax.Clone()
	if p.ASERTAnchor != nil {
		anchor := *p.ASERTAnchor
		clone.ASERTAnchor = &anchor
	}
	return &clone
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:               "heavypow-mainnet",
	PowMax:             mainPowMax,
	PowLimitBits:       0x1d00ffff,
	TargetTimePerBlock: defaultTargetTimePerBlock,
	ASERTHalfLife:      defaultASERTHalfLife,

	// Sun, 15 May 2022 12:00:00 UTC
	ASERTActivationTime: 1652616000,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:               "heavypow-testnet",
	PowMax:             testnetPowMax,
	PowLimitBits:       0x1e00ffff,
	TargetTimePerBlock: defaultTargetTimePerBlock,
	ASERTHalfLife:      time.Hour,

	// Fri, 01 Apr 2022 00:00:00 UTC
	ASERTActivationTime: 1648771200,
}

// SimnetParams defines the network parameters for the simulation test network.
// This network is similar to the normal test network except it is intended
// for private use within a group of individuals doing simulation testing and
// full integration tests between different applications.
var SimnetParams = Params{
	Name:               "heavypow-simnet",
	PowMax:             simnetPowMax,
	PowLimitBits:       0x207fffff,
	TargetTimePerBlock: defaultTargetTimePerBlock,
	ASERTHalfLife:      defaultASERTHalfLife,
	NoRetargeting:      true,
}

// DevnetParams defines the network parameters for the development network.
// Its ASERT anchor is checkpointed at the first block.
var DevnetParams = Params{
	Name:               "heavypow-devnet",
	PowMax:             devnetPowMax,
	PowLimitBits:       0x1e7fffff,
	TargetTimePerBlock: defaultTargetTimePerBlock,
	ASERTHalfLife:      defaultASERTHalfLife,
	ASERTAnchor: &ASERTAnchor{
		Height:        1,
		Bits:          0x1e7fffff,
		PrevBlockTime: 1648771200,
	},
}
