// Copyright 2025 BitSNARK
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package charm

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// TokenMode selects which revision of the token mint/burn rules applies
type TokenMode uint8

const (
	// TokenModeLockRecord checks mint and burn against the locked-funds record
	// carried by the declared input
	TokenModeLockRecord TokenMode = iota
	// TokenModeLineageOnly accepts mint and burn when the transaction consumes
	// the governing roster NFT
	TokenModeLineageOnly
)

func ParseTokenMode(s string) (TokenMode, error) {
	switch strings.ToLower(s) {
	case "lock-record", "lockrecord":
		return TokenModeLockRecord, nil
	case "lineage-only", "lineageonly":
		return TokenModeLineageOnly, nil
	default:
		return 0, fmt.Errorf("unknown token mode: %q", s)
	}
}

func (m TokenMode) String() string {
	switch m {
	case TokenModeLockRecord:
		return "lock-record"
	case TokenModeLineageOnly:
		return "lineage-only"
	default:
		return fmt.Sprintf("TokenMode(%d)", uint8(m))
	}
}

// AmountDecoding selects how transfer summation treats an amount record
// that cannot be decoded
type AmountDecoding uint8

const (
	// AmountDecodeLenient counts an undecodable amount as zero
	AmountDecodeLenient AmountDecoding = iota
	// AmountDecodeStrict fails the transfer on an undecodable amount
	AmountDecodeStrict
)

func ParseAmountDecoding(s string) (AmountDecoding, error) {
	switch strings.ToLower(s) {
	case "lenient":
		return AmountDecodeLenient, nil
	case "strict":
		return AmountDecodeStrict, nil
	default:
		return 0, fmt.Errorf("unknown amount decoding: %q", s)
	}
}

func (a AmountDecoding) String() string {
	switch a {
	case AmountDecodeLenient:
		return "lenient"
	case AmountDecodeStrict:
		return "strict"
	default:
		return fmt.Sprintf("AmountDecoding(%d)", uint8(a))
	}
}

// Params holds the knobs that must be agreed by every party evaluating a
// given protocol instance
type Params struct {
	// Digest binds an NFT identity to its deploy preimage
	Digest DigestAlgorithm
	// TokenMode selects the mint/burn rule revision
	TokenMode TokenMode
	// AmountDecoding controls transfer summation of undecodable amounts
	AmountDecoding AmountDecoding
	// RequireTransferLineage makes a transfer consume a prior instance of the token
	RequireTransferLineage bool
	// StrictMintLockEquality additionally requires the minted record to keep
	// the input lock amount unchanged
	StrictMintLockEquality bool
	// StrictCosignerKeys requires each cosigner to be a unique BIP-340 x-only
	// public key in hex
	StrictCosignerKeys bool
	// ChangeAddressNet, when set, requires token change addresses to be valid
	// Bitcoin addresses for that network
	ChangeAddressNet *chaincfg.Params
}

// DefaultParams returns the parameters of the current protocol revision
func DefaultParams() Params {
	return Params{
		Digest:                 DigestSHA256,
		TokenMode:              TokenModeLockRecord,
		AmountDecoding:         AmountDecodeLenient,
		RequireTransferLineage: true,
	}
}

// ParamsOrDefault returns pp, or the default parameters when pp is nil
func ParamsOrDefault(pp *Params) *Params {
	if pp != nil {
		return pp
	}
	ret := DefaultParams()
	return &ret
}

// NetworkParams maps a Bitcoin network name to its chain parameters
func NetworkParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown bitcoin network: %q", name)
	}
}
