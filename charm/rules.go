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
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// RuleFunc validates a transaction for one app against a single action's
// rules. It returns nil when satisfied, an error matching ErrRuleFailed when
// an invariant does not hold, or an error matching ErrStructural when the
// transaction is outside the protocol's domain.
type RuleFunc func(
	app App,
	tx *Transaction,
	w Witness,
	pp *Params,
) error

// CosignerDelimiter separates cosigners in a roster's cosigner list
const CosignerDelimiter = ","

// CosignerKeyHexLength is the length of a hex-encoded x-only public key
const CosignerKeyHexLength = 64

// CheckLineage ensures at least one input carries state of the given app,
// proving a previously deployed instance is being consumed
func CheckLineage(tx *Transaction, want App) error {
	if !tx.HasInputApp(want) {
		return MissingLineageError{App: want}
	}
	return nil
}

// ParseCosigners splits a delimited cosigner list. Empty entries, including
// those produced by leading or trailing delimiters, are dropped.
func ParseCosigners(list string) []string {
	var ret []string
	for _, cosigner := range strings.Split(list, CosignerDelimiter) {
		if cosigner == "" {
			continue
		}
		ret = append(ret, cosigner)
	}
	return ret
}

// ValidateQuorum checks that a roster can ever reach its threshold. In strict
// mode every cosigner must also be a unique x-only public key.
func ValidateQuorum(cosigners []string, threshold uint32, strict bool) error {
	if threshold == 0 {
		return ThresholdZeroError{}
	}
	if uint64(len(cosigners)) < uint64(threshold) {
		return InsufficientCosignersError{
			Cosigners: len(cosigners),
			Threshold: threshold,
		}
	}
	if !strict {
		return nil
	}
	seen := make(map[string]struct{}, len(cosigners))
	for _, cosigner := range cosigners {
		if err := ValidateCosignerKey(cosigner); err != nil {
			return err
		}
		key := strings.ToLower(cosigner)
		if _, ok := seen[key]; ok {
			return DuplicateCosignerError{Cosigner: cosigner}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ValidateCosignerKey checks that a cosigner is a hex-encoded BIP-340 x-only
// public key
func ValidateCosignerKey(cosigner string) error {
	if len(cosigner) != CosignerKeyHexLength {
		return InvalidCosignerKeyError{
			Cosigner: cosigner,
			Err:      errInvalidKeyLength,
		}
	}
	keyBytes, err := hex.DecodeString(cosigner)
	if err != nil {
		return InvalidCosignerKeyError{Cosigner: cosigner, Err: err}
	}
	if _, err := schnorr.ParsePubKey(keyBytes); err != nil {
		return InvalidCosignerKeyError{Cosigner: cosigner, Err: err}
	}
	return nil
}
