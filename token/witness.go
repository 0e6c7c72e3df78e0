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

package token

import (
	"github.com/bitsnark/grail-pro-charms/cbor"
	"github.com/bitsnark/grail-pro-charms/charm"
)

// Witness is the private witness for mint and burn. UtxoId is the 36-byte
// outpoint of the input carrying the prior state; FundingTx names the backing
// lock transaction and is only used by mint.
type Witness struct {
	UtxoId    cbor.ByteString `cbor:"utxo_id"`
	FundingTx string          `cbor:"funding_tx,omitempty"`
}

// NewWitness builds the encoded private witness for a mint or burn
func NewWitness(outpoint charm.Outpoint, fundingTx string) (charm.Witness, error) {
	data, err := cbor.Encode(
		Witness{
			UtxoId:    cbor.NewByteString(outpoint.Bytes()),
			FundingTx: fundingTx,
		},
	)
	if err != nil {
		return nil, err
	}
	return charm.Witness(data), nil
}

// DecodeWitness decodes the private witness and the outpoint it declares
func DecodeWitness(w charm.Witness) (Witness, charm.Outpoint, error) {
	var ret Witness
	if err := charm.Record(w).Decode(&ret); err != nil {
		return Witness{}, charm.Outpoint{}, charm.MalformedWitnessError{
			Reason: "cannot decode token witness",
			Err:    err,
		}
	}
	outpoint, err := charm.NewOutpointFromBytes(ret.UtxoId.Bytes())
	if err != nil {
		return Witness{}, charm.Outpoint{}, err
	}
	return ret, outpoint, nil
}
