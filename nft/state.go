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

package nft

import (
	"github.com/bitsnark/grail-pro-charms/charm"
)

// Roster is the governance state carried by an NFT: display metadata and the
// cosigner set with its signing threshold
type Roster struct {
	Ticker           *string  `cbor:"ticker,omitempty"`
	Name             *string  `cbor:"name,omitempty"`
	Image            *string  `cbor:"image,omitempty"`
	Url              *string  `cbor:"url,omitempty"`
	CurrentCosigners string   `cbor:"current_cosigners"`
	CurrentThreshold uint32   `cbor:"current_threshold"`
	NewCosigners     []string `cbor:"new_cosigners,omitempty"`
}

// Cosigners returns the parsed current cosigner list
func (r Roster) Cosigners() []string {
	return charm.ParseCosigners(r.CurrentCosigners)
}

// ValidateQuorum checks that the current roster can reach its threshold
func (r Roster) ValidateQuorum(strict bool) error {
	return charm.ValidateQuorum(r.Cosigners(), r.CurrentThreshold, strict)
}
