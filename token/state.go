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
	"errors"
	"fmt"

	"github.com/bitsnark/grail-pro-charms/cbor"
)

// Action records whether a locked-funds record was created by a mint or a burn
type Action uint8

const (
	ActionMint Action = iota + 1
	ActionBurn
)

const (
	actionMintName = "Mint"
	actionBurnName = "Burn"
)

func (a Action) String() string {
	switch a {
	case ActionMint:
		return actionMintName
	case ActionBurn:
		return actionBurnName
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

func (a Action) MarshalCBOR() ([]byte, error) {
	switch a {
	case ActionMint, ActionBurn:
		return cbor.Encode(a.String())
	default:
		return nil, fmt.Errorf("cannot encode unknown token action %d", uint8(a))
	}
}

func (a *Action) UnmarshalCBOR(data []byte) error {
	var tmp string
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	switch tmp {
	case actionMintName:
		*a = ActionMint
	case actionBurnName:
		*a = ActionBurn
	default:
		return fmt.Errorf("unknown token action: %q", tmp)
	}
	return nil
}

// State is the locked-funds record carried by a bridged token output
type State struct {
	// FundingUtxo identifies the backing lock transaction
	FundingUtxo   string `cbor:"funding_utxo"`
	LockAmount    uint64 `cbor:"lock_amount"`
	ChangeAmount  uint64 `cbor:"change_amount"`
	ChangeAddress string `cbor:"change_address"`
	Fee           uint64 `cbor:"fee"`
	Action        Action `cbor:"action"`
}

func (s *State) UnmarshalCBOR(data []byte) error {
	type tState State
	var tmp tState
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if tmp.Action == 0 {
		return errors.New("token state has no action")
	}
	*s = State(tmp)
	return nil
}
