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
	"math/bits"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/btcsuite/btcd/btcutil"
)

const (
	sideInput  = "input"
	sideOutput = "output"
)

// LocateInputState finds the prior state declared by the private witness.
// Every failure here is structural: the witness names an input the protocol
// guarantees to carry the app's state.
func LocateInputState(
	app charm.App,
	tx *charm.Transaction,
	w charm.Witness,
) (charm.Outpoint, State, Witness, error) {
	witness, outpoint, err := DecodeWitness(w)
	if err != nil {
		return charm.Outpoint{}, State{}, Witness{}, err
	}
	charms, ok := tx.Input(outpoint)
	if !ok {
		return outpoint, State{}, witness, charm.MissingPriorStateError{
			Outpoint: outpoint,
			App:      app,
			Reason:   "outpoint is not spent by the transaction",
		}
	}
	rec, ok := charms.Get(app)
	if !ok {
		return outpoint, State{}, witness, charm.MissingPriorStateError{
			Outpoint: outpoint,
			App:      app,
			Reason:   "input carries no state for the app",
		}
	}
	var state State
	if err := rec.Decode(&state); err != nil {
		return outpoint, State{}, witness, charm.MissingPriorStateError{
			Outpoint: outpoint,
			App:      app,
			Reason:   "input state is not a token record",
			Err:      err,
		}
	}
	return outpoint, state, witness, nil
}

// ValidateMint checks a mint against the locked-funds record it consumes
func ValidateMint(
	app charm.App,
	tx *charm.Transaction,
	w charm.Witness,
	pp *charm.Params,
) error {
	pp = charm.ParamsOrDefault(pp)
	_, in, witness, err := LocateInputState(app, tx, w)
	if err != nil {
		return err
	}
	if in.Action != ActionMint {
		return ActionMismatchError{Expected: ActionMint, Actual: in.Action}
	}
	if witness.FundingTx == "" {
		return charm.MalformedWitnessError{
			Reason: "mint witness does not name the funding transaction",
		}
	}
	out, err := firstOutputState(app, tx)
	if err != nil {
		return err
	}
	if in.FundingUtxo != witness.FundingTx {
		return FundingMismatchError{
			Source:   "witness",
			Expected: in.FundingUtxo,
			Actual:   witness.FundingTx,
		}
	}
	if pp.StrictMintLockEquality && in.LockAmount != out.LockAmount {
		return LockAmountMismatchError{
			Input:  in.LockAmount,
			Output: out.LockAmount,
		}
	}
	if in.FundingUtxo != out.FundingUtxo {
		return FundingMismatchError{
			Source:   sideOutput,
			Expected: in.FundingUtxo,
			Actual:   out.FundingUtxo,
		}
	}
	// in.lock - out.lock + fee == 0 over the integers
	expected, carry := bits.Add64(in.LockAmount, in.Fee, 0)
	if carry != 0 || expected != out.LockAmount {
		return MintBalanceError{
			InputLock:  in.LockAmount,
			OutputLock: out.LockAmount,
			Fee:        in.Fee,
		}
	}
	return nil
}

// ValidateBurn checks that a burn keeps the locked funds accounted for
func ValidateBurn(
	app charm.App,
	tx *charm.Transaction,
	w charm.Witness,
	pp *charm.Params,
) error {
	pp = charm.ParamsOrDefault(pp)
	_, in, _, err := LocateInputState(app, tx, w)
	if err != nil {
		return err
	}
	out, err := firstOutputState(app, tx)
	if err != nil {
		return err
	}
	if out.ChangeAddress != in.ChangeAddress {
		return ChangeAddressMismatchError{
			Expected: in.ChangeAddress,
			Actual:   out.ChangeAddress,
		}
	}
	if out.FundingUtxo != in.FundingUtxo {
		return FundingMismatchError{
			Source:   sideOutput,
			Expected: in.FundingUtxo,
			Actual:   out.FundingUtxo,
		}
	}
	if err := validateChangeAddress(out.ChangeAddress, pp); err != nil {
		return err
	}
	// TODO: account for the fee once the protocol settles how burns pay it
	total, carry := bits.Add64(out.LockAmount, out.ChangeAmount, 0)
	if carry != 0 || total != in.LockAmount {
		return BurnBalanceError{
			InputLock:    in.LockAmount,
			OutputLock:   out.LockAmount,
			OutputChange: out.ChangeAmount,
		}
	}
	return nil
}

// ValidateTransfer checks that a plain amount transfer conserves value
func ValidateTransfer(
	app charm.App,
	tx *charm.Transaction,
	_ charm.Witness,
	pp *charm.Params,
) error {
	pp = charm.ParamsOrDefault(pp)
	if tx.InputCount() < 1 || tx.OutputCount() != 2 {
		return charm.TransactionShapeError{
			Action:  "transfer",
			Inputs:  tx.InputCount(),
			Outputs: tx.OutputCount(),
			Want:    "at least 1 input and exactly 2 outputs",
		}
	}
	if pp.RequireTransferLineage {
		if err := charm.CheckLineage(tx, app); err != nil {
			return err
		}
	}
	totalIn, err := sumAmounts(tx.InputRecords(app), sideInput, pp)
	if err != nil {
		return err
	}
	outRecs := make([]charm.Record, 0, 2)
	for idx := range tx.OutputCount() {
		if rec, ok := tx.OutputRecord(idx, app); ok {
			outRecs = append(outRecs, rec)
		}
	}
	totalOut, err := sumAmounts(outRecs, sideOutput, pp)
	if err != nil {
		return err
	}
	if totalIn == 0 {
		return ZeroTransferError{}
	}
	if totalIn != totalOut {
		return TransferBalanceError{TotalIn: totalIn, TotalOut: totalOut}
	}
	return nil
}

// ValidateLineageOnly accepts a mint or burn when the transaction consumes
// the roster NFT sharing the token's identity and verification key
func ValidateLineageOnly(
	app charm.App,
	tx *charm.Transaction,
	_ charm.Witness,
	_ *charm.Params,
) error {
	return charm.CheckLineage(tx, app.WithKind(charm.KindNFT))
}

func firstOutputState(app charm.App, tx *charm.Transaction) (State, error) {
	_, rec, ok := tx.FirstOutputRecord(app)
	if !ok {
		return State{}, charm.MissingOutputStateError{App: app}
	}
	var ret State
	if err := rec.Decode(&ret); err != nil {
		return State{}, charm.MissingOutputStateError{App: app, Err: err}
	}
	return ret, nil
}

func sumAmounts(
	recs []charm.Record,
	side string,
	pp *charm.Params,
) (uint64, error) {
	var total uint64
	for _, rec := range recs {
		var amount uint64
		if err := rec.Decode(&amount); err != nil {
			if pp.AmountDecoding == charm.AmountDecodeStrict {
				return 0, AmountDecodeError{Side: side, Err: err}
			}
			// Lenient decoding counts an unreadable amount as zero
			continue
		}
		var carry uint64
		total, carry = bits.Add64(total, amount, 0)
		if carry != 0 {
			return 0, AmountOverflowError{Side: side}
		}
	}
	return total, nil
}

func validateChangeAddress(address string, pp *charm.Params) error {
	if pp.ChangeAddressNet == nil {
		return nil
	}
	decoded, err := btcutil.DecodeAddress(address, pp.ChangeAddressNet)
	if err != nil {
		return InvalidChangeAddressError{
			Address: address,
			Network: pp.ChangeAddressNet.Name,
			Err:     err,
		}
	}
	if !decoded.IsForNet(pp.ChangeAddressNet) {
		return InvalidChangeAddressError{
			Address: address,
			Network: pp.ChangeAddressNet.Name,
		}
	}
	return nil
}
