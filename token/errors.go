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
	"fmt"

	"github.com/bitsnark/grail-pro-charms/charm"
)

type ActionMismatchError struct {
	charm.RuleFailure
	Expected Action
	Actual   Action
}

func (e ActionMismatchError) Error() string {
	return fmt.Sprintf(
		"prior state action is %s, expected %s",
		e.Actual,
		e.Expected,
	)
}

// FundingMismatchError indicates a funding reference that differs from the
// one recorded by the prior state
type FundingMismatchError struct {
	charm.RuleFailure
	Source   string
	Expected string
	Actual   string
}

func (e FundingMismatchError) Error() string {
	return fmt.Sprintf(
		"%s funding reference %q does not match prior state %q",
		e.Source,
		e.Actual,
		e.Expected,
	)
}

type LockAmountMismatchError struct {
	charm.RuleFailure
	Input  uint64
	Output uint64
}

func (e LockAmountMismatchError) Error() string {
	return fmt.Sprintf(
		"lock amount changed from %d to %d",
		e.Input,
		e.Output,
	)
}

// MintBalanceError indicates that input lock - output lock + fee is not zero
type MintBalanceError struct {
	charm.RuleFailure
	InputLock  uint64
	OutputLock uint64
	Fee        uint64
}

func (e MintBalanceError) Error() string {
	return fmt.Sprintf(
		"mint does not balance: input lock %d - output lock %d + fee %d != 0",
		e.InputLock,
		e.OutputLock,
		e.Fee,
	)
}

// BurnBalanceError indicates that output lock + output change differs from input lock
type BurnBalanceError struct {
	charm.RuleFailure
	InputLock    uint64
	OutputLock   uint64
	OutputChange uint64
}

func (e BurnBalanceError) Error() string {
	return fmt.Sprintf(
		"burn does not balance: output lock %d + change %d != input lock %d",
		e.OutputLock,
		e.OutputChange,
		e.InputLock,
	)
}

type ChangeAddressMismatchError struct {
	charm.RuleFailure
	Expected string
	Actual   string
}

func (e ChangeAddressMismatchError) Error() string {
	return fmt.Sprintf(
		"change address %q does not match prior state %q",
		e.Actual,
		e.Expected,
	)
}

type InvalidChangeAddressError struct {
	charm.RuleFailure
	Address string
	Network string
	Err     error
}

func (e InvalidChangeAddressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"change address %q is not valid for %s: %v",
			e.Address,
			e.Network,
			e.Err,
		)
	}
	return fmt.Sprintf(
		"change address %q is not valid for %s",
		e.Address,
		e.Network,
	)
}

func (e InvalidChangeAddressError) Unwrap() error { return e.Err }

type TransferBalanceError struct {
	charm.RuleFailure
	TotalIn  uint64
	TotalOut uint64
}

func (e TransferBalanceError) Error() string {
	return fmt.Sprintf(
		"transfer does not balance: inputs %d, outputs %d",
		e.TotalIn,
		e.TotalOut,
	)
}

type ZeroTransferError struct {
	charm.RuleFailure
}

func (ZeroTransferError) Error() string {
	return "transfer moves no value"
}

type AmountOverflowError struct {
	charm.RuleFailure
	Side string
}

func (e AmountOverflowError) Error() string {
	return e.Side + " amounts overflow"
}

// AmountDecodeError is reported for undecodable amounts under strict amount decoding
type AmountDecodeError struct {
	charm.RuleFailure
	Side string
	Err  error
}

func (e AmountDecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s amount: %v", e.Side, e.Err)
}

func (e AmountDecodeError) Unwrap() error { return e.Err }
