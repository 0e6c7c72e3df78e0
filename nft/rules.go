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

// ValidateDeploy checks the creation of a roster NFT. The app identity must be
// the digest of the text preimage supplied as the private witness.
func ValidateDeploy(
	app charm.App,
	tx *charm.Transaction,
	w charm.Witness,
	pp *charm.Params,
) error {
	pp = charm.ParamsOrDefault(pp)
	if tx.InputCount() != 0 || tx.OutputCount() != 1 {
		return charm.TransactionShapeError{
			Action:  "deploy",
			Inputs:  tx.InputCount(),
			Outputs: tx.OutputCount(),
			Want:    "no inputs and exactly 1 output",
		}
	}
	preimage, err := w.Text()
	if err != nil {
		return InvalidPreimageError{Err: err}
	}
	digest, err := pp.Digest.Sum([]byte(preimage))
	if err != nil {
		return err
	}
	if digest != app.Identity {
		return IdentityMismatchError{
			Digest:   pp.Digest,
			Expected: app.Identity,
			Actual:   digest,
		}
	}
	roster, err := outputRoster(app, tx)
	if err != nil {
		return err
	}
	return roster.ValidateQuorum(pp.StrictCosignerKeys)
}

// ValidateUpdate checks the replacement of a roster. The previous roster must
// be consumed; the new one stands on its own.
func ValidateUpdate(
	app charm.App,
	tx *charm.Transaction,
	_ charm.Witness,
	pp *charm.Params,
) error {
	pp = charm.ParamsOrDefault(pp)
	if tx.InputCount() < 1 || tx.OutputCount() < 1 {
		return charm.TransactionShapeError{
			Action:  "update",
			Inputs:  tx.InputCount(),
			Outputs: tx.OutputCount(),
			Want:    "at least 1 input and at least 1 output",
		}
	}
	if err := charm.CheckLineage(tx, app); err != nil {
		return err
	}
	roster, err := outputRoster(app, tx)
	if err != nil {
		return err
	}
	return roster.ValidateQuorum(pp.StrictCosignerKeys)
}

func outputRoster(app charm.App, tx *charm.Transaction) (Roster, error) {
	_, rec, ok := tx.FirstOutputRecord(app)
	if !ok {
		return Roster{}, charm.MissingOutputStateError{App: app}
	}
	var ret Roster
	if err := rec.Decode(&ret); err != nil {
		return Roster{}, charm.MissingOutputStateError{App: app, Err: err}
	}
	return ret, nil
}
