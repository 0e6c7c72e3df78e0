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

// Package contract is the entry point of the charms validity predicate. It
// resolves the action named by a transaction's public inputs and dispatches
// to the matching token or NFT rule.
//
// A Verifier wraps the router with logging, metrics and protocol parameters:
//
//	v := contract.NewVerifier(
//		contract.WithLogger(logger),
//		contract.WithParams(charm.DefaultParams()),
//	)
//	if err := v.Verify(app, tx, publicInputs, witness); err != nil {
//		...
//	}
//
// VerifyBatch checks independent transactions in parallel.
package contract
