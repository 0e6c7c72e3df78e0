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

// Package charm provides the types shared by every charm app contract: app
// identities, outpoints, the read-only transaction view, opaque records,
// protocol parameters and the error taxonomy.
//
// Rules report one of two severities. Errors matching ErrRuleFailed mean a
// well-formed transaction failed an invariant. Errors matching ErrStructural
// mean the caller operated outside the protocol's domain (an unknown action,
// a malformed witness, missing prior state) and the whole verification must
// be aborted.
//
// Rule functions have this signature:
//
//	func Validate{Action}(app App, tx *Transaction, w Witness, pp *Params) error
//
// The shared invariants used by both the token and NFT rules live in rules.go:
// CheckLineage and ValidateQuorum.
package charm
