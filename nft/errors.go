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
	"fmt"

	"github.com/bitsnark/grail-pro-charms/charm"
)

type InvalidPreimageError struct {
	charm.RuleFailure
	Err error
}

func (e InvalidPreimageError) Error() string {
	return fmt.Sprintf("deploy witness is not a text preimage: %v", e.Err)
}

func (e InvalidPreimageError) Unwrap() error { return e.Err }

// IdentityMismatchError indicates that the digest of the deploy preimage is
// not the app identity
type IdentityMismatchError struct {
	charm.RuleFailure
	Digest   charm.DigestAlgorithm
	Expected charm.Hash32
	Actual   charm.Hash32
}

func (e IdentityMismatchError) Error() string {
	return fmt.Sprintf(
		"%s of deploy preimage is %s, app identity is %s",
		e.Digest,
		e.Actual,
		e.Expected,
	)
}
