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

package contract

import (
	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/nft"
	"github.com/bitsnark/grail-pro-charms/token"
)

// Route returns the rule checking the given action under the given parameters
func Route(action Action, pp *charm.Params) (charm.RuleFunc, error) {
	pp = charm.ParamsOrDefault(pp)
	switch action {
	case ActionMint:
		if pp.TokenMode == charm.TokenModeLineageOnly {
			return token.ValidateLineageOnly, nil
		}
		return token.ValidateMint, nil
	case ActionBurn:
		if pp.TokenMode == charm.TokenModeLineageOnly {
			return token.ValidateLineageOnly, nil
		}
		return token.ValidateBurn, nil
	case ActionTransfer:
		return token.ValidateTransfer, nil
	case ActionDeploy:
		return nft.ValidateDeploy, nil
	case ActionUpdate:
		return nft.ValidateUpdate, nil
	default:
		return nil, charm.UnknownActionError{
			Kind:   action.Kind(),
			Action: action.String(),
		}
	}
}
