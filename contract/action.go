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
	"fmt"

	"github.com/bitsnark/grail-pro-charms/charm"
)

// Action identifies the rule set a transaction is checked against
type Action uint8

const (
	ActionMint Action = iota + 1
	ActionBurn
	ActionTransfer
	ActionDeploy
	ActionUpdate
)

var actionNames = map[Action]string{
	ActionMint:     "mint",
	ActionBurn:     "burn",
	ActionTransfer: "transfer",
	ActionDeploy:   "deploy",
	ActionUpdate:   "update",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Kind returns the app kind the action belongs to
func (a Action) Kind() charm.AppKind {
	switch a {
	case ActionMint, ActionBurn, ActionTransfer:
		return charm.KindToken
	case ActionDeploy, ActionUpdate:
		return charm.KindNFT
	default:
		return 0
	}
}

// ParseAction resolves the public action name for an app kind. Names are
// matched exactly.
func ParseAction(kind charm.AppKind, name string) (Action, error) {
	if !kind.Valid() {
		return 0, charm.UnknownAppKindError{Kind: kind}
	}
	for action, actionName := range actionNames {
		if actionName == name && action.Kind() == kind {
			return action, nil
		}
	}
	return 0, charm.UnknownActionError{Kind: kind, Action: name}
}

// ActionFromPublicInputs reads and resolves the action named by the public inputs
func ActionFromPublicInputs(kind charm.AppKind, pub charm.PublicInputs) (Action, error) {
	name, ok := pub.Action()
	if !ok {
		return 0, charm.MissingActionError{}
	}
	return ParseAction(kind, name)
}
