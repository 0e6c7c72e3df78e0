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

package charm

import (
	"fmt"
	"strings"
)

// AppKind is the single-character tag naming the kind of a charm app
type AppKind byte

const (
	KindToken AppKind = 't'
	KindNFT   AppKind = 'n'
)

func (k AppKind) Valid() bool {
	return k == KindToken || k == KindNFT
}

// Name returns a human readable name for the kind
func (k AppKind) Name() string {
	switch k {
	case KindToken:
		return "token"
	case KindNFT:
		return "nft"
	default:
		return "unknown"
	}
}

func (k AppKind) String() string {
	return string(rune(k))
}

// App identifies one deployed protocol instance. Two apps are the same app
// only if all three fields are equal, which makes App usable as a map key.
type App struct {
	Kind     AppKind
	Identity Hash32
	VK       Hash32
}

func NewApp(kind AppKind, identity Hash32, vk Hash32) App {
	return App{
		Kind:     kind,
		Identity: identity,
		VK:       vk,
	}
}

// ParseApp parses the "<tag>/<identity hex>/<vk hex>" form used in spells
func ParseApp(s string) (App, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return App{}, fmt.Errorf("invalid app format: %q", s)
	}
	if len(parts[0]) != 1 {
		return App{}, fmt.Errorf("invalid app tag: %q", parts[0])
	}
	kind := AppKind(parts[0][0])
	if !kind.Valid() {
		return App{}, UnknownAppKindError{Kind: kind}
	}
	identity, err := ParseHash32(parts[1])
	if err != nil {
		return App{}, fmt.Errorf("invalid app identity: %w", err)
	}
	vk, err := ParseHash32(parts[2])
	if err != nil {
		return App{}, fmt.Errorf("invalid app verification key: %w", err)
	}
	return NewApp(kind, identity, vk), nil
}

func (a App) String() string {
	return fmt.Sprintf("%s/%s/%s", a.Kind, a.Identity, a.VK)
}

// WithKind returns a copy of the app with a different kind. This names the
// sibling instance sharing identity and verification key.
func (a App) WithKind(kind AppKind) App {
	a.Kind = kind
	return a
}

func (a App) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *App) UnmarshalText(data []byte) error {
	tmp, err := ParseApp(string(data))
	if err != nil {
		return err
	}
	*a = tmp
	return nil
}
