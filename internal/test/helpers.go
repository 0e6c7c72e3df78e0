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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitsnark/grail-pro-charms/charm"
)

const (
	AppIdentityHex = "c975d4e0c292fb95efbda5c13312d6ac1d8b5aeff7f0f1e5578645a2da70ff5f"
	AppVkHex       = "6c730d1e8bbea1ea8b2b9a3f3d6fb7ba4e1b1bd28a2ae7b0a0e2a4a2d2f7a2c1"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// App returns an app of the given kind with a fixed identity and verification key
func App(kind charm.AppKind) charm.App {
	return charm.NewApp(
		kind,
		charm.NewHash32(DecodeHexString(AppIdentityHex)),
		charm.NewHash32(DecodeHexString(AppVkHex)),
	)
}

// Outpoint returns an outpoint whose transaction ID is filled with the seed byte
func Outpoint(seed byte, index uint32) charm.Outpoint {
	var txId charm.Hash32
	for i := range txId {
		txId[i] = seed
	}
	return charm.NewOutpoint(txId, index)
}

// Charms returns a single-app charm set holding the CBOR encoding of value
func Charms(app charm.App, value any) charm.Charms {
	return charm.Charms{app: charm.MustNewRecord(value)}
}

// TxBuilder assembles transactions for rule tests
type TxBuilder struct {
	tx charm.Transaction
}

func NewTx() *TxBuilder {
	return &TxBuilder{
		tx: charm.Transaction{
			Ins: make(map[charm.Outpoint]charm.Charms),
		},
	}
}

func (b *TxBuilder) Input(outpoint charm.Outpoint, charms charm.Charms) *TxBuilder {
	b.tx.Ins[outpoint] = charms
	return b
}

func (b *TxBuilder) Output(charms charm.Charms) *TxBuilder {
	b.tx.Outs = append(b.tx.Outs, charms)
	return b
}

func (b *TxBuilder) Build() *charm.Transaction {
	return &b.tx
}
