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
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// OutpointSize is the length of the binary outpoint encoding: a 32-byte
// transaction ID followed by a 4-byte little-endian output index
const OutpointSize = Hash32Size + 4

// Outpoint names a transaction output being spent
type Outpoint struct {
	TxId  Hash32
	Index uint32
}

func NewOutpoint(txId Hash32, index uint32) Outpoint {
	return Outpoint{
		TxId:  txId,
		Index: index,
	}
}

// NewOutpointFromBytes decodes the fixed-width binary form. Any length other
// than OutpointSize is a malformed witness.
func NewOutpointFromBytes(data []byte) (Outpoint, error) {
	if len(data) != OutpointSize {
		return Outpoint{}, MalformedWitnessError{
			Reason: fmt.Sprintf(
				"outpoint must be %d bytes, got %d",
				OutpointSize,
				len(data),
			),
		}
	}
	return Outpoint{
		TxId:  NewHash32(data[:Hash32Size]),
		Index: binary.LittleEndian.Uint32(data[Hash32Size:]),
	}, nil
}

// ParseOutpoint parses the "<txid>:<vout>" form, where the txid is displayed
// in the usual byte-reversed Bitcoin order
func ParseOutpoint(s string) (Outpoint, error) {
	txIdStr, indexStr, ok := strings.Cut(s, ":")
	if !ok {
		return Outpoint{}, fmt.Errorf("invalid outpoint format: %q", s)
	}
	if len(txIdStr) != chainhash.MaxHashStringSize {
		return Outpoint{}, fmt.Errorf("invalid outpoint txid: %q", txIdStr)
	}
	txId, err := chainhash.NewHashFromStr(txIdStr)
	if err != nil {
		return Outpoint{}, fmt.Errorf("invalid outpoint txid: %w", err)
	}
	index, err := strconv.ParseUint(indexStr, 10, 32)
	if err != nil {
		return Outpoint{}, fmt.Errorf("invalid outpoint index: %w", err)
	}
	return NewOutpoint(Hash32(*txId), uint32(index)), nil
}

// Bytes returns the 36-byte binary encoding
func (o Outpoint) Bytes() []byte {
	ret := make([]byte, OutpointSize)
	copy(ret, o.TxId[:])
	binary.LittleEndian.PutUint32(ret[Hash32Size:], o.Index)
	return ret
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", chainhash.Hash(o.TxId).String(), o.Index)
}

func (o Outpoint) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outpoint) UnmarshalText(data []byte) error {
	tmp, err := ParseOutpoint(string(data))
	if err != nil {
		return err
	}
	*o = tmp
	return nil
}
