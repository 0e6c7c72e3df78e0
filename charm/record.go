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
	"encoding/hex"
	"errors"

	"github.com/bitsnark/grail-pro-charms/cbor"
)

// Record is the opaque CBOR state one app attaches to a transaction slot
type Record []byte

// NewRecord encodes v as a record
func NewRecord(v any) (Record, error) {
	data, err := cbor.Encode(v)
	if err != nil {
		return nil, err
	}
	return Record(data), nil
}

// MustNewRecord is like NewRecord but panics on error
func MustNewRecord(v any) Record {
	ret, err := NewRecord(v)
	if err != nil {
		panic("unexpected error encoding record: " + err.Error())
	}
	return ret
}

// Decode decodes the record into dest. A failure is reported as a
// RecordDecodeError and leaves the decision of how severe it is to the caller.
func (r Record) Decode(dest any) error {
	if err := cbor.DecodeExact(r, dest); err != nil {
		return RecordDecodeError{Err: err}
	}
	return nil
}

func (r Record) String() string {
	return hex.EncodeToString(r)
}

var errWitnessNotText = errors.New("witness is not a CBOR text string")

// Witness is the private witness supplied alongside a transaction. Its layout
// depends on the action being verified.
type Witness []byte

// Text decodes the witness as a CBOR text string
func (w Witness) Text() (string, error) {
	if mt, ok := cbor.MajorType(w); !ok || mt != cbor.CborTypeTextString {
		return "", errWitnessNotText
	}
	var ret string
	if err := Record(w).Decode(&ret); err != nil {
		return "", err
	}
	return ret, nil
}

// NewTextWitness encodes s as a CBOR text string witness
func NewTextWitness(s string) Witness {
	return Witness(cbor.MustEncode(s))
}

// PublicInputs are the public arguments supplied for one app
type PublicInputs map[string]string

const PublicInputAction = "action"

// Action returns the requested action name
func (p PublicInputs) Action() (string, bool) {
	if p == nil {
		return "", false
	}
	ret, ok := p[PublicInputAction]
	return ret, ok
}
