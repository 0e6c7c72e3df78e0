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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Every party evaluating a charm must agree on the bytes, so duplicate map
// keys and non-UTF-8 text are rejected.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			DupMapKey: _cbor.DupMapKeyEnforcedAPF,
			UTF8:      _cbor.UTF8RejectInvalid,
			// Charm payloads are small; deep nesting is never legitimate
			MaxNestedLevels: 16,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR data item into dest and returns the number of
// bytes consumed
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeExact decodes the CBOR data into dest and fails if any bytes remain
// after the first data item
func DecodeExact(dataBytes []byte, dest any) error {
	if len(dataBytes) == 0 {
		return errors.New("no CBOR data")
	}
	bytesRead, err := Decode(dataBytes, dest)
	if err != nil {
		return err
	}
	if bytesRead != len(dataBytes) {
		return fmt.Errorf(
			"trailing data after CBOR item: read %d of %d bytes",
			bytesRead,
			len(dataBytes),
		)
	}
	return nil
}
