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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitsnark/grail-pro-charms/cbor"
	"golang.org/x/crypto/blake2b"
)

const Hash32Size = 32

// Hash32 is a fixed-size 32-byte hash, used for app identities, verification
// keys and transaction IDs
type Hash32 [Hash32Size]byte

func NewHash32(data []byte) Hash32 {
	h := Hash32{}
	copy(h[:], data)
	return h
}

// ParseHash32 decodes a 64 character hex string
func ParseHash32(s string) (Hash32, error) {
	if len(s) != Hash32Size*2 {
		return Hash32{}, fmt.Errorf(
			"invalid hash length: expected %d hex chars, got %d",
			Hash32Size*2,
			len(s),
		)
	}
	tmpBytes, err := hex.DecodeString(s)
	if err != nil {
		return Hash32{}, fmt.Errorf("invalid hash hex: %w", err)
	}
	return NewHash32(tmpBytes), nil
}

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash32) Bytes() []byte {
	return h[:]
}

func (h Hash32) IsZero() bool {
	return h == Hash32{}
}

func (h Hash32) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash32) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := ParseHash32(tmp)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Hash32) MarshalCBOR() ([]byte, error) {
	// Always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Hash32Size)
	copy(hashBytes, h[:])
	return cbor.Encode(hashBytes)
}

func (h *Hash32) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != Hash32Size {
		return fmt.Errorf(
			"invalid hash length: expected %d bytes, got %d",
			Hash32Size,
			len(tmp),
		)
	}
	*h = NewHash32(tmp)
	return nil
}

// DigestAlgorithm selects the 32-byte digest binding a deployed app identity
// to its preimage. Producer and verifier of a protocol instance must agree on it.
type DigestAlgorithm uint8

const (
	DigestSHA256 DigestAlgorithm = iota
	DigestBlake2b256
)

func ParseDigestAlgorithm(s string) (DigestAlgorithm, error) {
	switch strings.ToLower(s) {
	case "sha256", "sha-256":
		return DigestSHA256, nil
	case "blake2b256", "blake2b-256":
		return DigestBlake2b256, nil
	default:
		return 0, fmt.Errorf("unknown digest algorithm: %q", s)
	}
}

func (d DigestAlgorithm) String() string {
	switch d {
	case DigestSHA256:
		return "sha256"
	case DigestBlake2b256:
		return "blake2b256"
	default:
		return fmt.Sprintf("DigestAlgorithm(%d)", uint8(d))
	}
}

func (d DigestAlgorithm) Valid() bool {
	return d == DigestSHA256 || d == DigestBlake2b256
}

// Sum computes the digest of data
func (d DigestAlgorithm) Sum(data []byte) (Hash32, error) {
	switch d {
	case DigestSHA256:
		return Hash32(sha256.Sum256(data)), nil
	case DigestBlake2b256:
		return Hash32(blake2b.Sum256(data)), nil
	default:
		return Hash32{}, UnsupportedDigestError{Digest: d}
	}
}

// MustSum is like Sum but panics on an unsupported algorithm
func (d DigestAlgorithm) MustSum(data []byte) Hash32 {
	ret, err := d.Sum(data)
	if err != nil {
		panic(err.Error())
	}
	return ret
}
