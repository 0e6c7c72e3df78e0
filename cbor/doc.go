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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the deterministic
// settings every party evaluating a charm has to share.
//
// Encoding always sorts map keys (core deterministic), uses definite lengths
// and shortest-form floats. Decoding rejects duplicate map keys and invalid
// UTF-8 text. Use DecodeExact for records, where trailing bytes are an error.
//
// ByteString holds bytestrings in a comparable form, so they can be used as
// struct fields of comparable types and as map keys.
package cbor
