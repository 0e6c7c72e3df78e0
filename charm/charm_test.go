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

package charm_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIdentityHex = "c975d4e0c292fb95efbda5c13312d6ac1d8b5aeff7f0f1e5578645a2da70ff5f"
	testVkHex       = "6c730d1e8bbea1ea8b2b9a3f3d6fb7ba4e1b1bd28a2ae7b0a0e2a4a2d2f7a2c1"
)

func testApp(t *testing.T, kind charm.AppKind) charm.App {
	t.Helper()
	app, err := charm.ParseApp(
		string(rune(kind)) + "/" + testIdentityHex + "/" + testVkHex,
	)
	require.NoError(t, err)
	return app
}

func TestParseApp(t *testing.T) {
	app := testApp(t, charm.KindToken)
	assert.Equal(t, charm.KindToken, app.Kind)
	assert.Equal(t, testIdentityHex, app.Identity.String())
	assert.Equal(t, testVkHex, app.VK.String())
	assert.Equal(
		t,
		"t/"+testIdentityHex+"/"+testVkHex,
		app.String(),
	)
	// Round trip through text marshalling
	text, err := app.MarshalText()
	require.NoError(t, err)
	var parsed charm.App
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, app, parsed)
}

func TestParseAppErrors(t *testing.T) {
	testDefs := []struct {
		name  string
		input string
	}{
		{name: "missing parts", input: "t/" + testIdentityHex},
		{name: "long tag", input: "tt/" + testIdentityHex + "/" + testVkHex},
		{name: "short identity", input: "t/abcd/" + testVkHex},
		{name: "bad vk hex", input: "t/" + testIdentityHex + "/" + strings.Repeat("z", 64)},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := charm.ParseApp(testDef.input)
			assert.Error(t, err)
		})
	}
	_, err := charm.ParseApp("x/" + testIdentityHex + "/" + testVkHex)
	var kindErr charm.UnknownAppKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, charm.AppKind('x'), kindErr.Kind)
	assert.True(t, charm.IsStructural(err))
}

func TestAppEquality(t *testing.T) {
	token := testApp(t, charm.KindToken)
	nft := testApp(t, charm.KindNFT)
	assert.NotEqual(t, token, nft)
	assert.Equal(t, nft, token.WithKind(charm.KindNFT))
	otherVk := token
	otherVk.VK[0] ^= 0x01
	assert.NotEqual(t, token, otherVk)
	charms := charm.Charms{token: charm.Record{0x01}}
	_, ok := charms.Get(otherVk)
	assert.False(t, ok)
	_, ok = charms.Get(token)
	assert.True(t, ok)
}

func TestOutpointFromBytes(t *testing.T) {
	raw := make([]byte, charm.OutpointSize)
	for i := range charm.Hash32Size {
		raw[i] = byte(i)
	}
	// Index 258, little-endian
	raw[32] = 0x02
	raw[33] = 0x01
	outpoint, err := charm.NewOutpointFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(258), outpoint.Index)
	assert.Equal(t, byte(31), outpoint.TxId[31])
	assert.True(t, bytes.Equal(raw, outpoint.Bytes()))
}

func TestOutpointFromBytesMalformed(t *testing.T) {
	for _, length := range []int{0, 32, 35, 37, 64} {
		_, err := charm.NewOutpointFromBytes(make([]byte, length))
		var malformed charm.MalformedWitnessError
		require.ErrorAs(t, err, &malformed, "length %d", length)
		assert.True(t, errors.Is(err, charm.ErrStructural))
	}
}

func TestOutpointText(t *testing.T) {
	txIdDisplay := "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	outpoint, err := charm.ParseOutpoint(txIdDisplay + ":1")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), outpoint.Index)
	// Internal byte order is the reverse of the display order
	displayBytes, _ := hex.DecodeString(txIdDisplay)
	assert.Equal(t, displayBytes[0], outpoint.TxId[31])
	assert.Equal(t, txIdDisplay+":1", outpoint.String())

	for _, bad := range []string{
		txIdDisplay,
		txIdDisplay + ":x",
		"abcd:1",
		txIdDisplay + ":4294967296",
	} {
		_, err := charm.ParseOutpoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestRecordDecode(t *testing.T) {
	rec := charm.MustNewRecord(uint64(50))
	var amount uint64
	require.NoError(t, rec.Decode(&amount))
	assert.Equal(t, uint64(50), amount)

	var text string
	err := rec.Decode(&text)
	var decodeErr charm.RecordDecodeError
	require.ErrorAs(t, err, &decodeErr)

	// Trailing bytes are rejected
	trailing := append(charm.MustNewRecord(uint64(1)), 0x01)
	assert.Error(t, trailing.Decode(&amount))
}

func TestWitnessText(t *testing.T) {
	w := charm.NewTextWitness("preimage")
	text, err := w.Text()
	require.NoError(t, err)
	assert.Equal(t, "preimage", text)

	_, err = charm.Witness([]byte("preimage")).Text()
	assert.Error(t, err)
	_, err = charm.Witness(charm.MustNewRecord([]byte("preimage"))).Text()
	assert.Error(t, err)
	_, err = charm.Witness(nil).Text()
	assert.Error(t, err)
}

func TestPublicInputsAction(t *testing.T) {
	_, ok := charm.PublicInputs(nil).Action()
	assert.False(t, ok)
	action, ok := charm.PublicInputs{"action": "mint"}.Action()
	assert.True(t, ok)
	assert.Equal(t, "mint", action)
}

func TestDigestAlgorithms(t *testing.T) {
	// sha256("abc")
	assert.Equal(
		t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		charm.DigestSHA256.MustSum([]byte("abc")).String(),
	)
	// blake2b-256("abc")
	assert.Equal(
		t,
		"bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319",
		charm.DigestBlake2b256.MustSum([]byte("abc")).String(),
	)
	algo, err := charm.ParseDigestAlgorithm("BLAKE2B256")
	require.NoError(t, err)
	assert.Equal(t, charm.DigestBlake2b256, algo)
	_, err = charm.ParseDigestAlgorithm("md5")
	assert.Error(t, err)
	// An out-of-range algorithm is reported, not computed
	unknown := charm.DigestAlgorithm(7)
	assert.False(t, unknown.Valid())
	_, err = unknown.Sum([]byte("abc"))
	var digestErr charm.UnsupportedDigestError
	require.True(t, errors.As(err, &digestErr))
	assert.True(t, charm.IsStructural(err))
}

func TestHash32Cbor(t *testing.T) {
	var h charm.Hash32
	data, err := h.MarshalCBOR()
	require.NoError(t, err)
	// Zero-valued hashes still encode as a full 32-byte bytestring
	assert.Len(t, data, 2+charm.Hash32Size)
	var out charm.Hash32
	require.NoError(t, out.UnmarshalCBOR(data))
	assert.True(t, out.IsZero())
	short := charm.MustNewRecord([]byte{0x01, 0x02})
	assert.Error(t, out.UnmarshalCBOR(short))
}

func TestParamsParsing(t *testing.T) {
	mode, err := charm.ParseTokenMode("lineage-only")
	require.NoError(t, err)
	assert.Equal(t, charm.TokenModeLineageOnly, mode)
	decoding, err := charm.ParseAmountDecoding("strict")
	require.NoError(t, err)
	assert.Equal(t, charm.AmountDecodeStrict, decoding)
	net, err := charm.NetworkParams("regtest")
	require.NoError(t, err)
	assert.Equal(t, "regtest", net.Name)
	_, err = charm.NetworkParams("litecoin")
	assert.Error(t, err)

	pp := charm.DefaultParams()
	assert.Equal(t, charm.DigestSHA256, pp.Digest)
	assert.True(t, pp.RequireTransferLineage)
	assert.False(t, pp.StrictMintLockEquality)
}
