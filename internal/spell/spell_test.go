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

package spell_test

import (
	"strings"
	"testing"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/contract"
	"github.com/bitsnark/grail-pro-charms/internal/spell"
	"github.com/bitsnark/grail-pro-charms/internal/test"
	"github.com/bitsnark/grail-pro-charms/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransfer(t *testing.T) {
	s, err := spell.LoadFile("testdata/transfer.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Version)
	tx, err := s.Transaction()
	require.NoError(t, err)
	assert.Equal(t, 1, tx.InputCount())
	assert.Equal(t, 2, tx.OutputCount())
	app := test.App(charm.KindToken)
	recs := tx.InputRecords(app)
	require.Len(t, recs, 1)
	var amount uint64
	require.NoError(t, recs[0].Decode(&amount))
	assert.Equal(t, uint64(50), amount)
	jobs, err := s.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "$00", jobs[0].Name)
	assert.Nil(t, jobs[0].Witness)
	assert.NoError(
		t,
		contract.NewVerifier().Verify(
			jobs[0].App,
			jobs[0].Tx,
			jobs[0].PublicInputs,
			jobs[0].Witness,
		),
	)
}

func TestLoadMint(t *testing.T) {
	s, err := spell.LoadFile("testdata/mint.yaml")
	require.NoError(t, err)
	jobs, err := s.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	w, outpoint, err := token.DecodeWitness(jobs[0].Witness)
	require.NoError(t, err)
	assert.Equal(t, "tx1", w.FundingTx)
	_, ok := jobs[0].Tx.Input(outpoint)
	assert.True(t, ok)
	ok, err = contract.NewVerifier().Satisfied(
		jobs[0].App,
		jobs[0].Tx,
		jobs[0].PublicInputs,
		jobs[0].Witness,
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWitness(t *testing.T) {
	w, err := spell.Witness("genesis:0")
	require.NoError(t, err)
	text, err := w.Text()
	require.NoError(t, err)
	assert.Equal(t, "genesis:0", text)
	w, err = spell.Witness(nil)
	require.NoError(t, err)
	assert.Nil(t, w)
	_, err = spell.Witness(map[string]any{"utxo_id": "nope"})
	assert.Error(t, err)
	w, err = spell.Witness([]any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "820102", charm.Record(w).String())
}

func TestLoadErrors(t *testing.T) {
	testDefs := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: ""},
		{name: "no apps", yaml: "version: 4\n"},
		{name: "unknown field", yaml: "apps:\n  $00: t/00/00\nbogus: 1\n"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := spell.Load(strings.NewReader(testDef.yaml))
			assert.Error(t, err)
		})
	}
}

func TestTransactionErrors(t *testing.T) {
	const appText = "t/c975d4e0c292fb95efbda5c13312d6ac1d8b5aeff7f0f1e5578645a2da70ff5f/6c730d1e8bbea1ea8b2b9a3f3d6fb7ba4e1b1bd28a2ae7b0a0e2a4a2d2f7a2c1"
	testDefs := []struct {
		name  string
		spell spell.Spell
	}{
		{
			name:  "bad app",
			spell: spell.Spell{Apps: map[string]string{"$00": "x/00/00"}},
		},
		{
			name: "bad outpoint",
			spell: spell.Spell{
				Apps: map[string]string{"$00": appText},
				Ins:  []spell.Input{{UtxoId: "abc:0"}},
			},
		},
		{
			name: "unknown alias",
			spell: spell.Spell{
				Apps: map[string]string{"$00": appText},
				Outs: []spell.Output{{Charms: map[string]any{"$01": 1}}},
			},
		},
		{
			name: "duplicate input",
			spell: spell.Spell{
				Apps: map[string]string{"$00": appText},
				Ins: []spell.Input{
					{UtxoId: strings.Repeat("01", 32) + ":0"},
					{UtxoId: strings.Repeat("01", 32) + ":0"},
				},
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := testDef.spell.Transaction()
			assert.Error(t, err)
		})
	}
}
