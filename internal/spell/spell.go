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

package spell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/contract"
	"github.com/bitsnark/grail-pro-charms/token"
	"gopkg.in/yaml.v3"
)

const (
	witnessUtxoIdKey    = "utxo_id"
	witnessFundingTxKey = "funding_tx"
)

// Spell is the YAML description of a charms transaction. Apps are referred to
// by alias (e.g. "$00") throughout the document.
type Spell struct {
	Version       int                          `yaml:"version"`
	Apps          map[string]string            `yaml:"apps"`
	PublicInputs  map[string]map[string]string `yaml:"public_inputs,omitempty"`
	PrivateInputs map[string]any               `yaml:"private_inputs,omitempty"`
	Ins           []Input                      `yaml:"ins"`
	Outs          []Output                     `yaml:"outs"`
}

type Input struct {
	UtxoId string         `yaml:"utxo_id"`
	Charms map[string]any `yaml:"charms,omitempty"`
}

type Output struct {
	Address string         `yaml:"address,omitempty"`
	Charms  map[string]any `yaml:"charms,omitempty"`
}

// Load decodes a spell from YAML
func Load(r io.Reader) (*Spell, error) {
	var ret Spell
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty spell")
		}
		return nil, fmt.Errorf("decode spell: %w", err)
	}
	if len(ret.Apps) == 0 {
		return nil, errors.New("spell declares no apps")
	}
	return &ret, nil
}

// LoadFile decodes a spell from a YAML file
func LoadFile(path string) (*Spell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Aliases returns the app aliases in sorted order
func (s *Spell) Aliases() []string {
	ret := make([]string, 0, len(s.Apps))
	for alias := range s.Apps {
		ret = append(ret, alias)
	}
	sort.Strings(ret)
	return ret
}

// Transaction builds the charm transaction described by the spell
func (s *Spell) Transaction() (*charm.Transaction, error) {
	apps, err := s.apps()
	if err != nil {
		return nil, err
	}
	tx := &charm.Transaction{
		Ins: make(map[charm.Outpoint]charm.Charms, len(s.Ins)),
	}
	for idx, in := range s.Ins {
		outpoint, err := charm.ParseOutpoint(in.UtxoId)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", idx, err)
		}
		if _, ok := tx.Ins[outpoint]; ok {
			return nil, fmt.Errorf("input %d: duplicate outpoint %s", idx, outpoint)
		}
		charms, err := buildCharms(apps, in.Charms)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", idx, err)
		}
		tx.Ins[outpoint] = charms
	}
	for idx, out := range s.Outs {
		charms, err := buildCharms(apps, out.Charms)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", idx, err)
		}
		tx.Outs = append(tx.Outs, charms)
	}
	return tx, nil
}

// Jobs returns one verification job per app declared by the spell
func (s *Spell) Jobs() ([]contract.Job, error) {
	apps, err := s.apps()
	if err != nil {
		return nil, err
	}
	tx, err := s.Transaction()
	if err != nil {
		return nil, err
	}
	ret := make([]contract.Job, 0, len(apps))
	for _, alias := range s.Aliases() {
		w, err := Witness(s.PrivateInputs[alias])
		if err != nil {
			return nil, fmt.Errorf("private input %s: %w", alias, err)
		}
		ret = append(ret, contract.Job{
			Name:         alias,
			App:          apps[alias],
			Tx:           tx,
			PublicInputs: charm.PublicInputs(s.PublicInputs[alias]),
			Witness:      w,
		})
	}
	return ret, nil
}

// Witness converts a private input value to its witness encoding. Text is a
// deploy preimage, a map with a utxo_id entry is a token witness, and
// anything else is encoded as is.
func Witness(value any) (charm.Witness, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return charm.NewTextWitness(v), nil
	case map[string]any:
		utxoId, ok := v[witnessUtxoIdKey].(string)
		if !ok {
			break
		}
		outpoint, err := charm.ParseOutpoint(utxoId)
		if err != nil {
			return nil, err
		}
		fundingTx, _ := v[witnessFundingTxKey].(string)
		return token.NewWitness(outpoint, fundingTx)
	}
	rec, err := charm.NewRecord(value)
	if err != nil {
		return nil, err
	}
	return charm.Witness(rec), nil
}

func (s *Spell) apps() (map[string]charm.App, error) {
	ret := make(map[string]charm.App, len(s.Apps))
	for alias, text := range s.Apps {
		app, err := charm.ParseApp(text)
		if err != nil {
			return nil, fmt.Errorf("app %s: %w", alias, err)
		}
		ret[alias] = app
	}
	return ret, nil
}

func buildCharms(apps map[string]charm.App, values map[string]any) (charm.Charms, error) {
	ret := make(charm.Charms, len(values))
	for alias, value := range values {
		app, ok := apps[alias]
		if !ok {
			return nil, fmt.Errorf("unknown app alias %q", alias)
		}
		rec, err := charm.NewRecord(value)
		if err != nil {
			return nil, fmt.Errorf("app %s: %w", alias, err)
		}
		ret[app] = rec
	}
	return ret, nil
}
