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
	"bytes"
	"maps"
	"slices"
)

// Charms maps each app to the record it attaches to one transaction slot
type Charms map[App]Record

// Get returns the record for app, if any
func (c Charms) Get(app App) (Record, bool) {
	if c == nil {
		return nil, false
	}
	ret, ok := c[app]
	return ret, ok
}

// Apps returns the apps present in the slot in a stable order
func (c Charms) Apps() []App {
	ret := slices.Collect(maps.Keys(c))
	slices.SortFunc(ret, compareApps)
	return ret
}

// Transaction is a read-only view of a candidate transaction: the charms
// carried by each spent outpoint and by each output slot, in order
type Transaction struct {
	Ins  map[Outpoint]Charms
	Outs []Charms
}

func (t *Transaction) InputCount() int {
	if t == nil {
		return 0
	}
	return len(t.Ins)
}

func (t *Transaction) OutputCount() int {
	if t == nil {
		return 0
	}
	return len(t.Outs)
}

// Input returns the charms carried by the spent outpoint
func (t *Transaction) Input(outpoint Outpoint) (Charms, bool) {
	if t == nil || t.Ins == nil {
		return nil, false
	}
	ret, ok := t.Ins[outpoint]
	return ret, ok
}

// Inputs returns the spent outpoints in a stable order
func (t *Transaction) Inputs() []Outpoint {
	if t == nil {
		return nil
	}
	ret := slices.Collect(maps.Keys(t.Ins))
	slices.SortFunc(ret, compareOutpoints)
	return ret
}

// InputRecords returns every record attached to app across all inputs
func (t *Transaction) InputRecords(app App) []Record {
	var ret []Record
	for _, outpoint := range t.Inputs() {
		if rec, ok := t.Ins[outpoint].Get(app); ok {
			ret = append(ret, rec)
		}
	}
	return ret
}

// HasInputApp reports whether any input slot carries state for app
func (t *Transaction) HasInputApp(app App) bool {
	if t == nil {
		return false
	}
	for _, charms := range t.Ins {
		if _, ok := charms.Get(app); ok {
			return true
		}
	}
	return false
}

// OutputRecord returns the record attached to app in the output at idx
func (t *Transaction) OutputRecord(idx int, app App) (Record, bool) {
	if t == nil || idx < 0 || idx >= len(t.Outs) {
		return nil, false
	}
	return t.Outs[idx].Get(app)
}

// FirstOutputRecord returns the first output slot carrying state for app
func (t *Transaction) FirstOutputRecord(app App) (int, Record, bool) {
	if t == nil {
		return -1, nil, false
	}
	for idx, charms := range t.Outs {
		if rec, ok := charms.Get(app); ok {
			return idx, rec, true
		}
	}
	return -1, nil, false
}

func compareApps(a, b App) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	if c := bytes.Compare(a.Identity[:], b.Identity[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.VK[:], b.VK[:])
}

func compareOutpoints(a, b Outpoint) int {
	if c := bytes.Compare(a.TxId[:], b.TxId[:]); c != 0 {
		return c
	}
	switch {
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	default:
		return 0
	}
}
