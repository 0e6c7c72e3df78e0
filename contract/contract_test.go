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

package contract_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/contract"
	"github.com/bitsnark/grail-pro-charms/internal/test"
	"github.com/bitsnark/grail-pro-charms/nft"
	"github.com/bitsnark/grail-pro-charms/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	tokenApp = test.App(charm.KindToken)
	nftApp   = test.App(charm.KindNFT)
)

func actionInputs(action string) charm.PublicInputs {
	return charm.PublicInputs{charm.PublicInputAction: action}
}

func transferTx(in uint64, outs ...uint64) *charm.Transaction {
	b := test.NewTx().Input(test.Outpoint(1, 0), test.Charms(tokenApp, in))
	for _, out := range outs {
		b.Output(test.Charms(tokenApp, out))
	}
	return b.Build()
}

func TestParseAction(t *testing.T) {
	testDefs := []struct {
		kind     charm.AppKind
		name     string
		expected contract.Action
	}{
		{kind: charm.KindToken, name: "mint", expected: contract.ActionMint},
		{kind: charm.KindToken, name: "burn", expected: contract.ActionBurn},
		{kind: charm.KindToken, name: "transfer", expected: contract.ActionTransfer},
		{kind: charm.KindNFT, name: "deploy", expected: contract.ActionDeploy},
		{kind: charm.KindNFT, name: "update", expected: contract.ActionUpdate},
	}
	for _, testDef := range testDefs {
		action, err := contract.ParseAction(testDef.kind, testDef.name)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, action)
		assert.Equal(t, testDef.name, action.String())
		assert.Equal(t, testDef.kind, action.Kind())
	}
}

func TestParseActionUnknown(t *testing.T) {
	testDefs := []struct {
		kind charm.AppKind
		name string
	}{
		{kind: charm.KindToken, name: "deploy"},
		{kind: charm.KindNFT, name: "mint"},
		{kind: charm.KindToken, name: "Mint"},
		{kind: charm.KindToken, name: ""},
		{kind: charm.AppKind('x'), name: "mint"},
	}
	for _, testDef := range testDefs {
		_, err := contract.ParseAction(testDef.kind, testDef.name)
		require.Error(t, err)
		assert.True(t, charm.IsStructural(err), "%q", testDef.name)
	}
}

func TestRoute(t *testing.T) {
	pp := charm.DefaultParams()
	for _, action := range []contract.Action{
		contract.ActionMint,
		contract.ActionBurn,
		contract.ActionTransfer,
		contract.ActionDeploy,
		contract.ActionUpdate,
	} {
		rule, err := contract.Route(action, &pp)
		require.NoError(t, err)
		assert.NotNil(t, rule)
	}
	_, err := contract.Route(contract.Action(42), &pp)
	var unknown charm.UnknownActionError
	require.True(t, errors.As(err, &unknown))
	assert.True(t, charm.IsStructural(err))
}

func TestRouteLineageOnly(t *testing.T) {
	pp := charm.DefaultParams()
	pp.TokenMode = charm.TokenModeLineageOnly
	// A token mint consuming the matching roster NFT
	tx := test.NewTx().
		Input(test.Outpoint(1, 0), test.Charms(nftApp, "roster")).
		Output(test.Charms(tokenApp, uint64(10))).
		Build()
	for _, action := range []contract.Action{contract.ActionMint, contract.ActionBurn} {
		rule, err := contract.Route(action, &pp)
		require.NoError(t, err)
		assert.NoError(t, rule(tokenApp, tx, nil, &pp))
	}
}

func TestVerifyScenarios(t *testing.T) {
	lockOutpoint := test.Outpoint(0xaa, 0)
	mintW, err := token.NewWitness(lockOutpoint, "tx1")
	require.NoError(t, err)
	preimage := "genesis:0"
	deployed := charm.NewApp(
		charm.KindNFT,
		charm.DigestSHA256.MustSum([]byte(preimage)),
		nftApp.VK,
	)
	testDefs := []struct {
		name      string
		app       charm.App
		tx        *charm.Transaction
		action    string
		witness   charm.Witness
		satisfied bool
	}{
		{
			name: "mint",
			app:  tokenApp,
			tx: test.NewTx().
				Input(lockOutpoint, test.Charms(tokenApp, token.State{
					FundingUtxo: "tx1",
					LockAmount:  100,
					Fee:         5,
					Action:      token.ActionMint,
				})).
				Output(test.Charms(tokenApp, token.State{
					FundingUtxo: "tx1",
					LockAmount:  105,
					Action:      token.ActionMint,
				})).
				Build(),
			action:    "mint",
			witness:   mintW,
			satisfied: true,
		},
		{
			name: "burn",
			app:  tokenApp,
			tx: test.NewTx().
				Input(lockOutpoint, test.Charms(tokenApp, token.State{
					FundingUtxo:   "tx1",
					LockAmount:    100,
					ChangeAddress: "A",
					Action:        token.ActionBurn,
				})).
				Output(test.Charms(tokenApp, token.State{
					FundingUtxo:   "tx1",
					LockAmount:    60,
					ChangeAmount:  40,
					ChangeAddress: "A",
					Action:        token.ActionBurn,
				})).
				Build(),
			action:    "burn",
			witness:   mintW,
			satisfied: true,
		},
		{
			name:      "transfer",
			app:       tokenApp,
			tx:        transferTx(50, 30, 20),
			action:    "transfer",
			satisfied: true,
		},
		{
			name:   "transfer unbalanced",
			app:    tokenApp,
			tx:     transferTx(50, 30, 21),
			action: "transfer",
		},
		{
			name: "deploy",
			app:  deployed,
			tx: test.NewTx().
				Output(test.Charms(deployed, nft.Roster{
					CurrentCosigners: "a,b,c,d",
					CurrentThreshold: 3,
				})).
				Build(),
			action:    "deploy",
			witness:   charm.NewTextWitness(preimage),
			satisfied: true,
		},
		{
			name: "deploy threshold too high",
			app:  deployed,
			tx: test.NewTx().
				Output(test.Charms(deployed, nft.Roster{
					CurrentCosigners: "a,b,c,d",
					CurrentThreshold: 5,
				})).
				Build(),
			action:  "deploy",
			witness: charm.NewTextWitness(preimage),
		},
	}
	v := contract.NewVerifier()
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			ok, err := v.Satisfied(
				testDef.app,
				testDef.tx,
				actionInputs(testDef.action),
				testDef.witness,
			)
			require.NoError(t, err)
			assert.Equal(t, testDef.satisfied, ok)
			err = v.Verify(
				testDef.app,
				testDef.tx,
				actionInputs(testDef.action),
				testDef.witness,
			)
			if testDef.satisfied {
				assert.NoError(t, err)
				return
			}
			var validationErr *charm.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, charm.ValidationErrorTypeRule, validationErr.Type)
			assert.Equal(t, testDef.action, validationErr.Details["action"])
		})
	}
}

func TestVerifyStructural(t *testing.T) {
	v := contract.NewVerifier()
	testDefs := []struct {
		name string
		app  charm.App
		pub  charm.PublicInputs
	}{
		{name: "missing action", app: tokenApp, pub: charm.PublicInputs{}},
		{name: "nil public inputs", app: tokenApp},
		{name: "unknown action", app: tokenApp, pub: actionInputs("melt")},
		{name: "nft action on token", app: tokenApp, pub: actionInputs("update")},
		{
			name: "unknown kind",
			app:  tokenApp.WithKind(charm.AppKind('x')),
			pub:  actionInputs("transfer"),
		},
		{
			// The witness names no spent outpoint
			name: "mint without witness",
			app:  tokenApp,
			pub:  actionInputs("mint"),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tx := transferTx(50, 30, 20)
			err := v.Verify(testDef.app, tx, testDef.pub, nil)
			var validationErr *charm.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, charm.ValidationErrorTypeStructural, validationErr.Type)
			assert.True(t, errors.Is(err, charm.ErrStructural))
			ok, err := v.Satisfied(testDef.app, tx, testDef.pub, nil)
			assert.False(t, ok)
			assert.Error(t, err)
		})
	}
}

func TestVerifyUnsupportedDigest(t *testing.T) {
	preimage := "genesis:0"
	deployed := charm.NewApp(
		charm.KindNFT,
		charm.DigestSHA256.MustSum([]byte(preimage)),
		nftApp.VK,
	)
	tx := test.NewTx().
		Output(test.Charms(deployed, nft.Roster{
			CurrentCosigners: "a,b",
			CurrentThreshold: 1,
		})).
		Build()
	v := contract.NewVerifier(contract.WithParams(charm.Params{Digest: 7}))
	var err error
	require.NotPanics(t, func() {
		err = v.Verify(
			deployed,
			tx,
			actionInputs("deploy"),
			charm.NewTextWitness(preimage),
		)
	})
	var validationErr *charm.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, charm.ValidationErrorTypeStructural, validationErr.Type)
	var digestErr charm.UnsupportedDigestError
	assert.True(t, errors.As(err, &digestErr))
}

func TestVerifierLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	v := contract.NewVerifier(contract.WithLogger(logger))
	_ = v.Verify(tokenApp, transferTx(50, 30, 21), actionInputs("transfer"), nil)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "transaction rejected")
	buf.Reset()
	_ = v.Verify(tokenApp, transferTx(50, 30, 20), actionInputs("melt"), nil)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "verification aborted")
}

func TestVerifierParams(t *testing.T) {
	pp := charm.DefaultParams()
	pp.AmountDecoding = charm.AmountDecodeStrict
	v := contract.NewVerifier(contract.WithParams(pp))
	assert.Equal(t, charm.AmountDecodeStrict, v.Params().AmountDecoding)
	tx := test.NewTx().
		Input(test.Outpoint(1, 0), test.Charms(tokenApp, uint64(50))).
		Input(test.Outpoint(2, 0), test.Charms(tokenApp, "bogus")).
		Output(test.Charms(tokenApp, uint64(30))).
		Output(test.Charms(tokenApp, uint64(20))).
		Build()
	ok, err := v.Satisfied(tokenApp, tx, actionInputs("transfer"), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = contract.NewVerifier().Satisfied(tokenApp, tx, actionInputs("transfer"), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifierMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	v := contract.NewVerifier(contract.WithPrometheusRegisterer(reg))
	_ = v.Verify(tokenApp, transferTx(50, 30, 20), actionInputs("transfer"), nil)
	_ = v.Verify(tokenApp, transferTx(50, 30, 20), actionInputs("transfer"), nil)
	_ = v.Verify(tokenApp, transferTx(50, 30, 21), actionInputs("transfer"), nil)
	_ = v.Verify(tokenApp, transferTx(50, 30, 20), actionInputs("melt"), nil)
	expected := `
# HELP charms_contract_verifications_total Total number of transaction verifications by app kind, action and outcome
# TYPE charms_contract_verifications_total counter
charms_contract_verifications_total{action="",kind="token",outcome="aborted"} 1
charms_contract_verifications_total{action="transfer",kind="token",outcome="rejected"} 1
charms_contract_verifications_total{action="transfer",kind="token",outcome="satisfied"} 2
`
	require.NoError(
		t,
		testutil.GatherAndCompare(
			reg,
			strings.NewReader(expected),
			"charms_contract_verifications_total",
		),
	)
	// A second verifier on the same registry shares the collectors
	v2 := contract.NewVerifier(contract.WithPrometheusRegisterer(reg))
	_ = v2.Verify(tokenApp, transferTx(50, 30, 20), actionInputs("transfer"), nil)
	count, err := testutil.GatherAndCount(reg, "charms_contract_verifications_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestVerifyBatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	v := contract.NewVerifier()
	jobs := make([]contract.Job, 0, 20)
	for i := range 20 {
		out := uint64(20)
		if i%3 == 0 {
			out = 21
		}
		jobs = append(jobs, contract.Job{
			Name:         fmt.Sprintf("job-%d", i),
			App:          tokenApp,
			Tx:           transferTx(50, 30, out),
			PublicInputs: actionInputs("transfer"),
		})
	}
	results, err := contract.VerifyBatch(context.Background(), v, jobs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, result := range results {
		assert.Equal(t, jobs[i].Name, result.Job.Name)
		assert.Equal(t, i%3 != 0, result.Satisfied(), result.Job.Name)
		if !result.Satisfied() {
			assert.True(t, errors.Is(result.Err, charm.ErrRuleFailed))
		}
	}
}

func TestVerifyBatchCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := []contract.Job{
		{
			Name:         "a",
			App:          tokenApp,
			Tx:           transferTx(50, 30, 20),
			PublicInputs: actionInputs("transfer"),
		},
		{
			Name:         "b",
			App:          tokenApp,
			Tx:           transferTx(50, 30, 20),
			PublicInputs: actionInputs("transfer"),
		},
	}
	results, err := contract.VerifyBatch(ctx, contract.NewVerifier(), jobs, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.ErrorIs(t, result.Err, contract.ErrNotVerified)
	}
}

func TestVerifyBatchEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)
	results, err := contract.VerifyBatch(
		context.Background(),
		contract.NewVerifier(),
		nil,
		0,
	)
	require.NoError(t, err)
	assert.Empty(t, results)
}
