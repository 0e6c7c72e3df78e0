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

package contract

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/prometheus/client_golang/prometheus"
)

// Verifier evaluates the validity predicate for charm transactions. It keeps
// no per-transaction state and is safe for concurrent use.
type Verifier struct {
	logger     *slog.Logger
	params     charm.Params
	registerer prometheus.Registerer
	metrics    *metrics
}

// NewVerifier returns a new Verifier object with the specified options
func NewVerifier(options ...VerifierOptionFunc) *Verifier {
	v := &Verifier{
		params: charm.DefaultParams(),
	}
	for _, option := range options {
		option(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	v.metrics = newMetrics(v.registerer)
	return v
}

// Params returns the protocol parameters used by the verifier
func (v *Verifier) Params() charm.Params {
	return v.params
}

// Verify checks a transaction on behalf of one app. It returns nil when the
// transaction satisfies the rules of the action named by the public inputs,
// and a *charm.ValidationError otherwise. Errors of type
// ValidationErrorTypeStructural mean the transaction is outside the
// protocol's domain and must abort verification entirely.
func (v *Verifier) Verify(
	app charm.App,
	tx *charm.Transaction,
	pub charm.PublicInputs,
	w charm.Witness,
) error {
	start := time.Now()
	action, err := v.verify(app, tx, pub, w)
	v.metrics.duration.Observe(time.Since(start).Seconds())
	actionName := ""
	if action != 0 {
		actionName = action.String()
	}
	if err == nil {
		v.metrics.verifications.WithLabelValues(
			app.Kind.Name(),
			actionName,
			OutcomeSatisfied,
		).Inc()
		v.logger.Debug(
			"transaction satisfied",
			"app",
			app.String(),
			"action",
			actionName,
		)
		return nil
	}
	details := map[string]any{
		"app":    app.String(),
		"action": actionName,
	}
	if charm.IsStructural(err) {
		v.metrics.verifications.WithLabelValues(
			app.Kind.Name(),
			actionName,
			OutcomeAborted,
		).Inc()
		v.logger.Warn(
			"verification aborted",
			"app",
			app.String(),
			"action",
			actionName,
			"error",
			err,
		)
		return charm.NewValidationError(
			charm.ValidationErrorTypeStructural,
			"transaction is outside the protocol domain",
			details,
			err,
		)
	}
	v.metrics.verifications.WithLabelValues(
		app.Kind.Name(),
		actionName,
		OutcomeRejected,
	).Inc()
	v.logger.Debug(
		"transaction rejected",
		"app",
		app.String(),
		"action",
		actionName,
		"error",
		err,
	)
	return charm.NewValidationError(
		charm.ValidationErrorTypeRule,
		"transaction does not satisfy the "+actionName+" rules",
		details,
		err,
	)
}

func (v *Verifier) verify(
	app charm.App,
	tx *charm.Transaction,
	pub charm.PublicInputs,
	w charm.Witness,
) (Action, error) {
	action, err := ActionFromPublicInputs(app.Kind, pub)
	if err != nil {
		return 0, err
	}
	rule, err := Route(action, &v.params)
	if err != nil {
		return action, err
	}
	return action, rule(app, tx, w, &v.params)
}

// Satisfied reports whether the transaction satisfies the rules. Rule
// failures are reported as false with a nil error; structural violations are
// returned as the error.
func (v *Verifier) Satisfied(
	app charm.App,
	tx *charm.Transaction,
	pub charm.PublicInputs,
	w charm.Witness,
) (bool, error) {
	err := v.Verify(app, tx, pub, w)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, charm.ErrStructural) {
		return false, err
	}
	return false, nil
}
