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
	"log/slog"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/prometheus/client_golang/prometheus"
)

// VerifierOptionFunc is a type that represents functions that modify the Verifier config
type VerifierOptionFunc func(*Verifier)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) VerifierOptionFunc {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithParams specifies the protocol parameters. If none are provided, charm.DefaultParams() is used
func WithParams(pp charm.Params) VerifierOptionFunc {
	return func(v *Verifier) {
		v.params = pp
	}
}

// WithPrometheusRegisterer specifies the registerer for verification metrics.
// Metrics are still collected but not exported when none is provided
func WithPrometheusRegisterer(reg prometheus.Registerer) VerifierOptionFunc {
	return func(v *Verifier) {
		v.registerer = reg
	}
}
