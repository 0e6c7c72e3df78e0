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

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "charms"
	metricsSubsystem = "contract"

	OutcomeSatisfied = "satisfied"
	OutcomeRejected  = "rejected"
	OutcomeAborted   = "aborted"
)

type metrics struct {
	verifications *prometheus.CounterVec
	duration      prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "verifications_total",
				Help:      "Total number of transaction verifications by app kind, action and outcome",
			},
			[]string{"kind", "action", "outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "verification_duration_seconds",
			Help:      "Duration of transaction verifications in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	if reg == nil {
		return m
	}
	m.verifications = register(reg, m.verifications)
	m.duration = register(reg, m.duration)
	return m
}

// register adds a collector, reusing the one already registered under the
// same descriptor
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}
