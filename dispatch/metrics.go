// Copyright 2025 Google LLC
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

package dispatch

import (
	"github.com/gx-org/exprdag/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch paths recorded by the metrics.
const (
	PathNative    = "native"
	PathConverted = "converted"
	PathFailed    = "failed"
)

// Metrics records what the dispatch core does.
// A nil *Metrics records nothing.
type Metrics struct {
	dispatches  *prometheus.CounterVec
	conversions *prometheus.CounterVec
	live        prometheus.Gauge
}

// NewMetrics creates the dispatch metrics and registers them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: op (operator kind), path (native, converted, failed)
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exprdag",
			Name:      "dispatch_total",
			Help:      "Total operator dispatches by path",
		}, []string{"op", "path"}),
		// Labels: from, to (terminal kinds)
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exprdag",
			Name:      "conversions_total",
			Help:      "Total operand conversions by source and target kind",
		}, []string{"from", "to"}),
		live: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "exprdag",
			Name:      "live_temporaries",
			Help:      "Conversion temporaries not released yet",
		}),
	}
}

func (m *Metrics) dispatched(op catalog.Kind, path string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(op.String(), path).Inc()
}

func (m *Metrics) converted(from, to catalog.Kind) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(from.String(), to.String()).Inc()
	m.live.Inc()
}

func (m *Metrics) released() {
	if m == nil {
		return
	}
	m.live.Dec()
}
