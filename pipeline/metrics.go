/*
 * metrics.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package pipeline

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	chem "github.com/rmera/chemform"
)

const metricsPrefix = "chemform_"

// Metrics holds the Prometheus collectors updated by a Pipeline.
type Metrics struct {
	structures      *prometheus.CounterVec
	skips           *prometheus.CounterVec
	resolverLatency prometheus.Histogram
}

// NewMetrics creates the pipeline collectors and registers them with registerer.
// A nil registerer means the Prometheus default one.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &Metrics{}
	m.structures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "structures_total",
		Help: "Total number of structures returned, by the tier that built them.",
	}, []string{"provenance"})
	m.skips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "tier_skips_total",
		Help: "Total number of times a tier could not give a structure.",
	}, []string{"tier", "reason"})
	m.resolverLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    metricsPrefix + "resolver_duration_seconds",
		Help:    "Histogram of the time taken by the external resolver.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
	for _, c := range []prometheus.Collector{m.structures, m.skips, m.resolverLatency} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) structure(p chem.Provenance) {
	if m == nil {
		return
	}
	m.structures.WithLabelValues(string(p)).Inc()
}

func (m *Metrics) skip(tier chem.Provenance, reason error) {
	if m == nil {
		return
	}
	m.skips.WithLabelValues(string(tier), reasonLabel(reason)).Inc()
}

func (m *Metrics) resolver(d time.Duration) {
	if m == nil {
		return
	}
	m.resolverLatency.Observe(d.Seconds())
}

// reasonLabel returns a short label for the kind of err.
func reasonLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMiss):
		return "miss"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, chem.ErrUnresolvedElement):
		return "unresolved_element"
	case errors.Is(err, chem.ErrAmbiguousStructure):
		return "ambiguous_structure"
	case errors.Is(err, chem.ErrSchemaExtraction):
		return "schema_extraction"
	case errors.Is(err, chem.ErrResolver):
		return "resolver"
	}
	return "other"
}
