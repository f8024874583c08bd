// Copyright 2026 The tagfs Authors.
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

package vfs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// opDuration and opTotal back the optional --metrics-addr endpoint
// (cmd/mount.go): every FUSE callback reports its latency and outcome here,
// labelled by operation name the way the teacher's fs package counts GCS
// calls.
var (
	opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tagfs",
		Subsystem: "vfs",
		Name:      "op_duration_seconds",
		Help:      "Latency of a FUSE callback, by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	opTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagfs",
		Subsystem: "vfs",
		Name:      "op_total",
		Help:      "Count of FUSE callbacks, by operation and outcome.",
	}, []string{"op", "outcome"})
)

// Collectors exposes the metrics this package owns, so cmd/mount.go can
// register them on its own prometheus.Registry rather than reaching for the
// global default.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{opDuration, opTotal}
}

// instrument is called as defer fe.instrument("lookup", time.Now())(&err)
// at the top of a callback with a named error return; the returned closure
// records the callback's latency and outcome when the callback returns.
func (fe *Frontend) instrument(op string, start time.Time) func(*error) {
	return func(errp *error) {
		opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}
		opTotal.WithLabelValues(op, outcome).Inc()
	}
}
