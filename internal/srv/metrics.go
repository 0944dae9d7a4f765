// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package srv

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

const metricsSubsystem = "fiod"

// Metrics counts API calls in its own Registry.
type Metrics struct {
	Registry *prometheus.Registry

	rpc          *prometheus.CounterVec
	rpcErrors    *prometheus.CounterVec
	transactions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	labels := []string{"method"}
	m.rpc = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "rpc_total",
		Help: "fiod JSON-RPC calls", Subsystem: metricsSubsystem}, labels)
	m.rpcErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_errors_total", Help: "fiod JSON-RPC calls that returned an error",
		Subsystem: metricsSubsystem}, labels)
	m.transactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_broadcast_total", Help: "Transactions accepted by the FIO node",
		Subsystem: metricsSubsystem}, labels)

	m.Registry.MustRegister(m.rpc, m.rpcErrors, m.transactions)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// observe records a call to method that returned result.
func (m *Metrics) observe(method string, result interface{}) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"method": method}
	m.rpc.With(labels).Inc()
	switch result.(type) {
	case error:
		m.rpcErrors.With(labels).Inc()
	case *sdk.Response:
		m.transactions.With(labels).Inc()
	}
}
