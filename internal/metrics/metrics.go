// Package metrics owns the prometheus registry and the application-level
// collectors. HTTP-level metrics are handled separately by the
// echoprometheus middleware sharing the same registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Service struct {
	Registry *prometheus.Registry

	toolInvocations *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	rpcCalls        *prometheus.CounterVec
}

func New() *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Service{
		Registry: registry,
		toolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "near_tool_invocations_total",
			Help: "Tool invocations by tool name and result status.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "near_tool_duration_seconds",
			Help:    "Tool invocation duration, including node round trips.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"tool"}),
		rpcCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "near_rpc_calls_total",
			Help: "JSON-RPC calls to ledger nodes by method and status.",
		}, []string{"method", "status"}),
	}

	registry.MustRegister(s.toolInvocations, s.toolDuration, s.rpcCalls)

	return s
}

// ObserveToolInvocation records one finished tool invocation.
func (s *Service) ObserveToolInvocation(tool string, isError bool, elapsed time.Duration) {
	s.toolInvocations.WithLabelValues(tool, statusLabel(isError)).Inc()
	s.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveRPCCall records one JSON-RPC exchange, wired into the node client.
func (s *Service) ObserveRPCCall(method string, err error) {
	s.rpcCalls.WithLabelValues(method, statusLabel(err != nil)).Inc()
}

func statusLabel(isError bool) string {
	if isError {
		return "error"
	}
	return "ok"
}
