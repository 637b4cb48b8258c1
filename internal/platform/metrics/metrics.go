package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	LedgerTransactions   *prometheus.CounterVec
	LedgerApplyDuration  prometheus.Histogram
	WalletsProvisioned   *prometheus.CounterVec
	WalletExecutions     *prometheus.CounterVec
	SessionKeyOperations *prometheus.CounterVec
	RecordsIndexed       prometheus.Counter
	PublishFailures      *prometheus.CounterVec
	RecordsDropped       *prometheus.CounterVec
	PublisherCircuitOpen *prometheus.GaugeVec
	HTTPRequestLatency   *prometheus.HistogramVec
	RateLimited          prometheus.Counter
}

// New creates and registers all Prometheus metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LedgerTransactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_ledger_transactions_total",
			Help: "Ledger transactions applied, by status and revert reason",
		}, []string{"status", "revert"}),
		LedgerApplyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletcore_ledger_apply_duration_seconds",
			Help:    "Time spent applying one ledger transaction under the chain lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		WalletsProvisioned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_wallets_provisioned_total",
			Help: "Wallets created, pre-deployed or assigned by the factory",
		}, []string{"kind"}),
		WalletExecutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_wallet_executions_total",
			Help: "Wallet executions by authorization path and outcome",
		}, []string{"path", "outcome"}),
		SessionKeyOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_session_key_operations_total",
			Help: "Session key registrations and revocations",
		}, []string{"operation"}),
		RecordsIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletcore_indexer_records_total",
			Help: "Event ledger records persisted by the indexer",
		}),
		PublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_stream_publish_failures_total",
			Help: "Failed attempts to publish ledger records to a stream",
		}, []string{"publisher"}),
		RecordsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletcore_stream_records_dropped_total",
			Help: "Ledger records not published because the publisher circuit was open",
		}, []string{"publisher"}),
		PublisherCircuitOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "walletcore_stream_circuit_open",
			Help: "1 while the publisher circuit breaker is open",
		}, []string{"publisher"}),
		HTTPRequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "walletcore_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletcore_http_rate_limited_total",
			Help: "Write requests rejected by the per-caller rate limit",
		}),
	}
}

// ObserveLedgerTransaction records the outcome and duration of a ledger transaction.
func (m *Metrics) ObserveLedgerTransaction(status, revert string, d time.Duration) {
	m.LedgerTransactions.WithLabelValues(status, revert).Inc()
	m.LedgerApplyDuration.Observe(d.Seconds())
}

// IncWalletsProvisioned increments the provisioning counter for kind (created, predeployed, assigned).
func (m *Metrics) IncWalletsProvisioned(kind string, n int) {
	m.WalletsProvisioned.WithLabelValues(kind).Add(float64(n))
}

// IncWalletExecution records an execution attempt through path (direct, batch, signature).
func (m *Metrics) IncWalletExecution(path, outcome string) {
	m.WalletExecutions.WithLabelValues(path, outcome).Inc()
}

// IncSessionKeyOperation records a session key registration, update or revocation.
func (m *Metrics) IncSessionKeyOperation(operation string) {
	m.SessionKeyOperations.WithLabelValues(operation).Inc()
}

// AddRecordsIndexed increments the indexed records counter by n.
func (m *Metrics) AddRecordsIndexed(n int) {
	m.RecordsIndexed.Add(float64(n))
}

// IncPublishFailures increments the failure counter for a stream publisher.
func (m *Metrics) IncPublishFailures(publisher string) {
	m.PublishFailures.WithLabelValues(publisher).Inc()
}

// AddRecordsDropped counts records skipped by an open publisher circuit.
func (m *Metrics) AddRecordsDropped(publisher string, n int) {
	m.RecordsDropped.WithLabelValues(publisher).Add(float64(n))
}

func (m *Metrics) SetPublisherCircuitOpen(publisher string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	m.PublisherCircuitOpen.WithLabelValues(publisher).Set(v)
}

// ObserveHTTPRequest records the latency of one HTTP request.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	m.HTTPRequestLatency.WithLabelValues(route, method, statusClass(status)).Observe(d.Seconds())
}

func (m *Metrics) IncRateLimited() {
	m.RateLimited.Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
