package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LedgerMetrics struct {
	LoansCreatedTotal        prometheus.Counter
	RepaymentsTotal          *prometheus.CounterVec
	RepaymentRetriesTotal    prometheus.Counter
	OverpaymentMinorTotal    *prometheus.CounterVec
	ReconciliationRunsTotal  *prometheus.CounterVec
	ReconciliationMismatches *prometheus.CounterVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repayment_engine_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repayment_engine_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repayment_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Ledger = LedgerMetrics{
		LoansCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "repayment_engine_loans_created_total",
				Help: "Total number of loans disbursed.",
			},
		),
		RepaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repayment_engine_repayments_total",
				Help: "Total number of repayment attempts by outcome.",
			},
			[]string{"status"},
		),
		RepaymentRetriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "repayment_engine_repayment_retries_total",
				Help: "Total number of repayment transactions retried after a serialization conflict.",
			},
		),
		OverpaymentMinorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repayment_engine_repayment_overpayment_total",
				Help: "Sum of received amounts, in minor units, that no scheduled repayment absorbed.",
			},
			[]string{"currency"},
		),
		ReconciliationRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repayment_engine_reconciliation_runs_total",
				Help: "Total number of reconciliation job runs by outcome.",
			},
			[]string{"status"},
		),
		ReconciliationMismatches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repayment_engine_reconciliation_mismatches_total",
				Help: "Total number of ledger discrepancies found by reconciliation.",
			},
			[]string{"kind"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordLoanCreated() {
	Ledger.LoansCreatedTotal.Inc()
}

func RecordRepayment(status string) {
	Ledger.RepaymentsTotal.WithLabelValues(status).Inc()
}

func RecordRepaymentRetry() {
	Ledger.RepaymentRetriesTotal.Inc()
}

func RecordOverpayment(currencyCode string, minor int64) {
	if minor <= 0 {
		return
	}
	Ledger.OverpaymentMinorTotal.WithLabelValues(currencyCode).Add(float64(minor))
}

func RecordReconciliationRun(status string) {
	Ledger.ReconciliationRunsTotal.WithLabelValues(status).Inc()
}

func RecordReconciliationMismatch(kind string) {
	Ledger.ReconciliationMismatches.WithLabelValues(kind).Inc()
}
