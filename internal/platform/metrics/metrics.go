// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nexkeep"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	RateLimitedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the rate limiter, by route.",
	}, []string{"route"})

	// NotificationsSent counts emails by kind and outcome ("sent", "failed", "skipped").
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Transactional emails by kind and outcome.",
	}, []string{"kind", "outcome"})

	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_created_total",
		Help:      "Invoices created.",
	})

	InvoiceNumberRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_number_retries_total",
		Help:      "Invoice creations retried after a number collision.",
	})

	ReimbursementsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reimbursements_paid_total",
		Help:      "Reimbursement requests paid.",
	})

	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Bytes accepted by the upload endpoint.",
	})
)
