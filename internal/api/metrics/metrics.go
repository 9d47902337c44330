// Package metrics defines and registers all custom Prometheus metrics for
// the document portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry via promauto at package
// initialisation; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docportal"

// ── Upload metrics ────────────────────────────────────────────────────────────

// DocumentsProcessedTotal counts files that went through the upload
// pipeline, labelled by outcome.
// Labels:
//   - status: "assigned", "unmatched", "analysis_failed", "duplicate", "store_failed"
var DocumentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_processed_total",
		Help:      "Total number of uploaded files processed, by outcome.",
	},
	[]string{"status"},
)

// AnalysisDuration measures how long a single external analysis call
// takes, including the full upload pipeline for the file.
var AnalysisDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of per-file document analysis and attribution.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts client records created.
// Label:
//   - origin: "manual" (admin action) or "matcher" (auto-created from a document)
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of client records created, by origin.",
	},
	[]string{"origin"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success" or "failure"
//   - role: "admin", "client", or "unknown" on failure
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and role.",
	},
	[]string{"result", "role"},
)
