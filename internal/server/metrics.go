package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "certscan_scans_total",
		Help: "Documents scanned, by outcome (pass, fail, rejected, error).",
	}, []string{"status"})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "certscan_scan_duration_seconds",
		Help:    "End-to-end scan duration including recognition.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)
