package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stonkgaze_quote_fetches_total",
		Help: "Total number of quote fetch requests",
	})

	LiveQuotes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stonkgaze_live_quotes_total",
		Help: "Total number of quotes served from the live provider",
	})

	FallbackQuotes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stonkgaze_fallback_quotes_total",
		Help: "Total number of quotes served from the synthetic fallback path",
	})

	SyntheticHistories = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stonkgaze_synthetic_histories_total",
		Help: "Total number of fabricated history series (live quote, dead history)",
	})

	AnalysisRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stonkgaze_analysis_requests_total",
		Help: "Total number of content analysis requests",
	})

	AnalysisFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stonkgaze_analysis_failures_total",
		Help: "Total number of failed content analyses",
	}, []string{"reason"})
)
