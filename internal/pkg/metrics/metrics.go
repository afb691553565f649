package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoanTransitions counts loan lifecycle transitions by resulting status.
var LoanTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "simpanse",
		Subsystem: "loans",
		Name:      "transitions_total",
		Help:      "Number of loan status transitions, labelled by resulting status.",
	},
	[]string{"status"},
)

// LoanSubmissions counts accepted loan submissions by borrower type.
var LoanSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "simpanse",
		Subsystem: "loans",
		Name:      "submissions_total",
		Help:      "Number of accepted loan submissions, labelled by borrower type.",
	},
	[]string{"borrower_type"},
)

// HTTPRequests counts handled HTTP requests by method, route and status code.
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "simpanse",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests handled, labelled by method, route and status.",
	},
	[]string{"method", "route", "status"},
)
