// Package metrics defines and registers the custom Prometheus metrics for the
// anime-site account API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "animesite"

// AccountsCreatedTotal counts successful registrations.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// AccountsUpdatedTotal counts full-record account overwrites.
var AccountsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_updated_total",
		Help:      "Total number of user accounts updated.",
	},
)

// AccountsDeletedTotal counts account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// RegistrationsRejectedTotal counts registrations rejected by field validation.
var RegistrationsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of registrations rejected with validation errors.",
	},
)

// ViewCacheTotal counts user-view cache lookups.
// Label:
//   - result: "hit" or "miss"
var ViewCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_total",
		Help:      "Total number of user-view cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)
