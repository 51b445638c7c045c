// Package metrics defines and registers all custom Prometheus metrics for the
// favboard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; HTTP request metrics are added separately by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "favboard"

// ── Authorization gate ───────────────────────────────────────────────────────

// GateDecisionsTotal counts terminal decisions of the authorization gate.
// Labels:
//   - policy:  "authenticated", "self_or_admin" or "admin_only"
//   - outcome: "allowed", "unauthenticated" or "forbidden"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions.",
	},
	[]string{"policy", "outcome"},
)

// GateResolutionFailuresTotal counts identity resolution failures by the
// stage that rejected the request. The stage is never exposed to clients.
// Label:
//   - stage: "header", "token" or "identity"
var GateResolutionFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_resolution_failures_total",
		Help:      "Total number of identity resolution failures, by failing stage.",
	},
	[]string{"stage"},
)

// ── Authentication ───────────────────────────────────────────────────────────

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - reason: "register" or "login"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "bad_credentials" or "unknown_identity"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Posts ────────────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// FavoritesAddedTotal counts posts added to a user's favorites.
var FavoritesAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_added_total",
		Help:      "Total number of favorites added.",
	},
)

// PostCacheTotal counts post cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var PostCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_cache_total",
		Help:      "Total number of post cache lookups, by result.",
	},
	[]string{"result"},
)
