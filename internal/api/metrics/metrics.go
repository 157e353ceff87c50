// Package metrics defines and registers all custom Prometheus metrics for the
// member service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto. HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "members"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts accounts created through the register endpoint.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of member accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokenAuthenticationsTotal counts Authorization header checks.
// Label:
//   - result: "ok", "anonymous", "invalid_header", "invalid_token" or "error"
var TokenAuthenticationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_authentications_total",
		Help:      "Total number of token authentications, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts tokens handed out by register and login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// TokensRevokedTotal counts tokens deleted by logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of session tokens revoked on logout.",
	},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatMessagesPostedTotal counts messages accepted by the chat endpoint.
var ChatMessagesPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_posted_total",
		Help:      "Total number of chat messages posted.",
	},
)
