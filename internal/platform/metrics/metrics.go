// Copyright (c) 2026 Rolodex. All rights reserved.

// Package metrics registers Prometheus instruments for domain-level events.
//
// Counters are registered once at startup via promauto and injected into
// services. All methods are nil-safe so tests can pass a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AccountsRegistered prometheus.Counter
	LoginAttempts      *prometheus.CounterVec

	ContactsCreated  prometheus.Counter
	ContactsTrashed  prometheus.Counter
	ContactsRestored prometheus.Counter
	ContactsPurged   prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AccountsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rolodex_accounts_registered_total",
			Help: "Total number of accounts registered",
		}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rolodex_login_attempts_total",
			Help: "Total login attempts by outcome",
		}, []string{"outcome"}), // outcome: "success", "failure"

		ContactsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rolodex_contacts_created_total",
			Help: "Total number of contacts created",
		}),
		ContactsTrashed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rolodex_contacts_trashed_total",
			Help: "Total number of contacts moved to trash",
		}),
		ContactsRestored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rolodex_contacts_restored_total",
			Help: "Total number of contacts restored from trash",
		}),
		ContactsPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rolodex_contacts_purged_total",
			Help: "Total number of contacts permanently deleted",
		}),
	}
}

// IncrementAccountsRegistered records a successful registration.
func (m *Metrics) IncrementAccountsRegistered() {
	if m != nil {
		m.AccountsRegistered.Inc()
	}
}

// IncrementLoginAttempt records a login attempt with its outcome.
func (m *Metrics) IncrementLoginAttempt(outcome string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}

// IncrementContactsCreated records a contact creation.
func (m *Metrics) IncrementContactsCreated() {
	if m != nil {
		m.ContactsCreated.Inc()
	}
}

// IncrementContactsTrashed records a soft delete.
func (m *Metrics) IncrementContactsTrashed() {
	if m != nil {
		m.ContactsTrashed.Inc()
	}
}

// IncrementContactsRestored records a restore from trash.
func (m *Metrics) IncrementContactsRestored() {
	if m != nil {
		m.ContactsRestored.Inc()
	}
}

// IncrementContactsPurged records a permanent delete.
func (m *Metrics) IncrementContactsPurged() {
	if m != nil {
		m.ContactsPurged.Inc()
	}
}
