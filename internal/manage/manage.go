// Package manage implements the HTTP management endpoint cmd/addrinfo
// serve exposes alongside /metrics: a /reload that tells the policy
// table and filter rule list in rpolicy to re-read their source, and
// reports back whether that reload was accepted or rejected rather than
// the fire-and-forget "will be reloaded soon" a caller can't act on.
package manage

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Notifier applies a reload and reports whether it was accepted. A
// non-nil error means the prior policy table/filter rules were kept.
type Notifier interface {
	Notify() error
}

// Manager handles http management endpoints.
type Manager struct {
	notifier Notifier
	l        *zap.Logger
}

func (m Manager) fprintln(w io.Writer, a ...interface{}) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		m.l.Warn("failed to write", zap.Error(err))
	}
}

// ServeHTTP implements http.Handler.
func (m Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/reload":
		m.l.Info("got reload request")
		if err := m.notifier.Notify(); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			m.fprintln(w, "reload rejected, prior policy table and filter rules kept:", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		m.fprintln(w, "policy table and filter rules reloaded")
	default:
		w.WriteHeader(http.StatusNotFound)
		m.fprintln(w, "management endpoint not found")
	}
}

// NewManager initializes and returns Manager.
func NewManager(l *zap.Logger, n Notifier) Manager { return Manager{l: l, notifier: n} }
