// Package reload delivers the SIGUSR2-triggered half of a policy-table
// and filter-rule reload: cmd/addrinfo serve also accepts reloads over
// its /reload HTTP endpoint (internal/manage), but a signal has no
// request/response to answer on, so it needs this channel-based fan-in
// instead.
package reload

// Notifier fans a reload request in on C, tagged with the signal that
// raised it ("sigusr2"), so a consumer can log which trigger caused a
// given reload the same way the HTTP path logs "http". cmd/addrinfo serve
// reads from C and calls rpolicy.Table.Reload / rpolicy.List.SetAction in
// response.
type Notifier struct {
	C chan string
}

// NewNotifier initializes and returns new notifier, already subscribed to
// the platform reload signal.
func NewNotifier() Notifier {
	n := Notifier{C: make(chan string, 1)}
	n.subscribe()
	return n
}
