// Package rpolicy implements the defense-in-depth destination filter C5
// runs candidate addresses through before C4 sorts them, and the loadable
// override of the RFC 6724 default policy table that C1/C3 consult. Both
// halves are reloadable: the rule list and the table can be replaced
// wholesale at runtime without interrupting in-flight lookups.
package rpolicy

import (
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/gortc/addrinfo/internal/rfc6724"
)

// Action is the outcome of evaluating a Rule against a destination.
type Action byte

// Possible action values. Pass defers to the next rule (or the list's
// default); Allow and Deny are terminal.
const (
	Pass Action = iota
	Allow
	Deny
)

var actionToStr = map[Action]string{
	Pass:  "pass",
	Allow: "allow",
	Deny:  "deny",
}

func (a Action) String() string { return actionToStr[a] }

// Rule decides an Action for a single destination address.
type Rule interface {
	Action(ip net.IP) Action
}

type subnetRule struct {
	action Action
	net    *net.IPNet
}

func (r subnetRule) Action(ip net.IP) Action {
	if r.net.Contains(ip) {
		return r.action
	}
	return Pass
}

// StaticNetRule returns a rule applying action to every address inside
// subnet, and Pass otherwise.
func StaticNetRule(action Action, subnet string) (Rule, error) {
	_, parsed, err := net.ParseCIDR(subnet)
	if err != nil {
		return nil, errors.Wrapf(err, "parse subnet %q", subnet)
	}
	return subnetRule{action: action, net: parsed}, nil
}

// AllowNet allows any address from subnet.
func AllowNet(subnet string) (Rule, error) { return StaticNetRule(Allow, subnet) }

// DenyNet denies any address from subnet.
func DenyNet(subnet string) (Rule, error) { return StaticNetRule(Deny, subnet) }

type allowAll struct{}

func (allowAll) Action(net.IP) Action { return Allow }

// AllowAll is a Rule that always returns Allow.
var AllowAll Rule = allowAll{}

// List is a reloadable, ordered rule list with a default action for
// addresses no rule matched. It is safe for concurrent use: one goroutine
// may call SetRules/SetAction while others call Action or Filter.
type List struct {
	mu     sync.RWMutex
	action Action
	rules  []Rule
}

// NewList builds a List with the given default action and initial rules.
func NewList(action Action, rules ...Rule) *List {
	return &List{action: action, rules: append([]Rule(nil), rules...)}
}

// Action implements Rule: it returns the first non-Pass verdict among the
// configured rules, or the list's default action if none matched.
func (l *List) Action(ip net.IP) Action {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.rules {
		if a := r.Action(ip); a != Pass {
			return a
		}
	}
	return l.action
}

// SetRules atomically replaces the rule list.
func (l *List) SetRules(rules []Rule) {
	l.mu.Lock()
	l.rules = append(l.rules[:0], rules...)
	l.mu.Unlock()
}

// SetAction atomically replaces the default action.
func (l *List) SetAction(action Action) {
	l.mu.Lock()
	l.action = action
	l.mu.Unlock()
}

// Filter drops every destination the list denies, preserving order among
// the survivors. An empty input, or an input every rule denies, yields an
// empty (non-nil) slice rather than an error: C5 decides whether an empty
// candidate list after filtering means Fail.
func Filter(l Rule, destinations []rfc6724.Destination) []rfc6724.Destination {
	kept := make([]rfc6724.Destination, 0, len(destinations))
	for _, d := range destinations {
		if l.Action(net.IP(d.IP)) == Deny {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}
