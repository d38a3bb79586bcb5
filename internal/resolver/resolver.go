// Package resolver defines the DNS resolution facade consumed by the
// addrinfo assembler and the legacy single-address lookup. The resolver
// itself — caching, retries, the wire protocol — is out of scope for
// this module; this package only states the contract and ships one thin
// adapter over net.Resolver for demo purposes.
package resolver

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// FamilyConstraint narrows which address family a Resolve call accepts.
type FamilyConstraint int

// Family constraints a Resolver understands.
const (
	// Any accepts either family, letting the underlying resolver choose.
	Any FamilyConstraint = iota
	// V4 requires an IPv4 result.
	V4
	// V6 requires an IPv6 result.
	V6
	// V4OrV6 behaves like Any but documents that the caller consumes a
	// single slot and discards the rest; see the "open question" note in
	// the addrinfo package about this branch's ambiguous intent.
	V4OrV6
)

// ErrNotFound is returned when a name has no address under the requested
// constraint. It is distinct from the addrinfo package's own Fail
// sentinel: callers translate it at the boundary.
var ErrNotFound = errors.New("resolver: name has no address for requested family")

// Resolver resolves a host name to at most one address under a family
// constraint. Implementations may block for their own timeout; Resolve
// introduces no additional suspension points of its own.
type Resolver interface {
	Resolve(ctx context.Context, name string, fam FamilyConstraint) (net.IP, error)
}

// netResolver adapts Resolver to net.Resolver.LookupIP. It performs no
// caching and no retries: exactly the minimal behavior spec'd for the
// external resolver collaborator.
type netResolver struct {
	r *net.Resolver
}

// New wraps r (or net.DefaultResolver if r is nil) as a Resolver.
func New(r *net.Resolver) Resolver {
	if r == nil {
		r = net.DefaultResolver
	}
	return netResolver{r: r}
}

func (n netResolver) Resolve(ctx context.Context, name string, fam FamilyConstraint) (net.IP, error) {
	network := "ip"
	switch fam {
	case V4:
		network = "ip4"
	case V6:
		network = "ip6"
	case Any, V4OrV6:
		network = "ip"
	}
	ips, err := n.r.LookupIP(ctx, network, name)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", name)
	}
	if len(ips) == 0 {
		return nil, ErrNotFound
	}
	return ips[0], nil
}
