// Package resolvertest provides an in-memory resolver.Resolver for tests
// across this module (addrinfo, hostlookup, resolver itself) so none of
// them need a real DNS server to exercise their logic.
package resolvertest

import (
	"context"
	"net"

	"github.com/gortc/addrinfo/internal/resolver"
)

// Fake answers Resolve from fixed V4/V6 fields, or returns Err if set.
type Fake struct {
	V4  net.IP
	V6  net.IP
	Err error
}

// Resolve implements resolver.Resolver.
func (f Fake) Resolve(_ context.Context, _ string, fam resolver.FamilyConstraint) (net.IP, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	switch fam {
	case resolver.V4:
		if f.V4 == nil {
			return nil, resolver.ErrNotFound
		}
		return f.V4, nil
	case resolver.V6:
		if f.V6 == nil {
			return nil, resolver.ErrNotFound
		}
		return f.V6, nil
	default:
		if f.V4 != nil {
			return f.V4, nil
		}
		if f.V6 != nil {
			return f.V6, nil
		}
		return nil, resolver.ErrNotFound
	}
}
