package addrinfo

import (
	"context"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/resolver"
	"github.com/gortc/addrinfo/internal/rfc6724"
	"github.com/gortc/addrinfo/internal/rpolicy"
)

// resolved is one address a resolver call (or NumericHost parse, or the
// node-absent substitution) produced, tagged with the family it belongs
// to so the assembler can build the right SockAddr variant.
type resolved struct {
	family Family
	ip     net.IP
}

// Lookup implements the result list assembler: parse an optional numeric
// service, resolve node to up to two addresses, run the RFC 6724 sorter
// when both families answered, and build the returned chain tail-first so
// each allocation links to the previously built head.
func Lookup(ctx context.Context, o Options, node, service string, hints Hints) (*Node, error) {
	o = o.withDefaults()

	if node == "" && service == "" {
		o.observeLookup("no-name")
		return nil, ErrNoName
	}
	if hints.Family != FamilyUnspecified && hints.Family != FamilyV4 && hints.Family != FamilyV6 {
		o.observeLookup("family")
		return nil, ErrFamily
	}

	port, err := parseService(service)
	if err != nil {
		o.observeLookup("service")
		return nil, err
	}

	if len(node) > maxNodeNameLength {
		o.observeLookup("fail")
		return nil, errors.Wrapf(ErrFail, "node name %d octets exceeds maximum %d", len(node), maxNodeNameLength)
	}

	addrs, err := resolveNode(ctx, o, node, hints)
	if err != nil {
		o.observeLookup("fail")
		return nil, err
	}

	chain := buildChain(addrs, node, port, hints)
	o.observeLookup("ok")
	return chain, nil
}

func parseService(service string) (uint16, error) {
	if service == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(service)
	if err != nil {
		return 0, errors.Wrapf(ErrService, "service %q is not numeric", service)
	}
	if n < 0 || n > 65535 {
		return 0, errors.Wrapf(ErrService, "service %d out of range", n)
	}
	return uint16(n), nil
}

func resolveNode(ctx context.Context, o Options, node string, hints Hints) ([]resolved, error) {
	if node == "" {
		return []resolved{substituteAddr(hints)}, nil
	}
	if hints.NumericHost {
		return resolveNumericHost(node, hints)
	}
	if hints.Family == FamilyUnspecified && !hints.DisableDynamicSort {
		return resolveDualStack(ctx, o, node, hints)
	}
	return resolveSingleFamily(ctx, o, node, hints)
}

func substituteAddr(hints Hints) resolved {
	family := hints.Family
	if family == FamilyUnspecified {
		family = FamilyV4
	}
	if hints.Passive {
		if family == FamilyV6 {
			return resolved{family: FamilyV6, ip: net.IPv6unspecified}
		}
		return resolved{family: FamilyV4, ip: net.IPv4zero}
	}
	if family == FamilyV6 {
		return resolved{family: FamilyV6, ip: net.IPv6loopback}
	}
	return resolved{family: FamilyV4, ip: net.IPv4(127, 0, 0, 1)}
}

func resolveNumericHost(node string, hints Hints) ([]resolved, error) {
	ip := net.ParseIP(node)
	if ip == nil {
		return nil, errors.Wrapf(ErrFail, "node %q is not a numeric address", node)
	}
	family := FamilyV6
	if v4 := ip.To4(); v4 != nil {
		family = FamilyV4
		ip = v4
	}
	if hints.Family != FamilyUnspecified && hints.Family != family {
		return nil, errors.Wrapf(ErrFail, "node %q family mismatch with hints", node)
	}
	return []resolved{{family: family, ip: ip}}, nil
}

func resolveDualStack(ctx context.Context, o Options, node string, hints Hints) ([]resolved, error) {
	summary, sumErr := rfc6724.BuildSourceSummary(o.Policy, o.Enumerator)
	skipV4, skipV6 := false, false
	if hints.AddrConfig && sumErr == nil {
		skipV4 = !summary.HasV4()
		skipV6 = !summary.HasV6()
	}

	var out []resolved
	var v4Err, v6Err error

	if !skipV6 {
		if ip, err := o.Resolver.Resolve(ctx, node, resolver.V6); err == nil {
			out = append(out, resolved{family: FamilyV6, ip: ip})
		} else {
			v6Err = err
		}
	}
	if !skipV4 {
		if ip, err := o.Resolver.Resolve(ctx, node, resolver.V4); err == nil {
			out = append(out, resolved{family: FamilyV4, ip: ip})
		} else {
			v4Err = err
		}
	}

	if len(out) == 0 {
		combined := multierr.Append(v4Err, v6Err)
		o.Log.Warn("dual-stack resolve failed for both families", zap.String("node", node), zap.Error(combined))
		return nil, errors.Wrapf(ErrFail, "resolve %q", node)
	}

	if len(out) == 2 {
		destinations := make([]rfc6724.Destination, len(out))
		for i, r := range out {
			destinations[i] = rfc6724.Destination{IP: r.ip}
		}
		kept := rpolicy.Filter(o.Filter, destinations)
		if o.Metrics != nil {
			o.Metrics.AddDenied(len(destinations) - len(kept))
		}
		if len(kept) == 0 {
			return nil, errors.Wrap(ErrFail, "every candidate destination denied by policy")
		}
		rfc6724.LogClassification(o.Log, o.Policy, kept)
		sorted, err := rfc6724.Sort(o.Policy, kept, o.Enumerator)
		if err != nil {
			return nil, errors.Wrapf(ErrFail, "sort destinations: %v", err)
		}
		rfc6724.LogSortResult(o.Log, sorted)
		if o.Metrics != nil {
			o.Metrics.AddSorted(len(sorted))
		}
		out = out[:0]
		for _, d := range sorted {
			fam := FamilyV6
			if v4 := net.IP(d.IP).To4(); v4 != nil {
				fam = FamilyV4
			}
			out = append(out, resolved{family: fam, ip: d.IP})
		}
	}

	return out, nil
}

func resolveSingleFamily(ctx context.Context, o Options, node string, hints Hints) ([]resolved, error) {
	constraint := resolver.Any
	family := hints.Family
	switch hints.Family {
	case FamilyV4:
		constraint = resolver.V4
	case FamilyV6:
		constraint = resolver.V6
	case FamilyUnspecified:
		// DisableDynamicSort branch: ask under a combined constraint and
		// keep whichever single answer comes back. See Hints.DisableDynamicSort.
		constraint = resolver.V4OrV6
	}
	ip, err := o.Resolver.Resolve(ctx, node, constraint)
	if err != nil {
		return nil, errors.Wrapf(ErrFail, "resolve %q", node)
	}
	if family == FamilyUnspecified {
		family = FamilyV6
		if v4 := ip.To4(); v4 != nil {
			family = FamilyV4
		}
	}
	return []resolved{{family: family, ip: ip}}, nil
}

// buildChain allocates one node per address in reverse order, so each new
// node's Next points at the previously built head and the final chain
// preserves addrs' order with no separate reversal pass.
func buildChain(addrs []resolved, canonName string, port uint16, hints Hints) *Node {
	var head *Node
	for i := len(addrs) - 1; i >= 0; i-- {
		r := addrs[i]
		n := &Node{
			Family:    r.family,
			SockType:  hints.SockType,
			Protocol:  hints.Protocol,
			CanonName: canonName,
			Next:      head,
		}
		if r.family == FamilyV4 {
			var raw [4]byte
			copy(raw[:], r.ip.To4())
			n.SockAddr.V4 = newSockaddrIn(raw, port)
		} else {
			var raw [16]byte
			widened := rfc6724.Widen(r.ip, "")
			copy(raw[:], widened.IP.To16())
			n.SockAddr.V6 = newSockaddrIn6(raw, port, 0)
		}
		head = n
	}
	return head
}
