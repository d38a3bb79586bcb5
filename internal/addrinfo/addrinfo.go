// Package addrinfo implements the getaddrinfo-style result list
// assembler: it consults a resolver facade for up to two addresses
// (family-directed), invokes the RFC 6724 destination sorter when both
// families answer, and returns a caller-owned chain of result nodes. The
// shape mirrors internal/server.Options: a struct of collaborators plus a
// handful of knobs, no hidden globals.
package addrinfo

import (
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/ifaceinfo"
	"github.com/gortc/addrinfo/internal/metrics"
	"github.com/gortc/addrinfo/internal/resolver"
	"github.com/gortc/addrinfo/internal/rfc6724"
	"github.com/gortc/addrinfo/internal/rpolicy"
)

// Family is the address family a caller constrains a lookup to, or leaves
// unspecified to request both.
type Family int

// Family values recognized by Lookup.
const (
	FamilyUnspecified Family = iota
	FamilyV4
	FamilyV6
)

// maxNodeNameLength is the maximum DNS name length accepted for node, in
// octets (RFC 1035 §3.1's 255 minus the trailing root label and length
// octet convention most resolvers expose as 253).
const maxNodeNameLength = 253

// Options bundles addrinfo's external collaborators and knobs. Resolver
// is required; the rest have usable zero values (a nil Enumerator uses
// ifaceinfo.Default).
type Options struct {
	Resolver   resolver.Resolver
	Enumerator rfc6724.Enumerator
	Policy     []rfc6724.PolicyEntry // nil uses rfc6724.DefaultPolicyTable()
	Filter     rpolicy.Rule          // nil allows every destination
	Metrics    *metrics.Metrics      // nil disables metrics recording
	Log        *zap.Logger           // nil uses zap.NewNop()
}

func (o Options) withDefaults() Options {
	if o.Enumerator == nil {
		o.Enumerator = ifaceinfo.Default
	}
	if o.Policy == nil {
		o.Policy = rfc6724.DefaultPolicyTable()
	}
	if o.Filter == nil {
		o.Filter = rpolicy.AllowAll
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

func (o Options) observeLookup(outcome string) {
	if o.Metrics != nil {
		o.Metrics.ObserveLookup(outcome)
	}
}
