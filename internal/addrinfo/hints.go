package addrinfo

// Hints narrows how Lookup resolves node and fills the result chain.
// Flags beyond NumericHost/Passive/AddrConfig are accepted by callers of
// this package but have no effect here, matching the "others are
// accepted but not acted upon" allowance.
type Hints struct {
	Family Family

	// NumericHost requires node to already be a literal address; no
	// resolver call is made.
	NumericHost bool

	// Passive selects the any-address (0.0.0.0 / ::) as the substitute
	// for an absent node, instead of the loopback address.
	Passive bool

	// AddrConfig, the AI_ADDRCONFIG equivalent, suppresses a family from
	// the query entirely when the local source summary reports no
	// address of that family at all.
	AddrConfig bool

	// DisableDynamicSort switches Family == FamilyUnspecified from the
	// normal dual-family branch (request both, invoke the RFC 6724 sorter
	// when both answer) to the non-dynamic-sort branch: the resolver is
	// asked under a single combined V4-or-V6 constraint and only one
	// slot is consumed. Which family actually wins that call is left
	// unspecified rather than guessed at — see the open question about
	// this branch's ambiguous "prefer IPv4" intent. Zero value (false)
	// is the normal, dynamic-sort path.
	DisableDynamicSort bool

	SockType int
	Protocol int
}
