package rfc6724

// SourceSummary is presence-only information about locally configured
// source addresses: which scopes and precedence labels are represented by
// at least one source, across all interfaces. It never identifies which
// interface or address would actually be selected as a source — that
// would require the full RFC 6724 Section 5 source-address-selection
// algorithm, which this package does not implement (see Compare's doc
// comment for why the presence test is an adequate substitute for
// destination sorting).
type SourceSummary struct {
	V6ScopesPresent uint32
	V4ScopesPresent uint32
	LabelsPresent   uint32
}

// HasV4 reports whether any local source address classified as IPv4
// (v4-mapped) was observed while building the summary.
func (s SourceSummary) HasV4() bool { return s.V4ScopesPresent != 0 }

// HasV6 reports whether any local source address classified as native
// IPv6 was observed while building the summary.
func (s SourceSummary) HasV6() bool { return s.V6ScopesPresent != 0 }

func (s *SourceSummary) observe(table []PolicyEntry, source Addr) {
	s.LabelsPresent |= 1 << uint(LabelOf(table, source))
	scope := ScopeOf(source)
	if source.IsV4Mapped() {
		s.V4ScopesPresent |= 1 << uint(scope)
	} else {
		s.V6ScopesPresent |= 1 << uint(scope)
	}
}

// BuildSourceSummary scans up to MaxCandidateSourceAddresses source
// addresses yielded by enum and returns their scope/label summary. Each
// interface contributes its primary IPv4 address (if any) and each of its
// configured IPv6 addresses; the scan stops early once the ceiling is
// reached so a host with an unusual number of interfaces or addresses
// can't make this unbounded.
func BuildSourceSummary(table []PolicyEntry, enum Enumerator) (SourceSummary, error) {
	var (
		summary SourceSummary
		sampled int
	)
	err := enum.ForEachInterface(func(src InterfaceSource) bool {
		if sampled >= MaxCandidateSourceAddresses {
			return false
		}
		if src.PrimaryV4 != nil {
			summary.observe(table, Widen(src.PrimaryV4, ""))
			sampled++
		}
		for _, ip := range src.V6 {
			if sampled >= MaxCandidateSourceAddresses {
				break
			}
			summary.observe(table, Widen(ip, ""))
			sampled++
		}
		return sampled < MaxCandidateSourceAddresses
	})
	if err != nil {
		return SourceSummary{}, err
	}
	return summary, nil
}
