package rfc6724

// Verdict is the result of comparing two destinations: which of them, if
// either, RFC 6724 prefers as a connection target.
type Verdict int

const (
	// APreferred means the first destination passed to Compare sorts
	// ahead of the second.
	APreferred Verdict = -1
	// Tie means neither destination is preferred over the other by any
	// implemented rule; input order is preserved (rule 10).
	Tie Verdict = 0
	// BPreferred means the second destination passed to Compare sorts
	// ahead of the first.
	BPreferred Verdict = 1
)

// Compare orders two v6-mapped destinations per the implemented subset of
// RFC 6724 Section 6: rules 2 (matching scope), 5 (matching label), 6
// (higher precedence) and 8 (smaller scope), in that order, returning on
// the first rule that decides. Rules 1, 3, 4, 7 and 9 are not attempted.
//
// Rules 2 and 5 are defined over the source address that would actually
// be selected for each destination, which requires the full Section 5
// algorithm this package doesn't implement. Instead, Compare asks only
// whether any local source address of the matching scope/label exists at
// all (summary). That gives the same answer as full selection for every
// input this package actually sorts (at most one IPv4 and one IPv6
// destination): if a matching local source exists, source-address
// selection will prefer it over a non-matching source, so the rule
// succeeds; if none exists, it cannot succeed.
func Compare(table []PolicyEntry, a, b Addr, summary SourceSummary) Verdict {
	aScope, bScope := ScopeOf(a), ScopeOf(b)
	if v := compareScopeMatch(a, b, aScope, bScope, summary); v != Tie {
		return v
	}
	if v := compareLabelMatch(table, a, b, summary); v != Tie {
		return v
	}
	if v := comparePrecedence(table, a, b); v != Tie {
		return v
	}
	if v := compareScope(aScope, bScope); v != Tie {
		return v
	}
	return Tie
}

func scopeMask(summary SourceSummary, a Addr) uint32 {
	if a.IsV4Mapped() {
		return summary.V4ScopesPresent
	}
	return summary.V6ScopesPresent
}

// Rule 2: prefer the destination whose scope matches a locally available
// source scope of the same family, when exactly one candidate matches.
func compareScopeMatch(a, b Addr, aScope, bScope Scope, summary SourceSummary) Verdict {
	aMatch := scopeMask(summary, a)&(1<<uint(aScope)) != 0
	bMatch := scopeMask(summary, b)&(1<<uint(bScope)) != 0
	if aMatch && !bMatch {
		return APreferred
	}
	if bMatch && !aMatch {
		return BPreferred
	}
	return Tie
}

// Rule 5: prefer the destination whose precedence label matches a locally
// available source label, when exactly one candidate matches.
func compareLabelMatch(table []PolicyEntry, a, b Addr, summary SourceSummary) Verdict {
	aMatch := summary.LabelsPresent&(1<<uint(LabelOf(table, a))) != 0
	bMatch := summary.LabelsPresent&(1<<uint(LabelOf(table, b))) != 0
	if aMatch && !bMatch {
		return APreferred
	}
	if bMatch && !aMatch {
		return BPreferred
	}
	return Tie
}

// Rule 6: prefer the destination with the higher precedence label.
func comparePrecedence(table []PolicyEntry, a, b Addr) Verdict {
	aPrec := PrecedenceOf(table, LabelOf(table, a))
	bPrec := PrecedenceOf(table, LabelOf(table, b))
	switch {
	case aPrec > bPrec:
		return APreferred
	case bPrec > aPrec:
		return BPreferred
	default:
		return Tie
	}
}

// Rule 8: prefer the destination with the numerically smaller scope.
func compareScope(aScope, bScope Scope) Verdict {
	switch {
	case aScope < bScope:
		return APreferred
	case bScope < aScope:
		return BPreferred
	default:
		return Tie
	}
}
