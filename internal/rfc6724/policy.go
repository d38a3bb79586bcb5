package rfc6724

import "net"

// PolicyEntry is one row of the RFC 6724 default policy table: a prefix,
// the label assigned to addresses under it, and that label's precedence.
type PolicyEntry struct {
	Prefix     *net.IPNet
	Label      Label
	Precedence uint8
}

func mustParseNet(cidr string) *net.IPNet {
	_, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	return n
}

// defaultTable is evaluated in order: the first entry whose Prefix
// contains the candidate address wins. The order is longest-prefix-first
// as specified by RFC 6724 Section 2.1, not the table's display order.
var defaultTable = []PolicyEntry{
	{Prefix: mustParseNet("::1/128"), Label: LabelLocalhost, Precedence: 50},
	{Prefix: mustParseNet("::ffff:0:0/96"), Label: LabelV4Mapped, Precedence: 35},
	{Prefix: mustParseNet("::/96"), Label: LabelV4Compatible, Precedence: 1},
	{Prefix: mustParseNet("2001::/32"), Label: LabelTeredo, Precedence: 5},
	{Prefix: mustParseNet("2002::/16"), Label: Label6to4, Precedence: 30},
	{Prefix: mustParseNet("3ffe::/16"), Label: Label6Bone, Precedence: 1},
	{Prefix: mustParseNet("fec0::/10"), Label: LabelSiteLocal, Precedence: 1},
	{Prefix: mustParseNet("fc00::/7"), Label: LabelULA, Precedence: 3},
	{Prefix: mustParseNet("::/0"), Label: LabelGeneral, Precedence: 40},
}

// DefaultPolicyTable returns the compiled-in RFC 6724 default policy
// table, in match-priority order. Callers must not mutate the returned
// slice's Prefix pointers; copy the slice before further indexing if an
// override (see the rpolicy package) needs to replace entries.
func DefaultPolicyTable() []PolicyEntry {
	cp := make([]PolicyEntry, len(defaultTable))
	copy(cp, defaultTable)
	return cp
}

// LabelOf returns the label of the first table entry whose prefix
// contains a, evaluated in table order. DefaultPolicyTable ends with a
// ::/0 entry; for a table without one (rpolicy does not require it), an
// address no entry contains gets LabelGeneral, so LabelOf is total over
// v6-mapped addresses.
func LabelOf(table []PolicyEntry, a Addr) Label {
	for _, e := range table {
		if e.Prefix.Contains(a.IP) {
			return e.Label
		}
	}
	return LabelGeneral
}

// PrecedenceOf returns the precedence registered for label in table, or 0
// if no entry carries that label.
func PrecedenceOf(table []PolicyEntry, label Label) uint8 {
	for _, e := range table {
		if e.Label == label {
			return e.Precedence
		}
	}
	return 0
}
