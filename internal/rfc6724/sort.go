package rfc6724

import "sort"

// Destination is one candidate address to be ordered by Sort. IP and Zone
// carry the address's original representation (IPv4 stays 4 bytes); Sort
// widens internally for comparison and returns destinations in their
// original form.
type Destination struct {
	IP   []byte
	Zone string
}

func (d Destination) widen() Addr { return Widen(d.IP, d.Zone) }

// Sort orders destinations per RFC 6724 Section 6, using the implemented
// comparator (Compare) and a SourceSummary built once via enum. Lists of
// length 0 or 1 are returned unchanged without touching interface state,
// per the short-circuit invariant: Sort never calls enum in that case.
//
// The returned slice is sorted in place and also returned for convenience.
func Sort(table []PolicyEntry, destinations []Destination, enum Enumerator) ([]Destination, error) {
	if len(destinations) <= 1 {
		return destinations, nil
	}
	summary, err := BuildSourceSummary(table, enum)
	if err != nil {
		return nil, err
	}
	paired := make(pairedDestinations, len(destinations))
	for i, d := range destinations {
		paired[i] = pairedDestination{dest: d, widened: d.widen()}
	}
	sort.Stable(byRFC6724{paired: paired, table: table, summary: summary})
	for i, p := range paired {
		destinations[i] = p.dest
	}
	return destinations, nil
}

type pairedDestination struct {
	dest    Destination
	widened Addr
}

type pairedDestinations []pairedDestination

type byRFC6724 struct {
	paired  pairedDestinations
	table   []PolicyEntry
	summary SourceSummary
}

func (b byRFC6724) Len() int      { return len(b.paired) }
func (b byRFC6724) Swap(i, j int) { b.paired[i], b.paired[j] = b.paired[j], b.paired[i] }
func (b byRFC6724) Less(i, j int) bool {
	return Compare(b.table, b.paired[i].widened, b.paired[j].widened, b.summary) == APreferred
}
