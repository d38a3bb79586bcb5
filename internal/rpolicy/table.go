package rpolicy

import (
	"fmt"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/gortc/addrinfo/internal/rfc6724"
)

// maxLabel is the widest value LabelsPresent/LabelOf can represent as a
// single bit in a uint32 mask; see rfc6724.MaxCandidateSourceAddresses for
// the analogous ceiling on the source-summary side.
const maxLabel = 0x1f

// TableEntry is the wire/config shape of one rfc6724.PolicyEntry: a CIDR
// string instead of a parsed *net.IPNet, so it can come straight out of
// YAML/HCL via viper.
type TableEntry struct {
	Prefix     string `mapstructure:"prefix"`
	Label      uint8  `mapstructure:"label"`
	Precedence uint8  `mapstructure:"precedence"`
}

// Table holds the currently active RFC 6724 policy table and lets it be
// replaced wholesale. The zero value is not usable; call NewTable.
type Table struct {
	mu      sync.RWMutex
	entries []rfc6724.PolicyEntry
}

// NewTable returns a Table seeded with the compiled-in default.
func NewTable() *Table {
	return &Table{entries: rfc6724.DefaultPolicyTable()}
}

// Entries returns a defensive copy of the active table, in match-priority
// order, suitable for passing to rfc6724.LabelOf/PrecedenceOf.
func (t *Table) Entries() []rfc6724.PolicyEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]rfc6724.PolicyEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Reload validates raw and, only if every entry is well-formed, replaces
// the active table with it. On validation failure the prior table is left
// untouched and the error names the first offending entry — callers (the
// SIGUSR2-triggered reload, the /reload HTTP handler) keep serving the old
// table rather than falling back to zero values.
func (t *Table) Reload(raw []TableEntry) error {
	entries, err := parseTable(raw)
	if err != nil {
		return errors.Wrap(err, "reload policy table")
	}
	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()
	return nil
}

func parseTable(raw []TableEntry) ([]rfc6724.PolicyEntry, error) {
	if len(raw) == 0 {
		return nil, errors.New("policy table must have at least one entry")
	}
	entries := make([]rfc6724.PolicyEntry, 0, len(raw))
	for i, e := range raw {
		_, prefix, err := net.ParseCIDR(e.Prefix)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d: prefix %q", i, e.Prefix)
		}
		if e.Label > maxLabel {
			return nil, fmt.Errorf("entry %d: label %d exceeds max %d", i, e.Label, maxLabel)
		}
		entries = append(entries, rfc6724.PolicyEntry{
			Prefix:     prefix,
			Label:      rfc6724.Label(e.Label),
			Precedence: e.Precedence,
		})
	}
	return entries, nil
}
