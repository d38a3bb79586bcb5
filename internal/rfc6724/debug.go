package rfc6724

import "go.uber.org/zap"

// LogClassification emits one debug-level line per destination recording
// the scope/label/precedence Compare uses to order it; the resulting order
// is logged separately by LogSortResult. log may be nil, in which case
// this is a no-op; classification/comparison themselves never depend on
// logging, this only observes the inputs Compare works from.
func LogClassification(log *zap.Logger, table []PolicyEntry, destinations []Destination) {
	if log == nil {
		return
	}
	for _, d := range destinations {
		a := d.widen()
		label := LabelOf(table, a)
		log.Debug("classified destination",
			zap.Stringer("addr", a.IP),
			zap.Int("scope", int(ScopeOf(a))),
			zap.Int("label", int(label)),
			zap.Int("precedence", int(PrecedenceOf(table, label))),
		)
	}
}

// LogSortResult emits one debug-level line recording the order Sort
// produced, for the same reason LogClassification exists: visibility into
// a comparison decision already made, not a second implementation of it.
func LogSortResult(log *zap.Logger, sorted []Destination) {
	if log == nil {
		return
	}
	addrs := make([]string, len(sorted))
	for i, d := range sorted {
		addrs[i] = d.widen().IP.String()
	}
	log.Debug("sorted destinations", zap.Strings("order", addrs))
}
