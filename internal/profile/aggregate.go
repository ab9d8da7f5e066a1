package profile

import (
	"sort"
	"strings"
)

// DefaultFlowLimit caps ranked flow-node lists.
const DefaultFlowLimit = 10

// supplyMagnitude picks one magnitude per supply-chain row by
// first-available-field priority. A single field is chosen, never a
// blended sum across fields.
func supplyMagnitude(r SupplyChainRelationship) *float64 {
	for _, f := range []*float64{r.TradesSum, r.Quantity, r.KGWeight, r.VolumeMT, r.TotalPriceUSD} {
		if f != nil {
			return f
		}
	}
	return nil
}

// purchaseMagnitude is the purchase-history fallback priority.
func purchaseMagnitude(r PurchaseHistoryLine) *float64 {
	for _, f := range []*float64{r.Quantity, r.WeightKG, r.TotalValueUSD} {
		if f != nil {
			return f
		}
	}
	return nil
}

// buildFlows groups (name, magnitude) pairs, sums per trimmed name, and
// returns nodes sorted strictly descending by value, capped at limit.
// Ties sort by name so output is deterministic.
func buildFlows(names []string, magnitudes []*float64, exclude string, limit int) []FlowNode {
	if limit <= 0 {
		limit = DefaultFlowLimit
	}
	excludeNorm := strings.ToLower(strings.TrimSpace(exclude))

	sums := make(map[string]float64)
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if excludeNorm != "" && strings.ToLower(name) == excludeNorm {
			continue
		}
		var mag float64
		if i < len(magnitudes) && magnitudes[i] != nil {
			mag = *magnitudes[i]
		}
		sums[name] += mag
	}

	nodes := make([]FlowNode, 0, len(sums))
	for name, value := range sums {
		nodes = append(nodes, FlowNode{Name: name, Value: value})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Value != nodes[j].Value {
			return nodes[i].Value > nodes[j].Value
		}
		return nodes[i].Name < nodes[j].Name
	})
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	return nodes
}

// ExporterFlows ranks the company's top suppliers. Supply-chain rows are
// preferred; when that source is empty the same grouping is recomputed
// from purchase history.
func ExporterFlows(supply []SupplyChainRelationship, purchases []PurchaseHistoryLine, limit int) []FlowNode {
	if len(supply) > 0 {
		names := make([]string, len(supply))
		mags := make([]*float64, len(supply))
		for i, r := range supply {
			if r.Exporter != nil {
				names[i] = *r.Exporter
			}
			mags[i] = supplyMagnitude(r)
		}
		return buildFlows(names, mags, "", limit)
	}

	names := make([]string, len(purchases))
	mags := make([]*float64, len(purchases))
	for i, r := range purchases {
		if r.Exporter != nil {
			names[i] = *r.Exporter
		}
		mags[i] = purchaseMagnitude(r)
	}
	return buildFlows(names, mags, "", limit)
}

// ImporterFlows ranks counterparty importers. Any node whose normalized
// name equals the subject company's own name is excluded so the rendered
// graph never contains a self-referential loop.
func ImporterFlows(supply []SupplyChainRelationship, purchases []PurchaseHistoryLine, subjectName string, limit int) []FlowNode {
	if len(supply) > 0 {
		names := make([]string, len(supply))
		mags := make([]*float64, len(supply))
		for i, r := range supply {
			if r.Importer != nil {
				names[i] = *r.Importer
			}
			mags[i] = supplyMagnitude(r)
		}
		return buildFlows(names, mags, subjectName, limit)
	}

	names := make([]string, len(purchases))
	mags := make([]*float64, len(purchases))
	for i, r := range purchases {
		if r.Importer != nil {
			names[i] = *r.Importer
		}
		mags[i] = purchaseMagnitude(r)
	}
	return buildFlows(names, mags, subjectName, limit)
}

// FilterByHSPrefix keeps purchase lines whose HS code starts with prefix.
// When the filter matches nothing the full set is returned instead of an
// empty table, with the second return flagging that the filter had no
// effect so the caller can say so rather than silently showing unrelated
// data.
func FilterByHSPrefix(lines []PurchaseHistoryLine, prefix string) ([]PurchaseHistoryLine, bool) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return lines, false
	}

	var filtered []PurchaseHistoryLine
	for _, l := range lines {
		if l.HSCode != nil && strings.HasPrefix(strings.TrimSpace(*l.HSCode), prefix) {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == 0 && len(lines) > 0 {
		return lines, true
	}
	return filtered, false
}

// ComputeStats derives scalar summary statistics from the displayed
// purchase lines. Cardinalities count distinct non-empty values.
func ComputeStats(lines []PurchaseHistoryLine, hsFallbackUsed bool) PurchaseStats {
	suppliers := make(map[string]bool)
	origins := make(map[string]bool)
	destinations := make(map[string]bool)
	products := make(map[string]bool)

	addTo := func(set map[string]bool, v *string) {
		if v == nil {
			return
		}
		s := strings.TrimSpace(*v)
		if s != "" {
			set[s] = true
		}
	}

	for _, l := range lines {
		addTo(suppliers, l.Exporter)
		addTo(origins, l.OriginCountry)
		addTo(destinations, l.DestinationCountry)
		addTo(products, l.Product)
	}

	return PurchaseStats{
		Records:              len(lines),
		Suppliers:            len(suppliers),
		Origins:              len(origins),
		Destinations:         len(destinations),
		Products:             len(products),
		HSFilterFallbackUsed: hsFallbackUsed,
	}
}
