package cart

// PrimaryVendorID picks the vendor the UI groups the cart under: the
// last-added vendor while it still has a line in the cart, else the first
// line's vendor, else "" for an empty cart.
func PrimaryVendorID(state State) string {
	if state.LastAddedVendorID != "" && state.hasVendor(state.LastAddedVendorID) {
		return state.LastAddedVendorID
	}
	if len(state.Items) > 0 {
		return state.Items[0].VendorID
	}
	return ""
}

// HasMultipleVendors reports whether lines span more than one vendor. It
// feeds the multi-vendor warning in the cart UI; splitting such a cart
// into per-vendor orders is not implemented.
func HasMultipleVendors(items []LineItem) bool {
	var first string
	for i, item := range items {
		if i == 0 {
			first = item.VendorID
			continue
		}
		if item.VendorID != first {
			return true
		}
	}
	return false
}

// VendorSummary describes one vendor present in the cart.
type VendorSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DeliveryFee float64 `json:"deliveryFee"`
}

// VendorSummaries lists the distinct vendors in first-occurrence order,
// each with the fee sampled from its first line.
func VendorSummaries(items []LineItem) []VendorSummary {
	seen := make(map[string]struct{}, len(items))
	summaries := make([]VendorSummary, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.VendorID]; ok {
			continue
		}
		seen[item.VendorID] = struct{}{}
		summaries = append(summaries, VendorSummary{
			ID:          item.VendorID,
			Name:        item.VendorName,
			DeliveryFee: item.VendorDeliveryFee,
		})
	}
	return summaries
}

// GroupByVendor buckets lines per vendor, preserving line order inside
// each bucket.
func GroupByVendor(items []LineItem) map[string][]LineItem {
	grouped := make(map[string][]LineItem, len(items))
	for _, item := range items {
		grouped[item.VendorID] = append(grouped[item.VendorID], item)
	}
	return grouped
}
