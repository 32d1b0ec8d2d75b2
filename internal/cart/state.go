// Package cart owns the locally persisted draft cart: a single JSON blob of
// line items with derived pricing and vendor policy on top. All mutation
// goes through the Store; readers get immutable snapshots.
package cart

// UnknownVendorID marks lines whose vendor could not be resolved from the
// source meal. Fee grouping still works; all unresolved lines share one fee.
const UnknownVendorID = "unknown-vendor"

// ItemSnapshot is the canonical add-to-cart input, produced by the catalog
// normalizer from the backend's heterogeneous meal shape.
type ItemSnapshot struct {
	ItemID            string
	VendorID          string
	VendorName        string
	VendorDeliveryFee float64
	Name              string
	UnitPrice         float64
	ImageURL          string
	Tags              []string
}

// LineItem is one persisted cart row, unique by ItemID. Vendor fields are
// snapshotted at add time so pricing stays stable while the item is in the
// cart; they refresh when the same item is added again.
type LineItem struct {
	ItemID            string   `json:"itemId"`
	VendorID          string   `json:"vendorId"`
	VendorName        string   `json:"vendorName"`
	VendorDeliveryFee float64  `json:"vendorDeliveryFee"`
	Name              string   `json:"name"`
	UnitPrice         float64  `json:"unitPrice"`
	Quantity          int      `json:"quantity"`
	ImageURL          string   `json:"imageUrl,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

// State is the full persisted cart snapshot. LastAddedVendorID is a weak
// reference used for primary-vendor grouping; it is "" for an empty cart
// and may go stale after removals, in which case it is recomputed.
type State struct {
	Items             []LineItem `json:"items"`
	LastAddedVendorID string     `json:"lastAddedVendorId,omitempty"`
}

func emptyState() State {
	return State{Items: []LineItem{}}
}

// Clone returns a deep copy; mutating it never propagates back to storage.
func (s State) Clone() State {
	clone := State{
		Items:             make([]LineItem, len(s.Items)),
		LastAddedVendorID: s.LastAddedVendorID,
	}
	for i, item := range s.Items {
		clone.Items[i] = item.clone()
	}
	return clone
}

func (li LineItem) clone() LineItem {
	out := li
	if li.Tags != nil {
		out.Tags = append([]string(nil), li.Tags...)
	}
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s State) indexOf(itemID string) int {
	for i, item := range s.Items {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (s State) hasVendor(vendorID string) bool {
	for _, item := range s.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}
