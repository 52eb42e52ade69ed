package domain

import "sort"

const (
	// HighDemandThreshold is the predicted quantity a product must exceed to count as high demand.
	HighDemandThreshold = 250.0
	// ReorderScaleFactor is applied to the reorder point of high-demand products.
	ReorderScaleFactor = 1.2
)

// HighDemandSet holds the product ids whose forecast exceeds HighDemandThreshold.
// It is derived once per pipeline run and never modified afterwards. A nil set
// behaves as an empty one.
type HighDemandSet struct {
	ids map[string]struct{}
}

// DeriveHighDemandSet collects every product with a prediction strictly above the threshold.
func DeriveHighDemandSet(forecast []ForecastResult) *HighDemandSet {
	set := &HighDemandSet{ids: make(map[string]struct{})}
	for _, f := range forecast {
		if f.PredictedSalesQuantity > HighDemandThreshold {
			set.ids[f.ProductID] = struct{}{}
		}
	}
	return set
}

// NewHighDemandSet builds a set from explicit product ids.
func NewHighDemandSet(productIDs ...string) *HighDemandSet {
	set := &HighDemandSet{ids: make(map[string]struct{}, len(productIDs))}
	for _, id := range productIDs {
		set.ids[id] = struct{}{}
	}
	return set
}

// Contains reports whether the product is high demand.
func (s *HighDemandSet) Contains(productID string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[productID]
	return ok
}

// Len returns the number of high-demand products.
func (s *HighDemandSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the product ids in sorted order.
func (s *HighDemandSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ScaleReorderPoint returns the reorder point used for a high-demand product.
func ScaleReorderPoint(reorderPoint float64) float64 {
	return reorderPoint * ReorderScaleFactor
}

// FlagFor returns the forecast flag for an inventory product.
func (s *HighDemandSet) FlagFor(productID string) string {
	if s.Contains(productID) {
		return FlagHighDemand
	}
	return FlagStable
}

// TagFor returns the demand tag for a priced product.
func (s *HighDemandSet) TagFor(productID string) string {
	if s.Contains(productID) {
		return TagHighDemand
	}
	return TagNormal
}
