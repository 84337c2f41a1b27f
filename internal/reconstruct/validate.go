package reconstruct

import "math"

// Tolerance tiers for the subtotal-consistency check, in percent deviation
// from the expected subtotal (total - tax). Up to 5% is OCR noise; 5-20% is
// accepted as-is; beyond 20% the candidate set is considered unreliable and
// gets the single-removal search, whose result must land within 10% or the
// whole set is rejected. The bias is precision over recall: a false line
// item actively misleads reviewers, a missing one doesn't.
const (
	acceptDeviationPct  = 5.0
	suspectDeviationPct = 20.0
	removalDeviationPct = 10.0
)

// filterBySubtotal checks candidate line items against the expected
// subtotal and returns the accepted set plus the achieved deviation in
// percent. Depending on the deviation the set is accepted unchanged,
// trimmed by the best single removal, or rejected entirely (empty result —
// reporting "unknown" beats reporting wrong data).
func filterBySubtotal(items []LineItem, expectedCents int64) ([]LineItem, float64) {
	if len(items) == 0 || expectedCents <= 0 {
		return items, 0
	}

	var sum int64
	for _, item := range items {
		sum += item.TotalCents
	}
	deviation := deviationPct(sum, expectedCents)
	if deviation <= suspectDeviationPct {
		return items, deviation
	}

	// Greedy single-removal search: O(n), one removal only. Not optimal
	// when several candidates are bad, but those sets fail the 10% gate
	// and get rejected anyway.
	bestIdx := -1
	bestDeviation := deviation
	for i, item := range items {
		if d := deviationPct(sum-item.TotalCents, expectedCents); d < bestDeviation {
			bestDeviation = d
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestDeviation <= removalDeviationPct {
		filtered := make([]LineItem, 0, len(items)-1)
		filtered = append(filtered, items[:bestIdx]...)
		filtered = append(filtered, items[bestIdx+1:]...)
		return filtered, bestDeviation
	}
	return []LineItem{}, bestDeviation
}

// deviationPct multiplies before dividing so that cent-exact cases land
// exactly on the tier boundaries.
func deviationPct(sum, expected int64) float64 {
	return math.Abs(float64((sum-expected)*100)) / float64(expected)
}
