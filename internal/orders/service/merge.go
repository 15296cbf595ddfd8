package service

import (
	"slices"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
)

// mergeOrders sorts newest first and keeps the first row per id and category.
// The sort is stable and direct rows come first, so on equal timestamps a
// directly matched row beats its ledger copy.
func mergeOrders(groups ...[]bookingdomain.OrderView) []bookingdomain.OrderView {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	all := make([]bookingdomain.OrderView, 0, total)
	for _, g := range groups {
		all = append(all, g...)
	}

	slices.SortStableFunc(all, func(a, b bookingdomain.OrderView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	seen := make(map[string]struct{}, len(all))
	out := make([]bookingdomain.OrderView, 0, len(all))
	for _, view := range all {
		key := view.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, view)
	}
	return out
}
