package service

import (
	"testing"
	"time"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/stretchr/testify/assert"
)

func view(id string, category bookingdomain.Category, minutes int, source bookingdomain.Source) bookingdomain.OrderView {
	return bookingdomain.OrderView{
		ID:        id,
		Category:  category,
		CreatedAt: time.Date(2025, 1, 1, 0, minutes, 0, 0, time.UTC),
		Source:    source,
	}
}

func TestMergeOrdersSortsNewestFirst(t *testing.T) {
	merged := mergeOrders(
		[]bookingdomain.OrderView{
			view("a", bookingdomain.CategoryHotel, 1, bookingdomain.SourceDirect),
			view("b", bookingdomain.CategoryTour, 3, bookingdomain.SourceDirect),
		},
		[]bookingdomain.OrderView{
			view("c", bookingdomain.CategoryOrder, 2, bookingdomain.SourceLedgerSynthesized),
		},
	)
	assert.Equal(t, []string{"b::tour", "c::order", "a::hotel"}, ids(merged))
}

func TestMergeOrdersDedupesByIDAndCategory(t *testing.T) {
	merged := mergeOrders(
		[]bookingdomain.OrderView{
			view("x", bookingdomain.CategoryHotel, 5, bookingdomain.SourceDirect),
			view("x", bookingdomain.CategoryShortlet, 5, bookingdomain.SourceDirect),
		},
		[]bookingdomain.OrderView{
			view("x", bookingdomain.CategoryHotel, 5, bookingdomain.SourceLedger),
			view("x", bookingdomain.CategoryHotel, 9, bookingdomain.SourceLedgerSynthesized),
		},
	)

	seen := map[string]bool{}
	for _, v := range merged {
		assert.False(t, seen[v.Key()], v.Key())
		seen[v.Key()] = true
	}
	assert.Len(t, merged, 2)
	// The newer row wins regardless of where it came from.
	assert.Equal(t, bookingdomain.SourceLedgerSynthesized, merged[0].Source)
}

func TestMergeOrdersPrefersDirectRowOnTie(t *testing.T) {
	merged := mergeOrders(
		[]bookingdomain.OrderView{view("x", bookingdomain.CategoryHotel, 5, bookingdomain.SourceDirect)},
		[]bookingdomain.OrderView{view("x", bookingdomain.CategoryHotel, 5, bookingdomain.SourceLedger)},
	)
	assert.Len(t, merged, 1)
	assert.Equal(t, bookingdomain.SourceDirect, merged[0].Source)
}

func TestMergeOrdersEmpty(t *testing.T) {
	assert.Empty(t, mergeOrders(nil, nil))
}
