package domain

// Category is one of the service domains an order can belong to.
type Category string

const (
	CategoryHotel      Category = "hotel"
	CategoryShortlet   Category = "shortlet"
	CategoryEvent      Category = "event"
	CategoryRestaurant Category = "restaurant"
	CategoryTour       Category = "tour"
	CategoryChops      Category = "chops"
	CategoryGifts      Category = "gifts"

	// CategoryOrder labels rows synthesized from ledger metadata without a category.
	CategoryOrder Category = "order"
)

// ProbeOrder is the fixed order stores are searched in when the first hit wins.
var ProbeOrder = []Category{
	CategoryHotel,
	CategoryShortlet,
	CategoryEvent,
	CategoryRestaurant,
	CategoryTour,
	CategoryChops,
	CategoryGifts,
}

var defaultTitles = map[Category]string{
	CategoryHotel:      "Hotel",
	CategoryShortlet:   "Shortlet",
	CategoryEvent:      "Event Center",
	CategoryRestaurant: "Restaurant",
	CategoryTour:       "Tour Guide",
	CategoryChops:      "Chops",
	CategoryGifts:      "Gift",
	CategoryOrder:      "Order",
}

// DefaultTitle is the label shown when the referenced entity cannot be resolved.
func DefaultTitle(c Category) string {
	if title, ok := defaultTitles[c]; ok {
		return title
	}
	return defaultTitles[CategoryOrder]
}

// Valid reports whether c is one of the seven store categories.
func (c Category) Valid() bool {
	for _, known := range ProbeOrder {
		if c == known {
			return true
		}
	}
	return false
}

// EntityKind names a reference-entity table.
type EntityKind string

const (
	EntityHotel       EntityKind = "hotels"
	EntityRoom        EntityKind = "rooms"
	EntityShortlet    EntityKind = "shortlets"
	EntityEventCenter EntityKind = "event_centers"
	EntityRestaurant  EntityKind = "restaurants"
	EntityTourGuide   EntityKind = "tour_guides"
	EntityFoodItem    EntityKind = "food_items"
	EntityGiftItem    EntityKind = "gift_items"
)

// EntityRef points at a reference entity by kind and id.
type EntityRef struct {
	Kind EntityKind
	ID   string
}

// EntityKinds lists every reference-entity table.
var EntityKinds = []EntityKind{
	EntityHotel,
	EntityRoom,
	EntityShortlet,
	EntityEventCenter,
	EntityRestaurant,
	EntityTourGuide,
	EntityFoodItem,
	EntityGiftItem,
}

// Valid reports whether k is a known entity table.
func (k EntityKind) Valid() bool {
	for _, known := range EntityKinds {
		if k == known {
			return true
		}
	}
	return false
}
