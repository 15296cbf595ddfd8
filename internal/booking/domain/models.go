package domain

import (
	"fmt"
	"time"

	"github.com/smallbiznis/orderhub/internal/money"
	"gorm.io/datatypes"
)

// RoomLine is a per-room snapshot captured when a hotel booking was made.
type RoomLine struct {
	RoomID   string   `json:"roomId,omitempty"`
	RoomName string   `json:"roomName,omitempty"`
	Name     string   `json:"name,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Subtotal *float64 `json:"subtotal,omitempty"`
}

// DisplayName returns the room name captured at booking time.
func (l RoomLine) DisplayName() string {
	if l.RoomName != "" {
		return l.RoomName
	}
	return l.Name
}

// LineAmount is the subtotal, or the price when no subtotal was recorded.
func (l RoomLine) LineAmount() *float64 {
	if l.Subtotal != nil {
		return l.Subtotal
	}
	return l.Price
}

// ---------- hotel ----------

type HotelBooking struct {
	ID               string                       `gorm:"primaryKey;column:id" json:"id"`
	UserID           string                       `gorm:"column:user_id;index" json:"user_id"`
	Email            string                       `gorm:"column:email;index" json:"email"`
	Phone            string                       `gorm:"column:phone;index" json:"phone"`
	PaymentReference string                       `gorm:"column:payment_reference;index" json:"payment_reference"`
	TxRef            string                       `gorm:"column:tx_ref" json:"tx_ref"`
	HotelID          string                       `gorm:"column:hotel_id" json:"hotel_id"`
	RoomID           string                       `gorm:"column:room_id" json:"room_id"`
	Rooms            datatypes.JSONSlice[RoomLine] `gorm:"column:rooms" json:"rooms"`
	Total            *float64                     `gorm:"column:total" json:"total"`
	TotalPrice       *float64                     `gorm:"column:total_price" json:"total_price"`
	Price            *float64                     `gorm:"column:price" json:"price"`
	Amount           *string                      `gorm:"column:amount" json:"amount"`
	AmountPaid       *float64                     `gorm:"column:amount_paid" json:"amount_paid"`
	PaidAmount       money.Raw                    `gorm:"column:paid_amount" json:"paid_amount"`
	CheckIn          *time.Time                   `gorm:"column:check_in" json:"check_in"`
	CheckOut         *time.Time                   `gorm:"column:check_out" json:"check_out"`
	Status           string                       `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled       bool                         `gorm:"column:canceled" json:"canceled"`
	Metadata         datatypes.JSONMap            `gorm:"column:metadata" json:"metadata"`
	CreatedAt        *time.Time                   `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt        *time.Time                   `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (HotelBooking) TableName() string { return "hotel_bookings" }

func (*HotelBooking) Schema() Schema {
	return Schema{
		Category:           CategoryHotel,
		Table:              "hotel_bookings",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"email"},
		PhoneColumns:       []string{"phone"},
		ReferenceColumns:   []string{"payment_reference", "tx_ref"},
		ContactEmailColumn: "email",
	}
}

func (b *HotelBooking) RecordID() string           { return b.ID }
func (b *HotelBooking) OwnerEmail() string         { return b.Email }
func (b *HotelBooking) SetOwnerEmail(email string) { b.Email = email }
func (b *HotelBooking) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.TxRef)
}
func (b *HotelBooking) AmountCandidates() []any {
	return []any{b.Total, b.TotalPrice, b.Price, b.Amount, b.AmountPaid, b.PaidAmount}
}
func (b *HotelBooking) PrimaryEntity() EntityRef { return EntityRef{Kind: EntityHotel, ID: b.HotelID} }
func (b *HotelBooking) RoomEntity() EntityRef    { return EntityRef{Kind: EntityRoom, ID: b.RoomID} }
func (b *HotelBooking) Dates() Dates             { return Dates{CheckIn: b.CheckIn, CheckOut: b.CheckOut} }
func (b *HotelBooking) PaymentStatus() string    { return b.Status }
func (b *HotelBooking) Canceled() bool           { return b.IsCanceled }
func (b *HotelBooking) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// RoomSubTitle falls back to the first room snapshot name, then a room count.
func (b *HotelBooking) RoomSubTitle() string {
	for _, line := range b.Rooms {
		if name := line.DisplayName(); name != "" {
			return name
		}
	}
	switch n := len(b.Rooms); n {
	case 0:
		return ""
	case 1:
		return "1 room"
	default:
		return fmt.Sprintf("%d rooms", n)
	}
}

// ---------- shortlet ----------

type ShortletBooking struct {
	ID               string            `gorm:"primaryKey;column:id" json:"id"`
	UserID           string            `gorm:"column:user_id;index" json:"user_id"`
	Email            string            `gorm:"column:email;index" json:"email"`
	PhoneNumber      string            `gorm:"column:phone_number;index" json:"phone_number"`
	PaymentReference string            `gorm:"column:payment_reference;index" json:"payment_reference"`
	Ref              string            `gorm:"column:ref" json:"ref"`
	ShortletID       string            `gorm:"column:shortlet_id" json:"shortlet_id"`
	TotalAmount      *float64          `gorm:"column:total_amount" json:"total_amount"`
	Total            *string           `gorm:"column:total" json:"total"`
	Amount           *float64          `gorm:"column:amount" json:"amount"`
	Price            *float64          `gorm:"column:price" json:"price"`
	CheckIn          *time.Time        `gorm:"column:check_in" json:"check_in"`
	CheckOut         *time.Time        `gorm:"column:check_out" json:"check_out"`
	Status           string            `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled       bool              `gorm:"column:is_canceled" json:"is_canceled"`
	Metadata         datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt        *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt        *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (ShortletBooking) TableName() string { return "shortlet_bookings" }

func (*ShortletBooking) Schema() Schema {
	return Schema{
		Category:           CategoryShortlet,
		Table:              "shortlet_bookings",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"email"},
		PhoneColumns:       []string{"phone_number"},
		ReferenceColumns:   []string{"payment_reference", "ref"},
		ContactEmailColumn: "email",
	}
}

func (b *ShortletBooking) RecordID() string           { return b.ID }
func (b *ShortletBooking) OwnerEmail() string         { return b.Email }
func (b *ShortletBooking) SetOwnerEmail(email string) { b.Email = email }
func (b *ShortletBooking) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.Ref)
}
func (b *ShortletBooking) AmountCandidates() []any {
	return []any{b.TotalAmount, b.Total, b.Amount, b.Price}
}
func (b *ShortletBooking) PrimaryEntity() EntityRef {
	return EntityRef{Kind: EntityShortlet, ID: b.ShortletID}
}
func (b *ShortletBooking) Dates() Dates          { return Dates{CheckIn: b.CheckIn, CheckOut: b.CheckOut} }
func (b *ShortletBooking) PaymentStatus() string { return b.Status }
func (b *ShortletBooking) Canceled() bool        { return b.IsCanceled }
func (b *ShortletBooking) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// ---------- event center ----------

type EventBooking struct {
	ID                   string            `gorm:"primaryKey;column:id" json:"id"`
	UserID               string            `gorm:"column:user_id;index" json:"user_id"`
	ContactEmail         string            `gorm:"column:contact_email;index" json:"contact_email"`
	ContactPhone         string            `gorm:"column:contact_phone;index" json:"contact_phone"`
	PaymentReference     string            `gorm:"column:payment_reference;index" json:"payment_reference"`
	TransactionReference string            `gorm:"column:transaction_reference" json:"transaction_reference"`
	EventCenterID        string            `gorm:"column:event_center_id" json:"event_center_id"`
	TotalPrice           *float64          `gorm:"column:total_price" json:"total_price"`
	Amount               *float64          `gorm:"column:amount" json:"amount"`
	Price                *string           `gorm:"column:price" json:"price"`
	Deposit              *float64          `gorm:"column:deposit" json:"deposit"`
	EventDate            *time.Time        `gorm:"column:event_date" json:"event_date"`
	Status               string            `gorm:"column:status" json:"status"`
	IsCanceled           bool              `gorm:"column:canceled" json:"canceled"`
	Metadata             datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt            *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt            *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (EventBooking) TableName() string { return "event_bookings" }

func (*EventBooking) Schema() Schema {
	return Schema{
		Category:           CategoryEvent,
		Table:              "event_bookings",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"contact_email"},
		PhoneColumns:       []string{"contact_phone"},
		ReferenceColumns:   []string{"payment_reference", "transaction_reference"},
		ContactEmailColumn: "contact_email",
	}
}

func (b *EventBooking) RecordID() string           { return b.ID }
func (b *EventBooking) OwnerEmail() string         { return b.ContactEmail }
func (b *EventBooking) SetOwnerEmail(email string) { b.ContactEmail = email }
func (b *EventBooking) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.TransactionReference)
}
func (b *EventBooking) AmountCandidates() []any {
	return []any{b.TotalPrice, b.Amount, b.Price, b.Deposit}
}
func (b *EventBooking) PrimaryEntity() EntityRef {
	return EntityRef{Kind: EntityEventCenter, ID: b.EventCenterID}
}
func (b *EventBooking) Dates() Dates          { return Dates{EventDate: b.EventDate} }
func (b *EventBooking) PaymentStatus() string { return b.Status }
func (b *EventBooking) Canceled() bool        { return b.IsCanceled }
func (b *EventBooking) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// ---------- restaurant ----------

type RestaurantReservation struct {
	ID              string            `gorm:"primaryKey;column:id" json:"id"`
	UserID          string            `gorm:"column:user_id;index" json:"user_id"`
	CustomerEmail   string            `gorm:"column:customer_email;index" json:"customer_email"`
	Phone           string            `gorm:"column:phone;index" json:"phone"`
	Reference       string            `gorm:"column:reference;index" json:"reference"`
	PaymentRef      string            `gorm:"column:payment_ref" json:"payment_ref"`
	RestaurantID    string            `gorm:"column:restaurant_id" json:"restaurant_id"`
	Total           *string           `gorm:"column:total" json:"total"`
	Amount          *float64          `gorm:"column:amount" json:"amount"`
	Deposit         *float64          `gorm:"column:deposit" json:"deposit"`
	ReservationDate *time.Time        `gorm:"column:reservation_date" json:"reservation_date"`
	ReservationTime string            `gorm:"column:reservation_time" json:"reservation_time"`
	Status          string            `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled      bool              `gorm:"column:cancelled" json:"cancelled"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt       *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt       *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (RestaurantReservation) TableName() string { return "restaurant_reservations" }

func (*RestaurantReservation) Schema() Schema {
	return Schema{
		Category:           CategoryRestaurant,
		Table:              "restaurant_reservations",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"customer_email"},
		PhoneColumns:       []string{"phone"},
		ReferenceColumns:   []string{"reference", "payment_ref"},
		ContactEmailColumn: "customer_email",
	}
}

func (b *RestaurantReservation) RecordID() string           { return b.ID }
func (b *RestaurantReservation) OwnerEmail() string         { return b.CustomerEmail }
func (b *RestaurantReservation) SetOwnerEmail(email string) { b.CustomerEmail = email }
func (b *RestaurantReservation) ResolvedReference() string {
	return firstReference(b.Metadata, b.Reference, b.PaymentRef)
}
func (b *RestaurantReservation) AmountCandidates() []any {
	return []any{b.Total, b.Amount, b.Deposit}
}
func (b *RestaurantReservation) PrimaryEntity() EntityRef {
	return EntityRef{Kind: EntityRestaurant, ID: b.RestaurantID}
}
func (b *RestaurantReservation) Dates() Dates {
	return Dates{ReservationDate: b.ReservationDate, ReservationTime: b.ReservationTime}
}
func (b *RestaurantReservation) PaymentStatus() string { return b.Status }
func (b *RestaurantReservation) Canceled() bool        { return b.IsCanceled }
func (b *RestaurantReservation) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// ---------- tour guide ----------

type TourBooking struct {
	ID               string            `gorm:"primaryKey;column:id" json:"id"`
	UserID           string            `gorm:"column:user_id;index" json:"user_id"`
	UserEmail        string            `gorm:"column:user_email;index" json:"user_email"`
	PhoneNumber      string            `gorm:"column:phone_number;index" json:"phone_number"`
	PaymentReference string            `gorm:"column:payment_reference;index" json:"payment_reference"`
	TxRef            string            `gorm:"column:tx_ref" json:"tx_ref"`
	GuideID          string            `gorm:"column:guide_id" json:"guide_id"`
	TotalPrice       *float64          `gorm:"column:total_price" json:"total_price"`
	Price            *float64          `gorm:"column:price" json:"price"`
	Amount           *string           `gorm:"column:amount" json:"amount"`
	TourDate         *time.Time        `gorm:"column:tour_date" json:"tour_date"`
	Status           string            `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled       bool              `gorm:"column:canceled" json:"canceled"`
	Metadata         datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt        *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt        *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (TourBooking) TableName() string { return "tour_bookings" }

func (*TourBooking) Schema() Schema {
	return Schema{
		Category:           CategoryTour,
		Table:              "tour_bookings",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"user_email"},
		PhoneColumns:       []string{"phone_number"},
		ReferenceColumns:   []string{"payment_reference", "tx_ref"},
		ContactEmailColumn: "user_email",
	}
}

func (b *TourBooking) RecordID() string           { return b.ID }
func (b *TourBooking) OwnerEmail() string         { return b.UserEmail }
func (b *TourBooking) SetOwnerEmail(email string) { b.UserEmail = email }
func (b *TourBooking) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.TxRef)
}
func (b *TourBooking) AmountCandidates() []any {
	return []any{b.TotalPrice, b.Price, b.Amount}
}
func (b *TourBooking) PrimaryEntity() EntityRef { return EntityRef{Kind: EntityTourGuide, ID: b.GuideID} }
func (b *TourBooking) Dates() Dates             { return Dates{TourDate: b.TourDate} }
func (b *TourBooking) PaymentStatus() string    { return b.Status }
func (b *TourBooking) Canceled() bool           { return b.IsCanceled }
func (b *TourBooking) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// ---------- chops (prepared food) ----------

type ChopsOrder struct {
	ID               string            `gorm:"primaryKey;column:id" json:"id"`
	UserID           string            `gorm:"column:user_id;index" json:"user_id"`
	Email            string            `gorm:"column:email;index" json:"email"`
	Phone            string            `gorm:"column:phone;index" json:"phone"`
	PaymentReference string            `gorm:"column:payment_reference;index" json:"payment_reference"`
	TransactionRef   string            `gorm:"column:transaction_ref" json:"transaction_ref"`
	FoodItemID       string            `gorm:"column:food_item_id" json:"food_item_id"`
	Total            money.Raw         `gorm:"column:total" json:"total"`
	TotalAmount      *float64          `gorm:"column:total_amount" json:"total_amount"`
	Amount           *float64          `gorm:"column:amount" json:"amount"`
	Subtotal         *float64          `gorm:"column:subtotal" json:"subtotal"`
	Status           string            `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled       bool              `gorm:"column:canceled" json:"canceled"`
	Metadata         datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt        *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt        *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (ChopsOrder) TableName() string { return "chops_orders" }

func (*ChopsOrder) Schema() Schema {
	return Schema{
		Category:           CategoryChops,
		Table:              "chops_orders",
		OwnerColumn:        "user_id",
		EmailColumns:       []string{"email"},
		PhoneColumns:       []string{"phone"},
		ReferenceColumns:   []string{"payment_reference", "transaction_ref"},
		ContactEmailColumn: "email",
	}
}

func (b *ChopsOrder) RecordID() string           { return b.ID }
func (b *ChopsOrder) OwnerEmail() string         { return b.Email }
func (b *ChopsOrder) SetOwnerEmail(email string) { b.Email = email }
func (b *ChopsOrder) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.TransactionRef)
}
func (b *ChopsOrder) AmountCandidates() []any {
	return []any{b.Total, b.TotalAmount, b.Amount, b.Subtotal}
}
func (b *ChopsOrder) PrimaryEntity() EntityRef { return EntityRef{Kind: EntityFoodItem, ID: b.FoodItemID} }
func (b *ChopsOrder) Dates() Dates             { return Dates{} }
func (b *ChopsOrder) PaymentStatus() string    { return b.Status }
func (b *ChopsOrder) Canceled() bool           { return b.IsCanceled }
func (b *ChopsOrder) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// ---------- gifts ----------

type GiftOrder struct {
	ID               string            `gorm:"primaryKey;column:id" json:"id"`
	BuyerID          string            `gorm:"column:buyer_id;index" json:"buyer_id"`
	BuyerEmail       string            `gorm:"column:buyer_email;index" json:"buyer_email"`
	ContactPhone     string            `gorm:"column:contact_phone;index" json:"contact_phone"`
	PaymentReference string            `gorm:"column:payment_reference;index" json:"payment_reference"`
	Reference        string            `gorm:"column:reference" json:"reference"`
	TxRef            string            `gorm:"column:txref" json:"txref"`
	GiftItemID       string            `gorm:"column:gift_item_id" json:"gift_item_id"`
	Total            *float64          `gorm:"column:total" json:"total"`
	Amount           *string           `gorm:"column:amount" json:"amount"`
	Price            *float64          `gorm:"column:price" json:"price"`
	Status           string            `gorm:"column:payment_status" json:"payment_status"`
	IsCanceled       bool              `gorm:"column:canceled" json:"canceled"`
	Metadata         datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt        *time.Time        `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt        *time.Time        `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (GiftOrder) TableName() string { return "gift_orders" }

func (*GiftOrder) Schema() Schema {
	return Schema{
		Category:           CategoryGifts,
		Table:              "gift_orders",
		OwnerColumn:        "buyer_id",
		EmailColumns:       []string{"buyer_email"},
		PhoneColumns:       []string{"contact_phone"},
		ReferenceColumns:   []string{"payment_reference", "reference", "txref"},
		ContactEmailColumn: "buyer_email",
	}
}

func (b *GiftOrder) RecordID() string           { return b.ID }
func (b *GiftOrder) OwnerEmail() string         { return b.BuyerEmail }
func (b *GiftOrder) SetOwnerEmail(email string) { b.BuyerEmail = email }
func (b *GiftOrder) ResolvedReference() string {
	return firstReference(b.Metadata, b.PaymentReference, b.Reference, b.TxRef)
}
func (b *GiftOrder) AmountCandidates() []any {
	return []any{b.Total, b.Amount, b.Price}
}
func (b *GiftOrder) PrimaryEntity() EntityRef { return EntityRef{Kind: EntityGiftItem, ID: b.GiftItemID} }
func (b *GiftOrder) Dates() Dates             { return Dates{} }
func (b *GiftOrder) PaymentStatus() string    { return b.Status }
func (b *GiftOrder) Canceled() bool           { return b.IsCanceled }
func (b *GiftOrder) Timestamps() (*time.Time, *time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

// Models lists one zero value per store, in probe order. Used for migrations in tests.
func Models() []any {
	return []any{
		&HotelBooking{},
		&ShortletBooking{},
		&EventBooking{},
		&RestaurantReservation{},
		&TourBooking{},
		&ChopsOrder{},
		&GiftOrder{},
	}
}
