package domain

import "time"

// Source tells how an order row was discovered.
type Source string

const (
	SourceDirect            Source = "direct"
	SourceLedger            Source = "ledger"
	SourceLedgerSynthesized Source = "ledger_synthesized"
)

const PaymentStatusPaid = "paid"

// OrderView is the unified projection returned to callers.
type OrderView struct {
	ID               string     `json:"id"`
	Category         Category   `json:"category"`
	Title            string     `json:"title"`
	SubTitle         string     `json:"subTitle,omitempty"`
	Amount           float64    `json:"amount"`
	Email            string     `json:"email"`
	PaymentReference string     `json:"paymentReference"`
	CreatedAt        time.Time  `json:"createdAt"`
	PaymentStatus    string     `json:"paymentStatus"`
	Canceled         bool       `json:"canceled"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	EventDate        *time.Time `json:"eventDate,omitempty"`
	ReservationDate  *time.Time `json:"reservationDate,omitempty"`
	ReservationTime  string     `json:"reservationTime,omitempty"`
	TourDate         *time.Time `json:"tourDate,omitempty"`
	Source           Source     `json:"source"`
}

// Key identifies a row for deduplication.
func (v OrderView) Key() string {
	return v.ID + "::" + string(v.Category)
}
