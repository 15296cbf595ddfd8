// Package domain contains the read model of the rewards ledger.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/orderhub/internal/money"
	"gorm.io/datatypes"
)

// Direction represents debit or credit postings.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

type Reason string

const (
	ReasonCashback           Reason = "cashback"
	ReasonReferralCommission Reason = "referral_commission"
)

// BookingReasons are the credit reasons that point back at a purchase.
var BookingReasons = []Reason{ReasonCashback, ReasonReferralCommission}

const AccountTypeUser = "user"

// Entry is a single ledger posting. Amount keeps whatever JSON the writer used:
// a number, a formatted string or an {amount, currency} object.
type Entry struct {
	ID          string            `gorm:"primaryKey;column:id"`
	AccountType string            `gorm:"column:account_type;type:text;not null;index:idx_ledger_entries_account,priority:1"`
	AccountID   string            `gorm:"column:account_id;type:text;not null;index:idx_ledger_entries_account,priority:2"`
	Direction   Direction         `gorm:"column:direction;type:text;not null"`
	Reason      Reason            `gorm:"column:reason;type:text;not null"`
	BookingID   string            `gorm:"column:booking_id;type:text;index"`
	Amount      money.Raw         `gorm:"column:amount"`
	Meta        datatypes.JSONMap `gorm:"column:meta"`
	CreatedAt   *time.Time        `gorm:"column:created_at;autoCreateTime:false;index"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "ledger_entries" }

// Meta is the booking context a writer copied into the entry.
type Meta struct {
	Category         string
	Title            string
	SubTitle         string
	PaymentReference string
}

func (e Entry) BookingMeta() Meta {
	return Meta{
		Category:         metaString(e.Meta, "category"),
		Title:            metaString(e.Meta, "title"),
		SubTitle:         metaString(e.Meta, "subTitle", "sub_title"),
		PaymentReference: metaString(e.Meta, "paymentReference", "payment_reference"),
	}
}

func metaString(meta datatypes.JSONMap, keys ...string) string {
	for _, key := range keys {
		switch v := meta[key].(type) {
		case nil:
			continue
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}
