package orders

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	UserID    string `gorm:"type:char(36);not null;index:ix_orders_user_id"`
	ListingID string `gorm:"type:char(36);not null;index:ix_orders_listing_id"`
	// Amount captured by the provider, in minor units (paise).
	AmountMinor int64 `gorm:"column:amount_minor;not null"`

	// Provider references. The (order, payment) pair is the idempotency key:
	// re-delivery of the same confirmation must not create a second order.
	RazorpayOrderID   string `gorm:"type:varchar(64);not null;uniqueIndex:ux_orders_payment_ref,priority:1"`
	RazorpayPaymentID string `gorm:"type:varchar(64);not null;uniqueIndex:ux_orders_payment_ref,priority:2"`
	RazorpaySignature string `gorm:"type:varchar(128);not null"`

	Status    string    `gorm:"type:varchar(16);not null;default:confirmed"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }
