package orders

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicate reports a violation of the (razorpay_order_id,
// razorpay_payment_id) unique key, i.e. the confirmation was already committed.
var ErrDuplicate = errors.New("order already exists for payment reference")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, o *Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		if isDup(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByPaymentRef returns (nil, nil) when no order was committed for the pair.
func (r *Repo) FindByPaymentRef(ctx context.Context, orderRef, paymentRef string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		First(&o, "razorpay_order_id = ? AND razorpay_payment_id = ?", orderRef, paymentRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var items []Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
