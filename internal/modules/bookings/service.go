package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
	"github.com/Shoury7/EzyStayBackend/internal/modules/payments"
)

// Confirmation is the provider-asserted payment completion for one attempt.
// It is transient input and never persisted as-is.
type Confirmation struct {
	OrderRef    string
	PaymentRef  string
	Signature   string
	PayerEmail  string
	ListingRef  string
	AmountMinor int64
}

func (c Confirmation) validate() error {
	switch {
	case c.OrderRef == "":
		return fmt.Errorf("%w: razorpay_order_id", ErrMalformed)
	case c.PaymentRef == "":
		return fmt.Errorf("%w: razorpay_payment_id", ErrMalformed)
	case c.Signature == "":
		return fmt.Errorf("%w: razorpay_signature", ErrMalformed)
	case c.PayerEmail == "":
		return fmt.Errorf("%w: email", ErrMalformed)
	case c.ListingRef == "":
		return fmt.Errorf("%w: listing", ErrMalformed)
	case c.AmountMinor <= 0:
		return fmt.Errorf("%w: amount", ErrMalformed)
	}
	return nil
}

type CommitOutcome struct {
	Success          bool
	NotificationSent bool
	// Idempotent marks a re-delivered confirmation resolved to the order
	// committed on first delivery.
	Idempotent bool
	Order      *orders.Order
}

type Service struct {
	listings ListingStore
	orders   OrderStore
	users    UserStore
	notifier Notifier

	secret []byte
	logger *slog.Logger

	notifyTimeout time.Duration
}

func NewService(ls ListingStore, os OrderStore, us UserStore, n Notifier, secret []byte, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		listings:      ls,
		orders:        os,
		users:         us,
		notifier:      n,
		secret:        secret,
		logger:        logger,
		notifyTimeout: 5 * time.Second,
	}
}

// CommitBooking turns a verified payment confirmation into durable booking
// state: listing marked unavailable, order recorded, payer notified.
//
// Nothing is mutated until the signature checks out and both the listing and
// the payer resolve. The availability flip is a compare-and-set, so two
// confirmations racing for one listing settle as one commit and one
// ErrAlreadyBooked. A failed order insert releases the listing again
// (compensating action; the two stores share no transaction).
func (s *Service) CommitBooking(ctx context.Context, conf Confirmation) (CommitOutcome, error) {
	if err := conf.validate(); err != nil {
		return CommitOutcome{}, err
	}

	if !payments.VerifySignature(conf.OrderRef, conf.PaymentRef, conf.Signature, s.secret) {
		return CommitOutcome{}, ErrSignatureInvalid
	}

	// Re-delivered confirmation: hand back the order from the first delivery.
	if existing, err := s.orders.FindByPaymentRef(ctx, conf.OrderRef, conf.PaymentRef); err != nil {
		return CommitOutcome{}, err
	} else if existing != nil {
		return CommitOutcome{Success: true, Idempotent: true, Order: existing}, nil
	}

	l, err := s.listings.FindByID(ctx, conf.ListingRef)
	if err != nil {
		return CommitOutcome{}, err
	}
	if l == nil {
		return CommitOutcome{}, ErrListingNotFound
	}

	u, err := s.users.FindByEmail(ctx, conf.PayerEmail)
	if err != nil {
		return CommitOutcome{}, err
	}
	if u == nil {
		return CommitOutcome{}, ErrUserNotFound
	}

	reserved, err := s.listings.Reserve(ctx, l.ID)
	if err != nil {
		return CommitOutcome{}, err
	}
	if !reserved {
		// Lost the CAS. Either a different payment took the listing, or the
		// same confirmation raced us and already committed.
		if existing, ferr := s.orders.FindByPaymentRef(ctx, conf.OrderRef, conf.PaymentRef); ferr == nil && existing != nil {
			return CommitOutcome{Success: true, Idempotent: true, Order: existing}, nil
		}
		return CommitOutcome{}, ErrAlreadyBooked
	}

	o := &orders.Order{
		ID:                uuid.NewString(),
		UserID:            u.ID,
		ListingID:         l.ID,
		AmountMinor:       conf.AmountMinor,
		RazorpayOrderID:   conf.OrderRef,
		RazorpayPaymentID: conf.PaymentRef,
		RazorpaySignature: conf.Signature,
		Status:            orders.StatusConfirmed,
		CreatedAt:         time.Now(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, orders.ErrDuplicate) {
			if existing, ferr := s.orders.FindByPaymentRef(ctx, conf.OrderRef, conf.PaymentRef); ferr == nil && existing != nil {
				return CommitOutcome{Success: true, Idempotent: true, Order: existing}, nil
			}
		}
		if rerr := s.listings.Release(ctx, l.ID); rerr != nil {
			// Listing is now stranded unavailable with no order.
			s.logger.ErrorContext(ctx, "listing release after failed order insert failed",
				"listing_id", l.ID, "order_ref", conf.OrderRef, "err", rerr)
		}
		return CommitOutcome{}, err
	}

	out := CommitOutcome{Success: true, Order: o}

	// Best-effort: a failed email never rolls back the commit. The notify
	// context is detached from the request so a client disconnect cannot
	// cancel it, and bounded so a slow SMTP server cannot hold the handler.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.SendConfirmation(nctx, u.Email, conf.PaymentRef); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation email failed",
			"order_id", o.ID, "payment_ref", conf.PaymentRef, "err", err)
	} else {
		out.NotificationSent = true
	}

	return out, nil
}
