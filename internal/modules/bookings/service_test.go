package bookings

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
	"github.com/Shoury7/EzyStayBackend/internal/modules/payments"
	"github.com/Shoury7/EzyStayBackend/internal/modules/users"
)

var testSecret = []byte("test_key_secret")

type fakeListingStore struct {
	mu    sync.Mutex
	items map[string]*listings.Listing

	reserveCalls int
	releaseCalls int
	reserveErr   error
}

func (f *fakeListingStore) FindByID(ctx context.Context, id string) (*listings.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id], nil
}

func (f *fakeListingStore) Reserve(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	if f.reserveErr != nil {
		return false, f.reserveErr
	}
	l, ok := f.items[id]
	if !ok || !l.IsAvailable {
		return false, nil
	}
	l.IsAvailable = false
	return true, nil
}

func (f *fakeListingStore) Release(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseCalls++
	if l, ok := f.items[id]; ok {
		l.IsAvailable = true
	}
	return nil
}

type fakeOrderStore struct {
	mu    sync.Mutex
	items []*orders.Order

	createErr error
}

func (f *fakeOrderStore) Create(ctx context.Context, o *orders.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.items {
		if existing.RazorpayOrderID == o.RazorpayOrderID && existing.RazorpayPaymentID == o.RazorpayPaymentID {
			return orders.ErrDuplicate
		}
	}
	f.items = append(f.items, o)
	return nil
}

func (f *fakeOrderStore) FindByPaymentRef(ctx context.Context, orderRef, paymentRef string) (*orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.items {
		if o.RazorpayOrderID == orderRef && o.RazorpayPaymentID == paymentRef {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeUserStore struct {
	byEmail map[string]*users.User
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return f.byEmail[email], nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeNotifier) SendConfirmation(ctx context.Context, toEmail, paymentRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

type fixture struct {
	listings *fakeListingStore
	orders   *fakeOrderStore
	users    *fakeUserStore
	notifier *fakeNotifier
	svc      *Service
}

func newFixture() *fixture {
	ls := &fakeListingStore{items: map[string]*listings.Listing{
		"L1": {ID: "L1", Title: "Seaside Villa", IsAvailable: true},
		"L2": {ID: "L2", Title: "Hill Cabin", IsAvailable: true},
	}}
	os := &fakeOrderStore{}
	us := &fakeUserStore{byEmail: map[string]*users.User{
		"a@b.com": {ID: "U1", Name: "Asha", Email: "a@b.com", Role: users.RoleUser},
	}}
	n := &fakeNotifier{}
	return &fixture{
		listings: ls,
		orders:   os,
		users:    us,
		notifier: n,
		svc:      NewService(ls, os, us, n, testSecret, slog.Default()),
	}
}

func validConfirmation() Confirmation {
	return Confirmation{
		OrderRef:    "order_1",
		PaymentRef:  "pay_1",
		Signature:   payments.Sign("order_1", "pay_1", testSecret),
		PayerEmail:  "a@b.com",
		ListingRef:  "L1",
		AmountMinor: 50000,
	}
}

func TestCommitBooking_Success(t *testing.T) {
	f := newFixture()

	out, err := f.svc.CommitBooking(context.Background(), validConfirmation())
	if err != nil {
		t.Fatalf("CommitBooking() error = %v", err)
	}
	if !out.Success {
		t.Errorf("Success = false, want true")
	}
	if !out.NotificationSent {
		t.Errorf("NotificationSent = false, want true")
	}
	if out.Order == nil {
		t.Fatalf("Order = nil, want committed order")
	}
	if out.Order.Status != orders.StatusConfirmed {
		t.Errorf("Order.Status = %q, want %q", out.Order.Status, orders.StatusConfirmed)
	}
	if out.Order.AmountMinor != 50000 {
		t.Errorf("Order.AmountMinor = %d, want 50000", out.Order.AmountMinor)
	}
	if out.Order.UserID != "U1" || out.Order.ListingID != "L1" {
		t.Errorf("Order refs = (%s, %s), want (U1, L1)", out.Order.UserID, out.Order.ListingID)
	}
	if f.listings.items["L1"].IsAvailable {
		t.Errorf("listing L1 still available after commit")
	}
	if got := f.orders.count(); got != 1 {
		t.Errorf("orders persisted = %d, want 1", got)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0] != "a@b.com" {
		t.Errorf("notifier.sent = %v, want [a@b.com]", f.notifier.sent)
	}
}

func TestCommitBooking_TamperedSignatureMutatesNothing(t *testing.T) {
	f := newFixture()

	conf := validConfirmation()
	conf.Signature = "deadbeef" + conf.Signature[8:]

	_, err := f.svc.CommitBooking(context.Background(), conf)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("CommitBooking() error = %v, want ErrSignatureInvalid", err)
	}
	if !f.listings.items["L1"].IsAvailable {
		t.Errorf("listing mutated on invalid signature")
	}
	if f.listings.reserveCalls != 0 {
		t.Errorf("Reserve called %d times on invalid signature", f.listings.reserveCalls)
	}
	if got := f.orders.count(); got != 0 {
		t.Errorf("orders persisted = %d on invalid signature", got)
	}
}

func TestCommitBooking_MalformedInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Confirmation)
	}{
		{"missing order ref", func(c *Confirmation) { c.OrderRef = "" }},
		{"missing payment ref", func(c *Confirmation) { c.PaymentRef = "" }},
		{"missing signature", func(c *Confirmation) { c.Signature = "" }},
		{"missing email", func(c *Confirmation) { c.PayerEmail = "" }},
		{"missing listing", func(c *Confirmation) { c.ListingRef = "" }},
		{"zero amount", func(c *Confirmation) { c.AmountMinor = 0 }},
		{"negative amount", func(c *Confirmation) { c.AmountMinor = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfirmation()
			tt.mutate(&conf)

			_, err := f.svc.CommitBooking(context.Background(), conf)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("CommitBooking() error = %v, want ErrMalformed", err)
			}
		})
	}

	if f.listings.reserveCalls != 0 || f.orders.count() != 0 {
		t.Errorf("stores mutated by malformed input")
	}
}

func TestCommitBooking_ListingNotFound(t *testing.T) {
	f := newFixture()

	conf := validConfirmation()
	conf.ListingRef = "nope"

	_, err := f.svc.CommitBooking(context.Background(), conf)
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("CommitBooking() error = %v, want ErrListingNotFound", err)
	}
	if f.orders.count() != 0 || f.listings.reserveCalls != 0 {
		t.Errorf("stores mutated on unknown listing")
	}
}

func TestCommitBooking_UserNotFound(t *testing.T) {
	f := newFixture()

	conf := validConfirmation()
	conf.PayerEmail = "nobody@example.com"
	conf.Signature = payments.Sign(conf.OrderRef, conf.PaymentRef, testSecret)

	_, err := f.svc.CommitBooking(context.Background(), conf)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("CommitBooking() error = %v, want ErrUserNotFound", err)
	}
	if !f.listings.items["L1"].IsAvailable {
		t.Errorf("listing mutated on unknown user")
	}
	if f.orders.count() != 0 {
		t.Errorf("order persisted on unknown user")
	}
}

func TestCommitBooking_IdempotentRedelivery(t *testing.T) {
	f := newFixture()

	first, err := f.svc.CommitBooking(context.Background(), validConfirmation())
	if err != nil {
		t.Fatalf("first CommitBooking() error = %v", err)
	}

	second, err := f.svc.CommitBooking(context.Background(), validConfirmation())
	if err != nil {
		t.Fatalf("second CommitBooking() error = %v", err)
	}
	if !second.Idempotent {
		t.Errorf("second delivery: Idempotent = false, want true")
	}
	if second.Order == nil || second.Order.ID != first.Order.ID {
		t.Errorf("second delivery returned a different order")
	}
	if got := f.orders.count(); got != 1 {
		t.Errorf("orders persisted = %d after re-delivery, want 1", got)
	}
	if len(f.notifier.sent) != 1 {
		t.Errorf("notifier called %d times, want 1 (no resend on re-delivery)", len(f.notifier.sent))
	}
}

func TestCommitBooking_AlreadyBooked(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.CommitBooking(context.Background(), validConfirmation()); err != nil {
		t.Fatalf("first CommitBooking() error = %v", err)
	}

	// A different payment tries to take the same listing.
	conf := Confirmation{
		OrderRef:    "order_2",
		PaymentRef:  "pay_2",
		Signature:   payments.Sign("order_2", "pay_2", testSecret),
		PayerEmail:  "a@b.com",
		ListingRef:  "L1",
		AmountMinor: 50000,
	}
	_, err := f.svc.CommitBooking(context.Background(), conf)
	if !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("CommitBooking() error = %v, want ErrAlreadyBooked", err)
	}
	if got := f.orders.count(); got != 1 {
		t.Errorf("orders persisted = %d, want 1", got)
	}
}

func TestCommitBooking_ConcurrentSameListing(t *testing.T) {
	f := newFixture()

	confs := []Confirmation{
		{
			OrderRef: "order_a", PaymentRef: "pay_a",
			Signature:  payments.Sign("order_a", "pay_a", testSecret),
			PayerEmail: "a@b.com", ListingRef: "L1", AmountMinor: 50000,
		},
		{
			OrderRef: "order_b", PaymentRef: "pay_b",
			Signature:  payments.Sign("order_b", "pay_b", testSecret),
			PayerEmail: "a@b.com", ListingRef: "L1", AmountMinor: 50000,
		},
	}

	var wg sync.WaitGroup
	results := make([]error, len(confs))
	for i := range confs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.CommitBooking(context.Background(), confs[i])
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyBooked):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("got %d successes and %d conflicts, want exactly 1 of each", successes, conflicts)
	}
	if got := f.orders.count(); got != 1 {
		t.Errorf("orders persisted = %d, want 1 (no double booking)", got)
	}
}

func TestCommitBooking_NotifierFailureKeepsCommit(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	out, err := f.svc.CommitBooking(context.Background(), validConfirmation())
	if err != nil {
		t.Fatalf("CommitBooking() error = %v", err)
	}
	if !out.Success {
		t.Errorf("Success = false, want true despite notifier failure")
	}
	if out.NotificationSent {
		t.Errorf("NotificationSent = true, want false")
	}
	if got := f.orders.count(); got != 1 {
		t.Errorf("orders persisted = %d, want 1", got)
	}
	if f.listings.items["L1"].IsAvailable {
		t.Errorf("listing availability rolled back by notifier failure")
	}
}

func TestCommitBooking_OrderInsertFailureReleasesListing(t *testing.T) {
	f := newFixture()
	f.orders.createErr = errors.New("db gone")

	_, err := f.svc.CommitBooking(context.Background(), validConfirmation())
	if err == nil {
		t.Fatalf("CommitBooking() error = nil, want insert failure")
	}
	if !f.listings.items["L1"].IsAvailable {
		t.Errorf("listing not released after failed order insert")
	}
	if f.listings.releaseCalls != 1 {
		t.Errorf("Release called %d times, want 1", f.listings.releaseCalls)
	}
	if len(f.notifier.sent) != 0 {
		t.Errorf("notifier called despite failed commit")
	}
}
