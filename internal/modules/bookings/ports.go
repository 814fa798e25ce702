package bookings

import (
	"context"

	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
	"github.com/Shoury7/EzyStayBackend/internal/modules/users"
)

// Collaborator interfaces consumed by the commit pipeline. The GORM repos
// satisfy them; tests substitute in-memory fakes.

type ListingStore interface {
	FindByID(ctx context.Context, id string) (*listings.Listing, error)
	// Reserve atomically flips availability true->false; false means the
	// listing was already taken.
	Reserve(ctx context.Context, id string) (bool, error)
	// Release undoes Reserve when a later commit step fails.
	Release(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, o *orders.Order) error
	FindByPaymentRef(ctx context.Context, orderRef, paymentRef string) (*orders.Order, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type Notifier interface {
	SendConfirmation(ctx context.Context, toEmail, paymentRef string) error
}
