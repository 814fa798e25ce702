package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
)

type OrdersHandler struct {
	Repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Repo: repo}
}

// ListMine returns the calling user's bookings, newest first.
func (h *OrdersHandler) ListMine(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	items, err := h.Repo.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, len(items))
	for i, o := range items {
		out[i] = gin.H{
			"id":                  o.ID,
			"listing_id":          o.ListingID,
			"amount_minor":        o.AmountMinor,
			"razorpay_order_id":   o.RazorpayOrderID,
			"razorpay_payment_id": o.RazorpayPaymentID,
			"status":              o.Status,
			"created_at":          o.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, out)
}
