package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/modules/bookings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/payments"
)

type PaymentsHandler struct {
	Logger *slog.Logger
	Client *payments.Client
	Commit *bookings.Service
}

func NewPaymentsHandler(logger *slog.Logger, client *payments.Client, commit *bookings.Service) *PaymentsHandler {
	return &PaymentsHandler{Logger: logger, Client: client, Commit: commit}
}

type createOrderInput struct {
	// Amount in major units (rupees); forwarded to the provider in paise.
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency" binding:"required,len=3"`
}

func (h *PaymentsHandler) CreateOrder(c *gin.Context) {
	var in createOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order request."})
		return
	}

	order, err := h.Client.CreateOrder(c.Request.Context(), payments.CreateOrderRequest{
		AmountMinor: in.Amount * 100,
		Currency:    in.Currency,
		Receipt:     "rcpt_" + uuid.NewString(),
	})
	if err != nil {
		h.Logger.ErrorContext(c.Request.Context(), "razorpay order creation failed",
			"request_id", middleware.GetRequestID(c), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

type verifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Listing           string `json:"listing" binding:"required"`
	AmountMinor       int64  `json:"amount" binding:"required,gt=0"`
}

// Verify runs the booking-commit pipeline for a payment confirmation.
// The response envelope is always {success, message}; 200 means committed,
// even when the confirmation email could not be sent.
func (h *PaymentsHandler) Verify(c *gin.Context) {
	var in verifyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, verifyError("Payment confirmation is malformed"))
		return
	}

	out, err := h.Commit.CommitBooking(c.Request.Context(), bookings.Confirmation{
		OrderRef:    in.RazorpayOrderID,
		PaymentRef:  in.RazorpayPaymentID,
		Signature:   in.RazorpaySignature,
		PayerEmail:  in.Email,
		ListingRef:  in.Listing,
		AmountMinor: in.AmountMinor,
	})
	if err != nil {
		status, msg := verifyFailure(err)
		if status == http.StatusInternalServerError {
			h.Logger.ErrorContext(c.Request.Context(), "booking commit failed",
				"request_id", middleware.GetRequestID(c),
				"order_ref", in.RazorpayOrderID, "err", err)
		}
		c.JSON(status, verifyError(msg))
		return
	}

	msg := "Payment verified, order saved and email sent"
	if !out.NotificationSent {
		msg = "Payment verified and order saved, but the confirmation email could not be sent"
	}
	if out.Idempotent {
		msg = "Payment already verified, order saved"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func verifyError(msg string) gin.H {
	return gin.H{"success": false, "message": msg}
}

func verifyFailure(err error) (int, string) {
	switch {
	case errors.Is(err, bookings.ErrMalformed):
		return http.StatusBadRequest, "Payment confirmation is malformed"
	case errors.Is(err, bookings.ErrSignatureInvalid):
		return http.StatusBadRequest, "Payment verification failed"
	case errors.Is(err, bookings.ErrListingNotFound):
		return http.StatusNotFound, "Listing not found"
	case errors.Is(err, bookings.ErrUserNotFound):
		return http.StatusNotFound, "No account for payer email"
	case errors.Is(err, bookings.ErrAlreadyBooked):
		return http.StatusConflict, "Listing is already booked"
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}
