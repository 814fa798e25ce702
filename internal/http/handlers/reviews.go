package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/http/validation"
	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
)

type ReviewsHandler struct {
	Listings *listings.Repo
	Reviews  *listings.ReviewRepo
}

func NewReviewsHandler(lr *listings.Repo, rr *listings.ReviewRepo) *ReviewsHandler {
	return &ReviewsHandler{Listings: lr, Reviews: rr}
}

func reviewJSON(r *listings.Review) gin.H {
	return gin.H{
		"id":         r.ID,
		"listing_id": r.ListingID,
		"user_id":    r.UserID,
		"rating":     r.Rating,
		"comment":    r.Comment,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

type reviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// Add creates the caller's review for a listing, or replaces an existing one.
func (h *ReviewsHandler) Add(c *gin.Context) {
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Review data is invalid.", validation.FromBindError(err, &in)))
		return
	}

	listingID := c.Param("id")
	l, err := h.Listings.FindByID(c.Request.Context(), listingID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if l == nil {
		middleware.Fail(c, apperr.NotFoundErr("Listing not found."))
		return
	}

	u, _ := middleware.CurrentUser(c)
	rv, err := h.Reviews.Upsert(c.Request.Context(), listingID, u.ID, in.Rating, in.Comment)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review saved successfully", "review": reviewJSON(rv)})
}

func (h *ReviewsHandler) List(c *gin.Context) {
	items, err := h.Reviews.ListByListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, len(items))
	for i := range items {
		out[i] = reviewJSON(&items[i])
	}
	c.JSON(http.StatusOK, out)
}

type reviewUpdateInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (h *ReviewsHandler) Update(c *gin.Context) {
	var in reviewUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Review data is invalid.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	rv, err := h.Reviews.Update(c.Request.Context(), c.Param("id"), u.ID, in.Rating, in.Comment)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if rv == nil {
		middleware.Fail(c, apperr.NotFoundErr("Review not found for this listing by the user."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": reviewJSON(rv)})
}

func (h *ReviewsHandler) Delete(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ok, err := h.Reviews.Delete(c.Request.Context(), c.Param("id"), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Review not found or not authorized to delete."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
