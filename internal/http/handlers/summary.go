package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/modules/summary"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
)

type SummaryHandler struct {
	Svc *summary.Service
}

func NewSummaryHandler(svc *summary.Service) *SummaryHandler {
	return &SummaryHandler{Svc: svc}
}

// Get returns dashboard aggregates over the calling admin's listings.
func (h *SummaryHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	s, err := h.Svc.ForAdmin(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, s)
}
