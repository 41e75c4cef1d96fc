package credits

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitscan-backend/internal/shared/server/middleware"
	"fitscan-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the credit service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches credit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits", h.getCredits)
}

func (h *Handler) getCredits(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	balance, err := h.Svc.Balance(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read balance", nil)
		return
	}
	txns, err := h.Svc.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list transactions", nil)
		return
	}
	if txns == nil {
		txns = []Transaction{}
	}

	respond.OK(c, gin.H{
		"balance":      balance,
		"transactions": txns,
	})
}
