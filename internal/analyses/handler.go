package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitscan-backend/internal/credits"
	"fitscan-backend/internal/llm"
	"fitscan-backend/internal/resumes"
	"fitscan-backend/internal/shared/server/middleware"
	"fitscan-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis orchestrator.
type Handler struct {
	Svc *Orchestrator
}

// NewHandler constructs a Handler.
func NewHandler(svc *Orchestrator) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/analyze", h.analyze)
	rg.GET("/analyses", h.history)
	rg.GET("/analyses/:id", h.get)
}

type analyzeRequest struct {
	Tier        string `json:"tier" binding:"required"`
	JobTitle    string `json:"jobTitle" binding:"required"`
	CompanyName string `json:"companyName"`
	JobText     string `json:"jobText" binding:"required"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tier, jobTitle and jobText are required", nil)
		return
	}

	rec, err := h.Svc.Run(c.Request.Context(), Request{
		UserID:      userID,
		ResumeID:    c.Param("id"),
		Tier:        Tier(body.Tier),
		JobTitle:    body.JobTitle,
		CompanyName: body.CompanyName,
		JobText:     body.JobText,
	})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	respond.Created(c, rec)
}

// writeRunError maps pipeline failures onto HTTP statuses.
func (h *Handler) writeRunError(c *gin.Context, err error) {
	var verr *ValidationError
	var merr *MalformedOutputError

	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), nil)
	case errors.Is(err, credits.ErrInsufficientCredits):
		respond.Error(c, http.StatusPaymentRequired, "insufficient_credits", "not enough credits for this analysis", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "resume_not_found", "resume not found", nil)
	case errors.Is(err, resumes.ErrEmptyContent):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_resume", "resume has no extracted text", nil)
	case errors.As(err, &merr):
		respond.Error(c, http.StatusBadGateway, "malformed_model_output", "the model returned an unusable reply, no credits were charged", nil)
	case errors.Is(err, llm.ErrRetriesExhausted):
		respond.Error(c, http.StatusBadGateway, "llm_unavailable", "the model is unavailable, no credits were charged", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "llm_not_configured", "analysis is not configured on this server", nil)
	default:
		var perr *llm.ProviderError
		if errors.As(err, &perr) {
			respond.Error(c, http.StatusBadGateway, "llm_error", "the model request failed, no credits were charged", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "analysis_not_found", "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis", nil)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	out, err := h.Svc.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	if out == nil {
		out = []HistorySnapshot{}
	}
	respond.OK(c, out)
}
