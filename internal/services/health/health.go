package health

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler reports process and database health.
type Handler struct {
	DB *sql.DB
}

// NewHandler constructs a Handler. DB may be nil when running without a
// database.
func NewHandler(database *sql.DB) *Handler {
	return &Handler{DB: database}
}

// RegisterRoutes attaches the health route to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.healthz)
}

func (h *Handler) healthz(c *gin.Context) {
	dbStatus := "disabled"
	status := http.StatusOK

	if h.DB != nil {
		if err := h.DB.PingContext(c.Request.Context()); err != nil {
			dbStatus = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			dbStatus = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status":   statusWord(status),
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
