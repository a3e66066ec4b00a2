package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumo/storefront/internal/domain"
)

const (
	serviceName    = "lumo-backend"
	serviceVersion = "1.0.0"
)

// ChatUsecase is the behaviour the HTTP layer needs from the chat service
type ChatUsecase interface {
	Reply(ctx context.Context, request *domain.ChatRequest) (*domain.ChatReply, error)
	ListProjects(ctx context.Context) ([]domain.ProjectSummary, error)
	GetProject(ctx context.Context, id string) (*domain.ProjectSummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chat ChatUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(chat ChatUsecase) *Handler {
	return &Handler{chat: chat}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// SendMessage answers one chat widget turn
func (h *Handler) SendMessage(c *gin.Context) {
	if h.chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service not configured"})
		return
	}

	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ListProjects returns the catalog with display prices
func (h *Handler) ListProjects(c *gin.Context) {
	if h.chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service not configured"})
		return
	}

	projects, err := h.chat.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject returns one catalog project, used by chat click-through
func (h *Handler) GetProject(c *gin.Context) {
	if h.chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service not configured"})
		return
	}

	project, err := h.chat.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		status, message = http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status, message = http.StatusServiceUnavailable, domain.ErrCatalogUnavailable.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "request timed out"
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": message})
}
