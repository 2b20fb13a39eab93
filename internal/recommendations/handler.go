package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admissions-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles/:id/recommendations/generate", h.generate)
	rg.GET("/profiles/:id/recommendations", h.list)
	rg.POST("/recommendations/:id/dismiss", h.dismiss)
	rg.POST("/recommendations/:id/save", h.save)
	rg.POST("/recommendations/:id/acted-upon", h.actedUpon)
}

type generateRequest struct {
	GradeOverride string `json:"gradeOverride"`
}

func (h *Handler) generate(c *gin.Context) {
	profileID := c.Param("id")
	if profileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "profile id is required", nil)
		return
	}

	var req generateRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	result, err := h.Svc.Generate(c.Request.Context(), profileID, req.GradeOverride)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	profileID := c.Param("id")
	if profileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "profile id is required", nil)
		return
	}

	recs, err := h.Svc.ListActive(c.Request.Context(), profileID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendations", nil)
		return
	}
	if recs == nil {
		recs = []Recommendation{}
	}

	respond.OK(c, gin.H{"recommendations": recs})
}

type dismissRequest struct {
	Feedback string `json:"feedback"`
}

func (h *Handler) dismiss(c *gin.Context) {
	var req dismissRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	h.updateStatus(c, func(id string) error {
		return h.Svc.Dismiss(c.Request.Context(), id, req.Feedback)
	})
}

func (h *Handler) save(c *gin.Context) {
	h.updateStatus(c, func(id string) error {
		return h.Svc.MarkSaved(c.Request.Context(), id)
	})
}

func (h *Handler) actedUpon(c *gin.Context) {
	h.updateStatus(c, func(id string) error {
		return h.Svc.MarkActedUpon(c.Request.Context(), id)
	})
}

func (h *Handler) updateStatus(c *gin.Context, apply func(id string) error) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "recommendation id is required", nil)
		return
	}

	if err := apply(id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update recommendation", nil)
		}
		return
	}

	respond.OK(c, gin.H{"id": id, "updated": true})
}
