package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admissions-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to profile storage.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles/:id", h.getProfile)
	rg.PUT("/profiles/:id/about", h.putAbout)
	rg.PUT("/profiles/:id/academics", h.putAcademics)
}

func (h *Handler) getProfile(c *gin.Context) {
	profileID := c.Param("id")
	if profileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "profile id is required", nil)
		return
	}

	profile, err := h.Repo.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.OK(c, profile)
}

func (h *Handler) putAbout(c *gin.Context) {
	var req AboutUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.applyUpdate(c, func(id string) error {
		return h.Repo.UpdateAbout(c.Request.Context(), id, req)
	})
}

func (h *Handler) putAcademics(c *gin.Context) {
	var req AcademicsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.applyUpdate(c, func(id string) error {
		return h.Repo.UpdateAcademics(c.Request.Context(), id, req)
	})
}

func (h *Handler) applyUpdate(c *gin.Context, apply func(id string) error) {
	profileID := c.Param("id")
	if profileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "profile id is required", nil)
		return
	}

	if err := apply(profileID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}

	respond.OK(c, gin.H{"id": profileID, "updated": true})
}
