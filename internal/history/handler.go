package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvenhancer-backend/internal/shared/server/middleware"
	"cvenhancer-backend/internal/shared/server/respond"
)

// Handler exposes enhancement history endpoints.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/enhancements", h.list)
	rg.GET("/enhancements/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	enhancements, err := h.Repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list enhancements", nil)
		return
	}

	resp := make([]gin.H, 0, len(enhancements))
	for _, e := range enhancements {
		item := gin.H{
			"enhancementId": e.ID,
			"fileName":      e.FileName,
			"tier":          e.Tier,
			"createdAt":     e.CreatedAt,
		}
		if assessment := overallAssessment(e.Recommendation); assessment != "" {
			item["overallAssessment"] = assessment
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	enhancementID := c.Param("id")
	if enhancementID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "enhancement id is required", nil)
		return
	}

	enhancement, err := h.Repo.GetByID(c.Request.Context(), userID, enhancementID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			// Forbidden reads as not found to avoid leaking other users' IDs.
			respond.Error(c, http.StatusNotFound, "not_found", "enhancement not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load enhancement", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, enhancement)
}

func overallAssessment(recommendation json.RawMessage) string {
	if len(recommendation) == 0 {
		return ""
	}
	var peek struct {
		OverallAssessment string `json:"overallAssessment"`
	}
	if err := json.Unmarshal(recommendation, &peek); err != nil {
		return ""
	}
	return peek.OverallAssessment
}
