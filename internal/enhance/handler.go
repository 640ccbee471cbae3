package enhance

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cvenhancer-backend/internal/history"
	"cvenhancer-backend/internal/llm"
	"cvenhancer-backend/internal/shared/metrics"
	"cvenhancer-backend/internal/shared/server/middleware"
	"cvenhancer-backend/internal/shared/server/respond"
	"cvenhancer-backend/internal/shared/telemetry"
	"cvenhancer-backend/internal/shared/util"
	"cvenhancer-backend/internal/usage"
)

const (
	msgMissingInput     = "CV file and job description are required"
	msgExtractionFailed = "Could not extract text from the PDF file. Please try a different file or format."
	msgProcessingFailed = "Failed to process CV"
)

// Handler exposes the enhancement endpoint.
type Handler struct {
	Svc      *Service
	Usage    *usage.Service
	History  history.Repo
	Provider string
	Env      string
}

// NewHandler constructs a Handler. Usage and History may be nil; quota checks
// and persistence are then skipped.
func NewHandler(svc *Service, usageSvc *usage.Service, historyRepo history.Repo, provider, env string) *Handler {
	return &Handler{
		Svc:      svc,
		Usage:    usageSvc,
		History:  historyRepo,
		Provider: provider,
		Env:      env,
	}
}

// RegisterRoutes attaches the enhancement route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/enhance", h.enhance)
}

func (h *Handler) enhance(c *gin.Context) {
	if h.Svc == nil {
		respond.FlatError(c, http.StatusInternalServerError, msgProcessingFailed, nil)
		return
	}

	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.FlatError(c, http.StatusBadRequest, msgMissingInput, nil)
		return
	}
	if strings.TrimSpace(req.CVBase64) == "" || strings.TrimSpace(req.JobDescription) == "" {
		respond.FlatError(c, http.StatusBadRequest, msgMissingInput, nil)
		return
	}

	tier, err := llm.ParseTier(req.Mode)
	if err != nil {
		respond.FlatError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	pdf, ok := decodePDF(req.CVBase64)
	if !ok {
		respond.FlatError(c, http.StatusBadRequest, msgExtractionFailed, nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	requestID := middleware.RequestIDFromContext(c)

	if h.Usage != nil {
		allowed, _, err := h.Usage.CanConsume(c.Request.Context(), userID, 1)
		if err != nil {
			respond.FlatError(c, http.StatusInternalServerError, msgProcessingFailed, nil)
			return
		}
		if !allowed {
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your enhancement limit. Try again after your usage window resets.", []map[string]string{
				{"field": "usage", "issue": "limit_reached"},
			})
			return
		}
	}

	c.Set("enhanceTier", string(tier))
	c.Set("enhanceShape", string(h.Svc.Shape))

	metrics.IncEnhancementStarted()
	started := time.Now()

	result, err := h.Svc.Run(c.Request.Context(), RunInput{
		PDF:            pdf,
		JobDescription: req.JobDescription,
		Tier:           tier,
		RequestID:      requestID,
	})
	if err != nil {
		metrics.IncEnhancementFailed()
		h.respondRunError(c, err, requestID)
		return
	}

	metrics.IncEnhancementCompleted()
	metrics.ObserveEnhancementDurationMs(float64(time.Since(started).Milliseconds()))
	if !result.Parsed {
		metrics.IncParseFallback()
	}

	if h.Usage != nil {
		if _, err := h.Usage.Consume(c.Request.Context(), userID, 1); err != nil && !errors.Is(err, usage.ErrLimitReached) {
			telemetry.Warn("enhance.usage consume failed", map[string]any{"request_id": requestID, "err": err.Error()})
		}
	}

	enhancementID := h.recordHistory(c, userID, req, result, tier)

	respond.JSON(c, http.StatusOK, EnhanceResponse{
		EnhancedCV:     result.Recommendation,
		CoverLetter:    result.CoverLetter,
		OriginalCVText: result.OriginalText,
		Success:        true,
		EnhancementID:  enhancementID,
	})
}

func (h *Handler) respondRunError(c *gin.Context, err error, requestID string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.FlatError(c, http.StatusBadRequest, msgMissingInput, nil)
	case errors.Is(err, ErrExtractionFailed):
		respond.FlatError(c, http.StatusBadRequest, msgExtractionFailed, nil)
	default:
		var completionErr *CompletionError
		if errors.As(err, &completionErr) {
			telemetry.Error("enhance.completion failed", map[string]any{
				"request_id": requestID,
				"stage":      completionErr.Stage,
				"err":        sanitizeError(completionErr.Err),
			})
		} else {
			telemetry.Error("enhance.run failed", map[string]any{
				"request_id": requestID,
				"err":        sanitizeError(err),
			})
		}
		var details interface{}
		if h.Env == "dev" || h.Env == "local" {
			details = sanitizeError(err)
		}
		respond.FlatError(c, http.StatusInternalServerError, msgProcessingFailed, details)
	}
}

func (h *Handler) recordHistory(c *gin.Context, userID string, req EnhanceRequest, result Result, tier llm.Tier) string {
	if h.History == nil {
		return ""
	}

	fileName := req.FileName
	if sanitized, err := util.SanitizeFileName(fileName); err == nil {
		fileName = sanitized
	} else {
		fileName = ""
	}

	recommendation, err := json.Marshal(result.Recommendation)
	if err != nil {
		telemetry.Warn("enhance.history marshal failed", map[string]any{"err": err.Error()})
		return ""
	}

	enhancement := history.Enhancement{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		JobDescription: req.JobDescription,
		Recommendation: recommendation,
		CoverLetter:    result.CoverLetter,
		Provider:       h.Provider,
		Model:          h.Svc.modelFor(tier),
		Tier:           string(tier),
		Shape:          string(h.Svc.Shape),
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.History.Create(c.Request.Context(), enhancement); err != nil {
		// History is best-effort; the run already succeeded.
		telemetry.Warn("enhance.history create failed", map[string]any{"enhancement_id": enhancement.ID, "err": err.Error()})
		return ""
	}
	return enhancement.ID
}

// decodePDF accepts raw or data-URL base64, padded or not.
func decodePDF(encoded string) ([]byte, bool) {
	payload := strings.TrimSpace(encoded)
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	if payload == "" {
		return nil, false
	}
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, true
	}
	data, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return data, true
}
