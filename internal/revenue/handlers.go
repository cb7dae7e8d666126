package revenue

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/validation"
)

// Handler provides HTTP endpoints for revenue prediction.
type Handler struct {
	service *Service
}

// NewHandler creates a new revenue handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up revenue prediction routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/revenue/predict", h.Predict)
	r.POST("/revenue/batch-predict", h.PredictBatch)
	r.GET("/revenue/model/info", h.ModelInfo)
}

// Predict handles POST /v1/revenue/predict
func (h *Handler) Predict(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.service.Predict(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_failed",
				"message": verrs.Error(),
				"details": verrs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// PredictBatch handles POST /v1/revenue/batch-predict
func (h *Handler) PredictBatch(c *gin.Context) {
	var reqs []*PredictionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	items, summary, err := h.service.PredictBatch(c.Request.Context(), reqs)
	if err != nil {
		var limitErr *scoring.BatchLimitError
		if errors.As(err, &limitErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "batch_too_large",
				"message": limitErr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"results": items,
			"summary": summary,
		},
	})
}

// ModelInfo handles GET /v1/revenue/model/info
func (h *Handler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.service.ModelInfo(),
	})
}
