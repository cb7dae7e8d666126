package credit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/validation"
)

// Handler provides HTTP endpoints for credit scoring.
type Handler struct {
	service *Service
}

// NewHandler creates a new credit handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up credit scoring routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/credit/score", h.Score)
	r.POST("/credit/batch-score", h.ScoreBatch)
	r.GET("/credit/model/info", h.ModelInfo)
}

// Score handles POST /v1/credit/score
func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.service.Score(c.Request.Context(), &req)
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

// ScoreBatch handles POST /v1/credit/batch-score
func (h *Handler) ScoreBatch(c *gin.Context) {
	var reqs []*ScoreRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	items, summary, err := h.service.ScoreBatch(c.Request.Context(), reqs)
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

// ModelInfo handles GET /v1/credit/model/info
func (h *Handler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.service.ModelInfo(),
	})
}
