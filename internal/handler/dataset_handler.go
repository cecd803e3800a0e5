package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/service"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type datasetService interface {
	Reload(ctx context.Context) (*service.ReloadResult, error)
}

// DatasetHandler serves dataset lifecycle endpoints.
type DatasetHandler struct {
	data   datasetService
	logger *zap.Logger
}

// NewDatasetHandler constructs the handler.
func NewDatasetHandler(data datasetService, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{data: data, logger: logger}
}

// Reload godoc
// @Summary Rebuild the dataset from source and drop cached statistics
// @Tags Dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dataset/reload [post]
func (h *DatasetHandler) Reload(c *gin.Context) {
	if h.data == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	result, err := h.data.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.logger != nil {
		actor := "unknown"
		if claims := claimsFromContext(c); claims != nil {
			actor = claims.Username
		}
		h.logger.Info("dataset reloaded",
			zap.String("actor", actor),
			zap.Int("rows", result.Rows),
			zap.Strings("warnings", result.Warnings))
	}
	response.OK(c, "dataset reloaded", result)
}
