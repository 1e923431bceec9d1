package controller

import (
	"net/http"

	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DatasetController struct {
	datasetQueryService service.DatasetQueryService
}

func NewDatasetController(datasetQueryService service.DatasetQueryService) *DatasetController {
	return &DatasetController{
		datasetQueryService: datasetQueryService,
	}
}

func RegisterDatasetRoutes(router *gin.Engine, controller *DatasetController) {
	v1 := router.Group("/api/v1/dataset")
	{
		v1.GET("/summary", controller.GetSummary)
	}
}

// GetSummary godoc
// @Summary      Get dataset summary
// @Description  Retrieves total, pending and negative conversation counts from the dataset.
// @Tags         dataset
// @Produce      json
// @Success      200 {object} dto.DatasetSummaryResponse "Successfully retrieved dataset summary"
// @Failure      500 {object} model.Response "Internal server error"
// @Router       /api/v1/dataset/summary [get]
func (c *DatasetController) GetSummary(ctx *gin.Context) {
	result, err := c.datasetQueryService.GetSummary(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error getting dataset summary")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to get dataset summary", nil))
		return
	}
	ctx.JSON(http.StatusOK, result)
}
