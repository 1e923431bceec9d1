package controller

import (
	"net/http"
	"strconv"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuditController struct {
	auditQueryService service.AuditQueryService
}

func NewAuditController(auditQueryService service.AuditQueryService) *AuditController {
	return &AuditController{
		auditQueryService: auditQueryService,
	}
}

func RegisterAuditRoutes(router *gin.Engine, controller *AuditController) {
	v1 := router.Group("/api/v1/asks")
	{
		v1.GET("", controller.SearchAsks)
	}
}

// SearchAsks godoc
// @Summary      Search answered questions
// @Description  Searches the ask audit log by free text and/or intent, newest first.
// @Tags         audit
// @Produce      json
// @Param        q      query    string false "Free text matched against question and insight"
// @Param        intent query    string false "Intent filter (COUNT, WHY, DISTRIBUTION, TOP, PROBLEMS, SUMMARY, GENERAL)"
// @Param        page   query    int    false "Page number (1-based)"
// @Param        size   query    int    false "Page size (max 100)"
// @Success      200 {object} dto.AuditSearchResponse "Matching audit entries"
// @Failure      400 {object} model.Response "Invalid query parameters"
// @Failure      500 {object} model.Response "Internal server error"
// @Router       /api/v1/asks [get]
func (c *AuditController) SearchAsks(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid page parameter", nil))
		return
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid size parameter", nil))
		return
	}

	req := dto.AuditSearchRequest{
		Text:   ctx.Query("q"),
		Intent: ctx.Query("intent"),
		Page:   page,
		Size:   size,
	}

	result, err := c.auditQueryService.Search(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Error searching ask audit")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to search asks", nil))
		return
	}
	ctx.JSON(http.StatusOK, result)
}
