package controller

import (
	"net/http"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AskController struct {
	askService service.AskService
}

func NewAskController(askService service.AskService) *AskController {
	return &AskController{
		askService: askService,
	}
}

func RegisterAskRoutes(router *gin.Engine, controller *AskController) {
	v1 := router.Group("/api/v1/ask")
	{
		v1.POST("", controller.HandleAsk)
		v1.GET("/examples", controller.HandleExamples)
	}
}

// HandleAsk godoc
// @Summary      Answer a free-text analytic question
// @Description  Classifies the question's intent, compiles it into an aggregate query over the conversations dataset, executes it, decides the presentation shape (KPI, table+chart, stacked chart or text) and generates an insight sentence.
// @Tags         ask
// @Accept       json
// @Produce      json
// @Param        request body dto.AskRequest true "The question to answer"
// @Success      200 {object} dto.AskResponse "Question processed. Contains data, category and insight, or an error message."
// @Failure      400 {object} model.Response "Invalid request body"
// @Failure      500 {object} model.Response "Internal server error during processing"
// @Router       /api/v1/ask [post]
func (c *AskController) HandleAsk(ctx *gin.Context) {
	var req dto.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid ask request body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
		return
	}

	resp, err := c.askService.Ask(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("question", req.Question).Msg("Internal error processing question")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Internal server error", nil))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleExamples godoc
// @Summary      List example questions
// @Description  Returns questions the pipeline is known to answer, for a suggestion panel.
// @Tags         ask
// @Produce      json
// @Success      200 {object} dto.ExampleQuestionsResponse
// @Router       /api/v1/ask/examples [get]
func (c *AskController) HandleExamples(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ExampleQuestionsResponse{
		Questions: c.askService.ExampleQuestions(),
	})
}
