package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"
)

type AIAPI interface {
	Chat(ctx context.Context, req service.ChatRequest) service.ChatReply
	Ask(ctx context.Context, provider string, req service.ChatRequest) service.ChatReply
	Providers() map[string]bool
	Models() map[string][]string
}

type AIController struct {
	AIService AIAPI
}

func NewAIController(aiService AIAPI) *AIController {
	return &AIController{AIService: aiService}
}

// Chat godoc
// @Summary Ask the career assistant
// @Description Answers with the requested provider, Claude by default. Provider problems are reported in the response text.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body service.ChatRequest true "Question"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response "Invalid input"
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.AIService.Chat(ctx.Request.Context(), req))
}

// Claude godoc
// @Summary Ask Claude
// @Tags AI
// @Accept json
// @Produce json
// @Param request body service.ChatRequest true "Question"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response "Invalid input"
// @Router /api/ai/claude [post]
func (c *AIController) Claude(ctx *gin.Context) {
	c.ask(ctx, service.ProviderClaude)
}

// OpenAI godoc
// @Summary Ask OpenAI
// @Tags AI
// @Accept json
// @Produce json
// @Param request body service.ChatRequest true "Question"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response "Invalid input"
// @Router /api/ai/openai [post]
func (c *AIController) OpenAI(ctx *gin.Context) {
	c.ask(ctx, service.ProviderOpenAI)
}

func (c *AIController) ask(ctx *gin.Context, provider string) {
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.AIService.Ask(ctx.Request.Context(), provider, req))
}

// Providers godoc
// @Summary AI provider availability
// @Description A provider is available when an API key is configured for it
// @Tags AI
// @Produce json
// @Success 200 {object} util.Response{data=map[string]bool}
// @Router /api/ai/providers [get]
func (c *AIController) Providers(ctx *gin.Context) {
	util.Success(ctx, c.AIService.Providers())
}

// Models godoc
// @Summary Models per AI provider
// @Tags AI
// @Produce json
// @Success 200 {object} util.Response{data=map[string][]string}
// @Router /api/ai/models [get]
func (c *AIController) Models(ctx *gin.Context) {
	util.Success(ctx, c.AIService.Models())
}
