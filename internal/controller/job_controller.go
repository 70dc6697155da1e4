package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/util"
)

type MarketAPI interface {
	Analyze(ctx context.Context, q market.Query) (*market.Analysis, error)
	Search(ctx context.Context, q market.SearchQuery) (*market.SearchResult, error)
	SkillsGap(ctx context.Context, sess session.Session, req service.GapRequest) (*service.GapResult, error)
	Trending(ctx context.Context, field, location string) (*market.TrendingReport, error)
	Quick(ctx context.Context, title, location string) (*market.QuickReport, error)
}

type JobController struct {
	MarketService MarketAPI
}

func NewJobController(marketService MarketAPI) *JobController {
	return &JobController{MarketService: marketService}
}

// Analyze godoc
// @Summary Analyze the market for a role
// @Description Returns job counts, salary range and skill demand for a job title
// @Tags Jobs
// @Accept  json
// @Produce  json
// @Param   body body market.Query true "Job title and optional location"
// @Success 200 {object} util.Response{data=market.Analysis}
// @Failure 400 {object} util.Response "Job title is required"
// @Router /api/jobs/analyze [post]
func (c *JobController) Analyze(ctx *gin.Context) {
	var q market.Query
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.MarketService.Analyze(ctx.Request.Context(), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Search godoc
// @Summary Search job postings
// @Description Returns postings for the title and the skills they ask for, most frequent first
// @Tags Jobs
// @Accept  json
// @Produce  json
// @Param   body body market.SearchQuery true "Search"
// @Success 200 {object} util.Response{data=market.SearchResult}
// @Failure 400 {object} util.Response "Job title is required"
// @Router /api/jobs/search [post]
func (c *JobController) Search(ctx *gin.Context) {
	var q market.SearchQuery
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.MarketService.Search(ctx.Request.Context(), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// SkillsGap godoc
// @Summary Skills-gap analysis
// @Description Compares the user's skills with market demand. Saved to history for logged in users.
// @Tags Jobs
// @Accept  json
// @Produce  json
// @Param   body body service.GapRequest true "Role and user skills by category"
// @Success 200 {object} util.Response{data=service.GapResult}
// @Failure 400 {object} util.Response "Invalid input"
// @Router /api/jobs/skills-gap-analysis [post]
func (c *JobController) SkillsGap(ctx *gin.Context) {
	var req service.GapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.MarketService.SkillsGap(ctx.Request.Context(), session.FromContext(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Trending godoc
// @Summary Trending skills
// @Tags Jobs
// @Produce  json
// @Param   field query string false "software, data, hardware, frontend, backend, fullstack or ml" default(software)
// @Param   location query string false "Location"
// @Success 200 {object} util.Response{data=market.TrendingReport}
// @Failure 400 {object} util.Response "Unsupported field"
// @Router /api/jobs/trending-skills [get]
func (c *JobController) Trending(ctx *gin.Context) {
	res, err := c.MarketService.Trending(ctx.Request.Context(), ctx.DefaultQuery("field", "software"), ctx.Query("location"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Quick godoc
// @Summary Quick market check
// @Tags Jobs
// @Produce  json
// @Param   title query string true "Job title"
// @Param   location query string false "Location"
// @Success 200 {object} util.Response{data=market.QuickReport}
// @Failure 400 {object} util.Response "Job title is required"
// @Router /api/jobs/quick-analysis [get]
func (c *JobController) Quick(ctx *gin.Context) {
	res, err := c.MarketService.Quick(ctx.Request.Context(), ctx.Query("title"), ctx.Query("location"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
