package controller

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/session"
	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
)

type AssessmentAPI interface {
	Create(ctx context.Context, sess session.Session) (*skillgap.Wizard, error)
	Get(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error)
	ToggleSkill(ctx context.Context, sess session.Session, id string, c skillgap.Category, skill string) (*skillgap.Wizard, error)
	SetExperience(ctx context.Context, sess session.Session, id string, e skillgap.Experience) (*skillgap.Wizard, error)
	SetTarget(ctx context.Context, sess session.Session, id string, t skillgap.TargetJob) (*skillgap.Wizard, error)
	Next(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error)
	Previous(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error)
	Reset(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error)
	Run(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error)
	Evaluate(ctx context.Context, sess session.Session, body []byte) (*skillgap.AssessmentResult, error)
}

type AssessmentController struct {
	AssessmentService AssessmentAPI
}

func NewAssessmentController(assessmentService AssessmentAPI) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// WizardView is a wizard as shown to the client, with the derived step
// number and whether the run action is enabled.
// swagger:model WizardView
type WizardView struct {
	*skillgap.Wizard
	Step   int  `json:"step"`
	CanRun bool `json:"canRun"`
}

func viewOf(w *skillgap.Wizard) WizardView {
	return WizardView{Wizard: w, Step: w.Step(), CanRun: w.CanRun()}
}

// swagger:model ToggleSkillRequest
type ToggleSkillRequest struct {
	Category skillgap.Category `json:"category" binding:"required"`
	Skill    string            `json:"skill" binding:"required"`
}

// swagger:model ExperienceRequest
type ExperienceRequest struct {
	Years *int                     `json:"years" binding:"required"`
	Level skillgap.ExperienceLevel `json:"level" binding:"required"`
}

// swagger:model TargetJobRequest
type TargetJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

func (c *AssessmentController) reply(ctx *gin.Context, w *skillgap.Wizard, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, viewOf(w))
}

// CreateWizard godoc
// @Summary Start an assessment
// @Description Creates a wizard at the technical skills step
// @Tags Assessment
// @Produce  json
// @Success 201 {object} util.Response{data=WizardView}
// @Router /api/assessment/wizards [post]
func (c *AssessmentController) CreateWizard(ctx *gin.Context) {
	w, err := c.AssessmentService.Create(ctx.Request.Context(), session.FromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, viewOf(w))
}

// GetWizard godoc
// @Summary Get an assessment
// @Tags Assessment
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Success 200 {object} util.Response{data=WizardView}
// @Failure 404 {object} util.Response "Assessment not found"
// @Router /api/assessment/wizards/{id} [get]
func (c *AssessmentController) GetWizard(ctx *gin.Context) {
	w, err := c.AssessmentService.Get(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	c.reply(ctx, w, err)
}

// ToggleSkill godoc
// @Summary Toggle a skill
// @Description Selects the skill when absent and deselects it when present
// @Tags Assessment
// @Accept  json
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Param   body body ToggleSkillRequest true "Category (technical, soft, certifications) and skill"
// @Success 200 {object} util.Response{data=WizardView}
// @Failure 400 {object} util.Response "Unknown category or skill"
// @Failure 409 {object} util.Response "Assessment is analyzing or complete"
// @Router /api/assessment/wizards/{id}/skills [post]
func (c *AssessmentController) ToggleSkill(ctx *gin.Context) {
	var req ToggleSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	w, err := c.AssessmentService.ToggleSkill(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"), req.Category, req.Skill)
	c.reply(ctx, w, err)
}

// SetExperience godoc
// @Summary Set experience
// @Tags Assessment
// @Accept  json
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Param   body body ExperienceRequest true "Years and level"
// @Success 200 {object} util.Response{data=WizardView}
// @Failure 400 {object} util.Response "Invalid experience"
// @Router /api/assessment/wizards/{id}/experience [put]
func (c *AssessmentController) SetExperience(ctx *gin.Context) {
	var req ExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	exp := skillgap.Experience{Years: *req.Years, Level: req.Level}
	w, err := c.AssessmentService.SetExperience(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"), exp)
	c.reply(ctx, w, err)
}

// SetTarget godoc
// @Summary Set the target job
// @Tags Assessment
// @Accept  json
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Param   body body TargetJobRequest true "Target job"
// @Success 200 {object} util.Response{data=WizardView}
// @Router /api/assessment/wizards/{id}/target [put]
func (c *AssessmentController) SetTarget(ctx *gin.Context) {
	var req TargetJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	target := skillgap.TargetJob{Title: req.Title, Company: req.Company, Description: req.Description}
	w, err := c.AssessmentService.SetTarget(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"), target)
	c.reply(ctx, w, err)
}

// Next godoc
// @Summary Go to the next step
// @Tags Assessment
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Success 200 {object} util.Response{data=WizardView}
// @Router /api/assessment/wizards/{id}/next [post]
func (c *AssessmentController) Next(ctx *gin.Context) {
	w, err := c.AssessmentService.Next(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	c.reply(ctx, w, err)
}

// Previous godoc
// @Summary Go to the previous step
// @Tags Assessment
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Success 200 {object} util.Response{data=WizardView}
// @Router /api/assessment/wizards/{id}/previous [post]
func (c *AssessmentController) Previous(ctx *gin.Context) {
	w, err := c.AssessmentService.Previous(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	c.reply(ctx, w, err)
}

// Run godoc
// @Summary Run the assessment
// @Description Scores the profile after the analysis delay and returns the completed wizard
// @Tags Assessment
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Success 200 {object} util.Response{data=WizardView}
// @Failure 409 {object} util.Response "Run not allowed"
// @Router /api/assessment/wizards/{id}/run [post]
func (c *AssessmentController) Run(ctx *gin.Context) {
	w, err := c.AssessmentService.Run(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	c.reply(ctx, w, err)
}

// Reset godoc
// @Summary Start over
// @Description Discards the result and returns to the first step
// @Tags Assessment
// @Produce  json
// @Param   id path string true "Wizard ID"
// @Success 200 {object} util.Response{data=WizardView}
// @Failure 409 {object} util.Response "Assessment is not complete"
// @Router /api/assessment/wizards/{id}/reset [post]
func (c *AssessmentController) Reset(ctx *gin.Context) {
	w, err := c.AssessmentService.Reset(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	c.reply(ctx, w, err)
}

// Evaluate godoc
// @Summary One-shot assessment
// @Description Scores a complete profile without a wizard
// @Tags Assessment
// @Accept  json
// @Produce  json
// @Param   body body service.EvaluateRequest true "Profile and target job"
// @Success 200 {object} util.Response{data=skillgap.AssessmentResult}
// @Failure 400 {object} util.Response "Schema violations"
// @Router /api/assessment/evaluate [post]
func (c *AssessmentController) Evaluate(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "could not read request body")
		return
	}
	res, err := c.AssessmentService.Evaluate(ctx.Request.Context(), session.FromContext(ctx), body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
