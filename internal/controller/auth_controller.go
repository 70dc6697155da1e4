package controller

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"
)

type AuthAPI interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Logout(ctx context.Context, claims *util.Claims) error
	Me(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, body []byte) (*model.User, error)
}

type HistoryAPI interface {
	Save(ctx context.Context, userID uint, in service.SaveInput) (*model.SkillGapAnalysis, error)
	List(ctx context.Context, userID uint) ([]model.SkillGapAnalysis, error)
}

type AuthController struct {
	AuthService    AuthAPI
	HistoryService HistoryAPI
}

func NewAuthController(authService AuthAPI, historyService HistoryAPI) *AuthController {
	return &AuthController{AuthService: authService, HistoryService: historyService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns an access token
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "Registration details"
// @Success 201 {object} util.Response{data=service.AuthResult} "Created"
// @Failure 400 {object} util.Response "Invalid input"
// @Failure 409 {object} util.Response "Email already registered"
// @Failure 500 {object} util.Response "Internal server error"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Register(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// Login godoc
// @Summary Log in
// @Description Verifies the credentials and returns an access token
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult} "Logged in"
// @Failure 400 {object} util.Response "Invalid input"
// @Failure 401 {object} util.Response "Invalid email or password"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented access token
// @Tags Auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Logged out"
// @Failure 401 {object} util.Response "Not authenticated"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}
	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Successfully logged out"})
}

// Me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags Auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "Not authenticated"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}
	user, err := c.AuthService.Me(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update profile data
// @Description Replaces the resume data, target jobs or learning progress of the authenticated user. Absent or null fields are kept.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdate true "Profile documents"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "No updates provided"
// @Failure 401 {object} util.Response "Not authenticated"
// @Router /api/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "could not read request body")
		return
	}

	user, err := c.AuthService.UpdateProfile(ctx.Request.Context(), claims.UserID, body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// SaveSkillsAnalysis godoc
// @Summary Save a skills-gap analysis
// @Description Appends an analysis to the user's history. Only the latest 10 are kept.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SaveInput true "Analysis"
// @Success 201 {object} util.Response{data=model.SkillGapAnalysis}
// @Failure 400 {object} util.Response "Invalid input"
// @Failure 401 {object} util.Response "Not authenticated"
// @Router /api/auth/save-skills-analysis [post]
func (c *AuthController) SaveSkillsAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}

	var req service.SaveInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	saved, err := c.HistoryService.Save(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, saved)
}

// SkillsHistory godoc
// @Summary Skills-gap history
// @Description Lists the user's saved analyses, newest first
// @Tags Auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "Not authenticated"
// @Router /api/auth/skills-history [get]
func (c *AuthController) SkillsHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}

	history, err := c.HistoryService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if history == nil {
		history = []model.SkillGapAnalysis{}
	}
	util.Success(ctx, gin.H{
		"skills_gap_history": history,
		"total_analyses":     len(history),
	})
}
