package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/service"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/util"
)

type DashboardAPI interface {
	GetUserDashboard(ctx context.Context, userID uint) (*service.Dashboard, error)
}

type HomeAPI interface {
	Get(ctx context.Context, sess session.Session) (*service.Home, error)
}

type DashboardController struct {
	DashboardService DashboardAPI
	HomeService      HomeAPI
}

func NewDashboardController(dashboardService DashboardAPI, homeService HomeAPI) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, HomeService: homeService}
}

// @Summary Get dashboard data
// @Description Returns the user's analytics, latest analysis, recent target jobs and resume scans
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Failure 401 {object} util.Response "Not authenticated"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "")
		return
	}

	dashboard, err := c.DashboardService.GetUserDashboard(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary Get the home page
// @Description Returns the logged-in home for authenticated requests and the landing page otherwise
// @Tags Dashboard
// @Produce json
// @Success 200 {object} util.Response{data=service.Home}
// @Router /api/home [get]
func (c *DashboardController) GetHome(ctx *gin.Context) {
	home, err := c.HomeService.Get(ctx.Request.Context(), session.FromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, home)
}
