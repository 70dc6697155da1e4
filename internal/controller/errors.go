package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/resume"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
)

var (
	badRequestErrors = []error{
		skillgap.ErrUnknownCategory,
		skillgap.ErrUnknownSkill,
		skillgap.ErrInvalidLevel,
		skillgap.ErrNegativeYears,
		market.ErrEmptyTitle,
		market.ErrUnsupportedField,
		resume.ErrUnsupportedType,
		resume.ErrFileTooLarge,
		resume.ErrNoFile,
		resume.ErrUnsupportedFormat,
		resume.ErrUnreadable,
		service.ErrPasswordTooShort,
		service.ErrNoUpdates,
	}
	unauthorizedErrors = []error{
		util.ErrInvalidCredentials,
		util.ErrTokenRevoked,
	}
	notFoundErrors = []error{
		util.ErrWizardNotFound,
		util.ErrScanNotFound,
		util.ErrUserNotFound,
	}
	conflictErrors = []error{
		skillgap.ErrWizardLocked,
		skillgap.ErrRunNotAllowed,
		skillgap.ErrNotAnalyzing,
		skillgap.ErrNotComplete,
		util.ErrWizardBusy,
		util.ErrEmailRegistered,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps service errors to HTTP replies. Unknown errors are
// logged and reported as 500.
func respondError(ctx *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, util.Response{
			Code:    http.StatusBadRequest,
			Message: "invalid request",
			Data:    gin.H{"details": verr.Details},
		})
	case isAny(err, badRequestErrors):
		util.BadRequest(ctx, err.Error())
	case isAny(err, unauthorizedErrors):
		util.Unauthorized(ctx, err.Error())
	case isAny(err, notFoundErrors):
		util.NotFound(ctx, err.Error())
	case isAny(err, conflictErrors):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrResumeAnalysis):
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
