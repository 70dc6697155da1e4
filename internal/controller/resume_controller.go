package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/resume"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/util"
)

type ResumeAPI interface {
	Scan(ctx context.Context, sess session.Session, f service.FileUpload) (*resume.Analysis, error)
	Parse(ctx context.Context, f service.FileUpload) (*resume.Parsed, error)
	GetScan(ctx context.Context, sess session.Session, id string) (*model.ResumeScan, error)
}

type ResumeController struct {
	ResumeService ResumeAPI
}

func NewResumeController(resumeService ResumeAPI) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

// withUpload opens the multipart "file" field and hands it to fn.
func withUpload(ctx *gin.Context, fn func(service.FileUpload)) {
	header, err := ctx.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			util.BadRequest(ctx, resume.ErrNoFile.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	fn(service.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
}

// Scan godoc
// @Summary Scan a resume
// @Description Uploads a PDF, DOC, DOCX or TXT resume (max 10MB) and returns its analysis
// @Tags Resume
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Resume file"
// @Success 200 {object} util.Response{data=resume.Analysis}
// @Failure 400 {object} util.Response "Unsupported type or file too large"
// @Failure 500 {object} util.Response "Failed to analyze resume, please try again"
// @Router /api/resume/scan [post]
func (c *ResumeController) Scan(ctx *gin.Context) {
	withUpload(ctx, func(f service.FileUpload) {
		res, err := c.ResumeService.Scan(ctx.Request.Context(), session.FromContext(ctx), f)
		if err != nil {
			respondError(ctx, err)
			return
		}
		util.Success(ctx, res)
	})
}

// Parse godoc
// @Summary Parse a resume
// @Description Extracts contact details, skills by category, education and experience keywords
// @Tags Resume
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Resume file (PDF, DOCX or TXT)"
// @Success 200 {object} util.Response{data=resume.Parsed}
// @Failure 400 {object} util.Response "Unsupported or unreadable file"
// @Router /api/resume/parse [post]
func (c *ResumeController) Parse(ctx *gin.Context) {
	withUpload(ctx, func(f service.FileUpload) {
		res, err := c.ResumeService.Parse(ctx.Request.Context(), f)
		if err != nil {
			respondError(ctx, err)
			return
		}
		util.Success(ctx, res)
	})
}

// GetScan godoc
// @Summary Get a resume scan
// @Tags Resume
// @Produce  json
// @Param   id path string true "Scan ID"
// @Success 200 {object} util.Response{data=model.ResumeScan}
// @Failure 404 {object} util.Response "Scan not found"
// @Router /api/resume/scans/{id} [get]
func (c *ResumeController) GetScan(ctx *gin.Context) {
	scan, err := c.ResumeService.GetScan(ctx.Request.Context(), session.FromContext(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, scan)
}
