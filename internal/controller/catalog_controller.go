package controller

import (
	"github.com/gin-gonic/gin"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
)

// Catalog lists the fixed options offered by the assessment and market
// pages.
// swagger:model Catalog
type Catalog struct {
	TechnicalSkills  []string                   `json:"technicalSkills"`
	SoftSkills       []string                   `json:"softSkills"`
	Certifications   []string                   `json:"certifications"`
	ExperienceLevels []skillgap.ExperienceLevel `json:"experienceLevels"`
	PopularJobs      []string                   `json:"popularJobs"`
	RequiredSkills   skillgap.RequiredSkills    `json:"requiredSkills"`
	MarketFields     map[string]string          `json:"marketFields"`
}

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// @Summary Get the option catalog
// @Description Skill options, experience levels, popular job titles and trending-skill fields
// @Tags Catalog
// @Produce json
// @Success 200 {object} util.Response{data=Catalog}
// @Router /api/catalog [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	util.Success(ctx, Catalog{
		TechnicalSkills:  skillgap.Options(skillgap.Technical),
		SoftSkills:       skillgap.Options(skillgap.Soft),
		Certifications:   skillgap.Options(skillgap.Certifications),
		ExperienceLevels: skillgap.ExperienceLevels,
		PopularJobs:      skillgap.PopularJobs,
		RequiredSkills:   skillgap.DefaultRequiredSkills(),
		MarketFields:     market.Fields,
	})
}
