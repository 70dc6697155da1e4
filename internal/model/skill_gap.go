package model

type AnalysisSource string

const (
	SourceAssessment AnalysisSource = "assessment"
	SourceMarket     AnalysisSource = "market"
)

// MaxHistory is how many skills-gap analyses are kept per user.
const MaxHistory = 10

// swagger:model SkillGapAnalysis
type SkillGapAnalysis struct {
	BaseModel
	UserID          uint           `gorm:"index;not null" json:"userId"`
	Source          AnalysisSource `gorm:"size:20;not null" json:"source"`
	JobTitle        string         `gorm:"size:200" json:"jobTitle"`
	Company         string         `gorm:"size:200" json:"company,omitempty"`
	MatchPercentage float64        `json:"matchPercentage"`
	Readiness       string         `gorm:"size:50" json:"readiness,omitempty"`
	MissingSkills   StringList     `gorm:"type:json" json:"missingSkills"`
	Payload         RawJSON        `gorm:"type:json" json:"payload"`
}

func (SkillGapAnalysis) TableName() string {
	return "skill_gap_analyses"
}

// swagger:model TargetJobRecord
type TargetJobRecord struct {
	BaseModel
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Company     string `gorm:"size:200" json:"company,omitempty"`
	Description string `gorm:"type:text" json:"description"`
}

func (TargetJobRecord) TableName() string {
	return "target_jobs"
}
