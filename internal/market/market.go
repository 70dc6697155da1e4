// Package market produces job market data for a role. The built-in provider
// is a mock; results are random or template based.
package market

import (
	"context"
	"errors"
)

var (
	ErrEmptyTitle       = errors.New("job title is required")
	ErrUnsupportedField = errors.New("unsupported field")
)

const (
	DefaultAnalysisLocation = "Remote"
	DefaultSearchLocation   = "United States"
	DefaultSearchLimit      = 10
	MaxSearchLimit          = 50
)

// Provider is the source of market data. Implementations must be safe for
// concurrent use.
type Provider interface {
	Analyze(ctx context.Context, q Query) (*Analysis, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
}

type Query struct {
	JobTitle string `json:"jobTitle"`
	Location string `json:"location"`
}

type SkillDemand struct {
	Skill   string `json:"skill"`
	Percent int    `json:"percent"`
}

type SkillDemands struct {
	Technical []SkillDemand `json:"technical"`
	Soft      []SkillDemand `json:"soft"`
}

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Analysis summarises demand for a single role.
type Analysis struct {
	JobTitle    string       `json:"jobTitle"`
	Location    string       `json:"location"`
	TotalJobs   int          `json:"totalJobs"`
	Skills      SkillDemands `json:"skills"`
	SalaryRange SalaryRange  `json:"salaryRange"`
	Experience  string       `json:"experience"`
	Growth      string       `json:"growth"`
}

type SearchQuery struct {
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

// withDefaults fills the optional fields and clamps the limit.
func (q SearchQuery) withDefaults() SearchQuery {
	if q.Location == "" {
		q.Location = DefaultSearchLocation
	}
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	if q.Limit > MaxSearchLimit {
		q.Limit = MaxSearchLimit
	}
	return q
}

type Posting struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"-"`
	SkillsRequired []string `json:"skills_required"`
	URL            string   `json:"url"`
	Salary         string   `json:"salary"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type SearchResult struct {
	SearchQuery          string       `json:"search_query"`
	JobsFound            int          `json:"jobs_found"`
	Jobs                 []Posting    `json:"job_summaries"`
	TopSkills            []SkillCount `json:"top_skills_required"`
	TotalSkillsMentioned int          `json:"total_skills_mentioned"`
}
