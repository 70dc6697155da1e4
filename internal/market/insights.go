package market

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Fields maps the supported trending-skill fields to the role searched.
var Fields = map[string]string{
	"software":  "Software Engineer",
	"data":      "Data Scientist",
	"hardware":  "Hardware Engineer",
	"frontend":  "Frontend Developer",
	"backend":   "Backend Developer",
	"fullstack": "Full Stack Developer",
	"ml":        "Machine Learning Engineer",
}

func FieldNames() []string {
	names := make([]string, 0, len(Fields))
	for k := range Fields {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

const (
	trendingSearchLimit = 20
	trendingTopN        = 15
	mostDemandedN       = 5
	emergingN           = 3
	quickSearchLimit    = 5
	quickTopN           = 5
)

var emergingSkills = []string{"kubernetes", "terraform", "machine learning", "ai", "blockchain"}

var insightCategories = []struct {
	name   string
	skills []string
}{
	{"Programming", []string{"python", "java", "javascript", "typescript"}},
	{"Cloud/DevOps", []string{"aws", "azure", "docker", "kubernetes"}},
	{"Frameworks", []string{"react", "angular", "django", "flask"}},
	{"Databases", []string{"postgresql", "mongodb", "mysql"}},
}

type SkillInsights struct {
	MostDemanded    []string    `json:"most_demanded"`
	EmergingTrends  []string    `json:"emerging_trends"`
	SkillCategories []FocusArea `json:"skill_categories"`
}

type TrendingReport struct {
	Field          string        `json:"field"`
	JobTitle       string        `json:"job_title_searched"`
	Location       string        `json:"location"`
	JobsAnalyzed   int           `json:"jobs_analyzed"`
	TrendingSkills []SkillCount  `json:"trending_skills"`
	Insights       SkillInsights `json:"skill_insights"`
}

// Trending searches the role behind field and summarises its top skills.
func Trending(ctx context.Context, p Provider, field, location string) (*TrendingReport, error) {
	title, ok := Fields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return nil, fmt.Errorf("%w: choose from %s", ErrUnsupportedField, strings.Join(FieldNames(), ", "))
	}
	res, err := p.Search(ctx, SearchQuery{JobTitle: title, Location: location, Limit: trendingSearchLimit})
	if err != nil {
		return nil, err
	}

	top := head(res.TopSkills, trendingTopN)
	names := skillNames(top)
	return &TrendingReport{
		Field:          field,
		JobTitle:       title,
		Location:       locationOf(res),
		JobsAnalyzed:   res.JobsFound,
		TrendingSkills: top,
		Insights: SkillInsights{
			MostDemanded:    head(names, mostDemandedN),
			EmergingTrends:  head(filterIn(names, emergingSkills), emergingN),
			SkillCategories: categorize(names),
		},
	}, nil
}

type QuickSummary struct {
	JobsFound       int          `json:"jobs_found"`
	TopSkills       []SkillCount `json:"top_skills"`
	AvgSkillsPerJob float64      `json:"avg_skills_per_job"`
}

type MarketInsights struct {
	SkillDemandLevel Priority `json:"skill_demand_level"`
	CompetitionLevel Priority `json:"competition_level"`
}

type QuickReport struct {
	JobTitle string         `json:"job_title"`
	Location string         `json:"location"`
	Summary  QuickSummary   `json:"summary"`
	Insights MarketInsights `json:"market_insights"`
}

// Quick runs a small search and rates demand and competition for title.
func Quick(ctx context.Context, p Provider, title, location string) (*QuickReport, error) {
	res, err := p.Search(ctx, SearchQuery{JobTitle: title, Location: location, Limit: quickSearchLimit})
	if err != nil {
		return nil, err
	}

	top := head(res.TopSkills, quickTopN)
	total := 0
	for _, s := range top {
		total += s.Count
	}

	r := &QuickReport{
		JobTitle: title,
		Location: locationOf(res),
		Summary:  QuickSummary{JobsFound: res.JobsFound, TopSkills: top},
	}
	if res.JobsFound > 0 {
		r.Summary.AvgSkillsPerJob = round1(float64(res.TotalSkillsMentioned) / float64(res.JobsFound))
	}

	// top is capped at five entries, so demand never rates High.
	switch {
	case len(top) >= 8:
		r.Insights.SkillDemandLevel = PriorityHigh
	case len(top) >= 5:
		r.Insights.SkillDemandLevel = PriorityMedium
	default:
		r.Insights.SkillDemandLevel = PriorityLow
	}
	switch {
	case total >= 15:
		r.Insights.CompetitionLevel = PriorityHigh
	case total >= 8:
		r.Insights.CompetitionLevel = PriorityMedium
	default:
		r.Insights.CompetitionLevel = PriorityLow
	}
	return r, nil
}

func locationOf(res *SearchResult) string {
	if len(res.Jobs) > 0 {
		return res.Jobs[0].Location
	}
	return DefaultSearchLocation
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func skillNames(counts []SkillCount) []string {
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Skill
	}
	return names
}

func filterIn(names, allowed []string) []string {
	out := []string{}
	for _, n := range names {
		if slices.Contains(allowed, n) {
			out = append(out, n)
		}
	}
	return out
}

func categorize(names []string) []FocusArea {
	areas := []FocusArea{}
	for _, c := range insightCategories {
		if matched := filterIn(names, c.skills); len(matched) > 0 {
			areas = append(areas, FocusArea{Category: c.name, Skills: matched})
		}
	}
	return areas
}
