package market

import (
	"math"
	"slices"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

const (
	maxGaps      = 10
	maxNextSteps = 5
)

func priorityFor(frequency int) Priority {
	switch {
	case frequency >= 5:
		return PriorityHigh
	case frequency >= 3:
		return PriorityMedium
	}
	return PriorityLow
}

type SkillGap struct {
	Skill     string   `json:"skill"`
	Frequency int      `json:"frequency"`
	Priority  Priority `json:"priority"`
}

// FocusArea groups missing skills for a learning category.
type FocusArea struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type GapReport struct {
	TotalSkillsRequired int         `json:"total_skills_required"`
	SkillsYouHave       int         `json:"skills_you_have"`
	SkillsMissing       int         `json:"skills_missing"`
	MatchPercentage     float64     `json:"match_percentage"`
	MatchingSkills      []string    `json:"matching_skills"`
	MissingSkills       []SkillGap  `json:"missing_skills"`
	FocusAreas          []FocusArea `json:"skill_categories_to_focus"`
}

// AnalyzeGap compares a user's skills against market skill frequencies.
// userSkills is keyed by category, as produced by resume parsing; the
// categories themselves are ignored.
func AnalyzeGap(userSkills map[string][]string, market []SkillCount) GapReport {
	have := map[string]bool{}
	for _, skills := range userSkills {
		for _, s := range skills {
			have[strings.ToLower(strings.TrimSpace(s))] = true
		}
	}

	r := GapReport{
		TotalSkillsRequired: len(market),
		MatchingSkills:      []string{},
		MissingSkills:       []SkillGap{},
	}
	// market is sorted by frequency so gaps come out in priority order.
	for _, sc := range market {
		if have[sc.Skill] {
			r.MatchingSkills = append(r.MatchingSkills, sc.Skill)
			continue
		}
		r.SkillsMissing++
		if len(r.MissingSkills) < maxGaps {
			r.MissingSkills = append(r.MissingSkills, SkillGap{
				Skill:     sc.Skill,
				Frequency: sc.Count,
				Priority:  priorityFor(sc.Count),
			})
		}
	}
	r.SkillsYouHave = len(r.MatchingSkills)
	if r.TotalSkillsRequired > 0 {
		r.MatchPercentage = round1(float64(r.SkillsYouHave) / float64(r.TotalSkillsRequired) * 100)
	}
	r.FocusAreas = focusAreas(r.MissingSkills)
	return r
}

var focusCategories = []struct {
	name   string
	skills []string
}{
	{"Programming Languages", []string{"python", "java", "javascript", "typescript", "c++", "go", "rust"}},
	{"Frameworks & Tools", nil},
	{"Cloud & DevOps", []string{"aws", "azure", "docker", "kubernetes", "terraform"}},
	{"Databases", []string{"mysql", "postgresql", "mongodb", "redis"}},
	{"Soft Skills", []string{"agile", "scrum", "leadership", "communication"}},
}

// focusAreas buckets gaps by category; anything unlisted is a framework or
// tool. Empty categories are omitted.
func focusAreas(gaps []SkillGap) []FocusArea {
	buckets := make([][]string, len(focusCategories))
	for _, g := range gaps {
		idx := 1
		for i, c := range focusCategories {
			if slices.Contains(c.skills, g.Skill) {
				idx = i
				break
			}
		}
		buckets[idx] = append(buckets[idx], g.Skill)
	}

	areas := []FocusArea{}
	for i, b := range buckets {
		if len(b) > 0 {
			areas = append(areas, FocusArea{Category: focusCategories[i].name, Skills: b})
		}
	}
	return areas
}

// NextSteps suggests how to close the first few gaps.
func NextSteps(gaps []SkillGap) []string {
	steps := []string{}
	for _, g := range gaps {
		if len(steps) == maxNextSteps {
			break
		}
		switch g.Skill {
		case "python", "java", "javascript":
			steps = append(steps, "Learn "+g.Skill+": Start with Codecademy or FreeCodeCamp")
		case "aws", "azure", "docker":
			steps = append(steps, "Get "+g.Skill+" certified: Official documentation and hands-on labs")
		case "react", "angular", "vue":
			steps = append(steps, "Build projects with "+g.Skill+": Create portfolio projects")
		default:
			steps = append(steps, "Study "+g.Skill+": Find online courses and practice projects")
		}
	}
	return steps
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
