package skillgap

import (
	"math"
	"strings"
)

// experienceSaturationYears is the number of years at which the experience score reaches 100.
const experienceSaturationYears = 5

type Scores struct {
	Overall    int `json:"overall"`
	Technical  int `json:"technical"`
	Soft       int `json:"soft"`
	Experience int `json:"experience"`
}

type SkillLists struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

type SkillsAnalysis struct {
	Matched SkillLists `json:"matched"`
	Missing SkillLists `json:"missing"`
}

// ScoreResult is the output of the scoring engine.
type ScoreResult struct {
	Scores   Scores         `json:"scores"`
	Analysis SkillsAnalysis `json:"skillsAnalysis"`
}

// Score compares a profile against the required skills. Matched and missing
// lists keep the order of the requirement lists. The experience score is
// reported but does not contribute to the overall score.
func Score(skills SkillSet, exp Experience, required RequiredSkills) ScoreResult {
	matchedTech, missingTech := intersect(required.Technical, skills.Technical)
	matchedSoft, missingSoft := intersect(required.Soft, skills.Soft)

	technical := percentage(len(matchedTech), len(required.Technical))
	soft := percentage(len(matchedSoft), len(required.Soft))

	return ScoreResult{
		Scores: Scores{
			Overall:    Overall(technical, soft),
			Technical:  technical,
			Soft:       soft,
			Experience: ExperienceScore(exp.Years),
		},
		Analysis: SkillsAnalysis{
			Matched: SkillLists{Technical: matchedTech, Soft: matchedSoft},
			Missing: SkillLists{Technical: missingTech, Soft: missingSoft},
		},
	}
}

// Overall averages the technical and soft scores.
func Overall(technical, soft int) int {
	return roundHalfUp(float64(technical+soft) / 2)
}

// ExperienceScore maps years of experience onto 0-100, saturating at five years.
func ExperienceScore(years int) int {
	if years <= 0 {
		return 0
	}
	return min(100, roundHalfUp(100*float64(years)/experienceSaturationYears))
}

// percentage returns round(100*n/d), or 0 when d is 0.
func percentage(n, d int) int {
	if d == 0 {
		return 0
	}
	return roundHalfUp(100 * float64(n) / float64(d))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func intersect(required, have []string) (matched, missing []string) {
	owned := make(map[string]struct{}, len(have))
	for _, s := range have {
		owned[normalize(s)] = struct{}{}
	}
	matched = []string{}
	missing = []string{}
	for _, r := range required {
		if _, ok := owned[normalize(r)]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return matched, missing
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
