package skillgap

import "time"

// AssessmentResult is the immutable snapshot handed to the results views.
type AssessmentResult struct {
	TargetJob       TargetJob       `json:"targetJob"`
	UserProfile     Profile         `json:"userProfile"`
	Scores          Scores          `json:"scores"`
	SkillsAnalysis  SkillsAnalysis  `json:"skillsAnalysis"`
	Recommendations Recommendations `json:"recommendations"`
	CompletedAt     time.Time       `json:"completedAt"`
}

// Assess runs scoring, classification and recommendation for one profile.
func Assess(profile Profile, target TargetJob, required RequiredSkills, now time.Time) AssessmentResult {
	scored := Score(profile.Skills, profile.Experience, required)
	rec := Recommend(scored.Analysis.Missing.Technical, scored.Analysis.Missing.Soft)
	rec.Readiness, rec.TimeToReady = Classify(scored.Scores.Overall)

	return AssessmentResult{
		TargetJob:       target,
		UserProfile:     cloneProfile(profile),
		Scores:          scored.Scores,
		SkillsAnalysis:  scored.Analysis,
		Recommendations: rec,
		CompletedAt:     now,
	}
}

func cloneProfile(p Profile) Profile {
	return Profile{
		Skills: SkillSet{
			Technical:      append([]string{}, p.Skills.Technical...),
			Soft:           append([]string{}, p.Skills.Soft...),
			Certifications: append([]string{}, p.Skills.Certifications...),
		},
		Experience: p.Experience,
	}
}
