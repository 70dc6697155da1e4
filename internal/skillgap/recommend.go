package skillgap

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
)

const maxPrioritySkills = 3

type LearningItem struct {
	Skill     string   `json:"skill"`
	Timeframe string   `json:"timeframe"`
	Priority  Priority `json:"priority"`
}

type Recommendations struct {
	Readiness     Readiness      `json:"readiness"`
	TimeToReady   string         `json:"timeToReady"`
	Priority      []string       `json:"priority"`
	LearningPlan  []LearningItem `json:"learningPlan"`
	InterviewPrep []string       `json:"interviewPrep"`
}

// InterviewPrep is handed out with every assessment regardless of the gaps found.
func InterviewPrep() []string {
	return []string{
		"Practice coding challenges on LeetCode",
		"Review system design concepts",
		"Prepare behavioral questions using STAR method",
		"Mock interviews with peers",
	}
}

// Recommend builds the priority list, learning plan and interview checklist.
// Readiness fields are left for the caller to fill from Classify.
func Recommend(missingTechnical, missingSoft []string) Recommendations {
	n := min(maxPrioritySkills, len(missingTechnical))
	priority := make([]string, n)
	copy(priority, missingTechnical[:n])

	plan := []LearningItem{
		{Skill: nth(missingTechnical, 0, "Advanced JavaScript"), Timeframe: "2-4 weeks", Priority: PriorityHigh},
		{Skill: nth(missingTechnical, 1, "System Design"), Timeframe: "4-6 weeks", Priority: PriorityMedium},
		{Skill: nth(missingSoft, 0, "Technical Communication"), Timeframe: "2-3 weeks", Priority: PriorityMedium},
	}
	filtered := plan[:0]
	for _, item := range plan {
		if item.Skill != "" {
			filtered = append(filtered, item)
		}
	}

	return Recommendations{
		Priority:      priority,
		LearningPlan:  filtered,
		InterviewPrep: InterviewPrep(),
	}
}

func nth(list []string, i int, fallback string) string {
	if i < len(list) && list[i] != "" {
		return list[i]
	}
	return fallback
}
