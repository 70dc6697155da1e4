package resume

import (
	"math/rand/v2"
	"sync"
	"time"
)

type DetectedSkills struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Certifications []string `json:"certifications"`
}

type ExperienceSummary struct {
	TotalYears int      `json:"totalYears"`
	Level      string   `json:"level"`
	Industries []string `json:"industries"`
}

type AnalysisRecommendations struct {
	SkillsToImprove []string `json:"skillsToImprove"`
	SuggestedRoles  []string `json:"suggestedRoles"`
	LearningPaths   []string `json:"learningPaths"`
}

// Analysis is the scan result shown to the user. Apart from the file name
// and years of experience its content is fixed.
type Analysis struct {
	ScanID          string                  `json:"scanId,omitempty"`
	FileName        string                  `json:"fileName"`
	DetectedSkills  DetectedSkills          `json:"detectedSkills"`
	Experience      ExperienceSummary       `json:"experience"`
	Recommendations AnalysisRecommendations `json:"recommendations"`
}

const (
	minYears = 2
	maxYears = 9
)

// Analyzer produces canned scan results.
type Analyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnalyzer(src rand.Source) *Analyzer {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1)
	}
	return &Analyzer{rng: rand.New(src)}
}

func (a *Analyzer) years() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return minYears + a.rng.IntN(maxYears-minYears+1)
}

func (a *Analyzer) Analyze(fileName string) Analysis {
	return Analysis{
		FileName: fileName,
		DetectedSkills: DetectedSkills{
			Technical: []string{
				"JavaScript", "React", "Node.js", "Python", "SQL",
				"Git", "Docker", "AWS", "MongoDB", "Express.js",
			},
			Soft: []string{
				"Leadership", "Communication", "Problem Solving",
				"Project Management", "Team Collaboration", "Adaptability",
			},
			Certifications: []string{
				"AWS Certified Solutions Architect",
				"Google Analytics Certified",
				"Scrum Master Certification",
			},
		},
		Experience: ExperienceSummary{
			TotalYears: a.years(),
			Level:      "Senior",
			Industries: []string{"Technology", "E-commerce", "SaaS"},
		},
		Recommendations: AnalysisRecommendations{
			SkillsToImprove: []string{"TypeScript", "GraphQL", "Kubernetes", "Machine Learning"},
			SuggestedRoles:  []string{"Senior Software Engineer", "Full Stack Developer", "Tech Lead"},
			LearningPaths:   []string{"Advanced React Patterns", "System Design", "Cloud Architecture"},
		},
	}
}
