package market

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

var (
	analysisTechnicalSkills = []string{
		"JavaScript", "React", "Node.js", "Python", "SQL",
		"Git", "AWS", "Docker", "TypeScript", "REST APIs",
	}
	analysisSoftSkills = []string{
		"Problem Solving", "Communication", "Teamwork",
		"Adaptability", "Time Management", "Critical Thinking",
	}
)

const (
	analysisExperience = "Mid-level (2-5 years)"
	analysisGrowth     = "+12% year over year"
)

// MockProvider fabricates market data. Analyze is random within fixed
// ranges; Search returns postings built from static templates.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockProvider(src rand.Source) *MockProvider {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1)
	}
	return &MockProvider{rng: rand.New(src)}
}

// intn returns a value in [lo, lo+n).
func (p *MockProvider) intn(lo, n int) int {
	return lo + p.rng.IntN(n)
}

func (p *MockProvider) Analyze(_ context.Context, q Query) (*Analysis, error) {
	title := strings.TrimSpace(q.JobTitle)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = DefaultAnalysisLocation
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	a := &Analysis{
		JobTitle:  title,
		Location:  location,
		TotalJobs: p.intn(100, 1000),
		SalaryRange: SalaryRange{
			Min: p.intn(50000, 50000),
			Max: p.intn(100000, 100000),
		},
		Experience: analysisExperience,
		Growth:     analysisGrowth,
	}
	for _, s := range analysisTechnicalSkills {
		a.Skills.Technical = append(a.Skills.Technical, SkillDemand{Skill: s, Percent: p.intn(60, 40)})
	}
	for _, s := range analysisSoftSkills {
		a.Skills.Soft = append(a.Skills.Soft, SkillDemand{Skill: s, Percent: p.intn(70, 30)})
	}
	return a, nil
}

func (p *MockProvider) Search(_ context.Context, q SearchQuery) (*SearchResult, error) {
	if strings.TrimSpace(q.JobTitle) == "" {
		return nil, ErrEmptyTitle
	}
	q = q.withDefaults()

	postings := generatePostings(q.JobTitle, q.Location, q.Limit)
	var all []string
	for i := range postings {
		postings[i].SkillsRequired = ExtractSkills(postings[i].Description)
		all = append(all, postings[i].SkillsRequired...)
	}

	return &SearchResult{
		SearchQuery:          q.JobTitle + " in " + q.Location,
		JobsFound:            len(postings),
		Jobs:                 postings,
		TopSkills:            CountFrequency(all),
		TotalSkillsMentioned: len(all),
	}, nil
}
