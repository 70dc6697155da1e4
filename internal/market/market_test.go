package market

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *MockProvider {
	return NewMockProvider(rand.NewPCG(1, 2))
}

func TestMockProvider_AnalyzeRanges(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		a, err := p.Analyze(ctx, Query{JobTitle: " Data Scientist "})
		require.NoError(t, err)

		assert.Equal(t, "Data Scientist", a.JobTitle)
		assert.Equal(t, "Remote", a.Location)
		assert.GreaterOrEqual(t, a.TotalJobs, 100)
		assert.LessOrEqual(t, a.TotalJobs, 1099)
		assert.GreaterOrEqual(t, a.SalaryRange.Min, 50000)
		assert.LessOrEqual(t, a.SalaryRange.Min, 99999)
		assert.GreaterOrEqual(t, a.SalaryRange.Max, 100000)
		assert.LessOrEqual(t, a.SalaryRange.Max, 199999)
		require.Len(t, a.Skills.Technical, 10)
		require.Len(t, a.Skills.Soft, 6)
		for _, d := range a.Skills.Technical {
			assert.True(t, d.Percent >= 60 && d.Percent <= 99, "technical demand %d", d.Percent)
		}
		for _, d := range a.Skills.Soft {
			assert.True(t, d.Percent >= 70 && d.Percent <= 99, "soft demand %d", d.Percent)
		}
		assert.Equal(t, "Mid-level (2-5 years)", a.Experience)
		assert.Equal(t, "+12% year over year", a.Growth)
	}
}

func TestMockProvider_AnalyzeKeepsLocation(t *testing.T) {
	a, err := newTestProvider().Analyze(context.Background(), Query{JobTitle: "SRE", Location: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", a.Location)

	_, err = newTestProvider().Analyze(context.Background(), Query{JobTitle: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestMockProvider_Search(t *testing.T) {
	res, err := newTestProvider().Search(context.Background(), SearchQuery{JobTitle: "Software Engineer"})
	require.NoError(t, err)

	assert.Equal(t, "Software Engineer in United States", res.SearchQuery)
	assert.Equal(t, 10, res.JobsFound)
	assert.Len(t, res.Jobs, 10)
	assert.Equal(t, 93, res.TotalSkillsMentioned)
	require.Len(t, res.TopSkills, 20)
	assert.Equal(t, []SkillCount{
		{"docker", 10}, {"python", 7}, {"react", 7}, {"node.js", 7}, {"aws", 7},
		{"postgresql", 6}, {"kubernetes", 6},
	}, res.TopSkills[:7])
	assert.Equal(t, "United States", res.Jobs[0].Location)
	assert.Equal(t, []string{"python", "javascript", "sql", "react", "node.js", "aws", "docker", "git", "agile"},
		res.Jobs[0].SkillsRequired)
}

func TestMockProvider_SearchLimits(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	res, err := p.Search(ctx, SearchQuery{JobTitle: "FPGA developer", Location: "Austin", Limit: 3})
	require.NoError(t, err)
	require.Len(t, res.Jobs, 3)
	assert.Equal(t, "Hardware Engineer", res.Jobs[0].Title)
	assert.Equal(t, "FPGA Engineer", res.Jobs[1].Title)
	assert.Equal(t, "Software Engineer", res.Jobs[2].Title, "short families are padded with software postings")
	assert.Equal(t, "Austin", res.Jobs[2].Location)

	res, err = p.Search(ctx, SearchQuery{JobTitle: "Engineer", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxSearchLimit, res.JobsFound)

	_, err = p.Search(ctx, SearchQuery{})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestFamilyFor(t *testing.T) {
	tests := map[string]family{
		"Machine Learning Engineer": familyData,
		"ML Engineer":               familyData,
		"Senior Data Scientist":     familyData,
		"HTML Developer":            familySoftware,
		"Embedded Firmware Dev":     familyHardware,
		"Backend Developer":         familySoftware,
	}
	for title, want := range tests {
		assert.Equal(t, want, familyFor(title), title)
	}
}

func TestExtractSkills_WordBoundaries(t *testing.T) {
	got := ExtractSkills("Strong JavaScript, C# and Go. PostgreSQL on AWS/GCP; PCB design; scikit-learn")
	assert.Equal(t, []string{"javascript", "c#", "go", "scikit-learn", "postgresql", "aws", "gcp", "pcb design"}, got)
	assert.NotContains(t, got, "java")
	assert.NotContains(t, got, "sql")
	assert.NotContains(t, got, "c")
}

func TestCountFrequency(t *testing.T) {
	got := CountFrequency([]string{"go", "sql", "aws", "sql", "aws", "rust"})
	assert.Equal(t, []SkillCount{{"sql", 2}, {"aws", 2}, {"go", 1}, {"rust", 1}}, got)
	assert.Empty(t, CountFrequency(nil))
}

func TestAnalyzeGap(t *testing.T) {
	marketSkills := []SkillCount{
		{"docker", 6}, {"python", 5}, {"react", 4}, {"sql", 3}, {"git", 2}, {"rust", 1},
	}
	r := AnalyzeGap(map[string][]string{"languages": {"Python", " SQL "}}, marketSkills)

	assert.Equal(t, 6, r.TotalSkillsRequired)
	assert.Equal(t, 2, r.SkillsYouHave)
	assert.Equal(t, 4, r.SkillsMissing)
	assert.Equal(t, 33.3, r.MatchPercentage)
	assert.Equal(t, []string{"python", "sql"}, r.MatchingSkills)
	assert.Equal(t, []SkillGap{
		{"docker", 6, PriorityHigh},
		{"react", 4, PriorityMedium},
		{"git", 2, PriorityLow},
		{"rust", 1, PriorityLow},
	}, r.MissingSkills)
	assert.Equal(t, []FocusArea{
		{"Programming Languages", []string{"rust"}},
		{"Frameworks & Tools", []string{"react", "git"}},
		{"Cloud & DevOps", []string{"docker"}},
	}, r.FocusAreas)

	assert.Equal(t, []string{
		"Get docker certified: Official documentation and hands-on labs",
		"Build projects with react: Create portfolio projects",
		"Study git: Find online courses and practice projects",
		"Study rust: Find online courses and practice projects",
	}, NextSteps(r.MissingSkills))
}

func TestAnalyzeGap_CapsGaps(t *testing.T) {
	var m []SkillCount
	for i, s := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "b1", "b2", "b3", "b4", "b5", "b6"} {
		m = append(m, SkillCount{Skill: s, Count: 20 - i})
	}
	r := AnalyzeGap(nil, m)

	assert.Equal(t, 15, r.SkillsMissing)
	assert.Len(t, r.MissingSkills, 10)
	assert.Equal(t, 0.0, r.MatchPercentage)
	assert.Len(t, NextSteps(r.MissingSkills), 5)

	empty := AnalyzeGap(map[string][]string{"x": {"go"}}, nil)
	assert.Equal(t, 0.0, empty.MatchPercentage)
	assert.Empty(t, empty.FocusAreas)
}

func TestTrending(t *testing.T) {
	r, err := Trending(context.Background(), newTestProvider(), "Data", "")
	require.NoError(t, err)

	assert.Equal(t, "Data Scientist", r.JobTitle)
	assert.Equal(t, 20, r.JobsAnalyzed)
	assert.Equal(t, "United States", r.Location)
	require.Len(t, r.TrendingSkills, 15)
	assert.Equal(t, SkillCount{"docker", 19}, r.TrendingSkills[0])
	assert.Equal(t, []string{"docker", "python", "kubernetes", "react", "node.js"}, r.Insights.MostDemanded)
	assert.Equal(t, []string{"kubernetes"}, r.Insights.EmergingTrends)
	assert.Equal(t, []FocusArea{
		{"Programming", []string{"python", "javascript", "typescript"}},
		{"Cloud/DevOps", []string{"docker", "kubernetes", "aws", "azure"}},
		{"Frameworks", []string{"react", "angular"}},
		{"Databases", []string{"postgresql", "mongodb"}},
	}, r.Insights.SkillCategories)

	_, err = Trending(context.Background(), newTestProvider(), "marketing", "")
	assert.ErrorIs(t, err, ErrUnsupportedField)
}

func TestQuick(t *testing.T) {
	r, err := Quick(context.Background(), newTestProvider(), "Software Engineer", "Remote")
	require.NoError(t, err)

	assert.Equal(t, "Remote", r.Location)
	assert.Equal(t, 5, r.Summary.JobsFound)
	assert.Equal(t, 9.6, r.Summary.AvgSkillsPerJob)
	assert.Equal(t, []SkillCount{{"docker", 5}, {"react", 4}, {"node.js", 4}, {"aws", 4}, {"python", 3}}, r.Summary.TopSkills)
	assert.Equal(t, PriorityMedium, r.Insights.SkillDemandLevel)
	assert.Equal(t, PriorityHigh, r.Insights.CompetitionLevel)
}
