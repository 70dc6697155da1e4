package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/session"
)

func newMarketService(history MarketGapRecorder) *MarketService {
	return NewMarketService(market.NewMockProvider(rand.NewPCG(1, 2)), instantSimulator(), history)
}

func TestMarketService_Analyze(t *testing.T) {
	svc := newMarketService(nil)

	a, err := svc.Analyze(context.Background(), market.Query{JobTitle: "  Data Scientist ", Location: ""})
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", a.JobTitle)
	assert.Equal(t, market.DefaultAnalysisLocation, a.Location)
	assert.GreaterOrEqual(t, a.TotalJobs, 100)
	assert.LessOrEqual(t, a.TotalJobs, 1099)

	_, err = svc.Analyze(context.Background(), market.Query{JobTitle: "   "})
	assert.ErrorIs(t, err, market.ErrEmptyTitle)
}

func TestMarketService_SkillsGap(t *testing.T) {
	history := &memHistory{}
	svc := newMarketService(NewHistoryService(history, history))
	req := GapRequest{
		JobTitle:   "Software Engineer",
		UserSkills: map[string][]string{"programming_languages": {"Python", "JavaScript"}},
	}

	guest, err := svc.SkillsGap(context.Background(), session.Guest(), req)
	require.NoError(t, err)
	assert.False(t, guest.Saved)
	assert.Empty(t, history.analyses)

	r := guest.Analysis
	assert.Positive(t, guest.JobSearch.JobsAnalyzed)
	assert.Equal(t, r.TotalSkillsRequired, r.SkillsYouHave+r.SkillsMissing)
	assert.LessOrEqual(t, len(r.MissingSkills), 10)
	assert.LessOrEqual(t, len(guest.Recommendations.NextSteps), 5)
	assert.Equal(t, r.FocusAreas, guest.Recommendations.PriorityFocus)

	user, err := svc.SkillsGap(context.Background(), session.ForUser(4, "Dee", "dee@example.com"), req)
	require.NoError(t, err)
	assert.True(t, user.Saved)
	require.Len(t, history.analyses, 1)
	assert.Equal(t, model.SourceMarket, history.analyses[0].Source)
	assert.Equal(t, "Software Engineer", history.analyses[0].JobTitle)
	assert.Equal(t, user.Analysis.MatchPercentage, history.analyses[0].MatchPercentage)
}

func TestMarketService_SkillsGapHistoryFailureIsNotFatal(t *testing.T) {
	history := &memHistory{err: errors.New("db down")}
	svc := newMarketService(NewHistoryService(history, history))

	res, err := svc.SkillsGap(context.Background(), session.ForUser(4, "", "d@e.io"), GapRequest{
		JobTitle:   "Data Analyst",
		UserSkills: map[string][]string{"any": {"sql"}},
	})
	require.NoError(t, err)
	assert.False(t, res.Saved)
}

func TestMarketService_TrendingAndQuick(t *testing.T) {
	svc := newMarketService(nil)
	ctx := context.Background()

	tr, err := svc.Trending(ctx, "backend", "")
	require.NoError(t, err)
	assert.NotEmpty(t, tr.TrendingSkills)

	_, err = svc.Trending(ctx, "astrology", "")
	assert.ErrorIs(t, err, market.ErrUnsupportedField)

	q, err := svc.Quick(ctx, "Hardware Engineer", "")
	require.NoError(t, err)
	assert.Equal(t, "Hardware Engineer", q.JobTitle)

	_, err = svc.Quick(ctx, " ", "")
	assert.ErrorIs(t, err, market.ErrEmptyTitle)
}
