package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/simulate"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/tracing"
)

const gapSearchLimit = 15

type MarketGapRecorder interface {
	RecordMarketGap(ctx context.Context, userID uint, jobTitle string, report market.GapReport) error
}

type MarketService struct {
	Provider  market.Provider
	Simulator *simulate.Simulator
	History   MarketGapRecorder
}

func NewMarketService(p market.Provider, sim *simulate.Simulator, history MarketGapRecorder) *MarketService {
	return &MarketService{Provider: p, Simulator: sim, History: history}
}

// Analyze returns the market picture for a role after the simulated job
// search delay.
func (s *MarketService) Analyze(ctx context.Context, q market.Query) (*market.Analysis, error) {
	q.JobTitle = strings.TrimSpace(q.JobTitle)
	q.Location = strings.TrimSpace(q.Location)
	if q.JobTitle == "" {
		return nil, market.ErrEmptyTitle
	}

	ctx, span := tracing.StartSpan(ctx, "market.analyze", attribute.String("job.title", q.JobTitle))
	defer span.End()

	start := time.Now()
	a, err := simulate.Start(ctx, s.Simulator, simulate.JobSearch, func(ctx context.Context) (*market.Analysis, error) {
		monitoring.SimulatedWait.WithLabelValues(string(simulate.JobSearch)).Observe(time.Since(start).Seconds())
		return s.Provider.Analyze(ctx, q)
	}).Wait()
	return a, tracing.RecordError(span, err)
}

func (s *MarketService) Search(ctx context.Context, q market.SearchQuery) (*market.SearchResult, error) {
	q.JobTitle = strings.TrimSpace(q.JobTitle)
	if q.JobTitle == "" {
		return nil, market.ErrEmptyTitle
	}
	return s.Provider.Search(ctx, q)
}

type GapRequest struct {
	JobTitle   string              `json:"job_title" binding:"required"`
	Location   string              `json:"location"`
	UserSkills map[string][]string `json:"user_skills" binding:"required"`
}

type GapJobSearch struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	JobsAnalyzed int    `json:"jobs_analyzed"`
}

type GapRecommendations struct {
	PriorityFocus []market.FocusArea `json:"priority_focus"`
	NextSteps     []string           `json:"next_steps"`
}

type GapResult struct {
	JobSearch       GapJobSearch       `json:"job_search"`
	Analysis        market.GapReport   `json:"analysis"`
	Recommendations GapRecommendations `json:"recommendations"`
	Saved           bool               `json:"saved"`
}

// SkillsGap compares the user's skills with what postings for the role ask
// for. Logged in users get the report appended to their history.
func (s *MarketService) SkillsGap(ctx context.Context, sess session.Session, req GapRequest) (*GapResult, error) {
	res, err := s.Search(ctx, market.SearchQuery{JobTitle: req.JobTitle, Location: req.Location, Limit: gapSearchLimit})
	if err != nil {
		return nil, err
	}

	report := market.AnalyzeGap(req.UserSkills, res.TopSkills)
	out := &GapResult{
		JobSearch: GapJobSearch{
			Title:        strings.TrimSpace(req.JobTitle),
			Location:     req.Location,
			JobsAnalyzed: res.JobsFound,
		},
		Analysis: report,
		Recommendations: GapRecommendations{
			PriorityFocus: report.FocusAreas,
			NextSteps:     market.NextSteps(report.MissingSkills),
		},
	}

	if sess.LoggedIn && s.History != nil {
		if err := s.History.RecordMarketGap(ctx, sess.UserID, out.JobSearch.Title, report); err != nil {
			logger.Log.Error("Failed to record skills gap history", zap.Uint("user_id", sess.UserID), zap.Error(err))
		} else {
			out.Saved = true
		}
	}
	return out, nil
}

func (s *MarketService) Trending(ctx context.Context, field, location string) (*market.TrendingReport, error) {
	return market.Trending(ctx, s.Provider, field, location)
}

func (s *MarketService) Quick(ctx context.Context, title, location string) (*market.QuickReport, error) {
	if strings.TrimSpace(title) == "" {
		return nil, market.ErrEmptyTitle
	}
	return market.Quick(ctx, s.Provider, strings.TrimSpace(title), location)
}
