package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skillpath_backend/internal/market"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/skillgap"
)

type AnalysisStore interface {
	Append(ctx context.Context, a *model.SkillGapAnalysis, keep int) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.SkillGapAnalysis, error)
}

type TargetJobStore interface {
	Create(ctx context.Context, job *model.TargetJobRecord) error
	Recent(ctx context.Context, userID uint, limit int) ([]model.TargetJobRecord, error)
}

// HistoryService records the skills-gap analyses and target jobs of
// logged in users.
type HistoryService struct {
	Analyses   AnalysisStore
	TargetJobs TargetJobStore
}

func NewHistoryService(analyses AnalysisStore, targetJobs TargetJobStore) *HistoryService {
	return &HistoryService{Analyses: analyses, TargetJobs: targetJobs}
}

func (s *HistoryService) RecordAssessment(ctx context.Context, userID uint, result skillgap.AssessmentResult) error {
	if err := s.TargetJobs.Create(ctx, &model.TargetJobRecord{
		UserID:      userID,
		Title:       strings.TrimSpace(result.TargetJob.Title),
		Company:     strings.TrimSpace(result.TargetJob.Company),
		Description: result.TargetJob.Description,
	}); err != nil {
		return fmt.Errorf("save target job: %w", err)
	}

	missing := append(append(model.StringList{}, result.SkillsAnalysis.Missing.Technical...), result.SkillsAnalysis.Missing.Soft...)
	return s.append(ctx, &model.SkillGapAnalysis{
		UserID:          userID,
		Source:          model.SourceAssessment,
		JobTitle:        strings.TrimSpace(result.TargetJob.Title),
		Company:         strings.TrimSpace(result.TargetJob.Company),
		MatchPercentage: float64(result.Scores.Overall),
		Readiness:       string(result.Recommendations.Readiness),
		MissingSkills:   missing,
	}, result)
}

func (s *HistoryService) RecordMarketGap(ctx context.Context, userID uint, jobTitle string, report market.GapReport) error {
	missing := make(model.StringList, 0, len(report.MissingSkills))
	for _, g := range report.MissingSkills {
		missing = append(missing, g.Skill)
	}
	return s.append(ctx, &model.SkillGapAnalysis{
		UserID:          userID,
		Source:          model.SourceMarket,
		JobTitle:        strings.TrimSpace(jobTitle),
		MatchPercentage: report.MatchPercentage,
		MissingSkills:   missing,
	}, report)
}

// SaveInput is a client supplied analysis, as saved from the results view.
type SaveInput struct {
	Source          model.AnalysisSource `json:"source" binding:"omitempty,oneof=assessment market"`
	JobTitle        string               `json:"job_title" binding:"required"`
	Company         string               `json:"company"`
	MatchPercentage float64              `json:"match_percentage" binding:"gte=0,lte=100"`
	Readiness       string               `json:"readiness"`
	MissingSkills   []string             `json:"missing_skills"`
	Payload         json.RawMessage      `json:"payload"`
}

func (s *HistoryService) Save(ctx context.Context, userID uint, in SaveInput) (*model.SkillGapAnalysis, error) {
	source := in.Source
	if source == "" {
		source = model.SourceMarket
	}
	a := &model.SkillGapAnalysis{
		UserID:          userID,
		Source:          source,
		JobTitle:        strings.TrimSpace(in.JobTitle),
		Company:         strings.TrimSpace(in.Company),
		MatchPercentage: in.MatchPercentage,
		Readiness:       in.Readiness,
		MissingSkills:   model.StringList(in.MissingSkills),
		Payload:         model.RawJSON(in.Payload),
	}
	if err := s.Analyses.Append(ctx, a, model.MaxHistory); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return a, nil
}

func (s *HistoryService) append(ctx context.Context, a *model.SkillGapAnalysis, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode analysis payload: %w", err)
	}
	a.Payload = data
	if err := s.Analyses.Append(ctx, a, model.MaxHistory); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// List returns the stored analyses, newest first.
func (s *HistoryService) List(ctx context.Context, userID uint) ([]model.SkillGapAnalysis, error) {
	return s.Analyses.ListByUser(ctx, userID, model.MaxHistory)
}
