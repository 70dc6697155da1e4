package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
)

const (
	recentTargetJobs = 3
	recentScans      = 5
)

type DashboardUserReader interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type DashboardTargetJobs interface {
	Recent(ctx context.Context, userID uint, limit int) ([]model.TargetJobRecord, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type DashboardScans interface {
	RecentByUser(ctx context.Context, userID uint, limit int) ([]model.ResumeScan, error)
}

type DashboardService struct {
	Users      DashboardUserReader
	Analyses   AnalysisStore
	TargetJobs DashboardTargetJobs
	Scans      DashboardScans
}

func NewDashboardService(users DashboardUserReader, analyses AnalysisStore, targetJobs DashboardTargetJobs, scans DashboardScans) *DashboardService {
	return &DashboardService{
		Users:      users,
		Analyses:   analyses,
		TargetJobs: targetJobs,
		Scans:      scans,
	}
}

type DashboardUser struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	MemberSince time.Time `json:"member_since"`
}

type DashboardAnalytics struct {
	TotalSkillAnalyses    int      `json:"total_skill_analyses"`
	LatestMatchPercentage float64  `json:"latest_match_percentage"`
	ImprovementTrend      *float64 `json:"improvement_trend"`
	TargetJobsCount       int64    `json:"target_jobs_count"`
}

type RecentActivity struct {
	LatestAnalysis *model.SkillGapAnalysis `json:"latest_analysis"`
	TargetJobs     []model.TargetJobRecord `json:"target_jobs"`
	ResumeScans    []model.ResumeScan      `json:"resume_scans"`
}

type Dashboard struct {
	User           DashboardUser      `json:"user"`
	Analytics      DashboardAnalytics `json:"analytics"`
	RecentActivity RecentActivity     `json:"recent_activity"`
}

// GetUserDashboard loads the user's history with independent reads in
// parallel and derives the summary figures from it.
func (s *DashboardService) GetUserDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	var (
		user     *model.User
		history  []model.SkillGapAnalysis
		jobs     []model.TargetJobRecord
		jobCount int64
		scans    []model.ResumeScan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.Users.FindByID(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		user = u
		return err
	})
	g.Go(func() (err error) {
		history, err = s.Analyses.ListByUser(gctx, userID, model.MaxHistory)
		return err
	})
	g.Go(func() (err error) {
		jobs, err = s.TargetJobs.Recent(gctx, userID, recentTargetJobs)
		return err
	})
	g.Go(func() (err error) {
		jobCount, err = s.TargetJobs.CountByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		scans, err = s.Scans.RecentByUser(gctx, userID, recentScans)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}
	d := &Dashboard{
		User: DashboardUser{Name: name, Email: user.Email, MemberSince: user.CreatedAt},
		Analytics: DashboardAnalytics{
			TotalSkillAnalyses: len(history),
			TargetJobsCount:    jobCount,
		},
		RecentActivity: RecentActivity{
			TargetJobs:  nonNilSlice(jobs),
			ResumeScans: nonNilSlice(scans),
		},
	}

	// history is newest first
	if len(history) > 0 {
		latest := history[0]
		d.Analytics.LatestMatchPercentage = latest.MatchPercentage
		d.RecentActivity.LatestAnalysis = &latest
	}
	if len(history) >= 2 {
		trend := history[0].MatchPercentage - history[len(history)-1].MatchPercentage
		d.Analytics.ImprovementTrend = &trend
	}
	return d, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
