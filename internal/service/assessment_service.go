package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"skillpath_backend/internal/session"
	"skillpath_backend/internal/simulate"
	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/tracing"
)

type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, userID uint, result skillgap.AssessmentResult) error
}

const completeSaveAttempts = 3

var completeSaveBackoff = 50 * time.Millisecond

// AssessmentService drives the assessment wizard and the stateless
// evaluation endpoint.
type AssessmentService struct {
	Store     *WizardStore
	Simulator *simulate.Simulator
	History   AssessmentRecorder
	Required  skillgap.RequiredSkills
	now       func() time.Time
}

func NewAssessmentService(store *WizardStore, sim *simulate.Simulator, history AssessmentRecorder) *AssessmentService {
	return &AssessmentService{
		Store:     store,
		Simulator: sim,
		History:   history,
		Required:  skillgap.DefaultRequiredSkills(),
		now:       time.Now,
	}
}

func (s *AssessmentService) Create(ctx context.Context, sess session.Session) (*skillgap.Wizard, error) {
	w := skillgap.NewWizard(uuid.NewString(), sess.OwnerID(), s.now())
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Get returns the wizard when it belongs to the session. Wizards of other
// users are reported as missing.
func (s *AssessmentService) Get(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	w, err := s.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != sess.OwnerID() {
		return nil, util.ErrWizardNotFound
	}
	return w, nil
}

// getLocked loads a wizard for a caller holding its lock. A run keeps the
// lock until its result is stored, so a wizard still analyzing here was
// left behind by a run that could not store it.
func (s *AssessmentService) getLocked(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	w, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if w.State == skillgap.StateAnalyzing {
		logger.Log.Warn("Recovering stale assessment run", zap.String("wizard_id", id))
		if err := w.AbortRun(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// update applies fn to the stored wizard under its lock.
func (s *AssessmentService) update(ctx context.Context, sess session.Session, id string, fn func(*skillgap.Wizard) error) (*skillgap.Wizard, error) {
	unlock, err := s.Store.Lock(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	defer unlock()

	w, err := s.getLocked(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	w.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *AssessmentService) ToggleSkill(ctx context.Context, sess session.Session, id string, c skillgap.Category, skill string) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, func(w *skillgap.Wizard) error {
		_, err := w.ToggleSkill(c, skill)
		return err
	})
}

func (s *AssessmentService) SetExperience(ctx context.Context, sess session.Session, id string, e skillgap.Experience) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, func(w *skillgap.Wizard) error {
		return w.SetExperience(e)
	})
}

func (s *AssessmentService) SetTarget(ctx context.Context, sess session.Session, id string, t skillgap.TargetJob) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, func(w *skillgap.Wizard) error {
		return w.SetTarget(t)
	})
}

func (s *AssessmentService) Next(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, (*skillgap.Wizard).Next)
}

func (s *AssessmentService) Previous(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, (*skillgap.Wizard).Previous)
}

func (s *AssessmentService) Reset(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	return s.update(ctx, sess, id, (*skillgap.Wizard).Reset)
}

// Run scores the wizard's profile after the simulated analysis delay. The
// wizard is stored in the analyzing state while the delay runs so that
// concurrent reads observe it. Once started the run always completes, even
// if the caller goes away.
func (s *AssessmentService) Run(ctx context.Context, sess session.Session, id string) (*skillgap.Wizard, error) {
	ctx, span := tracing.StartSpan(ctx, "assessment.run", attribute.String("wizard.id", id))
	defer span.End()

	delay := s.Simulator.Delays().For(simulate.Assessment)
	unlock, err := s.Store.Lock(ctx, id, delay)
	if err != nil {
		return nil, tracing.RecordError(span, err)
	}
	defer unlock()

	w, err := s.getLocked(ctx, sess, id)
	if err != nil {
		return nil, tracing.RecordError(span, err)
	}
	if err := w.BeginRun(); err != nil {
		return nil, err
	}
	w.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, tracing.RecordError(span, err)
	}
	logger.Log.Info("Assessment started", zap.String("wizard_id", id), zap.Duration("delay", delay))

	profile, target := w.Profile, w.Target
	result, _ := s.assess(ctx, profile, target).Wait()

	detached := context.WithoutCancel(ctx)
	done := *w
	if err := done.Finish(result); err != nil {
		return nil, tracing.RecordError(span, err)
	}
	done.UpdatedAt = s.now()
	if err := s.saveWithRetry(detached, &done); err != nil {
		s.rollback(detached, w)
		return nil, tracing.RecordError(span, err)
	}
	w = &done

	s.record(detached, sess, result)
	logger.Log.Info("Assessment completed",
		zap.String("wizard_id", id),
		zap.Int("overall", result.Scores.Overall),
		zap.String("readiness", string(result.Recommendations.Readiness)),
	)
	return w, nil
}

// saveWithRetry stores a finished wizard, backing off between attempts.
func (s *AssessmentService) saveWithRetry(ctx context.Context, w *skillgap.Wizard) error {
	var err error
	delay := completeSaveBackoff
	for i := 0; i < completeSaveAttempts; i++ {
		if err = s.Store.Save(ctx, w); err == nil {
			return nil
		}
		if i < completeSaveAttempts-1 {
			logger.Log.Warn("Failed to store assessment result, retrying...",
				zap.String("wizard_id", w.ID),
				zap.Int("attempt", i+1),
				zap.Duration("nextRetryIn", delay),
				zap.Error(err),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("store assessment result after %d attempts: %w", completeSaveAttempts, err)
}

// rollback puts an analyzing wizard back on the review step. If that fails
// too, the next locked access recovers it.
func (s *AssessmentService) rollback(ctx context.Context, w *skillgap.Wizard) {
	if err := w.AbortRun(); err != nil {
		return
	}
	w.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, w); err != nil {
		logger.Log.Error("Failed to roll back assessment run", zap.String("wizard_id", w.ID), zap.Error(err))
	}
}

func (s *AssessmentService) assess(ctx context.Context, profile skillgap.Profile, target skillgap.TargetJob) *simulate.Task[skillgap.AssessmentResult] {
	start := time.Now()
	return simulate.Start(ctx, s.Simulator, simulate.Assessment, func(context.Context) (skillgap.AssessmentResult, error) {
		monitoring.SimulatedWait.WithLabelValues(string(simulate.Assessment)).Observe(time.Since(start).Seconds())
		return skillgap.Assess(profile, target, s.Required, s.now()), nil
	})
}

func (s *AssessmentService) record(ctx context.Context, sess session.Session, result skillgap.AssessmentResult) {
	monitoring.AssessmentRuns.WithLabelValues(string(result.Recommendations.Readiness)).Inc()
	if !sess.LoggedIn || s.History == nil {
		return
	}
	if err := s.History.RecordAssessment(ctx, sess.UserID, result); err != nil {
		logger.Log.Error("Failed to record assessment history", zap.Uint("user_id", sess.UserID), zap.Error(err))
	}
}

// EvaluateRequest is the body of a one-shot assessment.
type EvaluateRequest struct {
	Skills     skillgap.SkillSet   `json:"skills"`
	Experience skillgap.Experience `json:"experience"`
	TargetJob  skillgap.TargetJob  `json:"targetJob"`
}

// Evaluate validates body against the evaluation schema and assesses it
// without a wizard.
func (s *AssessmentService) Evaluate(ctx context.Context, sess session.Session, body []byte) (*skillgap.AssessmentResult, error) {
	if err := validateEvaluate(body); err != nil {
		return nil, err
	}

	var req EvaluateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ValidationError{Details: []string{err.Error()}}
	}

	profile := skillgap.NewProfile()
	profile.Skills.Technical = append(profile.Skills.Technical, req.Skills.Technical...)
	profile.Skills.Soft = append(profile.Skills.Soft, req.Skills.Soft...)
	profile.Skills.Certifications = append(profile.Skills.Certifications, req.Skills.Certifications...)
	profile.Experience = req.Experience

	result, _ := s.assess(ctx, profile, req.TargetJob).Wait()
	s.record(context.WithoutCancel(ctx), sess, result)
	return &result, nil
}
