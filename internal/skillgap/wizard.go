package skillgap

import (
	"errors"
	"time"
)

type State string

const (
	StateTechnical          State = "technical_skills"
	StateSoftSkillsAndYears State = "soft_skills_experience"
	StateTargetJob          State = "target_job"
	StateReview             State = "review"
	StateAnalyzing          State = "analyzing"
	StateComplete           State = "complete"
)

var steps = []State{StateTechnical, StateSoftSkillsAndYears, StateTargetJob, StateReview}

var (
	ErrWizardLocked  = errors.New("assessment is analyzing or complete")
	ErrRunNotAllowed = errors.New("assessment can only run from the review step with a job title and description")
	ErrNotAnalyzing  = errors.New("assessment is not analyzing")
	ErrNotComplete   = errors.New("assessment is not complete")
)

// Wizard collects a profile and target job over four steps and then runs the assessment.
type Wizard struct {
	ID        string            `json:"id"`
	OwnerID   uint              `json:"ownerId,omitempty"`
	State     State             `json:"state"`
	Profile   Profile           `json:"profile"`
	Target    TargetJob         `json:"targetJob"`
	Result    *AssessmentResult `json:"result,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func NewWizard(id string, ownerID uint, now time.Time) *Wizard {
	return &Wizard{
		ID:        id,
		OwnerID:   ownerID,
		State:     StateTechnical,
		Profile:   NewProfile(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Step returns the 1-based wizard step, or 0 outside the collection steps.
func (w *Wizard) Step() int {
	for i, s := range steps {
		if s == w.State {
			return i + 1
		}
	}
	return 0
}

func (w *Wizard) editable() bool {
	return w.Step() > 0
}

func (w *Wizard) Next() error {
	if !w.editable() {
		return ErrWizardLocked
	}
	w.State = steps[min(w.Step(), len(steps)-1)]
	return nil
}

func (w *Wizard) Previous() error {
	if !w.editable() {
		return ErrWizardLocked
	}
	w.State = steps[max(w.Step()-2, 0)]
	return nil
}

func (w *Wizard) ToggleSkill(c Category, skill string) (bool, error) {
	if !w.editable() {
		return false, ErrWizardLocked
	}
	return w.Profile.Skills.Toggle(c, skill)
}

func (w *Wizard) SetExperience(e Experience) error {
	if !w.editable() {
		return ErrWizardLocked
	}
	if err := e.Validate(); err != nil {
		return err
	}
	w.Profile.Experience = e
	return nil
}

func (w *Wizard) SetTarget(t TargetJob) error {
	if !w.editable() {
		return ErrWizardLocked
	}
	w.Target = t
	return nil
}

// CanRun reports whether the run action is enabled.
func (w *Wizard) CanRun() bool {
	return w.State == StateReview && w.Target.Complete()
}

// BeginRun moves the wizard into the transient analyzing state.
func (w *Wizard) BeginRun() error {
	if !w.CanRun() {
		return ErrRunNotAllowed
	}
	w.State = StateAnalyzing
	return nil
}

// Finish stores the result of an analysis started by BeginRun.
func (w *Wizard) Finish(result AssessmentResult) error {
	if w.State != StateAnalyzing {
		return ErrNotAnalyzing
	}
	w.Result = &result
	w.State = StateComplete
	return nil
}

// AbortRun returns a wizard whose analysis result was lost to the review
// step so that it can run again.
func (w *Wizard) AbortRun() error {
	if w.State != StateAnalyzing {
		return ErrNotAnalyzing
	}
	w.Result = nil
	w.State = StateReview
	return nil
}

// Reset discards the result and returns to the first step. The collected
// profile and target job are kept.
func (w *Wizard) Reset() error {
	if w.State != StateComplete {
		return ErrNotComplete
	}
	w.Result = nil
	w.State = StateTechnical
	return nil
}
