package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/simulate"
	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
)

func newAssessmentService(t *testing.T) (*AssessmentService, *memHistory) {
	t.Helper()
	_, rdb := newRedis(t)
	history := &memHistory{}
	svc := NewAssessmentService(NewWizardStore(rdb, time.Hour), instantSimulator(), NewHistoryService(history, history))
	return svc, history
}

// fillWizard walks a new wizard to the review step.
func fillWizard(t *testing.T, svc *AssessmentService, sess session.Session) string {
	t.Helper()
	ctx := context.Background()

	w, err := svc.Create(ctx, sess)
	require.NoError(t, err)

	for _, s := range []string{"JavaScript", "React", "Node.js", "SQL"} {
		_, err = svc.ToggleSkill(ctx, sess, w.ID, skillgap.Technical, s)
		require.NoError(t, err)
	}
	_, err = svc.Next(ctx, sess, w.ID)
	require.NoError(t, err)
	for _, s := range []string{"Communication", "Problem Solving", "Teamwork", "Leadership"} {
		_, err = svc.ToggleSkill(ctx, sess, w.ID, skillgap.Soft, s)
		require.NoError(t, err)
	}
	_, err = svc.SetExperience(ctx, sess, w.ID, skillgap.Experience{Years: 3, Level: skillgap.LevelMid})
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess, w.ID)
	require.NoError(t, err)
	_, err = svc.SetTarget(ctx, sess, w.ID, skillgap.TargetJob{Title: "Frontend Engineer", Company: "Acme", Description: "Build UIs"})
	require.NoError(t, err)
	w, err = svc.Next(ctx, sess, w.ID)
	require.NoError(t, err)
	require.Equal(t, skillgap.StateReview, w.State)
	return w.ID
}

func TestAssessmentService_RunForGuest(t *testing.T) {
	svc, history := newAssessmentService(t)
	ctx := context.Background()
	guest := session.Guest()

	id := fillWizard(t, svc, guest)
	w, err := svc.Run(ctx, guest, id)
	require.NoError(t, err)

	assert.Equal(t, skillgap.StateComplete, w.State)
	require.NotNil(t, w.Result)
	assert.Equal(t, 50, w.Result.Scores.Technical)
	assert.Equal(t, 80, w.Result.Scores.Soft)
	assert.Equal(t, 65, w.Result.Scores.Overall)
	assert.Equal(t, skillgap.NearlyReady, w.Result.Recommendations.Readiness)

	stored, err := svc.Get(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateComplete, stored.State, "result is persisted")

	assert.Empty(t, history.analyses, "guests have no history")
}

func TestAssessmentService_RunRecordsHistoryForUsers(t *testing.T) {
	svc, history := newAssessmentService(t)
	user := session.ForUser(7, "Jane Doe", "jane@example.com")

	id := fillWizard(t, svc, user)
	_, err := svc.Run(context.Background(), user, id)
	require.NoError(t, err)

	require.Len(t, history.analyses, 1)
	a := history.analyses[0]
	assert.Equal(t, uint(7), a.UserID)
	assert.Equal(t, model.SourceAssessment, a.Source)
	assert.Equal(t, "Frontend Engineer", a.JobTitle)
	assert.Equal(t, 65.0, a.MatchPercentage)
	assert.Equal(t, string(skillgap.NearlyReady), a.Readiness)
	assert.Contains(t, a.MissingSkills, "TypeScript")
	assert.Contains(t, a.MissingSkills, "Time Management")

	require.Len(t, history.jobs, 1)
	assert.Equal(t, "Acme", history.jobs[0].Company)
}

func TestAssessmentService_Transitions(t *testing.T) {
	svc, _ := newAssessmentService(t)
	ctx := context.Background()
	guest := session.Guest()

	w, err := svc.Create(ctx, guest)
	require.NoError(t, err)

	_, err = svc.Run(ctx, guest, w.ID)
	assert.ErrorIs(t, err, skillgap.ErrRunNotAllowed)

	_, err = svc.Reset(ctx, guest, w.ID)
	assert.ErrorIs(t, err, skillgap.ErrNotComplete)

	w, err = svc.Previous(ctx, guest, w.ID)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateTechnical, w.State, "previous clamps at the first step")

	_, err = svc.ToggleSkill(ctx, guest, w.ID, skillgap.Technical, "COBOL")
	assert.ErrorIs(t, err, skillgap.ErrUnknownSkill)

	id := fillWizard(t, svc, guest)
	_, err = svc.Run(ctx, guest, id)
	require.NoError(t, err)

	_, err = svc.ToggleSkill(ctx, guest, id, skillgap.Technical, "Git")
	assert.ErrorIs(t, err, skillgap.ErrWizardLocked)

	w, err = svc.Reset(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateTechnical, w.State)
	assert.Nil(t, w.Result)
	assert.Equal(t, "Frontend Engineer", w.Target.Title, "reset keeps the collected answers")
}

func TestAssessmentService_Ownership(t *testing.T) {
	svc, _ := newAssessmentService(t)
	ctx := context.Background()
	owner := session.ForUser(1, "Ann", "ann@example.com")

	w, err := svc.Create(ctx, owner)
	require.NoError(t, err)

	_, err = svc.Get(ctx, session.ForUser(2, "Bob", "bob@example.com"), w.ID)
	assert.ErrorIs(t, err, util.ErrWizardNotFound)
	_, err = svc.Next(ctx, session.Guest(), w.ID)
	assert.ErrorIs(t, err, util.ErrWizardNotFound)

	_, err = svc.Get(ctx, owner, "missing")
	assert.ErrorIs(t, err, util.ErrWizardNotFound)
}

func TestAssessmentService_ConcurrentRunIsRejected(t *testing.T) {
	svc, _ := newAssessmentService(t)
	ctx := context.Background()
	guest := session.Guest()
	id := fillWizard(t, svc, guest)

	unlock, err := svc.Store.Lock(ctx, id, time.Second)
	require.NoError(t, err)

	_, err = svc.Run(ctx, guest, id)
	assert.ErrorIs(t, err, util.ErrWizardBusy)

	unlock()
	_, err = svc.Run(ctx, guest, id)
	assert.NoError(t, err)
}

// gateClock holds simulated delays until release is closed.
type gateClock struct {
	waiting chan struct{}
	release chan time.Time
}

func (c *gateClock) After(time.Duration) <-chan time.Time {
	c.waiting <- struct{}{}
	return c.release
}

func TestAssessmentService_RunRecoversFromLostResult(t *testing.T) {
	backoff := completeSaveBackoff
	completeSaveBackoff = time.Millisecond
	t.Cleanup(func() { completeSaveBackoff = backoff })

	mr, rdb := newRedis(t)
	clock := &gateClock{waiting: make(chan struct{}, 4), release: make(chan time.Time)}
	sim := simulate.NewWithClock(simulate.Delays{Assessment: time.Second}, clock)
	svc := NewAssessmentService(NewWizardStore(rdb, time.Hour), sim, nil)
	ctx := context.Background()
	guest := session.Guest()
	id := fillWizard(t, svc, guest)

	errc := make(chan error, 1)
	go func() {
		_, err := svc.Run(ctx, guest, id)
		errc <- err
	}()

	<-clock.waiting
	w, err := svc.Get(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateAnalyzing, w.State)

	mr.SetError("transient redis failure")
	close(clock.release)
	assert.ErrorContains(t, <-errc, "transient redis failure")
	mr.SetError("")

	_, err = svc.Run(ctx, guest, id)
	assert.ErrorIs(t, err, util.ErrWizardBusy, "the lock outlives a failed release")

	mr.FastForward(time.Second + wizardLockGrace + time.Second)

	w, err = svc.Previous(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateTargetJob, w.State, "a stale run goes back to review first")

	_, err = svc.Next(ctx, guest, id)
	require.NoError(t, err)
	w, err = svc.Run(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateComplete, w.State)
	require.NotNil(t, w.Result)
}

func TestWizardStore_Expiry(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewWizardStore(rdb, time.Minute)
	ctx := context.Background()

	w := skillgap.NewWizard("w1", 0, time.Now())
	require.NoError(t, store.Save(ctx, w))

	loaded, err := store.Load(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, skillgap.StateTechnical, loaded.State)

	store.SetTTL(time.Hour)
	assert.Equal(t, time.Hour, store.TTL())

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, "w1")
	assert.ErrorIs(t, err, util.ErrWizardNotFound)
}

func TestAssessmentService_Evaluate(t *testing.T) {
	svc, history := newAssessmentService(t)
	ctx := context.Background()

	body := []byte(`{
		"skills": {"technical": ["JavaScript", "React", "Node.js", "SQL", "AWS", "Docker", "TypeScript", "GraphQL"], "soft": ["Communication"]},
		"experience": {"years": 6, "level": "Senior"},
		"targetJob": {"title": "Staff Engineer", "description": "Lead the platform"}
	}`)
	res, err := svc.Evaluate(ctx, session.ForUser(3, "", "c@d.io"), body)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Scores.Technical)
	assert.Equal(t, 20, res.Scores.Soft)
	assert.Equal(t, 60, res.Scores.Overall)
	assert.Len(t, history.analyses, 1)
}

func TestAssessmentService_EvaluateValidation(t *testing.T) {
	svc, _ := newAssessmentService(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing target", `{"skills": {}, "experience": {"years": 1, "level": "Junior"}}`},
		{"negative years", `{"skills": {}, "experience": {"years": -1, "level": "Junior"}, "targetJob": {"title": "x", "description": "y"}}`},
		{"years beyond range", `{"skills": {}, "experience": {"years": 1e30, "level": "Junior"}, "targetJob": {"title": "x", "description": "y"}}`},
		{"years above maximum", `{"skills": {}, "experience": {"years": 101, "level": "Junior"}, "targetJob": {"title": "x", "description": "y"}}`},
		{"unknown level", `{"skills": {}, "experience": {"years": 1, "level": "Wizard"}, "targetJob": {"title": "x", "description": "y"}}`},
		{"blank title", `{"skills": {}, "experience": {"years": 1, "level": "Junior"}, "targetJob": {"title": "  ", "description": "y"}}`},
		{"unknown skill bucket", `{"skills": {"hobbies": ["chess"]}, "experience": {"years": 1, "level": "Junior"}, "targetJob": {"title": "x", "description": "y"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Evaluate(context.Background(), session.Guest(), []byte(tt.body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Details)
		})
	}
}
