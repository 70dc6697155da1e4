package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/simulate"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func instantSimulator() *simulate.Simulator {
	return simulate.New(simulate.Delays{})
}

type memUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint]*model.User{}}
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id uint, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, v := range fields {
		doc := v.(model.RawJSON)
		switch column {
		case "resume_data":
			u.ResumeData = doc
		case "target_jobs":
			u.TargetJobs = doc
		case "learning_progress":
			u.LearningProgress = doc
		}
	}
	return nil
}

// memHistory stores analyses and target jobs the way the repositories do,
// including the per-user cap.
type memHistory struct {
	mu       sync.Mutex
	nextID   uint
	analyses []model.SkillGapAnalysis
	jobs     []model.TargetJobRecord
	err      error
}

func (m *memHistory) Append(_ context.Context, a *model.SkillGapAnalysis, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	a.ID = m.nextID
	m.analyses = append(m.analyses, *a)

	var mine, others []model.SkillGapAnalysis
	for _, x := range m.analyses {
		if x.UserID == a.UserID {
			mine = append(mine, x)
		} else {
			others = append(others, x)
		}
	}
	if len(mine) > keep {
		mine = mine[len(mine)-keep:]
	}
	m.analyses = append(others, mine...)
	return nil
}

func (m *memHistory) ListByUser(_ context.Context, userID uint, limit int) ([]model.SkillGapAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SkillGapAnalysis
	for _, x := range m.analyses {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memHistory) Create(_ context.Context, job *model.TargetJobRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	job.ID = m.nextID
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *memHistory) Recent(_ context.Context, userID uint, limit int) ([]model.TargetJobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TargetJobRecord
	for i := len(m.jobs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.jobs[i].UserID == userID {
			out = append(out, m.jobs[i])
		}
	}
	return out, nil
}

func (m *memHistory) CountByUser(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, j := range m.jobs {
		if j.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memScans struct {
	mu    sync.Mutex
	scans map[string]*model.ResumeScan
	order []string
}

func newMemScans() *memScans {
	return &memScans{scans: map[string]*model.ResumeScan{}}
}

func (m *memScans) Create(_ context.Context, s *model.ResumeScan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = "scan-" + string(rune('a'+len(m.order)))
	}
	cp := *s
	m.scans[s.ID] = &cp
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memScans) Finish(_ context.Context, id string, status model.ScanStatus, years int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	s.YearsExperience = years
	return nil
}

func (m *memScans) FindByID(_ context.Context, id string) (*model.ResumeScan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memScans) RecentByUser(_ context.Context, userID uint, limit int) ([]model.ResumeScan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ResumeScan
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		s := m.scans[m.order[i]]
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}
