package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillpath_backend/internal/skillgap"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
)

const (
	wizardKeyPrefix = "assessment:wizard:"
	wizardLockGrace = 30 * time.Second
)

var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// WizardStore keeps assessment wizards in Redis as JSON documents that
// expire after a period of inactivity.
type WizardStore struct {
	Redis *redis.Client
	ttl   atomic.Int64
}

func NewWizardStore(rdb *redis.Client, ttl time.Duration) *WizardStore {
	s := &WizardStore{Redis: rdb}
	s.SetTTL(ttl)
	return s
}

func (s *WizardStore) SetTTL(ttl time.Duration) {
	s.ttl.Store(int64(ttl))
}

func (s *WizardStore) TTL() time.Duration {
	return time.Duration(s.ttl.Load())
}

func wizardKey(id string) string {
	return wizardKeyPrefix + id
}

func (s *WizardStore) Save(ctx context.Context, w *skillgap.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	return s.Redis.Set(ctx, wizardKey(w.ID), data, s.TTL()).Err()
}

func (s *WizardStore) Load(ctx context.Context, id string) (*skillgap.Wizard, error) {
	data, err := s.Redis.Get(ctx, wizardKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrWizardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wizard: %w", err)
	}

	var w skillgap.Wizard
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	return &w, nil
}

// Lock serializes mutations of one wizard across requests and instances.
// hold bounds how long the lock survives a crashed holder.
func (s *WizardStore) Lock(ctx context.Context, id string, hold time.Duration) (func(), error) {
	key := wizardKey(id) + ":lock"
	token := uuid.NewString()

	ok, err := s.Redis.SetNX(ctx, key, token, hold+wizardLockGrace).Result()
	if err != nil {
		return nil, fmt.Errorf("lock wizard: %w", err)
	}
	if !ok {
		return nil, util.ErrWizardBusy
	}

	return func() {
		if err := releaseLock.Run(context.WithoutCancel(ctx), s.Redis, []string{key}, token).Err(); err != nil {
			logger.Log.Warn("Failed to release wizard lock", zap.String("wizard_id", id), zap.Error(err))
		}
	}, nil
}
