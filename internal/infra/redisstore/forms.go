package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const (
	formKeyPrefix = "booking:form:"
	lockKeyPrefix = "booking:submit-lock:"

	defaultLockTTL = 2 * time.Minute
)

// FormStore keeps booking forms in redis with a sliding TTL.
type FormStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewFormStore(rdb *redis.Client, ttl time.Duration) *FormStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &FormStore{
		rdb:     rdb,
		ttl:     ttl,
		lockTTL: defaultLockTTL,
	}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redisstore: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	return rdb, nil
}

func (s *FormStore) GetForm(ctx context.Context, id string) (*domain.Form, error) {
	raw, err := s.rdb.Get(ctx, formKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get form: %w", err)
	}

	var f domain.Form
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("redisstore: decode form: %w", err)
	}
	return &f, nil
}

func (s *FormStore) SaveForm(ctx context.Context, f *domain.Form) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("redisstore: encode form: %w", err)
	}
	if err := s.rdb.Set(ctx, formKeyPrefix+f.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: save form: %w", err)
	}
	return nil
}

// LockSubmission acquires the per-form submit lock. The returned unlock only
// releases the lock while this caller still owns it.
func (s *FormStore) LockSubmission(ctx context.Context, formID string) (func(), error) {
	key := lockKeyPrefix + formID
	token := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, key, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: acquire lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrSubmissionInProgress
	}

	unlock := func() {
		// independente do contexto da requisição
		if err := releaseScript.Run(context.Background(), s.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("form_id", formID).Msg("failed to release submit lock")
		}
	}
	return unlock, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ domain.FormStore = (*FormStore)(nil)
