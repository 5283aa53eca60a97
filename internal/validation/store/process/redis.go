package process

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
)

// RedisStore persists each process as a JSON document under its own key. Status updates
// use WATCH/MULTI so a concurrent writer aborts the update instead of overwriting it.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	clock     Clock
}

// NewRedis constructs a Redis-backed process store.
func NewRedis(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := buildOptions(opts)
	return &RedisStore{client: client, keyPrefix: o.keyPrefix, clock: o.clock}
}

func (s *RedisStore) Create(ctx context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error) {
	p, err := models.NewValidationProcess(id.NewProcessID(), subjectID, contact, s.clock())
	if err != nil {
		return nil, err
	}
	raw, err := encodeProcess(p)
	if err != nil {
		return nil, err
	}
	created, err := s.client.SetNX(ctx, s.key(p.ProcessID), raw, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("create validation process: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("create validation process: id %s already exists", p.ProcessID)
	}
	return p, nil
}

func (s *RedisStore) FindByID(ctx context.Context, processID id.ProcessID) (*models.ValidationProcess, error) {
	raw, err := s.client.Get(ctx, s.key(processID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrProcessNotFound
		}
		return nil, fmt.Errorf("find validation process: %w", err)
	}
	return decodeProcess(raw)
}

func (s *RedisStore) UpdateStatus(ctx context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error) {
	key := s.key(processID)
	var updated *models.ValidationProcess

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return models.ErrProcessNotFound
			}
			return fmt.Errorf("load validation process: %w", err)
		}
		p, err := decodeProcess(raw)
		if err != nil {
			return err
		}
		if err := p.Transition(status, outcome, s.clock()); err != nil {
			return err
		}
		next, err := encodeProcess(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return fmt.Errorf("update validation process: %w", err)
		}
		updated = p
		return nil
	}, key)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *RedisStore) key(processID id.ProcessID) string {
	return s.keyPrefix + processID.String()
}

// redisDocument is the stored form of a process. Result has no omitempty: an empty
// result of a completed process must read back as empty, not absent.
type redisDocument struct {
	ProcessID    id.ProcessID   `json:"process_id"`
	SubjectID    id.SubjectID   `json:"subject_id"`
	Contact      *string        `json:"contact"`
	Status       models.Status  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at"`
	ErrorMessage *string        `json:"error_message"`
	Result       map[string]any `json:"result"`
}

func encodeProcess(p *models.ValidationProcess) ([]byte, error) {
	raw, err := json.Marshal(redisDocument{
		ProcessID:    p.ProcessID,
		SubjectID:    p.SubjectID,
		Contact:      p.Contact,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		ErrorMessage: p.ErrorMessage,
		Result:       p.Result,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal validation process: %w", err)
	}
	return raw, nil
}

func decodeProcess(raw []byte) (*models.ValidationProcess, error) {
	var doc redisDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal validation process: %w", err)
	}
	return &models.ValidationProcess{
		ProcessID:    doc.ProcessID,
		SubjectID:    doc.SubjectID,
		Contact:      doc.Contact,
		Status:       doc.Status,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
		ErrorMessage: doc.ErrorMessage,
		Result:       doc.Result,
	}, nil
}
