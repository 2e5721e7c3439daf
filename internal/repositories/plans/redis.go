package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/repositories"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	planKeyPrefix   = "plan:"
	planCommandsKey = "plan:%s:commands"
	ownerPlansKey   = "owner:%s:plans"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedisRepository creates a Redis-backed plan repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

func planKey(id string) string {
	return planKeyPrefix + id
}

func (r *redisRepo) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}
	if p.ID == "" {
		return internal.NewMissingParamError("plan.ID")
	}

	now := r.timeProvider.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1

	jsonData, err := json.Marshal(toData(p))
	if err != nil {
		return fmt.Errorf("failed to marshal plan data: %w", err)
	}

	key := planKey(p.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to check plan in Redis: %w", err)
		}
		if exists > 0 {
			return apperr.AlreadyExistsf("plan with ID %s already exists", p.ID)
		}

		// the record and its owner index land together or not at all
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(jsonData), 0)
			pipe.SAdd(ctx, fmt.Sprintf(ownerPlansKey, p.OwnerID), p.ID)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return apperr.AlreadyExistsf("plan with ID %s already exists", p.ID)
	}
	if err != nil {
		if apperr.IsAlreadyExists(err) {
			return err
		}
		return fmt.Errorf("failed to create plan in Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*plan.Plan, error) {
	if id == "" {
		return nil, internal.NewMissingParamError("id")
	}

	jsonData, err := r.client.Get(ctx, planKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.NewRecordNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get plan from Redis: %w", err)
	}

	return decodePlan(jsonData)
}

// Update runs the version check and the write inside WATCH so a concurrent writer aborts the transaction
func (r *redisRepo) Update(ctx context.Context, p *plan.Plan, rec *plan.CommandRecord) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	key := planKey(p.ID)
	expected := p.Version

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return repositories.NewRecordNotFoundError(p.ID)
			}
			return fmt.Errorf("failed to get plan from Redis: %w", err)
		}

		existing, err := decodePlan(jsonData)
		if err != nil {
			return err
		}
		if existing.Version != expected {
			return repositories.NewVersionMismatchError(p.ID, expected, existing.Version)
		}

		next := p.Clone()
		next.Version = expected + 1
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = r.timeProvider.Now()

		planJSON, err := json.Marshal(toData(next))
		if err != nil {
			return fmt.Errorf("failed to marshal plan data: %w", err)
		}

		var recJSON []byte
		if rec != nil {
			applied := cloneRecord(rec)
			applied.AppliedVersion = next.Version
			applied.AppliedAt = next.UpdatedAt
			if recJSON, err = json.Marshal(applied); err != nil {
				return fmt.Errorf("failed to marshal command record: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(planJSON), 0)
			if recJSON != nil {
				pipe.RPush(ctx, fmt.Sprintf(planCommandsKey, p.ID), string(recJSON))
			}
			return nil
		})
		if err != nil {
			return err
		}

		p.Version = next.Version
		p.CreatedAt = next.CreatedAt
		p.UpdatedAt = next.UpdatedAt
		if rec != nil {
			rec.AppliedVersion = next.Version
			rec.AppliedAt = next.UpdatedAt
		}
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// someone wrote between WATCH and EXEC
		return repositories.NewVersionMismatchError(p.ID, expected, expected+1)
	}
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) || errors.Is(err, internal.ErrStaleVersion) {
			return err
		}
		return fmt.Errorf("failed to update plan in Redis: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, planKey(id))
	pipe.Del(ctx, fmt.Sprintf(planCommandsKey, id))
	pipe.SRem(ctx, fmt.Sprintf(ownerPlansKey, existing.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete plan from Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*plan.Plan, error) {
	if ownerID == "" {
		return nil, internal.NewMissingParamError("ownerID")
	}

	planIDs, err := r.client.SMembers(ctx, fmt.Sprintf(ownerPlansKey, ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owner plans from Redis: %w", err)
	}

	found := make([]*plan.Plan, len(planIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range planIDs {
		g.Go(func() error {
			p, err := r.Get(gctx, id)
			if err != nil {
				if errors.Is(err, internal.ErrNotFound) {
					// index entry outlived the plan, cleaned up lazily
					log.Printf("Plan %s listed for owner %s no longer exists", id, ownerID)
					return nil
				}
				return fmt.Errorf("failed to get plan %s: %w", id, err)
			}
			found[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*plan.Plan, 0, len(found))
	for _, p := range found {
		if p != nil {
			result = append(result, p)
		}
	}
	sortPlans(result)
	return result, nil
}

func (r *redisRepo) ListCommands(ctx context.Context, planID string) ([]*plan.CommandRecord, error) {
	if planID == "" {
		return nil, internal.NewMissingParamError("planID")
	}

	entries, err := r.client.LRange(ctx, fmt.Sprintf(planCommandsKey, planID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get command log from Redis: %w", err)
	}

	records := make([]*plan.CommandRecord, 0, len(entries))
	for _, entry := range entries {
		var rec plan.CommandRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal command record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, nil
}

func decodePlan(jsonData []byte) (*plan.Plan, error) {
	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan data: %w", err)
	}
	return toPlan(&data), nil
}
