package plans

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/repositories"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu           sync.RWMutex
	plans        map[string]*Data
	commands     map[string][]*plan.CommandRecord
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory plan repository
func NewInMemoryRepository() Repository {
	return NewInMemoryRepositoryWithClock(utcTimeProvider{})
}

// NewInMemoryRepositoryWithClock is NewInMemoryRepository with a controllable clock
func NewInMemoryRepositoryWithClock(timeProvider TimeProvider) Repository {
	return &inMemoryRepository{
		plans:        make(map[string]*Data),
		commands:     make(map[string][]*plan.CommandRecord),
		timeProvider: timeProvider,
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}
	if p.ID == "" {
		return internal.NewMissingParamError("plan.ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[p.ID]; exists {
		return apperr.AlreadyExistsf("plan with ID %s already exists", p.ID)
	}

	now := r.timeProvider.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1

	r.plans[p.ID] = toData(p)
	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	if id == "" {
		return nil, internal.NewMissingParamError("id")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.plans[id]
	if !exists {
		return nil, repositories.NewRecordNotFoundError(id)
	}

	// toPlan copies, callers may mutate the result freely
	return toPlan(data), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, p *plan.Plan, rec *plan.CommandRecord) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.plans[p.ID]
	if !exists {
		return repositories.NewRecordNotFoundError(p.ID)
	}
	if existing.Version != p.Version {
		return repositories.NewVersionMismatchError(p.ID, p.Version, existing.Version)
	}

	now := r.timeProvider.Now()
	p.Version++
	p.UpdatedAt = now
	p.CreatedAt = existing.CreatedAt
	r.plans[p.ID] = toData(p)

	if rec != nil {
		rec.AppliedVersion = p.Version
		rec.AppliedAt = now
		r.commands[p.ID] = append(r.commands[p.ID], cloneRecord(rec))
	}
	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[id]; !exists {
		return repositories.NewRecordNotFoundError(id)
	}

	delete(r.plans, id)
	delete(r.commands, id)
	return nil
}

func (r *inMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*plan.Plan, error) {
	if ownerID == "" {
		return nil, internal.NewMissingParamError("ownerID")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*plan.Plan, 0)
	for _, data := range r.plans {
		if data.OwnerID == ownerID {
			result = append(result, toPlan(data))
		}
	}
	sortPlans(result)
	return result, nil
}

func (r *inMemoryRepository) ListCommands(ctx context.Context, planID string) ([]*plan.CommandRecord, error) {
	if planID == "" {
		return nil, internal.NewMissingParamError("planID")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.commands[planID]
	result := make([]*plan.CommandRecord, len(entries))
	for i, rec := range entries {
		result[i] = cloneRecord(rec)
	}
	return result, nil
}

func cloneRecord(rec *plan.CommandRecord) *plan.CommandRecord {
	cp := *rec
	if rec.Command.Snapshot != nil {
		cp.Command.Snapshot = rec.Command.Snapshot.Clone()
	}
	if rec.Removed != nil {
		cp.Removed = append([]plan.Removal(nil), rec.Removed...)
	}
	return &cp
}
