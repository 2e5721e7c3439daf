package plans

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// Repository stores plans and their command logs.
//
// Update is a compare-and-set: it succeeds only while the stored version equals p.Version,
// then bumps the version. A lost race is reported with internal.ErrStaleVersion and a
// missing plan with internal.ErrNotFound.
type Repository interface {
	// Create stores a new plan at version 1
	Create(ctx context.Context, p *plan.Plan) error

	Get(ctx context.Context, id string) (*plan.Plan, error)

	// Update writes p if nobody else has since p.Version was read and appends rec,
	// when non-nil, to the command log in the same write
	Update(ctx context.Context, p *plan.Plan, rec *plan.CommandRecord) error

	// Delete removes the plan and its command log
	Delete(ctx context.Context, id string) error

	// ListByOwner returns an owner's plans, oldest first
	ListByOwner(ctx context.Context, ownerID string) ([]*plan.Plan, error)

	// ListCommands returns the command log in the order commands were applied
	ListCommands(ctx context.Context, planID string) ([]*plan.CommandRecord, error)
}
