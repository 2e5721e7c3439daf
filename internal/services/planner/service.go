package planner

//go:generate mockgen -destination=mock/mock_service.go -package=mockplanner -source=service.go

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/cooldown"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/mitigation"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/events"
	"github.com/KirkDiggler/raidplan/internal/repositories/plans"
	"github.com/KirkDiggler/raidplan/internal/telemetry"
	"github.com/KirkDiggler/raidplan/internal/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Repository is an alias for the plan repository interface
type Repository = plans.Repository

// DefaultMaxRetries is how often a command is rebased onto a newer head before giving up
const DefaultMaxRetries = 3

// Service defines the planner service interface
type Service interface {
	// CreatePlan starts an empty plan for an encounter
	CreatePlan(ctx context.Context, input *CreatePlanInput) (*plan.Plan, error)

	// GetPlan retrieves a plan by ID
	GetPlan(ctx context.Context, planID string) (*plan.Plan, error)

	// ListPlans lists an owner's plans, oldest first
	ListPlans(ctx context.Context, ownerID string) ([]*plan.Plan, error)

	// DeletePlan removes a plan and its history
	DeletePlan(ctx context.Context, planID string) error

	// CheckCooldown reports whether an ability is usable at a boss action or time
	CheckCooldown(ctx context.Context, input *CheckCooldownInput) (*cooldown.Status, error)

	// Apply validates a command against the current head and persists the result
	Apply(ctx context.Context, cmd *plan.Command) (*ApplyResult, error)

	// AvailableAbilities lists abilities with their cooldown status at a boss action
	AvailableAbilities(ctx context.Context, input *AvailableAbilitiesInput) ([]*AbilityAvailability, error)

	// ActionSummary computes everything covering one boss action
	ActionSummary(ctx context.Context, planID, actionID string) (*ActionSummary, error)

	// Timeline computes the summary of every boss action in time order
	Timeline(ctx context.Context, planID string) ([]*ActionSummary, error)

	// Export returns the plan's assignments in ID-only form
	Export(ctx context.Context, planID string) (plan.Snapshot, error)

	// History returns the applied commands, oldest first
	History(ctx context.Context, planID string) ([]*plan.CommandRecord, error)
}

// AbilityCatalog is the read-only ability roster
type AbilityCatalog interface {
	GetByID(id string) *ability.Definition
	All() []*ability.Definition
	ForJob(job string) []*ability.Definition
	Superseded(def *ability.Definition) bool
}

// EncounterCatalog is the read-only set of encounter timelines
type EncounterCatalog interface {
	GetByID(id string) *encounter.Encounter
}

// CreatePlanInput contains data for creating a plan
type CreatePlanInput struct {
	Name        string // Optional, defaults to the encounter name
	OwnerID     string
	EncounterID string
	Level       int // Optional, defaults to the encounter level
}

// CheckCooldownInput names the ability and either a boss action or a raw time
type CheckCooldownInput struct {
	PlanID    string
	AbilityID string
	ActionID  string
	Time      *float64 // used when ActionID is empty
}

// AvailableAbilitiesInput selects the boss action and optionally a job
type AvailableAbilitiesInput struct {
	PlanID   string
	ActionID string
	Job      string // Optional, empty lists the whole roster
}

// AbilityAvailability is one ability's state at a boss action
type AbilityAvailability struct {
	Ability  *ability.Definition
	Status   cooldown.Status
	Assigned bool // already directly assigned to the action
}

// ActionSummary is the mitigation picture at one boss action
type ActionSummary struct {
	Action    *encounter.BossAction
	Direct    []*mitigation.ActiveMitigation
	Inherited []*mitigation.ActiveMitigation
	Total     float64 // against the action's own damage type
	Split     mitigation.Split
	Breakdown *mitigation.Breakdown
}

// ApplyResult describes what a command did
type ApplyResult struct {
	Plan     *plan.Plan
	Record   *plan.CommandRecord // nil when the command changed nothing
	Changed  bool
	Removed  []plan.Removal
	Missing  []plan.MissingReference // import only
	Attempts int
}

// service implements the Service interface
type service struct {
	repository    Repository
	abilities     AbilityCatalog
	encounters    EncounterCatalog
	bus           *events.Bus
	uuidGenerator uuid.Generator
	clock         plans.TimeProvider
	tracer        trace.Tracer
	defaultLevel  int
	maxRetries    int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository       // Required
	Abilities     AbilityCatalog   // Required
	Encounters    EncounterCatalog // Required
	Bus           *events.Bus      // Optional, a private bus is used if nil
	UUIDGenerator uuid.Generator   // Optional, will use default if nil
	Clock         plans.TimeProvider
	Tracer        trace.Tracer
	DefaultLevel  int // Optional, used when neither plan nor encounter has a level
	MaxRetries    int // Optional, defaults to DefaultMaxRetries
}

// NewService creates a new planner service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Abilities == nil {
		panic("ability catalog is required")
	}
	if cfg.Encounters == nil {
		panic("encounter catalog is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		abilities:     cfg.Abilities,
		encounters:    cfg.Encounters,
		bus:           cfg.Bus,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
		tracer:        cfg.Tracer,
		defaultLevel:  cfg.DefaultLevel,
		maxRetries:    cfg.MaxRetries,
	}

	if svc.bus == nil {
		svc.bus = events.NewBus()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = plans.UTC()
	}
	if svc.tracer == nil {
		svc.tracer = telemetry.Tracer("planner")
	}
	if svc.maxRetries <= 0 {
		svc.maxRetries = DefaultMaxRetries
	}

	return svc
}

// CreatePlan starts an empty plan for an encounter
func (s *service) CreatePlan(ctx context.Context, input *CreatePlanInput) (*plan.Plan, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(input.EncounterID) == "" {
		return nil, apperr.InvalidArgument("encounter ID is required")
	}
	if input.Level < 0 {
		return nil, apperr.InvalidArgumentf("level must not be negative, got %d", input.Level)
	}

	enc := s.encounters.GetByID(input.EncounterID)
	if enc == nil {
		return nil, apperr.InvalidArgumentf("unknown encounter '%s'", input.EncounterID).
			WithMeta("encounter_id", input.EncounterID)
	}

	p := &plan.Plan{
		ID:          s.uuidGenerator.New(),
		Name:        strings.TrimSpace(input.Name),
		OwnerID:     input.OwnerID,
		EncounterID: enc.ID,
		Level:       input.Level,
		Assignments: plan.Snapshot{},
	}
	if p.Name == "" {
		p.Name = enc.Name
	}
	if p.Level == 0 {
		p.Level = s.levelFor(nil, enc)
	}

	if err := s.repository.Create(ctx, p); err != nil {
		return nil, repositoryError(err, "failed to create plan").
			WithMeta("plan_id", p.ID)
	}

	return p, nil
}

// GetPlan retrieves a plan by ID
func (s *service) GetPlan(ctx context.Context, planID string) (*plan.Plan, error) {
	if strings.TrimSpace(planID) == "" {
		return nil, apperr.InvalidArgument("plan ID is required")
	}

	p, err := s.repository.Get(ctx, planID)
	if err != nil {
		return nil, repositoryError(err, "failed to get plan '"+planID+"'").
			WithMeta("plan_id", planID)
	}

	return p, nil
}

// ListPlans lists an owner's plans, oldest first
func (s *service) ListPlans(ctx context.Context, ownerID string) ([]*plan.Plan, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	found, err := s.repository.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, repositoryError(err, "failed to list plans").
			WithMeta("owner_id", ownerID)
	}

	return found, nil
}

// DeletePlan removes a plan and its history
func (s *service) DeletePlan(ctx context.Context, planID string) error {
	if strings.TrimSpace(planID) == "" {
		return apperr.InvalidArgument("plan ID is required")
	}

	if err := s.repository.Delete(ctx, planID); err != nil {
		return repositoryError(err, "failed to delete plan '"+planID+"'").
			WithMeta("plan_id", planID)
	}

	return nil
}

// Export returns the plan's assignments in ID-only form
func (s *service) Export(ctx context.Context, planID string) (plan.Snapshot, error) {
	p, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.Assignments == nil {
		return plan.Snapshot{}, nil
	}
	return p.Assignments.Clone(), nil
}

// History returns the applied commands, oldest first
func (s *service) History(ctx context.Context, planID string) ([]*plan.CommandRecord, error) {
	// unknown plans are not_found rather than an empty log
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}

	records, err := s.repository.ListCommands(ctx, planID)
	if err != nil {
		return nil, repositoryError(err, "failed to load history for plan '"+planID+"'").
			WithMeta("plan_id", planID)
	}

	return records, nil
}

// levelFor picks the level values are resolved at: plan, then encounter, then the configured default
func (s *service) levelFor(p *plan.Plan, enc *encounter.Encounter) int {
	if p != nil && p.Level > 0 {
		return p.Level
	}
	if enc != nil && enc.Level > 0 {
		return enc.Level
	}
	return s.defaultLevel
}

// repositoryError maps storage errors onto application codes
func repositoryError(err error, message string) *apperr.Error {
	switch {
	case errors.Is(err, internal.ErrNotFound):
		return apperr.WrapWithCode(err, apperr.CodeNotFound, message)
	case errors.Is(err, internal.ErrMissingParam):
		return apperr.WrapWithCode(err, apperr.CodeInvalidArgument, message)
	case errors.Is(err, internal.ErrStaleVersion):
		return apperr.WrapWithCode(err, apperr.CodeConflict, message)
	case apperr.GetCode(err) != apperr.CodeUnknown:
		return apperr.Wrap(err, message)
	default:
		return apperr.WrapWithCode(err, apperr.CodeInternal, message)
	}
}
