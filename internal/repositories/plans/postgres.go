package plans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/repositories"
	"github.com/KirkDiggler/raidplan/internal/repositories/plans/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepoConfig holds configuration for the Postgres repository
type PostgresRepoConfig struct {
	Pool         *pgxpool.Pool
	TimeProvider TimeProvider
}

type postgresRepo struct {
	pool         *pgxpool.Pool
	timeProvider TimeProvider
}

// NewPostgresRepository creates a Postgres-backed plan repository.
// The schema must already be migrated, see RunMigrations.
func NewPostgresRepository(cfg *PostgresRepoConfig) Repository {
	if cfg.Pool == nil {
		panic("postgres pool is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcTimeProvider{}
	}

	return &postgresRepo{
		pool:         cfg.Pool,
		timeProvider: timeProvider,
	}
}

// RunMigrations brings the plan schema up to date on the given DSN
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

const selectPlanColumns = `id, name, owner_id, encounter_id, level, assignments, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*plan.Plan, error) {
	var data Data
	var assignments []byte
	if err := row.Scan(
		&data.ID, &data.Name, &data.OwnerID, &data.EncounterID, &data.Level,
		&assignments, &data.Version, &data.CreatedAt, &data.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(assignments, &data.Assignments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assignments: %w", err)
	}
	return toPlan(&data), nil
}

func (r *postgresRepo) Create(ctx context.Context, p *plan.Plan) error {
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

	assignments, err := json.Marshal(toData(p).Assignments)
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO plans (`+selectPlanColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.OwnerID, p.EncounterID, p.Level, assignments, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.AlreadyExistsf("plan with ID %s already exists", p.ID)
		}
		return fmt.Errorf("inserting plan %s: %w", p.ID, err)
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*plan.Plan, error) {
	if id == "" {
		return nil, internal.NewMissingParamError("id")
	}

	p, err := scanPlan(r.pool.QueryRow(ctx,
		`SELECT `+selectPlanColumns+` FROM plans WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.NewRecordNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan %s: %w", id, err)
	}
	return p, nil
}

// Update bumps the version only where it still matches, so a concurrent writer updates zero rows
func (r *postgresRepo) Update(ctx context.Context, p *plan.Plan, rec *plan.CommandRecord) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	assignments, err := json.Marshal(toData(p).Assignments)
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}

	expected := p.Version
	now := r.timeProvider.Now()

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE plans
			 SET name = $3, level = $4, assignments = $5, version = version + 1, updated_at = $6
			 WHERE id = $1 AND version = $2`,
			p.ID, expected, p.Name, p.Level, assignments, now,
		)
		if err != nil {
			return fmt.Errorf("updating plan %s: %w", p.ID, err)
		}

		if tag.RowsAffected() == 0 {
			var actual int64
			err := tx.QueryRow(ctx, `SELECT version FROM plans WHERE id = $1`, p.ID).Scan(&actual)
			if errors.Is(err, pgx.ErrNoRows) {
				return repositories.NewRecordNotFoundError(p.ID)
			}
			if err != nil {
				return fmt.Errorf("querying plan version %s: %w", p.ID, err)
			}
			return repositories.NewVersionMismatchError(p.ID, expected, actual)
		}

		if rec == nil {
			return nil
		}

		applied := cloneRecord(rec)
		applied.AppliedVersion = expected + 1
		applied.AppliedAt = now
		recJSON, err := json.Marshal(applied)
		if err != nil {
			return fmt.Errorf("failed to marshal command record: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO plan_commands (plan_id, applied_version, record, applied_at) VALUES ($1, $2, $3, $4)`,
			p.ID, applied.AppliedVersion, recJSON, now,
		)
		if err != nil {
			return fmt.Errorf("appending command for plan %s: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.Version = expected + 1
	p.UpdatedAt = now
	if rec != nil {
		rec.AppliedVersion = p.Version
		rec.AppliedAt = now
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.NewRecordNotFoundError(id)
	}
	return nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]*plan.Plan, error) {
	if ownerID == "" {
		return nil, internal.NewMissingParamError("ownerID")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+selectPlanColumns+` FROM plans WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying plans for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	result := make([]*plan.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan rows: %w", err)
	}
	return result, nil
}

func (r *postgresRepo) ListCommands(ctx context.Context, planID string) ([]*plan.CommandRecord, error) {
	if planID == "" {
		return nil, internal.NewMissingParamError("planID")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT record FROM plan_commands WHERE plan_id = $1 ORDER BY applied_version`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying command log for plan %s: %w", planID, err)
	}
	defer rows.Close()

	records := make([]*plan.CommandRecord, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning command row: %w", err)
		}
		var rec plan.CommandRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal command record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command rows: %w", err)
	}
	return records, nil
}
