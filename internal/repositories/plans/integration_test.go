//go:build integration
// +build integration

package plans_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/raidplan/internal/repositories/plans"
	"github.com/KirkDiggler/raidplan/internal/testutils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)

	repo := plans.NewRedisRepository(&plans.RedisRepoConfig{
		Client: client,
	})

	runRepositoryContract(t, repo)
}

func TestPostgresRepository_Integration(t *testing.T) {
	ctx := context.Background()
	dsn := testutils.StartPostgresContainer(t)

	require.NoError(t, plans.RunMigrations(ctx, dsn))
	// migrations are idempotent
	require.NoError(t, plans.RunMigrations(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := plans.NewPostgresRepository(&plans.PostgresRepoConfig{
		Pool: pool,
	})

	runRepositoryContract(t, repo)
}
