package plans_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	"github.com/KirkDiggler/raidplan/internal/repositories/plans"
	"github.com/KirkDiggler/raidplan/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises the behavior every Repository implementation must share
func runRepositoryContract(t *testing.T, repo plans.Repository) {
	ctx := context.Background()

	t.Run("create and retrieve plan", func(t *testing.T) {
		p := testutils.CreateTestPlan("contract-1", "owner-1", "m4s")
		p.Assignments = plan.Snapshot{"m4s-wrath-1": {"reprisal", "addle"}}
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Assignments, got.Assignments)
		assert.Equal(t, int64(1), got.Version)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("stale writers are rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, testutils.CreateTestPlan("contract-2", "owner-1", "m4s")))

		first, err := repo.Get(ctx, "contract-2")
		require.NoError(t, err)
		second, err := repo.Get(ctx, "contract-2")
		require.NoError(t, err)

		first.Assignments["m4s-wrath-1"] = []string{"holos"}
		require.NoError(t, repo.Update(ctx, first, &plan.CommandRecord{
			Command: plan.Command{ID: "cmd-1", Kind: plan.CommandAssign, ActionID: "m4s-wrath-1", AbilityID: "holos"},
		}))
		assert.Equal(t, int64(2), first.Version)

		second.Assignments["m4s-wrath-1"] = []string{"temperance"}
		err = repo.Update(ctx, second, nil)
		assert.ErrorIs(t, err, internal.ErrStaleVersion)

		records, err := repo.ListCommands(ctx, "contract-2")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "cmd-1", records[0].Command.ID)
		assert.Equal(t, int64(2), records[0].AppliedVersion)
	})

	t.Run("concurrent writers serialize", func(t *testing.T) {
		const writers = 8
		require.NoError(t, repo.Create(ctx, testutils.CreateTestPlan("contract-3", "owner-2", "m4s")))

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for {
					p, err := repo.Get(ctx, "contract-3")
					if err != nil {
						errs <- err
						return
					}
					action := fmt.Sprintf("action-%d", i)
					p.Assignments[action] = []string{"rampart"}
					err = repo.Update(ctx, p, &plan.CommandRecord{
						Command: plan.Command{ID: action, Kind: plan.CommandAssign, ActionID: action, AbilityID: "rampart"},
					})
					if errors.Is(err, internal.ErrStaleVersion) {
						continue
					}
					errs <- err
					return
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		head, err := repo.Get(ctx, "contract-3")
		require.NoError(t, err)
		assert.Equal(t, int64(1+writers), head.Version)
		assert.Len(t, head.Assignments, writers)

		records, err := repo.ListCommands(ctx, "contract-3")
		require.NoError(t, err)
		require.Len(t, records, writers)
		for i, rec := range records {
			assert.Equal(t, int64(i+2), rec.AppliedVersion)
		}
	})

	t.Run("list and delete", func(t *testing.T) {
		owned, err := repo.ListByOwner(ctx, "owner-1")
		require.NoError(t, err)
		assert.Len(t, owned, 2)

		require.NoError(t, repo.Delete(ctx, "contract-1"))
		_, err = repo.Get(ctx, "contract-1")
		assert.ErrorIs(t, err, internal.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "contract-1"), internal.ErrNotFound)

		owned, err = repo.ListByOwner(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, "contract-2", owned[0].ID)

		err = repo.Update(ctx, testutils.CreateTestPlan("contract-1", "owner-1", "m4s"), nil)
		assert.ErrorIs(t, err, internal.ErrNotFound)
	})
}

func TestInMemoryRepository_Contract(t *testing.T) {
	runRepositoryContract(t, plans.NewInMemoryRepository())
}
