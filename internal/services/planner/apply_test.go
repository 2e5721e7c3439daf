package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/gamedata"
	"github.com/KirkDiggler/raidplan/internal/repositories/plans/mocks"
	"github.com/KirkDiggler/raidplan/internal/services/planner"
	"github.com/KirkDiggler/raidplan/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockedService(t *testing.T) (planner.Service, *mocks.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	svc := planner.NewService(&planner.ServiceConfig{
		Repository: repo,
		Abilities:  gamedata.NewAbilityRegistry(testRoster()),
		Encounters: gamedata.NewEncounterRegistry([]*encounter.Encounter{testEncounter()}),
		MaxRetries: 2,
	})
	return svc, repo
}

// headAt returns a fresh copy of the stored plan on every read
func headAt(version int64) func(context.Context, string) (*plan.Plan, error) {
	return func(context.Context, string) (*plan.Plan, error) {
		p := testutils.CreateTestPlan("plan-1", "owner-1", "test")
		p.Version = version
		return p, nil
	}
}

func assignReprisal() *plan.Command {
	return &plan.Command{
		PlanID:    "plan-1",
		Kind:      plan.CommandAssign,
		ActionID:  "raidwide-1",
		AbilityID: "reprisal",
	}
}

func TestApply_RetriesAfterLosingTheRace(t *testing.T) {
	svc, repo := newMockedService(t)

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), "plan-1").DoAndReturn(headAt(1)),
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(internal.ErrStaleVersion),
		repo.EXPECT().Get(gomock.Any(), "plan-1").DoAndReturn(headAt(2)),
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *plan.Plan, rec *plan.CommandRecord) error {
				assert.Equal(t, int64(2), p.Version, "written against the re-read head")
				assert.Equal(t, plan.Snapshot{"raidwide-1": {"reprisal"}}, p.Assignments)
				p.Version++
				rec.AppliedVersion = p.Version
				return nil
			}),
	)

	result, err := svc.Apply(context.Background(), assignReprisal())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, int64(3), result.Plan.Version)
	assert.Equal(t, int64(3), result.Record.AppliedVersion)
}

func TestApply_ConflictAfterRetriesRunOut(t *testing.T) {
	svc, repo := newMockedService(t)

	repo.EXPECT().Get(gomock.Any(), "plan-1").DoAndReturn(headAt(1)).Times(3)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(internal.ErrStaleVersion).Times(3)

	_, err := svc.Apply(context.Background(), assignReprisal())
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "plan-1", apperr.GetMeta(err)["plan_id"])
}

func TestApply_StorageFailure(t *testing.T) {
	svc, repo := newMockedService(t)

	repo.EXPECT().Get(gomock.Any(), "plan-1").DoAndReturn(headAt(1))
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := svc.Apply(context.Background(), assignReprisal())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.GetCode(err))
}

func TestApply_RejectionNeverWrites(t *testing.T) {
	svc, repo := newMockedService(t)

	repo.EXPECT().Get(gomock.Any(), "plan-1").DoAndReturn(func(context.Context, string) (*plan.Plan, error) {
		p := testutils.CreateTestPlan("plan-1", "owner-1", "test")
		p.Version = 4
		p.Assignments = plan.Snapshot{"raidwide-1": {"reprisal"}}
		return p, nil
	})

	_, err := svc.Apply(context.Background(), &plan.Command{
		PlanID:    "plan-1",
		Kind:      plan.CommandAssign,
		ActionID:  "raidwide-2",
		AbilityID: "reprisal",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestApply_UnknownEncounterIsInternal(t *testing.T) {
	svc, repo := newMockedService(t)

	repo.EXPECT().Get(gomock.Any(), "plan-1").Return(testutils.CreateTestPlan("plan-1", "owner-1", "retired"), nil)

	_, err := svc.Apply(context.Background(), assignReprisal())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.GetCode(err))
}
