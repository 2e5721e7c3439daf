package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/cooldown"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/mitigation"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/gamedata"
	"github.com/KirkDiggler/raidplan/internal/services/planner"
	mockplanner "github.com/KirkDiggler/raidplan/internal/services/planner/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T) (*app, *mockplanner.MockService, *bytes.Buffer) {
	ctrl := gomock.NewController(t)
	svc := mockplanner.NewMockService(ctrl)
	out := &bytes.Buffer{}

	abilities, encounters, err := gamedata.LoadRoster(gamedata.Source(""))
	require.NoError(t, err)

	return &app{
		service:    svc,
		abilities:  abilities,
		encounters: encounters,
		level:      100,
		out:        out,
		in:         strings.NewReader(""),
		author:     "tester",
	}, svc, out
}

func TestRun_Usage(t *testing.T) {
	a, _, out := newTestApp(t)

	err := a.run(context.Background(), nil)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out.String(), "usage: planner")

	err = a.run(context.Background(), []string{"reticulate"})
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_MissingFlags(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.run(context.Background(), []string{"assign", "-plan", "plan-1", "-ability", "reprisal"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "-action")

	err = a.run(context.Background(), []string{"check", "-plan", "plan-1", "-ability", "reprisal"})
	assert.ErrorIs(t, err, errUsage, "check needs an action or a time")
}

func TestRun_Abilities(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.run(context.Background(), []string{"abilities", "-job", "SGE"}))
	assert.Contains(t, out.String(), "kerachole")
	assert.NotContains(t, out.String(), "hallowed_ground")
}

func TestRun_Encounters(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.run(context.Background(), []string{"encounters"}))
	assert.Contains(t, out.String(), "m4s")

	out.Reset()
	require.NoError(t, a.run(context.Background(), []string{"encounters", "-encounter", "m4s"}))
	assert.Contains(t, out.String(), "m4s-wrath-1")

	assert.Error(t, a.run(context.Background(), []string{"encounters", "-encounter", "p12s"}))
}

func TestRun_AssignReportsCascade(t *testing.T) {
	a, svc, out := newTestApp(t)

	svc.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *plan.Command) (*planner.ApplyResult, error) {
		assert.Equal(t, plan.CommandAssign, cmd.Kind)
		assert.Equal(t, "m4s-wrath-1", cmd.ActionID)
		assert.Equal(t, "reprisal", cmd.AbilityID)
		assert.Equal(t, "tester", cmd.Author)
		assert.Equal(t, int64(3), cmd.BaseVersion)

		return &planner.ApplyResult{
			Plan:    &plan.Plan{ID: "plan-1", Version: 5},
			Changed: true,
			Removed: []plan.Removal{{ActionID: "m4s-wicked-bolt-1", ActionName: "Wicked Bolt", ActionTime: 58, AbilityID: "reprisal"}},
		}, nil
	})

	err := a.run(context.Background(), []string{"assign", "-plan", "plan-1", "-action", "m4s-wrath-1", "-ability", "reprisal", "-base", "3"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "version 5")
	assert.Contains(t, out.String(), "removed reprisal from Wicked Bolt at 58s")
}

func TestRun_AssignRejected(t *testing.T) {
	a, svc, _ := newTestApp(t)

	svc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, apperr.Validationf("Reprisal is on cooldown"))

	err := a.run(context.Background(), []string{"assign", "-plan", "plan-1", "-action", "m4s-wrath-2", "-ability", "reprisal"})
	assert.True(t, apperr.IsValidation(err))
}

func TestRun_Check(t *testing.T) {
	a, svc, out := newTestApp(t)

	svc.EXPECT().CheckCooldown(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, input *planner.CheckCooldownInput) (*cooldown.Status, error) {
		require.NotNil(t, input.Time)
		assert.Equal(t, 30.0, *input.Time)
		return &cooldown.Status{
			AbilityID:          "reprisal",
			TargetTime:         30,
			OnCooldown:         true,
			ConflictActionName: "Wrath of Zeus",
			ConflictTime:       9,
			TimeUntilReady:     39,
		}, nil
	})

	require.NoError(t, a.run(context.Background(), []string{"check", "-plan", "plan-1", "-ability", "reprisal", "-time", "30"}))
	assert.Contains(t, out.String(), "on cooldown")
	assert.Contains(t, out.String(), "ready in 39.0s")
}

func TestRun_Summary(t *testing.T) {
	a, svc, out := newTestApp(t)

	reprisal := a.abilities.GetByID("reprisal")
	require.NotNil(t, reprisal)
	active := []*mitigation.ActiveMitigation{{Ability: reprisal, SourceActionID: "m4s-wrath-1", Direct: true}}

	svc.EXPECT().ActionSummary(gomock.Any(), "plan-1", "m4s-wrath-1").Return(&planner.ActionSummary{
		Action:    &encounter.BossAction{ID: "m4s-wrath-1", Name: "Wrath of Zeus", Time: 9, DamageType: ability.DamageTypeMagical},
		Direct:    active,
		Total:     0.1,
		Breakdown: mitigation.GenerateMitigationBreakdown(active, ability.DamageTypeMagical, 100),
	}, nil)

	require.NoError(t, a.run(context.Background(), []string{"summary", "-plan", "plan-1", "-action", "m4s-wrath-1"}))
	assert.Contains(t, out.String(), "Wrath of Zeus at 9s")
	assert.Contains(t, out.String(), "Reprisal")
}

func TestRun_ExportAndImport(t *testing.T) {
	a, svc, out := newTestApp(t)

	svc.EXPECT().Export(gomock.Any(), "plan-1").Return(plan.Snapshot{"m4s-wrath-1": {"reprisal"}}, nil)
	require.NoError(t, a.run(context.Background(), []string{"export", "-plan", "plan-1"}))
	exported := out.String()
	assert.Contains(t, exported, `"m4s-wrath-1"`)

	a.in = strings.NewReader(exported)
	out.Reset()
	svc.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *plan.Command) (*planner.ApplyResult, error) {
		assert.Equal(t, plan.CommandImport, cmd.Kind)
		assert.Equal(t, plan.Snapshot{"m4s-wrath-1": {"reprisal"}}, cmd.Snapshot)
		return &planner.ApplyResult{
			Plan:    &plan.Plan{ID: "plan-1", Version: 2},
			Changed: true,
			Missing: []plan.MissingReference{{ActionID: "m4s-wrath-1", AbilityID: "ghost"}},
		}, nil
	})

	require.NoError(t, a.run(context.Background(), []string{"import", "-plan", "plan-1"}))
	assert.Contains(t, out.String(), "skipped unknown ability ghost")
}

func TestRun_NoopApply(t *testing.T) {
	a, svc, out := newTestApp(t)

	svc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(&planner.ApplyResult{
		Plan: &plan.Plan{ID: "plan-1", Version: 4},
	}, nil)

	require.NoError(t, a.run(context.Background(), []string{"clear", "-plan", "plan-1", "-action", "m4s-wrath-1"}))
	assert.Contains(t, out.String(), "Nothing to do")
}

func TestRun_History(t *testing.T) {
	a, svc, out := newTestApp(t)

	svc.EXPECT().History(gomock.Any(), "plan-1").Return([]*plan.CommandRecord{
		{Command: plan.Command{Kind: plan.CommandAssign, ActionID: "m4s-wrath-1", AbilityID: "reprisal", Author: "tester"}, AppliedVersion: 2},
	}, nil)

	require.NoError(t, a.run(context.Background(), []string{"history", "-plan", "plan-1"}))
	assert.Contains(t, out.String(), "assign")
	assert.Contains(t, out.String(), "tester")
}
