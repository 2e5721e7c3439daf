package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	"github.com/KirkDiggler/raidplan/internal/gamedata"
	"github.com/KirkDiggler/raidplan/internal/services/planner"
)

const usage = `usage: planner <command> [flags]

commands:
  abilities   list the ability roster (-job, -level)
  encounters  list encounters and their timelines (-encounter)
  create      start a plan (-owner, -encounter, -name, -level)
  plans       list an owner's plans (-owner)
  delete      delete a plan (-plan)
  assign      assign an ability to a boss action (-plan, -action, -ability, -base)
  unassign    remove an ability from a boss action (-plan, -action, -ability)
  clear       remove everything from a boss action (-plan, -action)
  check       check an ability's cooldown (-plan, -ability, -action | -time)
  available   list abilities usable at a boss action (-plan, -action, -job)
  summary     show the mitigation at a boss action (-plan, -action)
  timeline    show the mitigation at every boss action (-plan)
  export      print a plan's assignments as JSON (-plan)
  import      replace a plan's assignments from JSON (-plan, -file)
  history     list the commands applied to a plan (-plan)
`

var errUsage = errors.New("invalid usage")

// app runs one CLI command against the planner service
type app struct {
	service    planner.Service
	abilities  *gamedata.AbilityRegistry
	encounters *gamedata.EncounterRegistry
	level      int
	out        io.Writer
	in         io.Reader
	author     string
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	handlers := map[string]func(context.Context, []string) error{
		"abilities":  a.listAbilities,
		"encounters": a.listEncounters,
		"create":     a.create,
		"plans":      a.listPlans,
		"delete":     a.deletePlan,
		"assign":     a.assign,
		"unassign":   a.unassign,
		"clear":      a.clear,
		"check":      a.check,
		"available":  a.available,
		"summary":    a.summary,
		"timeline":   a.timeline,
		"export":     a.export,
		"import":     a.importPlan,
		"history":    a.history,
	}

	handler, ok := handlers[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return handler(ctx, args[1:])
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// requireFlags reports the first empty flag value
func requireFlags(values map[string]string) error {
	for _, name := range sortedKeys(values) {
		if strings.TrimSpace(values[name]) == "" {
			return fmt.Errorf("-%s is required: %w", name, errUsage)
		}
	}
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a *app) listAbilities(_ context.Context, args []string) error {
	fs := a.flags("abilities")
	job := fs.String("job", "", "only abilities this job can use")
	level := fs.Int("level", a.level, "level to resolve values at")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster := a.abilities.All()
	if *job != "" {
		roster = a.abilities.ForJob(*job)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCOOLDOWN\tDURATION\tVALUE\tCHARGES")
	for _, def := range roster {
		value := def.MitigationAt(*level).String()
		if def.IsBarrier() {
			value = "barrier"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%gs\t%gs\t%s\t%d\n",
			def.ID, def.Name, def.DamageType, def.CooldownAt(*level), def.DurationAt(*level), value, def.Charges())
	}
	return tw.Flush()
}

func (a *app) listEncounters(_ context.Context, args []string) error {
	fs := a.flags("encounters")
	id := fs.String("encounter", "", "show one encounter's timeline")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tACTIONS")
		for _, enc := range a.encounters.All() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", enc.ID, enc.Name, enc.Level, len(enc.Actions))
		}
		return tw.Flush()
	}

	enc := a.encounters.GetByID(*id)
	if enc == nil {
		return fmt.Errorf("unknown encounter %q", *id)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tID\tNAME\tTYPE\tIMPORTANCE")
	for _, action := range enc.Actions {
		fmt.Fprintf(tw, "%gs\t%s\t%s\t%s\t%s\n", action.Time, action.ID, action.Name, action.DamageType, action.Importance)
	}
	return tw.Flush()
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := a.flags("create")
	owner := fs.String("owner", a.author, "plan owner")
	encounterID := fs.String("encounter", "", "encounter id")
	name := fs.String("name", "", "plan name, defaults to the encounter name")
	level := fs.Int("level", 0, "level, defaults to the encounter level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"owner": *owner, "encounter": *encounterID}); err != nil {
		return err
	}

	p, err := a.service.CreatePlan(ctx, &planner.CreatePlanInput{
		Name:        *name,
		OwnerID:     *owner,
		EncounterID: *encounterID,
		Level:       *level,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created plan %s (%s, level %d)\n", p.ID, p.Name, p.Level)
	return nil
}

func (a *app) listPlans(ctx context.Context, args []string) error {
	fs := a.flags("plans")
	owner := fs.String("owner", a.author, "plan owner")
	if err := fs.Parse(args); err != nil {
		return err
	}

	found, err := a.service.ListPlans(ctx, *owner)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tENCOUNTER\tLEVEL\tVERSION")
	for _, p := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.EncounterID, p.Level, p.Version)
	}
	return tw.Flush()
}

func (a *app) deletePlan(ctx context.Context, args []string) error {
	fs := a.flags("delete")
	planID := fs.String("plan", "", "plan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID}); err != nil {
		return err
	}

	if err := a.service.DeletePlan(ctx, *planID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted plan %s\n", *planID)
	return nil
}

func (a *app) assign(ctx context.Context, args []string) error {
	fs := a.flags("assign")
	planID := fs.String("plan", "", "plan id")
	actionID := fs.String("action", "", "boss action id")
	abilityID := fs.String("ability", "", "ability id")
	base := fs.Int64("base", 0, "plan version the command was written against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "action": *actionID, "ability": *abilityID}); err != nil {
		return err
	}

	return a.apply(ctx, &plan.Command{
		PlanID:      *planID,
		Kind:        plan.CommandAssign,
		ActionID:    *actionID,
		AbilityID:   *abilityID,
		BaseVersion: *base,
	})
}

func (a *app) unassign(ctx context.Context, args []string) error {
	fs := a.flags("unassign")
	planID := fs.String("plan", "", "plan id")
	actionID := fs.String("action", "", "boss action id")
	abilityID := fs.String("ability", "", "ability id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "action": *actionID, "ability": *abilityID}); err != nil {
		return err
	}

	return a.apply(ctx, &plan.Command{
		PlanID:    *planID,
		Kind:      plan.CommandUnassign,
		ActionID:  *actionID,
		AbilityID: *abilityID,
	})
}

func (a *app) clear(ctx context.Context, args []string) error {
	fs := a.flags("clear")
	planID := fs.String("plan", "", "plan id")
	actionID := fs.String("action", "", "boss action id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "action": *actionID}); err != nil {
		return err
	}

	return a.apply(ctx, &plan.Command{
		PlanID:   *planID,
		Kind:     plan.CommandClearAction,
		ActionID: *actionID,
	})
}

func (a *app) importPlan(ctx context.Context, args []string) error {
	fs := a.flags("import")
	planID := fs.String("plan", "", "plan id")
	file := fs.String("file", "-", "JSON snapshot to import, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID}); err != nil {
		return err
	}

	var r io.Reader = a.in
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snapshot plan.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snapshot == nil {
		snapshot = plan.Snapshot{}
	}

	return a.apply(ctx, &plan.Command{
		PlanID:   *planID,
		Kind:     plan.CommandImport,
		Snapshot: snapshot,
	})
}

func (a *app) apply(ctx context.Context, cmd *plan.Command) error {
	cmd.Author = a.author

	result, err := a.service.Apply(ctx, cmd)
	if err != nil {
		return err
	}

	if !result.Changed {
		fmt.Fprintf(a.out, "Nothing to do, plan %s stays at version %d\n", result.Plan.ID, result.Plan.Version)
		return nil
	}

	fmt.Fprintf(a.out, "Plan %s is now at version %d\n", result.Plan.ID, result.Plan.Version)
	for _, r := range result.Removed {
		fmt.Fprintf(a.out, "  removed %s from %s at %gs\n", r.AbilityID, r.ActionName, r.ActionTime)
	}
	for _, m := range result.Missing {
		fmt.Fprintf(a.out, "  skipped unknown ability %s on %s\n", m.AbilityID, m.ActionID)
	}
	return nil
}

func (a *app) check(ctx context.Context, args []string) error {
	fs := a.flags("check")
	planID := fs.String("plan", "", "plan id")
	abilityID := fs.String("ability", "", "ability id")
	actionID := fs.String("action", "", "boss action id")
	at := fs.Float64("time", -1, "seconds into the fight, used without -action")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "ability": *abilityID}); err != nil {
		return err
	}

	input := &planner.CheckCooldownInput{
		PlanID:    *planID,
		AbilityID: *abilityID,
		ActionID:  *actionID,
	}
	if *actionID == "" {
		if *at < 0 {
			return fmt.Errorf("either -action or -time is required: %w", errUsage)
		}
		input.Time = at
	}

	status, err := a.service.CheckCooldown(ctx, input)
	if err != nil {
		return err
	}

	if !status.OnCooldown {
		fmt.Fprintf(a.out, "%s is ready at %gs\n", status.AbilityID, status.TargetTime)
		return nil
	}
	fmt.Fprintf(a.out, "%s is on cooldown at %gs: used at %s (%gs), ready in %.1fs\n",
		status.AbilityID, status.TargetTime, status.ConflictActionName, status.ConflictTime, status.TimeUntilReady)
	return nil
}

func (a *app) available(ctx context.Context, args []string) error {
	fs := a.flags("available")
	planID := fs.String("plan", "", "plan id")
	actionID := fs.String("action", "", "boss action id")
	job := fs.String("job", "", "only abilities this job can use")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "action": *actionID}); err != nil {
		return err
	}

	list, err := a.service.AvailableAbilities(ctx, &planner.AvailableAbilitiesInput{
		PlanID:   *planID,
		ActionID: *actionID,
		Job:      *job,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATE")
	for _, av := range list {
		state := "ready"
		switch {
		case av.Assigned:
			state = "assigned"
		case av.Status.OnCooldown:
			state = fmt.Sprintf("ready in %.1fs", av.Status.TimeUntilReady)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", av.Ability.ID, av.Ability.Name, state)
	}
	return tw.Flush()
}

func (a *app) summary(ctx context.Context, args []string) error {
	fs := a.flags("summary")
	planID := fs.String("plan", "", "plan id")
	actionID := fs.String("action", "", "boss action id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID, "action": *actionID}); err != nil {
		return err
	}

	sum, err := a.service.ActionSummary(ctx, *planID, *actionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s at %gs (%s)\n", sum.Action.Name, sum.Action.Time, sum.Action.DamageType)
	fmt.Fprintln(a.out, sum.Breakdown.String())
	return nil
}

func (a *app) timeline(ctx context.Context, args []string) error {
	fs := a.flags("timeline")
	planID := fs.String("plan", "", "plan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID}); err != nil {
		return err
	}

	summaries, err := a.service.Timeline(ctx, *planID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tTYPE\tMITIGATION\tASSIGNED\tCARRIED OVER")
	for _, sum := range summaries {
		direct := make([]string, len(sum.Direct))
		for i, m := range sum.Direct {
			direct[i] = m.Ability.ID
		}
		inherited := make([]string, len(sum.Inherited))
		for i, m := range sum.Inherited {
			inherited[i] = m.Ability.ID
		}
		fmt.Fprintf(tw, "%gs\t%s\t%s\t%.1f%%\t%s\t%s\n",
			sum.Action.Time, sum.Action.Name, sum.Action.DamageType, sum.Total*100,
			strings.Join(direct, ","), strings.Join(inherited, ","))
	}
	return tw.Flush()
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := a.flags("export")
	planID := fs.String("plan", "", "plan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID}); err != nil {
		return err
	}

	snapshot, err := a.service.Export(ctx, *planID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := a.flags("history")
	planID := fs.String("plan", "", "plan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(map[string]string{"plan": *planID}); err != nil {
		return err
	}

	records, err := a.service.History(ctx, *planID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tKIND\tACTION\tABILITY\tAUTHOR\tREMOVED")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			rec.AppliedVersion, rec.Command.Kind, rec.Command.ActionID, rec.Command.AbilityID, rec.Command.Author, len(rec.Removed))
	}
	return tw.Flush()
}
