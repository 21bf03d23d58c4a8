package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/optimize"
	"github.com/vk/critpathgo/internal/report"
)

// Run executes the selected analysis based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "model", appConfig.Model)

	a.logger.Debug("Building project graph from config model...")
	graph, err := dag.Build(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to build project graph: %w", err)
	}
	a.logger.Debug("Project graph built.", "activity_count", graph.Len(), "edge_count", len(graph.Edges()))

	a.logger.Info("🚀 Starting critical path analysis...")
	analyzer := cpm.New(graph)
	if _, err := analyzer.ForwardPass(ctx); err != nil {
		return fmt.Errorf("forward pass failed: %w", err)
	}
	if err := analyzer.BackwardPass(ctx); err != nil {
		return fmt.Errorf("backward pass failed: %w", err)
	}
	path, err := analyzer.CriticalPath()
	if err != nil {
		return fmt.Errorf("critical path extraction failed: %w", err)
	}
	res, err := analyzer.Result()
	if err != nil {
		return err
	}
	report.Schedule(a.outW, graph, res, path)

	if appConfig.Model == ModelCPM {
		a.logger.Info("🏁 Analysis finished.", "makespan", res.Makespan)
		return nil
	}

	if a.solverFactory == nil {
		return fmt.Errorf("model %q needs a solver, but none is configured", appConfig.Model)
	}

	switch appConfig.Model {
	case ModelMakespan:
		err = a.runMakespan(ctx, graph)
	case ModelNPV:
		err = a.runNPV(ctx, analyzer)
	case ModelCrashing:
		err = a.runCrashing(ctx, graph)
	}
	if err != nil {
		return err
	}

	a.logger.Info("🏁 Analysis finished.", "makespan", res.Makespan)
	return nil
}

func (a *App) runMakespan(ctx context.Context, graph *dag.ProjectGraph) error {
	m := optimize.BuildMakespan(ctx, graph, a.solverFactory())
	if err := m.Solve(ctx); err != nil {
		return err
	}
	times := make(map[int]float64, graph.Len())
	for _, act := range graph.Activities() {
		t, err := m.StartTime(act.ID)
		if err != nil {
			return err
		}
		times[act.ID] = t
	}
	report.Times(a.outW, graph, "Optimal start times:", times)
	return nil
}

func (a *App) runNPV(ctx context.Context, analyzer *cpm.Analyzer) error {
	if a.model.Settings == nil || a.model.Settings.DiscountRate == nil {
		return errors.New("the npv model needs a project discount_rate")
	}
	graph := analyzer.Graph()

	cash := make(map[int]float64)
	for i, def := range a.model.Activities {
		if def.CashFlow != nil {
			cash[i+1] = *def.CashFlow
		}
	}

	m, err := optimize.BuildNPV(ctx, analyzer, cash, *a.model.Settings.DiscountRate, a.solverFactory())
	if err != nil {
		return err
	}
	if err := m.Solve(ctx); err != nil {
		return err
	}
	completions := make(map[int]float64, graph.Len())
	for _, act := range graph.Activities() {
		c, err := m.CompletionTime(act.ID)
		if err != nil {
			return err
		}
		completions[act.ID] = c
	}
	report.Times(a.outW, graph, "Optimal completion times:", completions)
	return nil
}

func (a *App) runCrashing(ctx context.Context, graph *dag.ProjectGraph) error {
	if a.model.Settings == nil || a.model.Settings.Deadline == nil {
		return errors.New("the crashing model needs a project deadline")
	}

	bounds := make(map[int]optimize.Bounds)
	for i, def := range a.model.Activities {
		if def.MinDuration == nil {
			continue
		}
		cost := 0.0
		if def.MarginalCost != nil {
			cost = *def.MarginalCost
		}
		bounds[i+1] = optimize.Bounds{
			Min:  *def.MinDuration,
			Max:  *def.MaxDuration,
			Cost: cost,
		}
	}

	m := optimize.BuildCrashing(ctx, graph, bounds, *a.model.Settings.Deadline, a.solverFactory())
	if err := m.Solve(ctx); err != nil {
		return err
	}
	durations := make(map[int]float64, graph.Len())
	starts := make(map[int]float64, graph.Len())
	for _, act := range graph.Activities() {
		d, err := m.Duration(act.ID)
		if err != nil {
			return err
		}
		s, err := m.StartTime(act.ID)
		if err != nil {
			return err
		}
		durations[act.ID] = d
		starts[act.ID] = s
	}
	report.Times(a.outW, graph, "Crashed durations:", durations)
	report.Times(a.outW, graph, "Start times:", starts)
	return nil
}
