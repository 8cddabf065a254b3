package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/graph"
	"github.com/vk/prodgraph/internal/report"
	"github.com/vk/prodgraph/internal/savefile"
)

// Run restores the save file against the preset, solves it and writes the
// report. Problems inside the save become node errors in the report; only
// unreadable input fails the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, err := a.loadGraph(ctx)
	if err != nil {
		return err
	}

	if a.config.WritePath != "" {
		f, err := savefile.Capture(g)
		if err != nil {
			return fmt.Errorf("failed to capture graph: %w", err)
		}
		if err := savefile.WriteFile(a.config.WritePath, f); err != nil {
			return err
		}
		a.logger.Info("Save file written.", "path", a.config.WritePath, "format_version", f.FormatVersion)
	}

	if err := a.writeReport(g); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) loadGraph(ctx context.Context) (*graph.ProductionGraph, error) {
	f, err := savefile.ReadFile(a.config.SavePath)
	if err != nil {
		return nil, err
	}
	g, err := savefile.Load(ctx, f, a.preset, graph.WithSolver(graph.DesiredRateSolver{}))
	if err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", a.config.SavePath, err)
	}
	if a.config.RateUnit != "" {
		unit, err := graph.ParseRateUnit(a.config.RateUnit)
		if err != nil {
			return nil, err
		}
		g.SetRateUnit(unit)
	}
	if err := g.Recompute(ctx); err != nil {
		return nil, err
	}

	errored := 0
	for _, n := range g.Nodes() {
		if n.State() == graph.StateError {
			errored++
			a.logger.Warn("Node has errors.", "node", n.ID(), "errors", n.GetErrors())
		}
	}
	a.logger.Info("Graph loaded.", "graph", g.ID().String(), "nodes", len(g.Nodes()), "links", len(g.Links()), "errored", errored)
	return g, nil
}

func (a *App) writeReport(g *graph.ProductionGraph) error {
	if a.config.OutPath == "" {
		return report.Write(a.outW, g)
	}
	out, err := os.Create(a.config.OutPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.Write(out, g); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
