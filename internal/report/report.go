// Package report renders a production graph as a plain-text table for the
// command line. It reads nodes only through their read-only views.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vk/prodgraph/internal/graph"
	"github.com/vk/prodgraph/internal/preset"
)

// Summary aggregates the graph-wide energy and pollution figures, per rate
// unit.
type Summary struct {
	Nodes               int
	Links               int
	Errors              int
	Warnings            int
	ElectricConsumption float64
	ElectricProduction  float64
	BeaconCount         float64
	Pollution           float64
}

// Summarize walks every node of g once.
func Summarize(g *graph.ProductionGraph) Summary {
	s := Summary{Nodes: len(g.Nodes()), Links: len(g.Links())}
	for _, n := range g.Nodes() {
		switch n.State() {
		case graph.StateError:
			s.Errors++
		case graph.StateWarning:
			s.Warnings++
		}
		r, ok := n.(*graph.ReadOnlyRecipeNode)
		if !ok {
			continue
		}
		s.ElectricConsumption += r.TotalAssemblerElectricalConsumption() + r.TotalBeaconElectricalConsumption()
		if r.SelectedAssembler().EntityType == preset.EntityGenerator && len(r.Recipe().Ingredients) > 0 {
			s.ElectricProduction += r.TotalGeneratorElectricalProduction()
		}
		s.BeaconCount += r.TotalBeacons()
		s.Pollution += r.TotalPollutionProduction()
	}
	return s
}

// Write prints one row per node followed by its messages, then the summary.
func Write(w io.Writer, g *graph.ProductionGraph) error {
	unit := g.RateUnit()
	mult := unit.Multiplier()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNODE\tSTATE\tRATE/%s\tIN\tOUT\n", unit)
	for _, n := range g.Nodes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			n.ID(), describe(n), n.State(), number(n.ActualRatePerSec()*mult),
			flows(n.Inputs(), func(it *preset.Item) float64 { return n.GetConsumeRate(it) * mult }, n.InputLinks()),
			flows(n.Outputs(), func(it *preset.Item) float64 { return n.GetSupplyRate(it) * mult }, n.OutputLinks()),
		)
		for _, msg := range n.GetErrors() {
			fmt.Fprintf(tw, "\t  error: %s\t\t\t\t\n", msg)
		}
		for _, msg := range n.GetWarnings() {
			fmt.Fprintf(tw, "\t  warning: %s\t\t\t\t\n", msg)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s := Summarize(g)
	_, err := fmt.Fprintf(w, "\n%d nodes, %d links, %d with errors, %d with warnings\n"+
		"electricity: %s consumed, %s produced per %s; beacons: %s; pollution: %s\n",
		s.Nodes, s.Links, s.Errors, s.Warnings,
		energy(s.ElectricConsumption), energy(s.ElectricProduction), unit, number(s.BeaconCount), number(s.Pollution))
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func describe(n graph.ReadOnlyNode) string {
	switch v := n.(type) {
	case *graph.ReadOnlyRecipeNode:
		d := fmt.Sprintf("%s x%s %s", v.Recipe().FriendlyName, number(v.ActualAssemblerCount()), v.SelectedAssembler().FriendlyName)
		if f := v.Fuel(); f != nil {
			d += " (" + f.FriendlyName + ")"
		}
		return d
	case *graph.ReadOnlySupplierNode:
		return "supply " + v.SuppliedItem().FriendlyName
	case *graph.ReadOnlyConsumerNode:
		return "consume " + v.ConsumedItem().FriendlyName
	case *graph.ReadOnlyPassthroughNode:
		return "pass " + v.PassthroughItem().FriendlyName
	}
	return n.String()
}

// flows lists item rates; an item without any link is marked with "!".
func flows(items []*preset.Item, rate func(*preset.Item) float64, links []*graph.NodeLink) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		p := it.Name + "=" + number(rate(it))
		if !linked(it, links) {
			p += "!"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func linked(it *preset.Item, links []*graph.NodeLink) bool {
	for _, l := range links {
		if l.Item() == it {
			return true
		}
	}
	return false
}

// number rounds to three decimals and drops trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// energy renders joules with an SI prefix.
func energy(j float64) string {
	for _, u := range []struct {
		factor float64
		suffix string
	}{{1e9, "GJ"}, {1e6, "MJ"}, {1e3, "kJ"}} {
		if j >= u.factor {
			return strconv.FormatFloat(j/u.factor, 'f', 2, 64) + " " + u.suffix
		}
	}
	return strconv.FormatFloat(j, 'f', 2, 64) + " J"
}
