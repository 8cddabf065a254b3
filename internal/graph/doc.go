// Package graph models a factory production chain as a directed graph of
// supply and production nodes joined by single-item links, and derives for
// every node its per-item rates and a health state.
//
// # Model and projections
//
// Concrete node types are unexported. Code outside the package sees a node
// either through its read-only projection (ReadOnlyRecipeNode,
// ReadOnlySupplierNode, ...), which exposes accessors and report formulas, or
// through its Controller, which is the only way to change configuration:
//
//	ro := g.CreateRecipeNode(recipe, graph.Location{})
//	ctrl, _ := g.RecipeController(ro.ID())
//	ctrl.SetAssembler(faster)   // fuel, modules and beacon are re-validated
//	fmt.Println(ro.State(), ro.GetErrors())
//
// # State
//
// Every edit recomputes the node's health synchronously. State-change
// listeners fire only when the computed state differs from the previous one;
// values-changed listeners fire on every edit that can move a rate, and such
// edits also request a graph recompute from the configured Solver.
//
// # Concurrency
//
// The model performs no locking. All controller calls against one graph must
// be serialised by the caller; intermediate states inside one call are not
// valid observation points.
package graph
