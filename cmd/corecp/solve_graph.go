package main

import (
	"fmt"

	"github.com/katalvlaran/corecp/graphgen"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/model"
	"github.com/katalvlaran/corecp/search"
	"github.com/katalvlaran/corecp/trail"
	"github.com/spf13/cobra"
)

// twoGroupCliqueEdges splits the n nodes into two halves and mandates a
// complete graph within each half, mirroring the bundled nCliques
// scenario (two disjoint triangles) generalized to any even n >= 4.
func twoGroupCliqueEdges(n int) ([]graphgen.Edge, error) {
	all, err := graphgen.Complete(n)
	if err != nil {
		return nil, err
	}
	half := n / 2
	var kept []graphgen.Edge
	for _, e := range all {
		inFirst := e.U < half && e.V < half
		inSecond := e.U >= half && e.V >= half
		if inFirst || inSecond {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// twoRootedTreeArcs builds two rooted chains out of n nodes: the first
// half feeds into node 0, the second half feeds into node half, each root
// wearing the self-loop that marks it as a root in the successor-function
// model — mirroring the bundled nTrees scenario generalized to any n >= 4.
func twoRootedTreeArcs(n int) []graphgen.Edge {
	half := n / 2
	arcs := []graphgen.Edge{{U: 0, V: 0}, {U: half, V: half}}
	for u := 1; u < half; u++ {
		arcs = append(arcs, graphgen.Edge{U: u, V: u - 1})
	}
	for u := half + 1; u < n; u++ {
		arcs = append(arcs, graphgen.Edge{U: u, V: u - 1})
	}
	return arcs
}

func runSolveNCliques(cmd *cobra.Command, args []string) error {
	if flagN < 4 {
		return fmt.Errorf("solve ncliques: --n must be >= 4, got %d", flagN)
	}
	edges, err := twoGroupCliqueEdges(flagN)
	if err != nil {
		return fmt.Errorf("solve ncliques: %w", err)
	}

	m := model.New()
	g := m.GraphVar(flagN)
	if err := graphgen.ApplyEdges(g, edges); err != nil {
		return fmt.Errorf("solve ncliques: %w", err)
	}
	for _, e := range edges {
		if err := g.EnforceArc(e.U, e.V, trail.CauseNull); err != nil {
			return fmt.Errorf("solve ncliques: %w", err)
		}
	}
	nb := m.IntVar("nb-cliques", 1, int64(flagN))
	c := m.NCliques(g, nb)
	if err := m.Post(c); err != nil {
		return fmt.Errorf("solve ncliques: %w", err)
	}

	decisions := append(search.ArcDecisions(g), search.IntVars(nb)...)
	found, limits, err := m.FindSolution(decisions)
	if err != nil {
		return fmt.Errorf("solve ncliques: %w", err)
	}
	log.Info().Int("n", flagN).Bool("found", found).Bool("limit_hit", limits.Any()).
		Msg("solve ncliques done")
	if !found {
		log.Warn().Msg("no clique partition satisfies the posted constraints")
		return nil
	}
	log.Info().Int64("nb_cliques", nb.Min()).Msg("ncliques result")
	return nil
}

func runSolveNTrees(cmd *cobra.Command, args []string) error {
	if flagN < 4 {
		return fmt.Errorf("solve ntrees: --n must be >= 4, got %d", flagN)
	}
	arcs := twoRootedTreeArcs(flagN)

	m := model.New()
	g := m.GraphVar(flagN, graphvar.Directed())
	if err := graphgen.ApplyEdges(g, arcs); err != nil {
		return fmt.Errorf("solve ntrees: %w", err)
	}
	nb := m.IntVar("nb-trees", 1, int64(flagN))
	c := m.NTrees(g, nb)
	if err := m.Post(c); err != nil {
		return fmt.Errorf("solve ntrees: %w", err)
	}

	decisions := append(search.ArcDecisions(g), search.IntVars(nb)...)
	found, limits, err := m.FindSolution(decisions)
	if err != nil {
		return fmt.Errorf("solve ntrees: %w", err)
	}
	log.Info().Int("n", flagN).Bool("found", found).Bool("limit_hit", limits.Any()).
		Msg("solve ntrees done")
	if !found {
		log.Warn().Msg("no tree partition satisfies the posted constraints")
		return nil
	}
	log.Info().Int64("nb_trees", nb.Min()).Msg("ntrees result")
	return nil
}
