package main

import (
	"fmt"

	"github.com/katalvlaran/corecp/model"
	"github.com/katalvlaran/corecp/search"
	"github.com/spf13/cobra"
)

func runSolveTSP(cmd *cobra.Command, args []string) error {
	if flagScenario != "ring" {
		return fmt.Errorf("solve tsp: unsupported scenario %q (supported: ring)", flagScenario)
	}
	if flagN < 3 {
		return fmt.Errorf("solve tsp: --n must be >= 3, got %d", flagN)
	}

	dist, err := ringHopMatrix(flagN)
	if err != nil {
		return fmt.Errorf("solve tsp: %w", err)
	}
	weights, err := toInt64Weights(dist, 1)
	if err != nil {
		return fmt.Errorf("solve tsp: %w", err)
	}

	m := model.New()
	g := m.GraphVar(flagN)
	c, cost, err := m.TSP(g, weights, 0)
	if err != nil {
		return fmt.Errorf("solve tsp: %w", err)
	}
	if err := m.Post(c); err != nil {
		return fmt.Errorf("solve tsp: %w", err)
	}

	decisions := search.ArcDecisions(g)
	solver, found, limits, err := m.FindOptimal(decisions, cost, true)
	if err != nil {
		return fmt.Errorf("solve tsp: %w", err)
	}
	log.Info().Int("n", flagN).Str("scenario", flagScenario).
		Bool("found", found).Int64("fails", solver.Fails()).
		Bool("limit_hit", limits.Any()).Msg("solve tsp done")
	if !found {
		log.Warn().Msg("no tour satisfies the posted constraints")
		return nil
	}
	log.Info().Int64("optimal_cost", solver.BestObjective()).Msg("tsp optimum")
	return nil
}
