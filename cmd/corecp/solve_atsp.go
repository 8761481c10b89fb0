package main

import (
	"fmt"

	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/model"
	"github.com/katalvlaran/corecp/search"
	"github.com/spf13/cobra"
)

func runSolveATSP(cmd *cobra.Command, args []string) error {
	if flagScenario != "line" {
		return fmt.Errorf("solve atsp: unsupported scenario %q (supported: line)", flagScenario)
	}
	if flagN < 2 {
		return fmt.Errorf("solve atsp: --n must be >= 2, got %d", flagN)
	}

	weights := lineChainMatrix(flagN)
	origin, dst := 0, flagN-1

	m := model.New()
	g := m.GraphVar(flagN, graphvar.Directed())
	c, cost, err := m.ATSP(g, origin, dst, weights)
	if err != nil {
		return fmt.Errorf("solve atsp: %w", err)
	}
	if err := m.Post(c); err != nil {
		return fmt.Errorf("solve atsp: %w", err)
	}

	decisions := search.ArcDecisions(g)
	solver, found, limits, err := m.FindOptimal(decisions, cost, true)
	if err != nil {
		return fmt.Errorf("solve atsp: %w", err)
	}
	log.Info().Int("n", flagN).Int("origin", origin).Int("dst", dst).
		Bool("found", found).Int64("fails", solver.Fails()).
		Bool("limit_hit", limits.Any()).Msg("solve atsp done")
	if !found {
		log.Warn().Msg("no path satisfies the posted constraints")
		return nil
	}
	log.Info().Int64("optimal_cost", solver.BestObjective()).Msg("atsp optimum")
	return nil
}
