package main

import (
	"github.com/spf13/cobra"
)

// --- Global flag variables ---
var (
	flagN        int
	flagScenario string
	flagInstance string

	rootCmd = &cobra.Command{
		Use:   "corecp",
		Short: "Drive the corecp graph-variable constraint solver against bundled scenarios",
		Long: `corecp is a thin command-line front end over the model-facing API:
it builds a model, posts one of a handful of graph constraints, and prints
whatever the search loop finds. It contains no solving logic of its own.`,
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve one of the bundled graph-constraint scenarios",
	}

	boundCmd = &cobra.Command{
		Use:   "bound",
		Short: "Compute a lower bound on a bundled instance without a full search",
	}

	tspCmd = &cobra.Command{
		Use:   "tsp",
		Short: "Solve a symmetric TSP instance to optimality",
		RunE:  runSolveTSP,
	}

	atspCmd = &cobra.Command{
		Use:   "atsp",
		Short: "Solve an asymmetric TSP (Hamiltonian path) instance to optimality",
		RunE:  runSolveATSP,
	}

	ncliquesCmd = &cobra.Command{
		Use:   "ncliques",
		Short: "Find a feasible partition of a graph into cliques",
		RunE:  runSolveNCliques,
	}

	ntreesCmd = &cobra.Command{
		Use:   "ntrees",
		Short: "Find a feasible partition of a directed graph into rooted trees",
		RunE:  runSolveNTrees,
	}

	heldKarpCmd = &cobra.Command{
		Use:   "heldkarp",
		Short: "Compute the Held-Karp one-tree lower bound on a bundled TSPLIB instance",
		RunE:  runBoundHeldKarp,
	}
)

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(boundCmd)

	solveCmd.AddCommand(tspCmd)
	tspCmd.Flags().IntVar(&flagN, "n", 6, "number of nodes")
	tspCmd.Flags().StringVar(&flagScenario, "scenario", "ring", "instance shape: ring")

	solveCmd.AddCommand(atspCmd)
	atspCmd.Flags().IntVar(&flagN, "n", 5, "number of nodes")
	atspCmd.Flags().StringVar(&flagScenario, "scenario", "line", "instance shape: line")

	solveCmd.AddCommand(ncliquesCmd)
	ncliquesCmd.Flags().IntVar(&flagN, "n", 6, "number of nodes, split into two equal mandatory cliques")

	solveCmd.AddCommand(ntreesCmd)
	ntreesCmd.Flags().IntVar(&flagN, "n", 6, "number of nodes, split into two rooted trees")

	boundCmd.AddCommand(heldKarpCmd)
	heldKarpCmd.Flags().StringVar(&flagInstance, "instance", "gr17", "bundled TSPLIB instance name")
}
