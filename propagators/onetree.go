package propagators

import (
	"math"

	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// OneTree computes the Held-Karp 1-tree Lagrangian lower bound over the
// graph variable's envelope and raises a contradiction whenever that bound
// exceeds the cost variable's upper bound. It is the symmetric-TSP-only
// admissible bound: building a minimum 1-tree on reduced costs (MST over
// V\{root} plus the two cheapest root edges) and ascending the Lagrangian
// dual by subgradient steps on the degree violations.
//
// Root and weights are fixed at construction; only the *envelope* shape
// changes between calls, since a fixed-cost weight matrix never moves.
type OneTree struct {
	recorder
	g       *graphvar.Graph
	cost    *intvar.Var
	weights [][]int64
	root    int
	maxIter int
	alpha   float64

	// active gates scan: HKFromRoot starts true; HKAfterFirstSolution
	// starts false and flips true on the search's first incumbent. It is
	// deliberately a plain bool, not a trail.RevBool — once the search
	// has found a solution that fact never un-happens on backtrack.
	active bool

	pi []float64
}

// NewOneTree creates a Held-Karp 1-tree propagator rooted at root. mode
// must not be config.HKOff — callers only construct this propagator when
// the bound is wanted at all.
func NewOneTree(g *graphvar.Graph, cost *intvar.Var, weights [][]int64, root int, mode config.HeldKarpMode) *OneTree {
	return &OneTree{
		g:       g,
		cost:    cost,
		weights: weights,
		root:    root,
		maxIter: 32,
		alpha:   0.9,
		active:  mode != config.HKAfterFirstSolution,
		pi:      make([]float64, g.N()),
	}
}

// OnSolutionFound activates a deferred (HKAfterFirstSolution) bound once
// the search reports its first incumbent; a no-op if already active.
func (p *OneTree) OnSolutionFound() { p.active = true }

// Wire subscribes to every arc/node mutation on g and every bound change
// on cost, matching the two wake sources scan reads from.
func (p *OneTree) Wire(propID int) {
	p.g.Subscribe(propID, graphMutation)
	p.cost.Subscribe(propID, event.Bound)
}

// Priority reports the very-slow cost tier: an O(n^2)-per-iteration
// subgradient loop, the most expensive propagator in this package.
func (p *OneTree) Priority() propagation.Priority { return propagation.VerySlow }

// Init runs the first bound pass, unless the bound is deferred to the
// first incumbent and none has been found yet.
func (p *OneTree) Init() error {
	if !p.active {
		return nil
	}
	return p.scan()
}

// Propagate reruns the bound on any arc/cost event, unless the bound is
// still deferred. The multiplier vector pi is deliberately *not* reset
// between calls: resuming from the last converged point makes each
// successive subgradient loop cheaper.
func (p *OneTree) Propagate(*propagation.Events) error {
	if !p.active {
		return nil
	}
	return p.scan()
}

// IsEntailed is conservatively false: a Lagrangian bound can always move
// as the envelope shrinks, so OneTree never retires itself.
func (p *OneTree) IsEntailed() bool { return false }

func (p *OneTree) scan() error {
	n := p.g.N()
	w := make([]float64, n*n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			if p.g.EnvelopeHasArc(u, v) {
				w[u*n+v] = float64(p.weights[u][v])
			} else {
				w[u*n+v] = math.Inf(1)
			}
		}
	}

	eng := &oneTreeEngine{n: n, root: p.root, w: w, pi: p.pi,
		deg: make([]int, n), inTree: make([]bool, n), parent: make([]int, n), key: make([]float64, n)}

	bestLB := math.Inf(-1)
	ub := float64(p.cost.Max())

	for iter := 0; iter < p.maxIter; iter++ {
		redCost, err := eng.buildOneTreeReduced()
		if err != nil {
			// No 1-tree fits the current envelope: the envelope is
			// already too restrictive for any Hamiltonian cycle.
			return p.fail(p.cost.Name(), trail.MsgEmpty, nil)
		}

		sumPi := 0.0
		for _, pv := range eng.pi {
			sumPi += pv
		}
		lastBound := redCost - 2*sumPi
		if lastBound > bestLB {
			bestLB = lastBound
		}

		norm2 := 0.0
		for _, d := range eng.deg {
			diff := float64(d - 2)
			norm2 += diff * diff
		}
		if norm2 == 0 {
			break
		}

		step := ub - lastBound
		if step < 0 {
			step = 0
		}
		step = p.alpha * step / norm2
		if step == 0 {
			break
		}
		for i := range eng.pi {
			eng.pi[i] += step * float64(eng.deg[i]-2)
		}
	}

	lb := round1e9(bestLB)
	if lb > ub+1e-9 {
		return p.fail(p.cost.Name(), trail.MsgUpp, nil)
	}
	return p.cost.UpdateLB(int64(math.Ceil(lb-1e-9)), nil)
}

func round1e9(x float64) float64 {
	const scale = 1e9
	return math.Round(x*scale) / scale
}

// oneTreeEngine holds the mutable state for building a minimum 1-tree on
// reduced costs, reused across subgradient iterations to avoid
// reallocating per step.
type oneTreeEngine struct {
	n, root int
	w       []float64
	pi      []float64

	deg    []int
	inTree []bool
	parent []int
	key    []float64
}

func (e *oneTreeEngine) reduced(u, v int) float64 {
	return e.w[u*e.n+v] + e.pi[u] + e.pi[v]
}

// buildOneTreeReduced builds a minimum 1-tree on reduced costs: Prim's MST
// over V\{root} plus the two cheapest root edges. Fills e.deg and returns
// the reduced-cost total. Returns an error if no 1-tree exists (a
// disconnected V\{root}, or fewer than two finite root edges).
func (e *oneTreeEngine) buildOneTreeReduced() (float64, error) {
	inf := math.Inf(1)
	for i := range e.deg {
		e.deg[i] = 0
	}

	for v := 0; v < e.n; v++ {
		e.inTree[v] = false
		e.parent[v] = -1
		e.key[v] = inf
	}
	start := 0
	if start == e.root {
		start = 1
	}
	e.key[start] = 0

	var costReduced float64
	for iter := 0; iter < e.n-1; iter++ {
		best := -1
		for v := 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			if best == -1 || e.key[v] < e.key[best] || (e.key[v] == e.key[best] && v < best) {
				best = v
			}
		}
		if best == -1 || math.IsInf(e.key[best], 0) {
			return 0, trail.Fail("onetree", trail.MsgEmpty, nil)
		}
		e.inTree[best] = true
		if e.parent[best] != -1 {
			e.deg[best]++
			e.deg[e.parent[best]]++
			costReduced += e.reduced(best, e.parent[best])
		}
		for v := 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			c := e.reduced(best, v)
			if c < e.key[v] {
				e.key[v] = c
				e.parent[v] = best
			}
		}
	}

	// Two cheapest root-incident edges, index tiebreak.
	first, second := -1, -1
	for v := 0; v < e.n; v++ {
		if v == e.root || math.IsInf(e.reduced(e.root, v), 0) {
			continue
		}
		c := e.reduced(e.root, v)
		if first == -1 || c < e.reduced(e.root, first) {
			second = first
			first = v
		} else if second == -1 || c < e.reduced(e.root, second) {
			second = v
		}
	}
	if first == -1 || second == -1 {
		return 0, trail.Fail("onetree", trail.MsgEmpty, nil)
	}
	e.deg[e.root] += 2
	e.deg[first]++
	e.deg[second]++
	costReduced += e.reduced(e.root, first) + e.reduced(e.root, second)

	return costReduced, nil
}
