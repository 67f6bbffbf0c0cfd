package search

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/heuristic"
)

const (
	// DefaultThreshold is the time left at which a search gives up.
	DefaultThreshold = 20 * time.Millisecond
)

// errSearchCancelled aborts a search when the time budget is exhausted.
// It never leaves this package.
var errSearchCancelled = errors.New("search cancelled")

// Ordering reorders, in place, the columns visited at a node.
type Ordering func(columns []int)

// Config configures an Agent.
type Config struct {
	// MaxDepth caps iterative deepening. Zero means no cap.
	MaxDepth int

	// Threshold is the minimum time left for a node to be visited.
	Threshold time.Duration

	// Heuristic evaluates leaves. Defaults to heuristic.Pattern.
	Heuristic heuristic.Heuristic

	// Rand drives the move shuffling. Defaults to a time-seeded source.
	Rand *rand.Rand

	// Ordering overrides the random move order, mostly useful for tests.
	Ordering Ordering
}

// Outcome describes the result of a search.
type Outcome struct {
	// Column is the chosen move or -1 if there is no legal move.
	Column int

	// Score is the value of Column at Depth, seen from the player to move.
	Score float64

	// Depth is the deepest fully completed search depth.
	Depth int

	// Nodes is the number of visited nodes, including those of cancelled depths.
	Nodes uint64

	Elapsed time.Duration
}

// Agent picks moves with iterative deepening alpha-beta search.
// An Agent is not safe for concurrent use.
type Agent struct {
	maxDepth  int
	threshold time.Duration
	heuristic heuristic.Heuristic
	rand      *rand.Rand
	ordering  Ordering
}

// NewAgent creates a new Agent.
func NewAgent(cfg Config) *Agent {
	agent := &Agent{
		maxDepth:  cfg.MaxDepth,
		threshold: cfg.Threshold,
		heuristic: cfg.Heuristic,
		rand:      cfg.Rand,
		ordering:  cfg.Ordering,
	}

	if agent.heuristic == nil {
		agent.heuristic = heuristic.Pattern{}
	}

	if agent.rand == nil {
		agent.rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}

	if agent.ordering == nil {
		agent.ordering = agent.shuffle
	}

	return agent
}

func (a *Agent) shuffle(columns []int) {
	a.rand.Shuffle(len(columns), func(i, j int) {
		columns[i], columns[j] = columns[j], columns[i]
	})
}

// Search returns the best column of the deepest completed depth, or -1 if
// there is no legal move. If the time runs out before depth 1 completes,
// Search does not return -1 but a legal column in move order.
func (a *Agent) Search(board *connectn.Board, timeLeft TimeLeftFunc) int {
	return a.Analyze(board, timeLeft).Column
}

// Analyze works like Search but also reports search statistics.
// Column is -1 only when the board has no legal move. When no depth completes,
// Column is the first legal column in move order and Depth is 0.
func (a *Agent) Analyze(board *connectn.Board, timeLeft TimeLeftFunc) Outcome {
	start := time.Now()

	if board.IsTerminal() {
		return Outcome{Column: -1}
	}

	r := &run{
		agent:    a,
		timeLeft: timeLeft,
		root:     board.CurrentPlayer(),
	}

	// Searching deeper than the number of empty cells cannot change anything.
	maxDepth := board.Width()*board.Height() - board.MoveCount()
	if a.maxDepth > 0 {
		maxDepth = min(maxDepth, a.maxDepth)
	}

	outcome := Outcome{Column: -1}

	for depth := 1; depth <= maxDepth; depth++ {
		column, score, err := r.searchRoot(board, depth)
		if errors.Is(err, errSearchCancelled) {
			slog.Debug("search cancelled", "depth", depth, "nodes", r.nodes)
			break
		}

		outcome.Column = column
		outcome.Score = score
		outcome.Depth = depth

		slog.Debug("search depth completed", "depth", depth, "column", column, "score", score, "nodes", r.nodes)
	}

	// The budget ran out before depth 1 completed. Any legal move beats forfeiting.
	if outcome.Column == -1 {
		columns := board.LegalColumns()
		a.ordering(columns)
		outcome.Column = columns[0]
	}

	outcome.Nodes = r.nodes
	outcome.Elapsed = time.Since(start)

	logStats(outcome)
	return outcome
}

func logStats(outcome Outcome) {
	elapsedSeconds := outcome.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(outcome.Nodes) / elapsedSeconds)
	}

	slog.Debug("search finished",
		"column", outcome.Column,
		"depth", outcome.Depth,
		"nodes", outcome.Nodes,
		"elapsed", outcome.Elapsed,
		"nodes_per_second", nodesPerSecond,
	)
}

// run holds the state of a single Analyze call.
type run struct {
	agent    *Agent
	timeLeft TimeLeftFunc
	root     connectn.Cell
	nodes    uint64
}

// visit is called at the top of every node.
func (r *run) visit() error {
	r.nodes++

	if r.timeLeft() < r.agent.threshold {
		return errSearchCancelled
	}
	return nil
}

// evaluate scores a leaf for the root player. The heuristic sees the board
// from the node's current mover, so the score is flipped on the other plies.
func (r *run) evaluate(board *connectn.Board) float64 {
	score := r.agent.heuristic.Evaluate(board)
	if board.CurrentPlayer() != r.root {
		return -score
	}
	return score
}

func (r *run) columns(board *connectn.Board) []int {
	columns := board.LegalColumns()
	r.agent.ordering(columns)
	return columns
}

// searchRoot returns the best column at depth. Among equal scores the first visited column wins.
func (r *run) searchRoot(board *connectn.Board, depth int) (int, float64, error) {
	if err := r.visit(); err != nil {
		return -1, 0, err
	}

	alpha := math.Inf(-1)
	beta := math.Inf(1)

	bestColumn := -1
	bestScore := math.Inf(-1)

	for _, column := range r.columns(board) {
		score, err := r.minValue(board.CloneAndMove(column), depth-1, alpha, beta)
		if err != nil {
			return -1, 0, err
		}

		if bestColumn == -1 || score > bestScore {
			bestColumn = column
			bestScore = score
		}

		alpha = max(alpha, score)
	}

	return bestColumn, bestScore, nil
}

func (r *run) maxValue(board *connectn.Board, depth int, alpha, beta float64) (float64, error) {
	if err := r.visit(); err != nil {
		return 0, err
	}

	if depth == 0 || board.IsTerminal() {
		return r.evaluate(board), nil
	}

	best := math.Inf(-1)

	for _, column := range r.columns(board) {
		score, err := r.minValue(board.CloneAndMove(column), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		best = max(best, score)
		if best >= beta {
			return best, nil
		}

		alpha = max(alpha, best)
	}

	return best, nil
}

func (r *run) minValue(board *connectn.Board, depth int, alpha, beta float64) (float64, error) {
	if err := r.visit(); err != nil {
		return 0, err
	}

	if depth == 0 || board.IsTerminal() {
		return r.evaluate(board), nil
	}

	best := math.Inf(1)

	for _, column := range r.columns(board) {
		score, err := r.maxValue(board.CloneAndMove(column), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		best = min(best, score)
		if best <= alpha {
			return best, nil
		}

		beta = min(beta, best)
	}

	return best, nil
}
