package server

import "go.uber.org/atomic"

// Stats is a point-in-time view of a Server's counters.
type Stats struct {
	Commands         uint64 `json:"commands"`
	InvalidCommands  uint64 `json:"invalid_commands"`
	Commits          uint64 `json:"commits"`
	Rollbacks        uint64 `json:"rollbacks"`
	TransactionDepth int64  `json:"transaction_depth"`
	PendingCommands  int64  `json:"pending_commands"`
	Variables        int64  `json:"variables"`
}

// stats is written by the goroutine executing commands and may be read from any other goroutine.
type stats struct {
	commands        *atomic.Uint64
	invalidCommands *atomic.Uint64
	commits         *atomic.Uint64
	rollbacks       *atomic.Uint64
	depth           *atomic.Int64
	pending         *atomic.Int64
	variables       *atomic.Int64
}

func newStats() *stats {
	return &stats{
		commands:        atomic.NewUint64(0),
		invalidCommands: atomic.NewUint64(0),
		commits:         atomic.NewUint64(0),
		rollbacks:       atomic.NewUint64(0),
		depth:           atomic.NewInt64(0),
		pending:         atomic.NewInt64(0),
		variables:       atomic.NewInt64(0),
	}
}

func (s *stats) snapshot() Stats {
	return Stats{
		Commands:         s.commands.Load(),
		InvalidCommands:  s.invalidCommands.Load(),
		Commits:          s.commits.Load(),
		Rollbacks:        s.rollbacks.Load(),
		TransactionDepth: s.depth.Load(),
		PendingCommands:  s.pending.Load(),
		Variables:        s.variables.Load(),
	}
}
