package transaction

import (
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap/errcode"
)

// ResultNoTransaction is reported for ROLLBACK outside a transaction.
const ResultNoTransaction = "NO TRANSACTIONS"

// Stack routes commands through the open transaction Blocks. All Blocks share the Stack's store.
type Stack struct {
	store commands.Store
	// Oldest first.
	blocks []*Block
}

func NewStack(store commands.Store) *Stack {
	return &Stack{store: store}
}

// Execute runs cmd and returns its result text, which is empty when there is nothing to display. The error is non-nil
// for malformed commands, whether applied directly or previewed inside a transaction, and for ROLLBACK without an open
// transaction; in every case the returned text is still the one to display.
func (s *Stack) Execute(cmd commands.Command) (string, error) {
	if len(s.blocks) == 0 {
		switch cmd.Kind() {
		case commands.Begin:
			s.push()
			return "", nil
		case commands.Rollback:
			return ResultNoTransaction, errcode.Op("transaction.rollback").AddTo(NoOpenTransactionErr{})
		default:
			return commands.Evaluate(cmd, s.store)
		}
	}

	switch cmd.Kind() {
	case commands.Begin:
		s.push()
	case commands.Commit:
		s.commitAll()
	case commands.Rollback:
		s.pop().Discard()
	default:
		return s.innermost().AddAndPreview(cmd)
	}
	return "", nil
}

func (s *Stack) push() {
	s.blocks = append(s.blocks, NewBlock(s.store))
}

func (s *Stack) pop() *Block {
	last := len(s.blocks) - 1
	b := s.blocks[last]
	s.blocks[last] = nil
	s.blocks = s.blocks[:last]
	return b
}

func (s *Stack) innermost() *Block {
	return s.blocks[len(s.blocks)-1]
}

// commitAll commits the outermost Block first so commands replay in the order they were issued.
func (s *Stack) commitAll() {
	for len(s.blocks) > 0 {
		b := s.blocks[0]
		s.blocks[0] = nil
		s.blocks = s.blocks[1:]
		b.Commit()
	}
	s.blocks = nil
}

// Depth returns the number of open Blocks.
func (s *Stack) Depth() int {
	return len(s.blocks)
}

// Reset discards every open Block without touching the store.
func (s *Stack) Reset() {
	for len(s.blocks) > 0 {
		s.pop().Discard()
	}
}

// Pending returns the number of commands logged across all open Blocks.
func (s *Stack) Pending() int {
	n := 0
	for _, b := range s.blocks {
		n += b.Len()
	}
	return n
}
