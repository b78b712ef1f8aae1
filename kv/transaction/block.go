package transaction

import (
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
)

// Block is one open transaction level: an ordered log of commands and the store it will eventually mutate.
type Block struct {
	store commands.Store
	log   []commands.Command
}

// NewBlock creates an empty Block bound to store. The Block does not own store.
func NewBlock(store commands.Store) *Block {
	return &Block{store: store}
}

// AddAndPreview appends cmd to the log and returns the result cmd would have after every earlier logged command took
// effect. A malformed cmd yields ResultInvalidArguments together with an InvalidArgumentsErr, exactly as evaluating it
// outside a transaction would. The store is left exactly as it was before the call.
func (b *Block) AddAndPreview(cmd commands.Command) (string, error) {
	b.log = append(b.log, cmd)

	counters := make([]commands.Command, 0, len(b.log))
	var (
		result string
		err    error
	)
	last := len(b.log) - 1
	for i, logged := range b.log {
		// The counter must be derived from the state immediately before logged is re-applied.
		if counter, ok := commands.Counter(logged, b.store); ok {
			counters = append(counters, counter)
		}
		if i == last {
			result, err = commands.Evaluate(logged, b.store)
		} else {
			commands.Apply(logged, b.store)
		}
	}

	for i := len(counters) - 1; i >= 0; i-- {
		commands.Apply(counters[i], b.store)
	}
	return result, err
}

// Commit re-applies every logged command in order. The effects are permanent.
func (b *Block) Commit() {
	for _, cmd := range b.log {
		commands.Apply(cmd, b.store)
	}
	b.log = nil
}

// Discard drops the log. The store needs no repair since previews never leave it modified.
func (b *Block) Discard() {
	b.log = nil
}

// Len returns the number of logged commands.
func (b *Block) Len() int {
	return len(b.log)
}

// Commands returns a copy of the log.
func (b *Block) Commands() []commands.Command {
	return append([]commands.Command(nil), b.log...)
}
