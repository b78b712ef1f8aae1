package transaction

import (
	"testing"

	"github.com/pingcap-incubator/tinytxn/kv/storage"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	begin    = commands.New(commands.Begin)
	commit   = commands.New(commands.Commit)
	rollback = commands.New(commands.Rollback)
)

// run executes every command and returns the non-empty results.
func run(t *testing.T, s *Stack, cmds ...commands.Command) []string {
	var out []string
	for _, cmd := range cmds {
		text, _ := s.Execute(cmd)
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func TestStackDirect(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	out := run(t, s, set("a", 10), get("a"), unset("a"), get("a"))
	assert.Equal(t, []string{"10", commands.ResultNull}, out)
	assert.Equal(t, 0, s.Depth())
}

func TestStackCommitOrdering(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	run(t, s, begin, set("x", 1), begin, set("x", 2))
	assert.Equal(t, 2, s.Depth())
	assert.False(t, store.Exists("x"))

	run(t, s, commit)
	assert.Equal(t, 0, s.Depth())
	value, ok := store.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2, value)
}

// Outer commands replay before inner ones even when the outer command was issued later.
func TestStackCommitOldestFirst(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	run(t, s, begin, begin, set("x", 2))
	s.blocks[0].AddAndPreview(set("x", 1))
	run(t, s, commit)
	value, _ := store.Get("x")
	assert.Equal(t, 2, value)
}

func TestStackRollbackScope(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	run(t, s, begin, set("x", 1), begin, set("x", 2), rollback)
	assert.Equal(t, 1, s.Depth())
	run(t, s, commit)
	value, ok := store.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestStackRollbackWithoutTransaction(t *testing.T) {
	store := storage.NewVariableStore()
	store.Set("a", 1)
	s := NewStack(store)
	text, err := s.Execute(rollback)
	assert.Equal(t, ResultNoTransaction, text)
	require.Error(t, err)
	ec, ok := err.(errcode.ErrorCode)
	require.True(t, ok)
	assert.Equal(t, NoOpenTransactionCode.CodeStr(), ec.Code().CodeStr())
	assert.Equal(t, map[string]int{"a": 1}, store.Snapshot())

	// Only one level unwinds per rollback.
	run(t, s, begin, begin, rollback)
	assert.Equal(t, 1, s.Depth())
	_, err = s.Execute(rollback)
	assert.NoError(t, err)
	_, err = s.Execute(rollback)
	assert.Error(t, err)
}

func TestStackCommitWithoutTransaction(t *testing.T) {
	s := NewStack(storage.NewVariableStore())
	text, err := s.Execute(commit)
	assert.Equal(t, "", text)
	assert.NoError(t, err)
}

func TestStackPreviewInsideTransaction(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	out := run(t, s,
		set("a", 10),
		begin,
		numEqualTo(10),
		set("b", 10),
		numEqualTo(10),
		unset("a"),
		get("a"),
		numEqualTo(10),
	)
	assert.Equal(t, []string{"1", "2", commands.ResultNull, "1"}, out)
	assert.Equal(t, map[string]int{"a": 10}, store.Snapshot())

	run(t, s, commit)
	assert.Equal(t, map[string]int{"b": 10}, store.Snapshot())
}

// An inner level previews against the committed store only; the outer level's pending writes are not visible to it.
func TestStackInnerPreviewIgnoresOuterLog(t *testing.T) {
	s := NewStack(storage.NewVariableStore())
	out := run(t, s, begin, set("x", 1), get("x"), begin, get("x"))
	assert.Equal(t, []string{"1", commands.ResultNull}, out)
}

func TestStackInvalidArguments(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	text, err := s.Execute(commands.New(commands.Set, "x", "foo"))
	assert.Equal(t, commands.ResultInvalidArguments, text)
	assert.True(t, commands.IsInvalidArguments(err))
	assert.False(t, store.Exists("x"))
}

func TestStackInvalidArgumentsInsideTransaction(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	run(t, s, begin)
	text, err := s.Execute(commands.New(commands.Set, "x", "foo"))
	assert.Equal(t, commands.ResultInvalidArguments, text)
	assert.True(t, commands.IsInvalidArguments(err))

	text, err = s.Execute(get("x"))
	assert.Equal(t, commands.ResultNull, text)
	assert.NoError(t, err)

	run(t, s, commit)
	assert.False(t, store.Exists("x"))
}

func TestStackReset(t *testing.T) {
	store := storage.NewVariableStore()
	s := NewStack(store)
	run(t, s, begin, set("x", 1), begin, set("y", 1))
	s.Reset()
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, 0, store.Len())
}

func TestStackPending(t *testing.T) {
	s := NewStack(storage.NewVariableStore())
	run(t, s, set("a", 1), begin, set("a", 2), get("a"), begin, unset("a"))
	assert.Equal(t, 3, s.Pending())
	run(t, s, rollback)
	assert.Equal(t, 2, s.Pending())
	run(t, s, commit)
	assert.Equal(t, 0, s.Pending())
}
