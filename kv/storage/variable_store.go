package storage

import (
	"github.com/google/btree"
)

// Variable is a named integer slot held by a VariableStore.
type Variable struct {
	Name  string
	Value int
}

// Less orders variables by name so the store can be listed deterministically.
func (v *Variable) Less(than btree.Item) bool {
	return v.Name < than.(*Variable).Name
}

var _ btree.Item = &Variable{}

const storeDegree = 8

// VariableStore maps variable names to values and keeps a reverse index from each value to the number of variables
// currently holding it. The index is always derived from the variables: a value is present in it iff at least one
// variable holds that value. VariableStore knows nothing about transactions and is not safe for concurrent use.
type VariableStore struct {
	vars  *btree.BTree
	count map[int]uint64
}

// NewVariableStore creates an empty store.
func NewVariableStore() *VariableStore {
	return &VariableStore{
		vars:  btree.New(storeDegree),
		count: make(map[int]uint64),
	}
}

func (s *VariableStore) find(name string) *Variable {
	item := s.vars.Get(&Variable{Name: name})
	if item == nil {
		return nil
	}
	return item.(*Variable)
}

func (s *VariableStore) incr(value int) {
	s.count[value]++
}

func (s *VariableStore) decr(value int) {
	n := s.count[value]
	if n <= 1 {
		delete(s.count, value)
		return
	}
	s.count[value] = n - 1
}

// Set assigns value to name, creating the variable if it does not exist.
func (s *VariableStore) Set(name string, value int) {
	if v := s.find(name); v != nil {
		s.decr(v.Value)
		v.Value = value
		s.incr(value)
		return
	}
	s.vars.ReplaceOrInsert(&Variable{Name: name, Value: value})
	s.incr(value)
}

// Remove deletes name from the store. Removing a missing variable is a no-op.
func (s *VariableStore) Remove(name string) {
	v := s.find(name)
	if v == nil {
		return
	}
	s.decr(v.Value)
	s.vars.Delete(v)
}

// Exists reports whether name is currently set.
func (s *VariableStore) Exists(name string) bool {
	return s.find(name) != nil
}

// Get returns the value of name. ok is false if the variable does not exist, in which case the value must be
// treated as "no value".
func (s *VariableStore) Get(name string) (value int, ok bool) {
	v := s.find(name)
	if v == nil {
		return 0, false
	}
	return v.Value, true
}

// CountEqualTo returns the number of variables currently equal to value.
func (s *VariableStore) CountEqualTo(value int) uint64 {
	return s.count[value]
}

// EraseAll removes every variable and every index entry.
func (s *VariableStore) EraseAll() {
	s.vars = btree.New(storeDegree)
	s.count = make(map[int]uint64)
}

// Len returns the number of variables in the store.
func (s *VariableStore) Len() int {
	return s.vars.Len()
}

// Ascend calls fn for every variable in name order until fn returns false.
func (s *VariableStore) Ascend(fn func(v Variable) bool) {
	s.vars.Ascend(func(item btree.Item) bool {
		return fn(*item.(*Variable))
	})
}

// Snapshot returns a copy of the name to value mapping.
func (s *VariableStore) Snapshot() map[string]int {
	snap := make(map[string]int, s.vars.Len())
	s.Ascend(func(v Variable) bool {
		snap[v.Name] = v.Value
		return true
	})
	return snap
}

// Counts returns a copy of the value to occurrence count index.
func (s *VariableStore) Counts() map[int]uint64 {
	counts := make(map[int]uint64, len(s.count))
	for value, n := range s.count {
		counts[value] = n
	}
	return counts
}
