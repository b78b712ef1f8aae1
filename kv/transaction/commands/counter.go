package commands

import "strconv"

// Counter returns the command that undoes cmd, computed from the state of store before cmd is applied. ok is false
// when cmd does not mutate the store (reads, control commands, unsetting a missing variable, malformed commands).
//
// The reverse value index is never considered: it is derived from the variables, so restoring the variable restores
// the index.
func Counter(cmd Command, store Store) (counter Command, ok bool) {
	if cmd.NumArgs() == 0 {
		return Command{}, false
	}
	name := cmd.Arg(0)
	switch cmd.Kind() {
	case Set:
		if cmd.NumArgs() < 2 {
			return Command{}, false
		}
		if _, err := strconv.Atoi(cmd.Arg(1)); err != nil {
			return Command{}, false
		}
		if old, exists := store.Get(name); exists {
			return NewSet(name, old), true
		}
		return NewUnset(name), true
	case Unset:
		if old, exists := store.Get(name); exists {
			return NewSet(name, old), true
		}
	}
	return Command{}, false
}
